package navigation

import "go.uber.org/zap"

type Target string

const (
	DeliveryTrackingScreen Target = "deliveryTrackingScreen"
	PickupSummaryScreen    Target = "pickupSummaryScreen"
)

// Navigator receives imperative screen transitions. It never calls back.
type Navigator interface {
	GoTo(target Target)
}

// LogNavigator just records transitions in the log, used by the demo app
// where no real screen host exists.
type LogNavigator struct {
	Log *zap.SugaredLogger
}

func (n *LogNavigator) GoTo(target Target) {
	n.Log.Infof("Navigating to '%s'\n", target)
}

package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/avdonin/foodorders/internal/client"
	"github.com/avdonin/foodorders/internal/navigation"
	"github.com/avdonin/foodorders/internal/storage/order"
	"github.com/avdonin/foodorders/internal/storage/state"
	"go.uber.org/zap"
)

// Fetcher is the slice of the order store client the synchronizer needs.
type Fetcher interface {
	GetOrder(ctx context.Context, orderID string) (*order.Order, error)
	CancelOrder(ctx context.Context, orderID string) error
	SetToken(token string)
}

type Subscription interface {
	Unsubscribe() error
}

// EventChannel is the push transport. The production implementation wraps a
// NATS connection, tests emit synthetic events through a fake.
type EventChannel interface {
	Subscribe(subject string, handler func(orderID string)) (Subscription, error)
}

// Synchronizer keeps the local order state consistent with the server. One
// instance exists per process and owns the single push subscription, every
// screen attaches to it instead of opening a channel of its own.
type Synchronizer struct {
	State   *state.State
	Client  Fetcher
	Nav     navigation.Navigator
	Log     *zap.SugaredLogger
	Timeout time.Duration

	mu       sync.Mutex
	channel  EventChannel
	sub      Subscription
	refresh  []func()
	checkout CheckoutFunc
}

// CheckoutFunc posts the cart, injected so tests can run without a store.
type CheckoutFunc func(ctx context.Context, req *client.CheckoutRequest) (*client.CheckoutResponse, error)

func NewSynchronizer(st *state.State, cl Fetcher, ch EventChannel, nav navigation.Navigator, timeout time.Duration, log *zap.SugaredLogger) *Synchronizer {
	return &Synchronizer{
		State:   st,
		Client:  cl,
		Nav:     nav,
		Log:     log,
		Timeout: timeout,
		channel: ch,
	}
}

// SetCheckout wires the checkout call used by Checkout.
func (s *Synchronizer) SetCheckout(f CheckoutFunc) {
	s.mu.Lock()
	s.checkout = f
	s.mu.Unlock()
}

// OnRefresh registers a fire-and-forget signal fired once per terminal
// transition. Badge and list screens re-pull their aggregates on it.
func (s *Synchronizer) OnRefresh(f func()) {
	s.mu.Lock()
	s.refresh = append(s.refresh, f)
	s.mu.Unlock()
}

func (s *Synchronizer) fireRefresh() {
	s.mu.Lock()
	fs := make([]func(), len(s.refresh))
	copy(fs, s.refresh)
	s.mu.Unlock()
	for _, f := range fs {
		f()
	}
}

// SubjectFor is the per-user subject the server publishes order change hints
// to. The stub store uses the same scheme on the publish side.
func SubjectFor(userID string) string {
	return "orders." + userID
}

// Subscribe opens the push subscription for the session. Without both a user
// id and a token it does nothing at all, no connection is attempted. Calling
// it again tears the previous subscription down first, so remounted screens
// never stack handlers.
func (s *Synchronizer) Subscribe(userID string, authToken string) error {
	if userID == "" || authToken == "" {
		s.Log.Infof("Skip subscribe, session is not ready\n")
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		err := s.sub.Unsubscribe()
		if err != nil {
			s.Log.Infof("Problem with closing of previous subscription: %s\n", err.Error())
		}
		s.sub = nil
	}
	s.Client.SetToken(authToken)
	sub, err := s.channel.Subscribe(SubjectFor(userID), s.OnOrderChanged)
	if err != nil {
		return err
	}
	s.sub = sub
	return nil
}

// Unsubscribe closes the push subscription. Pending events delivered after
// it returns are ignored by the channel, not by us.
func (s *Synchronizer) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub == nil {
		return
	}
	err := s.sub.Unsubscribe()
	if err != nil {
		s.Log.Infof("Problem with closing of subscription: %s\n", err.Error())
	}
	s.sub = nil
}

// OnOrderChanged handles one push event. The event only says "order X
// changed", so the record is re-fetched and reconciled into local state. On
// fetch failure the event is dropped, the next push or a manual pull is the
// recovery path. Two overlapping events for one id race on the fetch but
// commit one at a time, last commit wins.
func (s *Synchronizer) OnOrderChanged(orderID string) {
	ctx := context.Background()
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	ord, err := s.Client.GetOrder(ctx, orderID)
	if err != nil {
		s.Log.Infof("Problem with reconciling of order '%s': %s\n", orderID, err.Error())
		return
	}
	s.apply(ord)
}

// apply commits a fetched record. Terminal side effects hang off the actual
// removal from the active set, which is what keeps duplicate terminal events
// and the optimistic cancel path idempotent.
func (s *Synchronizer) apply(ord *order.Order) {
	if !ord.Status.Terminal() {
		s.State.PatchStatus(ord.OrderID, ord.Status)
		return
	}
	if !s.State.Complete(ord) {
		return
	}
	s.fireRefresh()
	target := navigation.PickupSummaryScreen
	if ord.Type == order.TypeDelivery {
		target = navigation.DeliveryTrackingScreen
	}
	s.Nav.GoTo(target)
}

// Cancel asks the store to cancel and, on success, applies the rejected
// transition right away instead of waiting for the push confirmation. The
// later push-driven reconciliation of the same terminal status finds the
// order already gone and does nothing. On failure the error goes back to the
// caller for display, there is no retry.
func (s *Synchronizer) Cancel(ctx context.Context, orderID string) error {
	err := s.Client.CancelOrder(ctx, orderID)
	if err != nil {
		return err
	}
	ord, ok := s.State.Active(orderID)
	if !ok {
		return nil
	}
	ord.Status = order.StatusRejected
	s.apply(&ord)
	return nil
}

// Checkout posts the cart and records the created order. This is the only
// way a new order enters the active set, push events patch existing entries
// only.
func (s *Synchronizer) Checkout(ctx context.Context, req *client.CheckoutRequest) (*client.CheckoutResponse, error) {
	s.mu.Lock()
	f := s.checkout
	s.mu.Unlock()
	if f == nil {
		return nil, &NotWiredError{Op: "checkout"}
	}
	resp, err := f(ctx, req)
	if err != nil {
		return nil, err
	}
	s.State.AddActive(resp.Order)
	s.State.SetCurrent(&resp.Order)
	return resp, nil
}

type NotWiredError struct {
	Op string
}

func (e *NotWiredError) Error() string {
	return "Operation '" + e.Op + "' is not wired"
}

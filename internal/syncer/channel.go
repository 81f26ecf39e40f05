package syncer

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Event is the whole push message schema: a hint naming the changed order.
type Event struct {
	OrderID string `json:"orderId"`
}

// NatsChannel adapts a NATS connection to the EventChannel interface.
type NatsChannel struct {
	Conn *nats.Conn
	Log  *zap.SugaredLogger
}

func NewNatsChannel(url string, log *zap.SugaredLogger) (*NatsChannel, error) {
	sc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &NatsChannel{Conn: sc, Log: log}, nil
}

func (c *NatsChannel) Subscribe(subject string, handler func(orderID string)) (Subscription, error) {
	sub, err := c.Conn.Subscribe(subject, func(m *nats.Msg) {
		var ev Event
		err := json.Unmarshal(m.Data, &ev)
		if err != nil {
			c.Log.Infof("Problem with decoding of push event: %s\n", err.Error())
			return
		}
		if ev.OrderID == "" {
			return
		}
		handler(ev.OrderID)
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (c *NatsChannel) Close() {
	c.Conn.Close()
}

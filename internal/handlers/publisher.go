package handlers

import (
	"encoding/json"

	"github.com/avdonin/foodorders/internal/syncer"
	"github.com/nats-io/nats.go"
)

// EventPublisher pushes the "order changed" hint to the owner's subject
// whenever a status mutates.
type EventPublisher interface {
	OrderChanged(userID string, orderID string) error
}

type NatsPublisher struct {
	Conn *nats.Conn
}

func (p *NatsPublisher) OrderChanged(userID string, orderID string) error {
	data, err := json.Marshal(syncer.Event{OrderID: orderID})
	if err != nil {
		return err
	}
	return p.Conn.Publish(syncer.SubjectFor(userID), data)
}

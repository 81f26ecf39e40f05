package order

import (
	"github.com/avdonin/foodorders/internal/storage/item"
)

type Status string

const (
	StatusNew      Status = "new order"
	StatusAccepted Status = "accepted"
	StatusSending  Status = "sending"
	StatusFinished Status = "finished"
	StatusRejected Status = "rejected"
)

// Terminal reports whether no further status change can arrive for the order.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusRejected
}

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusAccepted, StatusSending, StatusFinished, StatusRejected:
		return true
	}
	return false
}

type Type string

const (
	TypeDelivery Type = "Delivery"
	TypePickup   Type = "Pick-up"
	TypeOrderIn  Type = "Order-in"
)

type Order struct {
	OrderID    string      `json:"id"`
	Status     Status      `json:"status"`
	Type       Type        `json:"type"`
	Code       string      `json:"code"`
	TotalPrice float64     `json:"totalPrice"`
	Items      []item.Item `json:"orderDetails"`
	LocalID    string      `json:"localId"`
	UserID     string      `json:"userId,omitempty"`
}

func NewOrder() Order {
	var ord Order
	items := make([]item.Item, 0)
	ord.Items = items
	return ord
}

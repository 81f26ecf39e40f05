package storage

import (
	"context"

	customerrors "github.com/avdonin/foodorders/internal/errors"
	"github.com/avdonin/foodorders/internal/storage/order"
)

// OrderStore is the persistence behind the stub order store server. The
// in-memory table is the default, postgres is used when a dsn is configured.
type OrderStore interface {
	GetOrderByID(ctx context.Context, orderID string) (*order.Order, *customerrors.CustomError)
	AddOrder(ctx context.Context, ord *order.Order) error
	UpdateStatus(ctx context.Context, orderID string, status order.Status) (*order.Order, *customerrors.CustomError)
	DeleteOrderByID(ctx context.Context, orderID string) error
}

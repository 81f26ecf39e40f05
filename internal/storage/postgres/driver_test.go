package postgres

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/avdonin/foodorders/internal/storage/item"
	"github.com/avdonin/foodorders/internal/storage/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWorker(t *testing.T) *SqlWorker {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN is not set")
	}
	w, err := NewSqlWorker(dsn)
	require.Equal(t, nil, err)
	err = w.CreateDefaultTables()
	require.Equal(t, nil, err)
	return w
}

func TestSqlWorker_AddOrder(t *testing.T) {
	ctx := context.Background()
	w := startWorker(t)
	ord := order.Order{
		OrderID: "pg-test-1", Status: order.StatusNew, Type: order.TypePickup,
		Code: "0001", TotalPrice: 15, LocalID: "shop-1", UserID: "user-1",
		Items: []item.Item{{ProductID: "p1", Name: "pie", Price: 15, Count: 1}},
	}
	defer func() {
		err := w.DeleteOrderByID(ctx, ord.OrderID)
		require.Equal(t, nil, err)
	}()
	err := w.AddOrder(ctx, &ord)
	require.Equal(t, nil, err)

	got, cErr := w.GetOrderByID(ctx, ord.OrderID)
	require.Equal(t, true, cErr == nil)
	assert.Equal(t, ord.Status, got.Status)
	assert.Equal(t, 1, len(got.Items))

	got, cErr = w.UpdateStatus(ctx, ord.OrderID, order.StatusAccepted)
	require.Equal(t, true, cErr == nil)
	assert.Equal(t, order.StatusAccepted, got.Status)

	_, cErr = w.GetOrderByID(ctx, "pg-test-missing")
	require.NotEqual(t, nil, cErr)
	assert.Equal(t, http.StatusNotFound, cErr.Status)
}

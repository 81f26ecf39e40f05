package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	customerrors "github.com/avdonin/foodorders/internal/errors"
	"github.com/avdonin/foodorders/internal/storage/cache"
	"github.com/avdonin/foodorders/internal/storage/item"
	"github.com/avdonin/foodorders/internal/storage/order"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type storeState struct {
	orders map[string]order.Order
	gets   int
}

func startStore(t *testing.T) (*OrderClient, *storeState) {
	st := &storeState{orders: make(map[string]order.Order)}
	r := chi.NewRouter()
	r.Get("/orders/{id}", func(w http.ResponseWriter, request *http.Request) {
		st.gets += 1
		if request.Header.Get("Authorization") != "Bearer token-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		ord, ok := st.orders[chi.URLParam(request, "id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		writeJSON(t, w, &ord)
	})
	r.Post("/orders/{id}/cancel", func(w http.ResponseWriter, request *http.Request) {
		id := chi.URLParam(request, "id")
		ord, ok := st.orders[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		ord.Status = order.StatusRejected
		st.orders[id] = ord
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/orders", func(w http.ResponseWriter, request *http.Request) {
		created := order.Order{OrderID: "100", Status: order.StatusNew, Type: order.TypeDelivery}
		st.orders["100"] = created
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		writeJSON(t, w, &CheckoutResponse{Order: created})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	cl := NewOrderClient(srv.URL, time.Second, zap.NewNop().Sugar())
	cl.SetToken("token-1")
	return cl, st
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	require.Equal(t, nil, err)
	_, err = w.Write(data)
	require.Equal(t, nil, err)
}

func TestGetOrder(t *testing.T) {
	type args struct {
		ID string
	}
	tests := []struct {
		name       string
		args       args
		wantErr    bool
		wantStatus int
	}{
		{name: "common_case", args: args{"42"}, wantErr: false},
		{name: "unknown_order", args: args{"99"}, wantErr: true, wantStatus: http.StatusNotFound},
	}
	cache.InitCache(5, 60, zap.NewNop().Sugar())
	cl, st := startStore(t)
	st.orders["42"] = order.Order{
		OrderID: "42", Status: order.StatusSending, Type: order.TypeDelivery,
		Items: []item.Item{{ProductID: "p1", Name: "tea", Price: 3, Count: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ord, err := cl.GetOrder(context.Background(), tt.args.ID)
			if tt.wantErr {
				require.NotEqual(t, nil, err)
				var cErr *customerrors.CustomError
				require.Equal(t, true, errors.As(err, &cErr))
				assert.Equal(t, tt.wantStatus, cErr.Status)
				return
			}
			require.Equal(t, nil, err)
			assert.Equal(t, order.StatusSending, ord.Status)
			assert.Equal(t, 1, len(ord.Items))
		})
	}
}

func TestGetOrderCached(t *testing.T) {
	cache.InitCache(5, 60, zap.NewNop().Sugar())
	cl, st := startStore(t)
	st.orders["42"] = order.Order{OrderID: "42", Status: order.StatusAccepted, Type: order.TypePickup}

	ord, err := cl.GetOrder(context.Background(), "42")
	require.Equal(t, nil, err)
	assert.Equal(t, 1, st.gets)

	ord, err = cl.GetOrderCached(context.Background(), "42")
	require.Equal(t, nil, err)
	assert.Equal(t, order.StatusAccepted, ord.Status)
	assert.Equal(t, 1, st.gets)
}

func TestCancelOrderDropsCacheEntry(t *testing.T) {
	cache.InitCache(5, 60, zap.NewNop().Sugar())
	cl, st := startStore(t)
	st.orders["42"] = order.Order{OrderID: "42", Status: order.StatusNew, Type: order.TypeDelivery}

	_, err := cl.GetOrder(context.Background(), "42")
	require.Equal(t, nil, err)
	err = cl.CancelOrder(context.Background(), "42")
	require.Equal(t, nil, err)

	ord, err := cl.GetOrderCached(context.Background(), "42")
	require.Equal(t, nil, err)
	assert.Equal(t, order.StatusRejected, ord.Status)
}

func TestCreateOrder(t *testing.T) {
	cache.InitCache(5, 60, zap.NewNop().Sugar())
	cl, _ := startStore(t)
	resp, err := cl.CreateOrder(context.Background(), &CheckoutRequest{Type: order.TypeDelivery})
	require.Equal(t, nil, err)
	assert.Equal(t, "100", resp.Order.OrderID)
	assert.Equal(t, order.StatusNew, resp.Order.Status)
}

package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	customerrors "github.com/avdonin/foodorders/internal/errors"
	"github.com/avdonin/foodorders/internal/storage/cache"
	"github.com/avdonin/foodorders/internal/storage/item"
	"github.com/avdonin/foodorders/internal/storage/order"
	"github.com/avdonin/foodorders/internal/storage/payment"
	"github.com/avdonin/foodorders/internal/storage/user"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// OrderClient talks to the remote order store. Every call carries the bearer
// token of the current session and an explicit timeout, the source app had
// none on the re-fetch path.
type OrderClient struct {
	HTTP *resty.Client
	Log  *zap.SugaredLogger
	mu   sync.RWMutex
	tok  string
}

type CheckoutRequest struct {
	Type        order.Type      `json:"type"`
	LocalID     string          `json:"localId"`
	Items       []item.Item     `json:"orderDetails"`
	TotalPrice  float64         `json:"totalPrice"`
	PaymentInfo payment.Payment `json:"payment"`
}

type CheckoutResponse struct {
	Order order.Order `json:"order"`
	User  user.User   `json:"user"`
}

func NewOrderClient(baseURL string, timeout time.Duration, log *zap.SugaredLogger) *OrderClient {
	cl := resty.New()
	cl.SetBaseURL(baseURL)
	cl.SetTimeout(timeout)
	return &OrderClient{HTTP: cl, Log: log}
}

func (c *OrderClient) SetToken(token string) {
	c.mu.Lock()
	c.tok = token
	c.mu.Unlock()
}

func (c *OrderClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tok
}

// GetOrder always hits the server and refreshes the read cache with the
// result. Reconciliation goes through here, the push event is only a hint
// that the record is stale.
func (c *OrderClient) GetOrder(ctx context.Context, orderID string) (*order.Order, error) {
	ord := order.NewOrder()
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetAuthToken(c.Token()).
		SetResult(&ord).
		Get("/orders/" + orderID)
	if err != nil {
		return nil, fmt.Errorf("Problem with fetching of order '%s': %w", orderID, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &customerrors.CustomError{
			Message: fmt.Sprintf("Problem with fetching of order '%s': status %d", orderID, resp.StatusCode()),
			Status:  resp.StatusCode(),
		}
	}
	cache.Put(&ord)
	return &ord, nil
}

// GetOrderCached serves detail screens that reopen a record, falling back to
// a real fetch on miss.
func (c *OrderClient) GetOrderCached(ctx context.Context, orderID string) (*order.Order, error) {
	if ord, ok := cache.Get(orderID); ok {
		return ord, nil
	}
	return c.GetOrder(ctx, orderID)
}

func (c *OrderClient) CancelOrder(ctx context.Context, orderID string) error {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetAuthToken(c.Token()).
		Post("/orders/" + orderID + "/cancel")
	if err != nil {
		return fmt.Errorf("Problem with canceling of order '%s': %w", orderID, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return &customerrors.CustomError{
			Message: fmt.Sprintf("Problem with canceling of order '%s': status %d", orderID, resp.StatusCode()),
			Status:  resp.StatusCode(),
		}
	}
	cache.Drop(orderID)
	return nil
}

func (c *OrderClient) RefundOrder(ctx context.Context, orderID string) error {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetAuthToken(c.Token()).
		Post("/orders/" + orderID + "/refund")
	if err != nil {
		return fmt.Errorf("Problem with refunding of order '%s': %w", orderID, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return &customerrors.CustomError{
			Message: fmt.Sprintf("Problem with refunding of order '%s': status %d", orderID, resp.StatusCode()),
			Status:  resp.StatusCode(),
		}
	}
	return nil
}

// CreateOrder posts the cart at checkout. The response is the only path new
// orders take into the active set.
func (c *OrderClient) CreateOrder(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error) {
	var out CheckoutResponse
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetAuthToken(c.Token()).
		SetBody(req).
		SetResult(&out).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("Problem with creating of order: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK {
		return nil, &customerrors.CustomError{
			Message: fmt.Sprintf("Problem with creating of order: status %d", resp.StatusCode()),
			Status:  resp.StatusCode(),
		}
	}
	cache.Put(&out.Order)
	return &out, nil
}

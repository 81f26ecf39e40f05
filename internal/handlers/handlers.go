package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/avdonin/foodorders/internal/client"
	customerrors "github.com/avdonin/foodorders/internal/errors"
	"github.com/avdonin/foodorders/internal/pkg/middleware/compress"
	"github.com/avdonin/foodorders/internal/pkg/middleware/logger"
	"github.com/avdonin/foodorders/internal/storage"
	"github.com/avdonin/foodorders/internal/storage/order"
	"github.com/avdonin/foodorders/internal/storage/user"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handlers is the stub remote order store. It keeps whatever the configured
// store holds, checks the session bearer token, and publishes a change hint
// to the owner's subject on every status mutation.
type Handlers struct {
	Store  storage.OrderStore
	Pub    EventPublisher
	Log    *zap.SugaredLogger
	UserID string
	Token  string

	mu      sync.Mutex
	balance float64
	seq     int64
}

func NewHandlers(store storage.OrderStore, pub EventPublisher, log *zap.SugaredLogger, userID string, token string) *Handlers {
	return &Handlers{
		Store:   store,
		Pub:     pub,
		Log:     log,
		UserID:  userID,
		Token:   token,
		balance: 1000,
	}
}

func ServerRouter(h *Handlers, log *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Get(
		"/orders/{id}",
		logger.WithLogging(http.HandlerFunc(h.GetOrder), log),
	)
	r.Post(
		"/orders",
		logger.WithLogging(http.HandlerFunc(h.CreateOrder), log),
	)
	r.Post(
		"/orders/{id}/cancel",
		logger.WithLogging(http.HandlerFunc(h.CancelOrder), log),
	)
	r.Post(
		"/orders/{id}/refund",
		logger.WithLogging(http.HandlerFunc(h.RefundOrder), log),
	)
	r.Put(
		"/orders/{id}/status",
		logger.WithLogging(http.HandlerFunc(h.SetStatus), log),
	)
	return compress.GzipHandle(r, log)
}

func (h *Handlers) checkAuth(request *http.Request) *customerrors.CustomError {
	auth := request.Header.Get("Authorization")
	token := strings.TrimPrefix(auth, "Bearer ")
	if token == "" || auth == token {
		return &customerrors.CustomError{
			Message: "Bearer token is required",
			Status:  http.StatusUnauthorized,
		}
	}
	if h.Token != "" && token != h.Token {
		return &customerrors.CustomError{
			Message: "Token is not valid",
			Status:  http.StatusUnauthorized,
		}
	}
	return nil
}

func (h *Handlers) GetOrder(w http.ResponseWriter, request *http.Request) {
	if cErr := h.checkAuth(request); cErr != nil {
		cErr.ReportError(w)
		return
	}
	id := chi.URLParam(request, "id")
	ord, cErr := h.Store.GetOrderByID(request.Context(), id)
	if cErr != nil {
		cErr.ReportError(w)
		return
	}
	data, err := json.MarshalIndent(ord, "", "    ")
	if err != nil {
		cErr = &customerrors.CustomError{
			Message: err.Error(),
			Status:  http.StatusInternalServerError,
		}
		cErr.ReportError(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *Handlers) CreateOrder(w http.ResponseWriter, request *http.Request) {
	if cErr := h.checkAuth(request); cErr != nil {
		cErr.ReportError(w)
		return
	}
	var req client.CheckoutRequest
	err := json.NewDecoder(request.Body).Decode(&req)
	if err != nil {
		cErr := &customerrors.CustomError{
			Message: "Problem with decoding of checkout body: " + err.Error(),
			Status:  http.StatusBadRequest,
		}
		cErr.ReportError(w)
		return
	}
	h.mu.Lock()
	h.seq += 1
	id := fmt.Sprintf("%d-%d", time.Now().Unix(), h.seq)
	h.balance -= req.TotalPrice
	balance := h.balance
	h.mu.Unlock()
	ord := order.NewOrder()
	ord.OrderID = id
	ord.Status = order.StatusNew
	ord.Type = req.Type
	ord.Code = id[len(id)-4:]
	ord.TotalPrice = req.TotalPrice
	ord.Items = req.Items
	ord.LocalID = req.LocalID
	ord.UserID = h.UserID
	err = h.Store.AddOrder(request.Context(), &ord)
	if err != nil {
		cErr := &customerrors.CustomError{
			Message: err.Error(),
			Status:  http.StatusInternalServerError,
		}
		cErr.ReportError(w)
		return
	}
	resp := client.CheckoutResponse{
		Order: ord,
		User:  user.User{UserID: h.UserID, Balance: balance},
	}
	data, err := json.MarshalIndent(resp, "", "    ")
	if err != nil {
		cErr := &customerrors.CustomError{
			Message: err.Error(),
			Status:  http.StatusInternalServerError,
		}
		cErr.ReportError(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(data)
}

func (h *Handlers) CancelOrder(w http.ResponseWriter, request *http.Request) {
	if cErr := h.checkAuth(request); cErr != nil {
		cErr.ReportError(w)
		return
	}
	id := chi.URLParam(request, "id")
	ord, cErr := h.Store.GetOrderByID(request.Context(), id)
	if cErr != nil {
		cErr.ReportError(w)
		return
	}
	if ord.Status.Terminal() {
		cErr = &customerrors.CustomError{
			Message: fmt.Sprintf("Order '%s' is finished already", id),
			Status:  http.StatusConflict,
		}
		cErr.ReportError(w)
		return
	}
	h.mutateStatus(w, request, id, order.StatusRejected)
}

func (h *Handlers) RefundOrder(w http.ResponseWriter, request *http.Request) {
	if cErr := h.checkAuth(request); cErr != nil {
		cErr.ReportError(w)
		return
	}
	id := chi.URLParam(request, "id")
	ord, cErr := h.Store.GetOrderByID(request.Context(), id)
	if cErr != nil {
		cErr.ReportError(w)
		return
	}
	if !ord.Status.Terminal() {
		cErr = &customerrors.CustomError{
			Message: fmt.Sprintf("Order '%s' is not finished yet", id),
			Status:  http.StatusConflict,
		}
		cErr.ReportError(w)
		return
	}
	h.mu.Lock()
	h.balance += ord.TotalPrice
	h.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

type statusBody struct {
	Status order.Status `json:"status"`
}

// SetStatus drives the lifecycle from dev tooling, it has no counterpart in
// the real backend.
func (h *Handlers) SetStatus(w http.ResponseWriter, request *http.Request) {
	if cErr := h.checkAuth(request); cErr != nil {
		cErr.ReportError(w)
		return
	}
	id := chi.URLParam(request, "id")
	var body statusBody
	err := json.NewDecoder(request.Body).Decode(&body)
	if err != nil || !body.Status.Valid() {
		cErr := &customerrors.CustomError{
			Message: "Status is not valid",
			Status:  http.StatusBadRequest,
		}
		cErr.ReportError(w)
		return
	}
	h.mutateStatus(w, request, id, body.Status)
}

func (h *Handlers) mutateStatus(w http.ResponseWriter, request *http.Request, id string, status order.Status) {
	ord, cErr := h.Store.UpdateStatus(request.Context(), id, status)
	if cErr != nil {
		cErr.ReportError(w)
		return
	}
	if h.Pub != nil {
		err := h.Pub.OrderChanged(ord.UserID, ord.OrderID)
		if err != nil {
			h.Log.Infof("Problem with publishing of change hint for '%s': %s\n", id, err.Error())
		}
	}
	w.WriteHeader(http.StatusOK)
}

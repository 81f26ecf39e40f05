package cache

import (
	"encoding/json"
	"time"

	"github.com/avdonin/foodorders/internal/storage/order"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

var LRUCache *expirable.LRU[string, []byte]

// InitCache sets up the read cache for fetched order records. Reconciliation
// always fetches fresh and then refreshes the entry here, so the cache only
// ever serves read paths like a detail screen reopening an order.
func InitCache(size int, limitSecs int, log *zap.SugaredLogger) {
	LRUCache = expirable.NewLRU[string, []byte](size, nil, time.Second*time.Duration(limitSecs))
	log.Infof("LRU cache created!")
}

func Put(ord *order.Order) {
	if LRUCache == nil || ord == nil {
		return
	}
	data, err := json.Marshal(ord)
	if err != nil {
		return
	}
	LRUCache.Add(ord.OrderID, data)
}

func Get(orderID string) (*order.Order, bool) {
	if LRUCache == nil {
		return nil, false
	}
	data, ok := LRUCache.Get(orderID)
	if !ok {
		return nil, false
	}
	ord := order.NewOrder()
	err := json.Unmarshal(data, &ord)
	if err != nil {
		LRUCache.Remove(orderID)
		return nil, false
	}
	return &ord, true
}

func Drop(orderID string) {
	if LRUCache == nil {
		return
	}
	LRUCache.Remove(orderID)
}

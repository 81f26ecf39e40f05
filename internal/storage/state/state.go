package state

import (
	"sync"

	"github.com/avdonin/foodorders/internal/storage/order"
)

// State holds the orders the user is tracking plus the order shown on the
// detail screen. All writes go through its methods, one commit at a time,
// so two in-flight fetches for the same order serialize here and the last
// one to commit wins.
type State struct {
	mu        sync.Mutex
	active    []order.Order
	current   *order.Order
	listeners []func()
}

func NewState() *State {
	return &State{
		active: make([]order.Order, 0),
	}
}

// Listen registers f to be called after every committed change. Screens use
// it to re-render their snapshots.
func (s *State) Listen(f func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, f)
	s.mu.Unlock()
}

func (s *State) notify() {
	s.mu.Lock()
	ls := make([]func(), len(s.listeners))
	copy(ls, s.listeners)
	s.mu.Unlock()
	for _, f := range ls {
		f()
	}
}

// SetActive replaces the whole active set, e.g. after an initial pull.
func (s *State) SetActive(orders []order.Order) {
	s.mu.Lock()
	s.active = make([]order.Order, len(orders))
	copy(s.active, orders)
	s.mu.Unlock()
	s.notify()
}

// AddActive inserts ord into the active set, replacing any entry with the
// same id. This is the only way new orders enter the set.
func (s *State) AddActive(ord order.Order) {
	s.mu.Lock()
	replaced := false
	for i := range s.active {
		if s.active[i].OrderID == ord.OrderID {
			s.active[i] = ord
			replaced = true
			break
		}
	}
	if !replaced {
		s.active = append(s.active, ord)
	}
	s.mu.Unlock()
	s.notify()
}

// PatchStatus overwrites the status of the entry with the given id, leaving
// every other field untouched. Unknown ids are ignored.
func (s *State) PatchStatus(orderID string, status order.Status) bool {
	s.mu.Lock()
	found := false
	for i := range s.active {
		if s.active[i].OrderID == orderID {
			s.active[i].Status = status
			found = true
			break
		}
	}
	s.mu.Unlock()
	if found {
		s.notify()
	}
	return found
}

// Complete commits a terminal transition in one step: the order leaves the
// active set and becomes the current order. Returns false if the id was not
// in the set, which is how duplicate terminal events are recognized.
func (s *State) Complete(ord *order.Order) bool {
	s.mu.Lock()
	idx := -1
	for i := range s.active {
		if s.active[i].OrderID == ord.OrderID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return false
	}
	s.active = append(s.active[:idx], s.active[idx+1:]...)
	cp := *ord
	s.current = &cp
	s.mu.Unlock()
	s.notify()
	return true
}

func (s *State) Active(orderID string) (order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.active {
		if s.active[i].OrderID == orderID {
			return s.active[i], true
		}
	}
	return order.Order{}, false
}

func (s *State) Snapshot() []order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]order.Order, len(s.active))
	copy(out, s.active)
	return out
}

func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// Current returns a copy of the current order, nil when nothing is shown.
func (s *State) Current() *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// SetCurrent overwrites the current order pointer. Detail screens call it
// when the user opens an order directly.
func (s *State) SetCurrent(ord *order.Order) {
	s.mu.Lock()
	if ord == nil {
		s.current = nil
	} else {
		cp := *ord
		s.current = &cp
	}
	s.mu.Unlock()
	s.notify()
}

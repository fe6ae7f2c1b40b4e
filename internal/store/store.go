// Package store keeps the in-memory order registry. Orders live only for
// the lifetime of the process; the durable record is the order ledger.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"maitred/internal/models"
)

// ErrOrderNotFound is returned for identifiers that were never issued.
var ErrOrderNotFound = errors.New("order not found")

// InvalidTransitionError reports a status change the order state machine
// does not permit.
type InvalidTransitionError struct {
	From models.Status
	To   models.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %q -> %q", e.From, e.To)
}

// Store is the sole owner of all order records. Identifiers come from an
// atomically incremented sequence, so concurrent creates can never collide;
// identifiers are never reused.
type Store struct {
	mu     sync.RWMutex
	orders map[string]models.Order
	seq    atomic.Uint64
}

// New creates an empty order store.
func New() *Store {
	return &Store{orders: make(map[string]models.Order)}
}

// NextIdentifier allocates the next order identifier, formatted ORD-NNNNN.
func (s *Store) NextIdentifier() string {
	return fmt.Sprintf("ORD-%05d", s.seq.Add(1))
}

// Create registers a new order. The order must carry an identifier from
// NextIdentifier and must not already exist.
func (s *Store) Create(order models.Order) error {
	if order.ID == "" {
		return fmt.Errorf("order has no identifier")
	}
	if !order.Status.Valid() {
		return fmt.Errorf("order %s has unknown status %q", order.ID, order.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return fmt.Errorf("order %s already exists", order.ID)
	}
	s.orders[order.ID] = order.Clone()
	return nil
}

// Get returns a copy of an order, or ErrOrderNotFound.
func (s *Store) Get(id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	return order.Clone(), nil
}

// SetStatus transitions an order to a new status. Transitions outside the
// status machine are rejected with an InvalidTransitionError.
func (s *Store) SetStatus(id string, next models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	if !order.Status.CanTransitionTo(next) {
		return &InvalidTransitionError{From: order.Status, To: next}
	}
	order.Status = next
	s.orders[id] = order
	return nil
}

// List returns copies of all orders ordered by identifier.
func (s *Store) List() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, order.Clone())
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders
}

// Count returns the number of registered orders.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

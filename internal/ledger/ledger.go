// Package ledger holds the session-scoped, append-only table of recorded sales.
package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrUnknownProduct  = errors.New("unknown product")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidDate     = errors.New("invalid sale date")
)

// Ledger is an append-only table of sale events. It is safe for concurrent use.
type Ledger struct {
	mu     sync.RWMutex
	events []domain.SaleEvent
	now    func() time.Time
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{now: time.Now}
}

// Add validates in and appends it as a new sale event.
func (l *Ledger) Add(in domain.SaleInput) (domain.SaleEvent, error) {
	if !in.Product.Valid() {
		return domain.SaleEvent{}, fmt.Errorf("%w: %q", ErrUnknownProduct, in.Product)
	}
	if in.Quantity < 1 {
		return domain.SaleEvent{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, in.Quantity)
	}
	if in.Date.IsZero() {
		return domain.SaleEvent{}, ErrInvalidDate
	}

	// Canonicalise the name so "milk" and "Milk" aggregate together.
	product, _ := domain.ParseProduct(string(in.Product))

	event := domain.SaleEvent{
		ID:         uuid.New(),
		Date:       domain.CalendarDate(in.Date),
		Product:    product,
		Quantity:   in.Quantity,
		RecordedAt: l.now().UTC(),
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()

	return event, nil
}

// Snapshot returns a copy of every event in insertion order.
func (l *Ledger) Snapshot() []domain.SaleEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.SaleEvent, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of recorded events.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// Products returns every product with at least one event, in order of first appearance.
func (l *Ledger) Products() []domain.Product {
	return ProductsOf(l.Snapshot())
}

// ProductsOf lists the distinct products of events in order of first appearance.
func ProductsOf(events []domain.SaleEvent) []domain.Product {
	seen := make(map[domain.Product]struct{})
	var products []domain.Product
	for _, e := range events {
		if _, ok := seen[e.Product]; ok {
			continue
		}
		seen[e.Product] = struct{}{}
		products = append(products, e.Product)
	}
	return products
}

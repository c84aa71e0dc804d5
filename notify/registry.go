package notify

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateCode means a business type with the same code was already
// registered.
var ErrDuplicateCode = errors.New("business type code already registered")

// Registry holds registered business types keyed by code.
type Registry struct {
	mu    sync.RWMutex
	types map[string]BusinessType
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: map[string]BusinessType{}}
}

// Register validates and stores a business type. Registering a code twice
// fails with ErrDuplicateCode.
func (r *Registry) Register(bt BusinessType) error {
	if err := bt.Validate(); err != nil {
		return fmt.Errorf("invalid business type %q: %w", bt.Code, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.types[bt.Code]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCode, bt.Code)
	}

	r.types[bt.Code] = bt
	r.order = append(r.order, bt.Code)
	return nil
}

// Get returns the business type registered under code.
func (r *Registry) Get(code string) (BusinessType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bt, ok := r.types[code]
	return bt, ok
}

// All returns every registered business type in registration order.
func (r *Registry) All() []BusinessType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]BusinessType, 0, len(r.order))
	for _, code := range r.order {
		all = append(all, r.types[code])
	}
	return all
}

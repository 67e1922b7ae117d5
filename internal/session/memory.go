package session

import (
	"context"
	"sync"

	"github.com/rumibeauty/storefront/internal/domain"
)

// MemoryStore implements Store in process memory. It backs tests and
// single-instance deployments without Redis.
type MemoryStore struct {
	mu        sync.Mutex
	carts     map[string]domain.Cart
	purchases map[string]map[string]bool
	views     map[string]domain.ViewState
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts:     make(map[string]domain.Cart),
		purchases: make(map[string]map[string]bool),
		views:     make(map[string]domain.ViewState),
	}
}

// Cart returns the session's cart, or an empty cart if none exists.
func (s *MemoryStore) Cart(ctx context.Context, sessionID string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return domain.Cart{SessionID: sessionID, Lines: []domain.CartLine{}}, nil
	}
	cart.Lines = append([]domain.CartLine{}, cart.Lines...)
	return cart, nil
}

// SaveCart persists the session's cart.
func (s *MemoryStore) SaveCart(ctx context.Context, cart domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cart
	stored.Lines = append([]domain.CartLine{}, cart.Lines...)
	s.carts[cart.SessionID] = stored
	return nil
}

// ClearCart removes the session's cart.
func (s *MemoryStore) ClearCart(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}

// MarkPurchased adds product IDs to the session's purchase ledger.
func (s *MemoryStore) MarkPurchased(ctx context.Context, sessionID string, productIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.purchases[sessionID]
	if set == nil {
		set = make(map[string]bool)
		s.purchases[sessionID] = set
	}
	for _, id := range productIDs {
		set[id] = true
	}
	return nil
}

// IsPurchased reports whether the session has purchased the product.
func (s *MemoryStore) IsPurchased(ctx context.Context, sessionID, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.purchases[sessionID][productID], nil
}

// PurchasedIDs returns every product ID in the session's purchase ledger.
func (s *MemoryStore) PurchasedIDs(ctx context.Context, sessionID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.purchases[sessionID]))
	for id := range s.purchases[sessionID] {
		ids = append(ids, id)
	}
	return ids, nil
}

// ViewState returns the session's navigation state, or the initial state if
// none exists.
func (s *MemoryStore) ViewState(ctx context.Context, sessionID string) (domain.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.views[sessionID]
	if !ok {
		return domain.NewViewState(), nil
	}
	return state, nil
}

// SaveViewState persists the session's navigation state.
func (s *MemoryStore) SaveViewState(ctx context.Context, sessionID string, state domain.ViewState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.views[sessionID] = state
	return nil
}

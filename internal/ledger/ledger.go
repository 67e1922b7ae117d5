// Package ledger tracks which products a session has purchased. The ledger
// exists to mark reviews as verified; it is session-scoped and is never
// reconciled against a payment system.
package ledger

import (
	"context"

	"github.com/rumibeauty/storefront/internal/session"
)

// Ledger provides the purchase ledger operations over the session store.
type Ledger struct {
	store session.Store
}

// New creates a ledger over the given session store.
func New(store session.Store) *Ledger {
	return &Ledger{store: store}
}

// MarkPurchased adds product IDs to the session's ledger.
func (l *Ledger) MarkPurchased(ctx context.Context, sessionID string, productIDs ...string) error {
	return l.store.MarkPurchased(ctx, sessionID, productIDs...)
}

// IsPurchased reports whether the session has purchased the product.
func (l *Ledger) IsPurchased(ctx context.Context, sessionID, productID string) (bool, error) {
	return l.store.IsPurchased(ctx, sessionID, productID)
}

// All returns every product ID in the session's ledger.
func (l *Ledger) All(ctx context.Context, sessionID string) ([]string, error) {
	return l.store.PurchasedIDs(ctx, sessionID)
}

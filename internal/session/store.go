package session

import (
	"context"

	"github.com/rumibeauty/storefront/internal/domain"
)

// Store holds the per-session storefront state: the cart, the purchase
// ledger and the navigation state. Missing sessions read as empty state,
// never as an error.
type Store interface {
	// Cart returns the session's cart, or an empty cart if none exists.
	Cart(ctx context.Context, sessionID string) (domain.Cart, error)

	// SaveCart persists the session's cart.
	SaveCart(ctx context.Context, cart domain.Cart) error

	// ClearCart removes the session's cart.
	ClearCart(ctx context.Context, sessionID string) error

	// MarkPurchased adds product IDs to the session's purchase ledger.
	MarkPurchased(ctx context.Context, sessionID string, productIDs ...string) error

	// IsPurchased reports whether the session has purchased the product.
	IsPurchased(ctx context.Context, sessionID, productID string) (bool, error)

	// PurchasedIDs returns every product ID in the session's purchase ledger.
	PurchasedIDs(ctx context.Context, sessionID string) ([]string, error)

	// ViewState returns the session's navigation state, or the initial
	// state if none exists.
	ViewState(ctx context.Context, sessionID string) (domain.ViewState, error)

	// SaveViewState persists the session's navigation state.
	SaveViewState(ctx context.Context, sessionID string, state domain.ViewState) error
}

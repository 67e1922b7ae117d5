package cart

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/rumibeauty/storefront/pkg/errors"

	"github.com/rumibeauty/storefront/internal/domain"
	"github.com/rumibeauty/storefront/internal/session"
)

// CheckoutMessage is the confirmation shown after a successful checkout.
const CheckoutMessage = "Thank you for your purchase! You can now leave verified reviews for these items."

// Catalog resolves products for new cart lines.
type Catalog interface {
	Get(id string) (domain.Product, error)
}

// Events publishes cart domain events.
type Events interface {
	PublishCartUpdated(ctx context.Context, cart *domain.Cart) error
	PublishCheckoutCompleted(ctx context.Context, sessionID string, productIDs []string, total int64) error
}

// Service implements the per-session cart operations.
type Service struct {
	store   session.Store
	catalog Catalog
	events  Events
	logger  *slog.Logger
}

// NewService creates a new cart service.
func NewService(store session.Store, catalog Catalog, events Events, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		events:  events,
		logger:  logger,
	}
}

// Snapshot is the cart state returned to clients after every cart operation.
type Snapshot struct {
	Cart      domain.Cart `json:"cart"`
	Total     int64       `json:"total"`
	ItemCount int         `json:"item_count"`
	CartOpen  bool        `json:"cart_open"`
}

// CheckoutResult reports the outcome of a checkout.
type CheckoutResult struct {
	PurchasedProductIDs []string `json:"purchased_product_ids"`
	Message             string   `json:"message"`
	CartOpen            bool     `json:"cart_open"`
}

func snapshot(cart domain.Cart, open bool) Snapshot {
	return Snapshot{
		Cart:      cart,
		Total:     cart.Total(),
		ItemCount: cart.ItemCount(),
		CartOpen:  open,
	}
}

// Get returns the session's current cart.
func (s *Service) Get(ctx context.Context, sessionID string) (Snapshot, error) {
	cart, err := s.store.Cart(ctx, sessionID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load cart: %w", err)
	}
	return snapshot(cart, false), nil
}

// Add puts one unit of a product in the cart. The line snapshots the product
// as it exists in the catalog right now; adding a product already in the cart
// bumps its quantity instead. The cart panel opens.
func (s *Service) Add(ctx context.Context, sessionID, productID string) (Snapshot, error) {
	product, err := s.catalog.Get(productID)
	if err != nil {
		return Snapshot{}, err
	}

	cart, err := s.store.Cart(ctx, sessionID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load cart: %w", err)
	}

	if idx := cart.FindLineIndex(productID); idx >= 0 {
		cart.Lines[idx].Quantity++
	} else {
		cart.Lines = append(cart.Lines, domain.CartLine{Product: product, Quantity: 1})
	}

	if err := s.save(ctx, cart); err != nil {
		return Snapshot{}, err
	}

	s.logger.InfoContext(ctx, "product added to cart",
		slog.String("product_id", productID),
		slog.Int("items", cart.ItemCount()),
	)
	return snapshot(cart, true), nil
}

// UpdateQuantity applies a signed delta to a line's quantity. The quantity
// never drops below one; removal is explicit via Remove.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, delta int) (Snapshot, error) {
	cart, err := s.store.Cart(ctx, sessionID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load cart: %w", err)
	}

	idx := cart.FindLineIndex(productID)
	if idx < 0 {
		return Snapshot{}, apperrors.NotFound("cart line", productID)
	}

	qty := cart.Lines[idx].Quantity + delta
	if qty < 1 {
		qty = 1
	}
	cart.Lines[idx].Quantity = qty

	if err := s.save(ctx, cart); err != nil {
		return Snapshot{}, err
	}
	return snapshot(cart, true), nil
}

// Remove deletes a line from the cart.
func (s *Service) Remove(ctx context.Context, sessionID, productID string) (Snapshot, error) {
	cart, err := s.store.Cart(ctx, sessionID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load cart: %w", err)
	}

	idx := cart.FindLineIndex(productID)
	if idx < 0 {
		return Snapshot{}, apperrors.NotFound("cart line", productID)
	}
	cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)

	if err := s.save(ctx, cart); err != nil {
		return Snapshot{}, err
	}
	return snapshot(cart, true), nil
}

// Checkout records the cart's products in the session's purchase ledger,
// empties the cart and closes the panel. There is no payment step; the
// ledger exists to unlock verified reviews.
func (s *Service) Checkout(ctx context.Context, sessionID string) (CheckoutResult, error) {
	cart, err := s.store.Cart(ctx, sessionID)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("load cart: %w", err)
	}
	if len(cart.Lines) == 0 {
		return CheckoutResult{}, apperrors.InvalidInput("cart is empty")
	}

	ids := cart.ProductIDs()
	total := cart.Total()

	if err := s.store.MarkPurchased(ctx, sessionID, ids...); err != nil {
		return CheckoutResult{}, fmt.Errorf("record purchases: %w", err)
	}
	if err := s.store.ClearCart(ctx, sessionID); err != nil {
		return CheckoutResult{}, fmt.Errorf("clear cart: %w", err)
	}

	if err := s.events.PublishCheckoutCompleted(ctx, sessionID, ids, total); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish checkout.completed event",
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "checkout completed",
		slog.Int("products", len(ids)),
		slog.Int64("total", total),
	)

	return CheckoutResult{
		PurchasedProductIDs: ids,
		Message:             CheckoutMessage,
		CartOpen:            false,
	}, nil
}

func (s *Service) save(ctx context.Context, cart domain.Cart) error {
	if err := s.store.SaveCart(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	if err := s.events.PublishCartUpdated(ctx, &cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("error", err.Error()),
		)
	}
	return nil
}

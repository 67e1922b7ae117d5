package cart

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/rumibeauty/storefront/pkg/errors"

	"github.com/rumibeauty/storefront/internal/domain"
	"github.com/rumibeauty/storefront/internal/event"
	"github.com/rumibeauty/storefront/internal/session"
)

// ============================================================================
// Test Fixtures
// ============================================================================

type fakeCatalog struct {
	products map[string]domain.Product
}

func (c *fakeCatalog) Get(id string) (domain.Product, error) {
	if p, ok := c.products[id]; ok {
		return p, nil
	}
	return domain.Product{}, apperrors.NotFound("product", id)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService() (*Service, *fakeCatalog, *session.MemoryStore) {
	catalog := &fakeCatalog{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "Velvet Rose Matte Lipstick", Price: 3950},
		"p2": {ID: "p2", Name: "Luminous Silk Foundation", Price: 12500},
	}}
	store := session.NewMemoryStore()
	return NewService(store, catalog, event.Nop{}, newTestLogger()), catalog, store
}

// ============================================================================
// Add Tests
// ============================================================================

func TestAdd_NewLineOpensCart(t *testing.T) {
	svc, _, _ := newTestService()

	snap, err := svc.Add(context.Background(), "sess-1", "p1")
	require.NoError(t, err)

	require.Len(t, snap.Cart.Lines, 1)
	assert.Equal(t, 1, snap.Cart.Lines[0].Quantity)
	assert.Equal(t, int64(3950), snap.Total)
	assert.Equal(t, 1, snap.ItemCount)
	assert.True(t, snap.CartOpen)
}

func TestAdd_DuplicateBumpsQuantity(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Add(context.Background(), "sess-1", "p1")
	require.NoError(t, err)
	snap, err := svc.Add(context.Background(), "sess-1", "p1")
	require.NoError(t, err)

	require.Len(t, snap.Cart.Lines, 1)
	assert.Equal(t, 2, snap.Cart.Lines[0].Quantity)
	assert.Equal(t, 2, snap.ItemCount)
}

func TestAdd_UnknownProductReturnsNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Add(context.Background(), "sess-1", "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAdd_LineSnapshotsProductAtAddTime(t *testing.T) {
	svc, catalog, _ := newTestService()

	_, err := svc.Add(context.Background(), "sess-1", "p1")
	require.NoError(t, err)

	// A later catalog edit must not change the line already in the cart.
	edited := catalog.products["p1"]
	edited.Price = 9999
	catalog.products["p1"] = edited

	snap, err := svc.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3950), snap.Cart.Lines[0].Product.Price)
}

// ============================================================================
// UpdateQuantity Tests
// ============================================================================

func TestUpdateQuantity_AppliesDelta(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Add(context.Background(), "sess-1", "p1")
	require.NoError(t, err)

	snap, err := svc.UpdateQuantity(context.Background(), "sess-1", "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Cart.Lines[0].Quantity)
}

func TestUpdateQuantity_FloorIsOne(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Add(context.Background(), "sess-1", "p1")
	require.NoError(t, err)

	snap, err := svc.UpdateQuantity(context.Background(), "sess-1", "p1", -5)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Cart.Lines[0].Quantity)
}

func TestUpdateQuantity_MissingLineReturnsNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateQuantity(context.Background(), "sess-1", "p1", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ============================================================================
// Remove Tests
// ============================================================================

func TestRemove_DeletesLine(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Add(context.Background(), "sess-1", "p1")
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), "sess-1", "p2")
	require.NoError(t, err)

	snap, err := svc.Remove(context.Background(), "sess-1", "p1")
	require.NoError(t, err)

	require.Len(t, snap.Cart.Lines, 1)
	assert.Equal(t, "p2", snap.Cart.Lines[0].Product.ID)
}

func TestRemove_MissingLineReturnsNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Remove(context.Background(), "sess-1", "p1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ============================================================================
// Checkout Tests
// ============================================================================

func TestCheckout_RecordsPurchasesAndEmptiesCart(t *testing.T) {
	svc, _, store := newTestService()
	_, err := svc.Add(context.Background(), "sess-1", "p1")
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), "sess-1", "p2")
	require.NoError(t, err)

	result, err := svc.Checkout(context.Background(), "sess-1")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"p1", "p2"}, result.PurchasedProductIDs)
	assert.Equal(t, CheckoutMessage, result.Message)
	assert.False(t, result.CartOpen)

	snap, err := svc.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, snap.Cart.Lines)

	purchased, err := store.IsPurchased(context.Background(), "sess-1", "p1")
	require.NoError(t, err)
	assert.True(t, purchased)
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Checkout(context.Background(), "sess-1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCheckout_PurchasesAccumulateAcrossCheckouts(t *testing.T) {
	svc, _, store := newTestService()

	_, err := svc.Add(context.Background(), "sess-1", "p1")
	require.NoError(t, err)
	_, err = svc.Checkout(context.Background(), "sess-1")
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), "sess-1", "p2")
	require.NoError(t, err)
	_, err = svc.Checkout(context.Background(), "sess-1")
	require.NoError(t, err)

	ids, err := store.PurchasedIDs(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, ids)
}

// ============================================================================
// Session Isolation Tests
// ============================================================================

func TestCarts_IsolatedPerSession(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Add(context.Background(), "sess-1", "p1")
	require.NoError(t, err)

	snap, err := svc.Get(context.Background(), "sess-2")
	require.NoError(t, err)
	assert.Empty(t, snap.Cart.Lines)
}

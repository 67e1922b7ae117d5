package event

import (
	"context"

	"github.com/rumibeauty/storefront/internal/domain"
)

// Nop discards every event. It stands in for the Kafka producer in local
// development and tests.
type Nop struct{}

func (Nop) PublishProductCreated(ctx context.Context, product *domain.Product) error { return nil }

func (Nop) PublishProductUpdated(ctx context.Context, product *domain.Product) error { return nil }

func (Nop) PublishProductDeleted(ctx context.Context, productID string) error { return nil }

func (Nop) PublishReviewCreated(ctx context.Context, productID string, review *domain.Review) error {
	return nil
}

func (Nop) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error { return nil }

func (Nop) PublishCheckoutCompleted(ctx context.Context, sessionID string, productIDs []string, total int64) error {
	return nil
}

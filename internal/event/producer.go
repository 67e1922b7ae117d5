package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/rumibeauty/storefront/pkg/kafka"

	"github.com/rumibeauty/storefront/internal/domain"
)

// Kafka topic constants for storefront domain events.
const (
	TopicProductCreated    = "storefront.product.created"
	TopicProductUpdated    = "storefront.product.updated"
	TopicProductDeleted    = "storefront.product.deleted"
	TopicReviewCreated     = "storefront.review.created"
	TopicCartUpdated       = "storefront.cart.updated"
	TopicCheckoutCompleted = "storefront.checkout.completed"
)

// Aggregate type constants.
const (
	AggregateTypeProduct = "product"
	AggregateTypeCart    = "cart"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// ProductData is the payload for product lifecycle events.
type ProductData struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Subcategory   string `json:"subcategory"`
	Price         int64  `json:"price"`
	OriginalPrice *int64 `json:"original_price,omitempty"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID string `json:"id"`
}

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ProductID string `json:"product_id"`
	ReviewID  string `json:"review_id"`
	Rating    int    `json:"rating"`
	Verified  bool   `json:"verified"`
}

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID string `json:"session_id"`
	Items     int    `json:"items"`
	Total     int64  `json:"total"`
}

// CheckoutCompletedData is the payload for a checkout.completed event.
type CheckoutCompletedData struct {
	SessionID  string   `json:"session_id"`
	ProductIDs []string `json:"product_ids"`
	Total      int64    `json:"total"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func productData(product *domain.Product) ProductData {
	return ProductData{
		ID:            product.ID,
		Name:          product.Name,
		Category:      product.Category,
		Subcategory:   product.Subcategory,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
	}
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	event, err := pkgkafka.NewEvent(TopicProductCreated, product.ID, AggregateTypeProduct, SourceStorefront, productData(product))
	if err != nil {
		return fmt.Errorf("create product.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductCreated, event); err != nil {
		return fmt.Errorf("publish product.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.created event",
		slog.String("product_id", product.ID),
	)

	return nil
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	event, err := pkgkafka.NewEvent(TopicProductUpdated, product.ID, AggregateTypeProduct, SourceStorefront, productData(product))
	if err != nil {
		return fmt.Errorf("create product.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductUpdated, event); err != nil {
		return fmt.Errorf("publish product.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.updated event",
		slog.String("product_id", product.ID),
	)

	return nil
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, id string) error {
	event, err := pkgkafka.NewEvent(TopicProductDeleted, id, AggregateTypeProduct, SourceStorefront, ProductDeletedData{ID: id})
	if err != nil {
		return fmt.Errorf("create product.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductDeleted, event); err != nil {
		return fmt.Errorf("publish product.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.deleted event",
		slog.String("product_id", id),
	)

	return nil
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, productID string, review *domain.Review) error {
	data := ReviewCreatedData{
		ProductID: productID,
		ReviewID:  review.ID,
		Rating:    review.Rating,
		Verified:  review.Verified,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, productID, AggregateTypeProduct, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.created event",
		slog.String("product_id", productID),
		slog.String("review_id", review.ID),
	)

	return nil
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		SessionID: cart.SessionID,
		Items:     cart.ItemCount(),
		Total:     cart.Total(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.SessionID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	return nil
}

// PublishCheckoutCompleted publishes a checkout.completed event.
func (p *Producer) PublishCheckoutCompleted(ctx context.Context, sessionID string, productIDs []string, total int64) error {
	data := CheckoutCompletedData{
		SessionID:  sessionID,
		ProductIDs: productIDs,
		Total:      total,
	}

	event, err := pkgkafka.NewEvent(TopicCheckoutCompleted, sessionID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create checkout.completed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutCompleted, event); err != nil {
		return fmt.Errorf("publish checkout.completed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.completed event",
		slog.Int("products", len(productIDs)),
	)

	return nil
}

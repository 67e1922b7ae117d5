package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/rumibeauty/storefront/pkg/errors"

	"github.com/rumibeauty/storefront/internal/domain"
)

var syncFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_sync_failures_total",
		Help: "Total number of remote catalog sync failures, by operation.",
	},
	[]string{"op"},
)

// Gateway is the remote catalog the store syncs against. All writes are
// best-effort: a gateway failure never blocks the local catalog.
type Gateway interface {
	SelectAll(ctx context.Context) ([]RawProduct, error)
	Insert(ctx context.Context, row RawProduct) (RawProduct, error)
	InsertMany(ctx context.Context, rows []RawProduct) ([]RawProduct, error)
	Update(ctx context.Context, row RawProduct) error
	Delete(ctx context.Context, id string) error
}

// Noticer records user-facing notices for the session in ctx.
type Noticer interface {
	Record(ctx context.Context, code, message string)
}

// Events publishes catalog domain events.
type Events interface {
	PublishProductCreated(ctx context.Context, product *domain.Product) error
	PublishProductUpdated(ctx context.Context, product *domain.Product) error
	PublishProductDeleted(ctx context.Context, productID string) error
	PublishReviewCreated(ctx context.Context, productID string, review *domain.Review) error
}

// PurchaseChecker reports whether a session has purchased a product.
type PurchaseChecker interface {
	IsPurchased(ctx context.Context, sessionID, productID string) (bool, error)
}

// Service holds the authoritative in-memory catalog and keeps the remote
// catalog in sync opportunistically.
type Service struct {
	mu       sync.RWMutex
	products []domain.Product

	gateway   Gateway
	notices   Noticer
	events    Events
	purchases PurchaseChecker
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a new catalog service. The catalog is empty until Load
// is called.
func NewService(gateway Gateway, notices Noticer, events Events, purchases PurchaseChecker, logger *slog.Logger) *Service {
	return &Service{
		gateway:   gateway,
		notices:   notices,
		events:    events,
		purchases: purchases,
		logger:    logger,
		now:       time.Now,
	}
}

// Load populates the catalog from the remote. An empty remote is seeded once
// with the default products; any failure falls back to the local defaults so
// the store always opens with a catalog.
func (s *Service) Load(ctx context.Context) {
	rows, err := s.gateway.SelectAll(ctx)
	switch {
	case errors.Is(err, apperrors.ErrRelationMissing):
		s.logger.WarnContext(ctx, "products table missing, serving default catalog; create the table to enable sync",
			slog.String("error", err.Error()),
		)
		s.replace(SeedProducts())
		return
	case err != nil:
		s.logger.ErrorContext(ctx, "failed to load remote catalog, serving default catalog",
			slog.String("error", err.Error()),
		)
		s.replace(SeedProducts())
		return
	case len(rows) == 0:
		s.seedRemote(ctx)
		return
	}

	s.replace(NormalizeAll(rows))
	s.logger.InfoContext(ctx, "catalog loaded", slog.Int("products", len(rows)))
}

// seedRemote performs the one-time bootstrap of an empty remote catalog. The
// rows the remote echoes back become the local state; on failure the local
// defaults are adopted without retry.
func (s *Service) seedRemote(ctx context.Context) {
	inserted, err := s.gateway.InsertMany(ctx, SeedRows())
	if err != nil || len(inserted) == 0 {
		if err != nil {
			s.syncFailed(ctx, "seed", "", err)
		}
		s.replace(SeedProducts())
		return
	}
	s.replace(NormalizeAll(inserted))
	s.logger.InfoContext(ctx, "seeded empty remote catalog", slog.Int("products", len(inserted)))
}

func (s *Service) replace(products []domain.Product) {
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
}

// Add creates a product from an admin draft. The product enters the local
// catalog whether or not the remote write succeeds.
func (s *Service) Add(ctx context.Context, draft domain.ProductDraft) (domain.Product, error) {
	if err := validateDraft(draft); err != nil {
		return domain.Product{}, err
	}

	product := s.fromDraft(draft, fmt.Sprintf("p%d", s.now().UnixMilli()))

	row, err := s.gateway.Insert(ctx, Raw(product))
	if err != nil {
		s.syncFailed(ctx, "insert", product.ID, err)
	} else {
		product = Normalize(row)
	}

	s.mu.Lock()
	s.products = append([]domain.Product{product}, s.products...)
	s.mu.Unlock()

	if err := s.events.PublishProductCreated(ctx, &product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "product created", slog.String("product_id", product.ID))
	return product, nil
}

// BulkAdd creates a batch of products from admin drafts. The whole batch is
// validated before any mutation; a single bad draft rejects the import.
func (s *Service) BulkAdd(ctx context.Context, drafts []domain.ProductDraft) ([]domain.Product, error) {
	if len(drafts) == 0 {
		return nil, apperrors.InvalidInput("import payload must contain at least one product")
	}
	for i, draft := range drafts {
		if err := validateDraft(draft); err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("product %d: %s", i, err.Error()))
		}
	}

	base := s.now().UnixMilli()
	products := make([]domain.Product, len(drafts))
	for i, draft := range drafts {
		products[i] = s.fromDraft(draft, fmt.Sprintf("p%d-%d", base, i))
	}

	inserted, err := s.gateway.InsertMany(ctx, RawAll(products))
	if err != nil {
		s.syncFailed(ctx, "insert_many", "", err)
	} else if len(inserted) == len(products) {
		products = NormalizeAll(inserted)
	}

	s.mu.Lock()
	s.products = append(append([]domain.Product{}, products...), s.products...)
	s.mu.Unlock()

	for i := range products {
		if err := s.events.PublishProductCreated(ctx, &products[i]); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish product.created event",
				slog.String("product_id", products[i].ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "bulk import applied", slog.Int("products", len(products)))
	return products, nil
}

// Update replaces a product by ID. The local replacement happens whether or
// not the remote write succeeds.
func (s *Service) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == "" {
		return domain.Product{}, apperrors.InvalidInput("product id is required")
	}

	product = Normalize(Raw(product))

	s.mu.Lock()
	idx := s.indexOf(product.ID)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Product{}, apperrors.NotFound("product", product.ID)
	}
	s.products[idx] = product
	s.mu.Unlock()

	if err := s.gateway.Update(ctx, Raw(product)); err != nil {
		s.syncFailed(ctx, "update", product.ID, err)
	}

	if err := s.events.PublishProductUpdated(ctx, &product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	return product, nil
}

// Delete removes a product by ID. The local removal happens whether or not
// the remote write succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return apperrors.NotFound("product", id)
	}
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	s.mu.Unlock()

	if err := s.gateway.Delete(ctx, id); err != nil {
		s.syncFailed(ctx, "delete", id, err)
	}

	if err := s.events.PublishProductDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))
	return nil
}

// SubmitReview attaches a verified review to a product. Only sessions that
// have purchased the product may review it; the check runs before any
// mutation.
func (s *Service) SubmitReview(ctx context.Context, sessionID, productID string, input domain.ReviewInput) (domain.Review, error) {
	if input.UserName == "" || input.Comment == "" {
		return domain.Review{}, apperrors.InvalidInput("reviewer name and comment are required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return domain.Review{}, apperrors.InvalidInput("rating must be between 1 and 5")
	}

	purchased, err := s.purchases.IsPurchased(ctx, sessionID, productID)
	if err != nil {
		return domain.Review{}, apperrors.Wrap(err, "check purchase")
	}
	if !purchased {
		return domain.Review{}, apperrors.NotPurchased(productID)
	}

	review := domain.Review{
		ID:       uuid.New().String(),
		UserName: input.UserName,
		Rating:   input.Rating,
		Comment:  input.Comment,
		Date:     s.now().UTC().Format("2006-01-02"),
		Verified: true,
	}

	s.mu.Lock()
	idx := s.indexOf(productID)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Review{}, apperrors.NotFound("product", productID)
	}
	product := s.products[idx]
	product.Reviews = append([]domain.Review{review}, product.Reviews...)
	s.products[idx] = product
	s.mu.Unlock()

	if err := s.gateway.Update(ctx, Raw(product)); err != nil {
		s.syncFailed(ctx, "update", productID, err)
	}

	if err := s.events.PublishReviewCreated(ctx, productID, &review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
	}

	return review, nil
}

// List returns a copy of the catalog in display order (newest first).
func (s *Service) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product{}, s.products...)
}

// Get resolves a product by ID against the current catalog.
func (s *Service) Get(id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.products[idx], nil
	}
	return domain.Product{}, apperrors.NotFound("product", id)
}

// Search returns the products whose name, category or subcategory contains
// the query, case-insensitively. An empty query matches everything.
func (s *Service) Search(query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.Subcategory), q) {
			matches = append(matches, p)
		}
	}
	return matches
}

// FilterByCategory returns the products in the given category. The "All"
// filter returns everything.
func (s *Service) FilterByCategory(category string) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if category == domain.CategoryAll || p.Category == category {
			matches = append(matches, p)
		}
	}
	return matches
}

// BestSellers returns the top n products by sales count.
func (s *Service) BestSellers(n int) []domain.Product {
	products := s.List()
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Sales > products[j].Sales
	})
	if n < len(products) {
		products = products[:n]
	}
	return products
}

// Subcategories returns the distinct subcategories within a category filter,
// in catalog order. The catch-all filter has no subcategory breakdown.
func (s *Service) Subcategories(category string) []string {
	if category == domain.CategoryAll {
		return []string{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	subs := []string{}
	for _, p := range s.products {
		if p.Category != category {
			continue
		}
		if p.Subcategory != "" && !seen[p.Subcategory] {
			seen[p.Subcategory] = true
			subs = append(subs, p.Subcategory)
		}
	}
	return subs
}

// indexOf returns the position of the product with the given ID. Callers must
// hold s.mu.
func (s *Service) indexOf(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) fromDraft(draft domain.ProductDraft, id string) domain.Product {
	return Normalize(RawProduct{
		ID:            id,
		Name:          draft.Name,
		Category:      draft.Category,
		Subcategory:   draft.Subcategory,
		Price:         draft.Price,
		OriginalPrice: draft.OriginalPrice,
		Description:   draft.Description,
		Image:         draft.Image,
		Benefits:      draft.Benefits,
	})
}

func validateDraft(draft domain.ProductDraft) error {
	if draft.Name == "" {
		return apperrors.InvalidInput("product name is required")
	}
	if !domain.IsValidCategory(draft.Category) {
		return apperrors.InvalidInput("category must be one of Lips, Eyes, Face, Skincare")
	}
	if draft.Price <= 0 {
		return apperrors.InvalidInput("price must be positive")
	}
	return nil
}

// syncFailed records a remote sync failure: the operation already succeeded
// locally, so the failure is logged, counted and surfaced as a session notice
// rather than returned to the caller.
func (s *Service) syncFailed(ctx context.Context, op, productID string, err error) {
	syncFailures.WithLabelValues(op).Inc()

	msg := "Saved locally, but syncing with the product database failed."
	if errors.Is(err, apperrors.ErrPermissionDenied) {
		msg = "Saved locally, but the product database rejected the write. Check the table's row-level security policy."
	} else if errors.Is(err, apperrors.ErrRelationMissing) {
		msg = "Saved locally, but the products table does not exist yet. Create it to enable sync."
	}
	s.notices.Record(ctx, "catalog_sync_failed", msg)

	s.logger.WarnContext(ctx, "remote catalog sync failed",
		slog.String("op", op),
		slog.String("product_id", productID),
		slog.String("error", err.Error()),
	)
}

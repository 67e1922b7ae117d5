package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rumibeauty/storefront/pkg/database"
	apperrors "github.com/rumibeauty/storefront/pkg/errors"

	"github.com/rumibeauty/storefront/internal/catalog"
	"github.com/rumibeauty/storefront/internal/domain"
)

// Postgres error codes the storefront distinguishes.
const (
	pgUndefinedTable        = "42P01"
	pgInsufficientPrivilege = "42501"
)

const productColumns = `id, name, category, subcategory, price, original_price, description, image, rating, benefits, sales, reviews`

// PostgresGateway implements catalog.Gateway against a hosted PostgreSQL
// products table.
type PostgresGateway struct {
	pool database.DBTX
}

// NewPostgresGateway creates a new PostgreSQL-backed catalog gateway.
func NewPostgresGateway(pool database.DBTX) *PostgresGateway {
	return &PostgresGateway{pool: pool}
}

// SelectAll retrieves every product row, newest first.
func (g *PostgresGateway) SelectAll(ctx context.Context) ([]catalog.RawProduct, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY id DESC`

	rows, err := g.pool.Query(ctx, query)
	if err != nil {
		return nil, classify(err, "select products")
	}
	defer rows.Close()

	var out []catalog.RawProduct
	for rows.Next() {
		row, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "select products")
	}

	return out, nil
}

// Insert stores a new product row and returns the stored row.
func (g *PostgresGateway) Insert(ctx context.Context, row catalog.RawProduct) (catalog.RawProduct, error) {
	benefitsJSON, reviewsJSON, err := marshalArrays(row)
	if err != nil {
		return catalog.RawProduct{}, err
	}

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + productColumns

	stored, err := scanProduct(g.pool.QueryRow(ctx, query,
		row.ID,
		row.Name,
		row.Category,
		row.Subcategory,
		row.EffectivePrice(),
		row.OriginalPrice,
		row.Description,
		row.Image,
		row.Rating,
		benefitsJSON,
		row.Sales,
		reviewsJSON,
	))
	if err != nil {
		return catalog.RawProduct{}, classify(err, "insert product")
	}

	return stored, nil
}

// InsertMany stores a batch of product rows and returns the stored rows.
// The batch is written row by row; the first failure aborts the rest.
func (g *PostgresGateway) InsertMany(ctx context.Context, rows []catalog.RawProduct) ([]catalog.RawProduct, error) {
	stored := make([]catalog.RawProduct, 0, len(rows))
	for _, row := range rows {
		s, err := g.Insert(ctx, row)
		if err != nil {
			return nil, err
		}
		stored = append(stored, s)
	}
	return stored, nil
}

// Update replaces a product row by ID.
func (g *PostgresGateway) Update(ctx context.Context, row catalog.RawProduct) error {
	benefitsJSON, reviewsJSON, err := marshalArrays(row)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET name = $2, category = $3, subcategory = $4, price = $5, original_price = $6,
		    description = $7, image = $8, rating = $9, benefits = $10, sales = $11, reviews = $12
		WHERE id = $1`

	tag, err := g.pool.Exec(ctx, query,
		row.ID,
		row.Name,
		row.Category,
		row.Subcategory,
		row.EffectivePrice(),
		row.OriginalPrice,
		row.Description,
		row.Image,
		row.Rating,
		benefitsJSON,
		row.Sales,
		reviewsJSON,
	)
	if err != nil {
		return classify(err, "update product")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("product", row.ID)
	}

	return nil
}

// Delete removes a product row by ID.
func (g *PostgresGateway) Delete(ctx context.Context, id string) error {
	tag, err := g.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return classify(err, "delete product")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}

func marshalArrays(row catalog.RawProduct) ([]byte, []byte, error) {
	benefits := row.Benefits
	if benefits == nil {
		benefits = []string{}
	}
	reviews := row.Reviews
	if reviews == nil {
		reviews = []domain.Review{}
	}

	benefitsJSON, err := json.Marshal(benefits)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal benefits: %w", err)
	}
	reviewsJSON, err := json.Marshal(reviews)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal reviews: %w", err)
	}

	return benefitsJSON, reviewsJSON, nil
}

func scanProduct(row pgx.Row) (catalog.RawProduct, error) {
	var (
		p            catalog.RawProduct
		benefitsJSON []byte
		reviewsJSON  []byte
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.Subcategory,
		&p.Price,
		&p.OriginalPrice,
		&p.Description,
		&p.Image,
		&p.Rating,
		&benefitsJSON,
		&p.Sales,
		&reviewsJSON,
	)
	if err != nil {
		return catalog.RawProduct{}, classify(err, "scan product")
	}

	if len(benefitsJSON) > 0 {
		if err := json.Unmarshal(benefitsJSON, &p.Benefits); err != nil {
			return catalog.RawProduct{}, fmt.Errorf("unmarshal benefits: %w", err)
		}
	}
	if len(reviewsJSON) > 0 {
		if err := json.Unmarshal(reviewsJSON, &p.Reviews); err != nil {
			return catalog.RawProduct{}, fmt.Errorf("unmarshal reviews: %w", err)
		}
	}

	return p, nil
}

// classify maps PostgreSQL error codes onto the storefront error taxonomy:
// a missing products table and a policy denial get their own sentinels so
// callers can choose fallback behavior and operator hints.
func classify(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUndefinedTable:
			return apperrors.RelationMissing("products")
		case pgInsufficientPrivilege:
			return apperrors.PermissionDenied("products")
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

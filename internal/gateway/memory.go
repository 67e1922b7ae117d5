package gateway

import (
	"context"
	"sync"

	apperrors "github.com/rumibeauty/storefront/pkg/errors"

	"github.com/rumibeauty/storefront/internal/catalog"
)

// MemoryGateway implements catalog.Gateway in process memory. It backs local
// development and tests; an optional injected error simulates remote failures.
type MemoryGateway struct {
	mu   sync.Mutex
	rows []catalog.RawProduct

	// FailWith, when set, is returned by every operation.
	FailWith error
}

// NewMemoryGateway creates an empty in-memory gateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{}
}

// SelectAll returns a copy of the stored rows.
func (g *MemoryGateway) SelectAll(ctx context.Context) ([]catalog.RawProduct, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailWith != nil {
		return nil, g.FailWith
	}
	return append([]catalog.RawProduct{}, g.rows...), nil
}

// Insert stores a row and echoes it back.
func (g *MemoryGateway) Insert(ctx context.Context, row catalog.RawProduct) (catalog.RawProduct, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailWith != nil {
		return catalog.RawProduct{}, g.FailWith
	}
	g.rows = append([]catalog.RawProduct{row}, g.rows...)
	return row, nil
}

// InsertMany stores a batch of rows and echoes them back.
func (g *MemoryGateway) InsertMany(ctx context.Context, rows []catalog.RawProduct) ([]catalog.RawProduct, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailWith != nil {
		return nil, g.FailWith
	}
	g.rows = append(append([]catalog.RawProduct{}, rows...), g.rows...)
	return append([]catalog.RawProduct{}, rows...), nil
}

// Update replaces a stored row by ID.
func (g *MemoryGateway) Update(ctx context.Context, row catalog.RawProduct) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailWith != nil {
		return g.FailWith
	}
	for i := range g.rows {
		if g.rows[i].ID == row.ID {
			g.rows[i] = row
			return nil
		}
	}
	return apperrors.NotFound("product", row.ID)
}

// Delete removes a stored row by ID.
func (g *MemoryGateway) Delete(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailWith != nil {
		return g.FailWith
	}
	for i := range g.rows {
		if g.rows[i].ID == id {
			g.rows = append(g.rows[:i], g.rows[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("product", id)
}

// Len reports the number of stored rows.
func (g *MemoryGateway) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.rows)
}

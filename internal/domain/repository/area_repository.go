package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// AreaRepository defines access to protected areas and their boundaries.
type AreaRepository interface {
	// GetAll returns every protected area with its full boundary parsed.
	GetAll(ctx context.Context) ([]*domain.ProtectedArea, error)

	// GetByID returns one protected area with boundary and tiers parsed.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProtectedArea, error)

	// UpdateBoundary replaces the area's boundary, derived metrics and
	// simplification tiers in one statement.
	UpdateBoundary(ctx context.Context, area *domain.ProtectedArea) error
}

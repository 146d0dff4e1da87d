package schoolyear

import (
	"context"

	"github.com/flexprice/tuition/internal/types"
)

// Repository defines the interface for school year data access
type Repository interface {
	Create(ctx context.Context, year *SchoolYear) error
	Get(ctx context.Context, id string) (*SchoolYear, error)
	List(ctx context.Context, filter *types.QueryFilter) ([]*SchoolYear, error)
	Update(ctx context.Context, year *SchoolYear) error
	// Delete soft deletes the school year
	Delete(ctx context.Context, id string) error
	// HardDelete removes a school year that is already soft deleted
	HardDelete(ctx context.Context, id string) error
}

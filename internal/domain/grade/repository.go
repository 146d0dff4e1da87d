package grade

import (
	"context"

	"github.com/flexprice/tuition/internal/types"
)

// Repository defines the interface for grade data access
type Repository interface {
	// Create fails with ErrAlreadyExists when a live grade has the same name
	Create(ctx context.Context, grade *Grade) error
	Get(ctx context.Context, id string) (*Grade, error)
	List(ctx context.Context, filter *types.QueryFilter) ([]*Grade, error)
	Update(ctx context.Context, grade *Grade) error
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}

package schoolmonth

import (
	"context"

	"github.com/flexprice/tuition/internal/types"
)

// Repository defines the interface for school month data access
type Repository interface {
	// Create fails with ErrAlreadyExists when the year already has a live month with the same number
	Create(ctx context.Context, month *SchoolMonth) error
	Get(ctx context.Context, id string) (*SchoolMonth, error)
	List(ctx context.Context, filter *types.SchoolMonthFilter) ([]*SchoolMonth, error)
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}

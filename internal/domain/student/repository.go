package student

import (
	"context"

	"github.com/flexprice/tuition/internal/types"
)

// Repository defines the interface for student data access
type Repository interface {
	// Create fails with ErrAlreadyExists when a live student has the same name
	Create(ctx context.Context, student *Student) error
	Get(ctx context.Context, id string) (*Student, error)
	List(ctx context.Context, filter *types.QueryFilter) ([]*Student, error)
	Update(ctx context.Context, student *Student) error
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}

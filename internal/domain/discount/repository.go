package discount

import (
	"context"

	"github.com/flexprice/tuition/internal/types"
)

// Repository defines the interface for discount data access
type Repository interface {
	// Create fails with ErrAlreadyExists when a live discount has the same name
	Create(ctx context.Context, discount *Discount) error
	Get(ctx context.Context, id string) (*Discount, error)
	// GetByIDs returns the live discounts among ids, in no particular order
	GetByIDs(ctx context.Context, ids []string) ([]*Discount, error)
	List(ctx context.Context, filter *types.QueryFilter) ([]*Discount, error)
	Update(ctx context.Context, discount *Discount) error
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}

// StudentDiscountRepository defines the interface for discount associations of students
type StudentDiscountRepository interface {
	Create(ctx context.Context, association *StudentDiscount) error
	Get(ctx context.Context, id string) (*StudentDiscount, error)
	List(ctx context.Context, filter *types.StudentDiscountFilter) ([]*StudentDiscount, error)
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}

package monthlyfee

import (
	"context"

	"github.com/flexprice/tuition/internal/types"
)

// Repository defines the interface for monthly fee data access
type Repository interface {
	// Create fails with ErrAlreadyExists when a live fee has the same description
	Create(ctx context.Context, fee *MonthlyFee) error
	Get(ctx context.Context, id string) (*MonthlyFee, error)
	List(ctx context.Context, filter *types.QueryFilter) ([]*MonthlyFee, error)
	Update(ctx context.Context, fee *MonthlyFee) error
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}

// AssignmentRepository defines the interface for fee to grade assignments
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *FeeOnGrade) error
	Get(ctx context.Context, id string) (*FeeOnGrade, error)
	List(ctx context.Context, filter *types.FeeOnGradeFilter) ([]*FeeOnGrade, error)
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}

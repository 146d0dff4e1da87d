package enrollment

import (
	"context"

	"github.com/flexprice/tuition/internal/types"
)

// Repository defines the interface for student grade enrollments
type Repository interface {
	// Create fails with ErrAlreadyExists when the student is already enrolled in the school year
	Create(ctx context.Context, enrollment *StudentGrade) error
	Get(ctx context.Context, id string) (*StudentGrade, error)
	List(ctx context.Context, filter *types.EnrollmentFilter) ([]*StudentGrade, error)
	// GetByStudentAndYear returns ErrNotFound when the student has no live enrollment in the year
	GetByStudentAndYear(ctx context.Context, studentID, schoolYearID string) (*StudentGrade, error)
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}

package interfaces

import (
	"context"

	"github.com/flexprice/tuition/internal/api/dto"
)

// BillingEngine is the surface the report and transport layers call into.
// Currency values in every response are decimals serialized as strings.
type BillingEngine interface {
	GetEffectiveFee(ctx context.Context, gradeID, schoolMonthID string) (*dto.EffectiveFeeResponse, error)
	GetStudentTotalFee(ctx context.Context, gradeID, studentID, schoolMonthID string) (*dto.StudentTotalFeeResponse, error)
	GetMonthRevenue(ctx context.Context, schoolMonthID string) (*dto.MonthRevenueResponse, error)
	GetStudentDue(ctx context.Context, schoolMonthID, studentID string) (*dto.StudentDueResponse, error)
	GetStudentsInOverdue(ctx context.Context, schoolMonthID string) (*dto.ListStudentsInOverdueResponse, error)
	GetDiscountReport(ctx context.Context, schoolMonthID string) (*dto.DiscountReportResponse, error)
	GetPaymentHistory(ctx context.Context, studentID string, schoolYearID *string) (*dto.PaymentHistoryResponse, error)
}

package types

import (
	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/samber/lo"
)

// DueStatus is the timeliness of a student's payment for a school month
type DueStatus string

const (
	// DueStatusCurrent means the due date has not been reached yet
	DueStatusCurrent DueStatus = "CURRENT"
	// DueStatusDue means the due date passed but the grace period is still running
	DueStatusDue DueStatus = "DUE"
	// DueStatusOverdue means the grace period is over
	DueStatusOverdue DueStatus = "OVERDUE"
)

func (s DueStatus) String() string {
	return string(s)
}

// PaymentType classifies a recorded payment
type PaymentType string

const (
	PaymentTypeFull    PaymentType = "FULL"
	PaymentTypePartial PaymentType = "PARTIAL"
	PaymentTypeOverdue PaymentType = "OVERDUE"
	PaymentTypeRefund  PaymentType = "REFUND"
)

func (t PaymentType) String() string {
	return string(t)
}

func (t PaymentType) Validate() error {
	allowed := []PaymentType{
		PaymentTypeFull,
		PaymentTypePartial,
		PaymentTypeOverdue,
		PaymentTypeRefund,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewErrorf("invalid payment type %q", t).
			WithHint("Payment type must be one of FULL, PARTIAL, OVERDUE or REFUND").
			WithReportableDetails(map[string]any{
				"payment_type": t,
				"allowed":      allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DiscountScope is the granularity a discount is attached to a student with
type DiscountScope string

const (
	// DiscountScopeStudent applies to every school month of the student
	DiscountScopeStudent DiscountScope = "STUDENT"
	// DiscountScopePeriod applies to every month of one school year
	DiscountScopePeriod DiscountScope = "PERIOD"
	// DiscountScopeMonth applies to exactly one school month
	DiscountScopeMonth DiscountScope = "MONTH"
)

func (s DiscountScope) String() string {
	return string(s)
}

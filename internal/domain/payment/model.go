package payment

import (
	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/types"
	"github.com/shopspring/decimal"
)

// Payment is money received from a student for one school month
type Payment struct {
	ID              string            `db:"id" json:"id"`
	StudentID       string            `db:"student_id" json:"student_id"`
	SchoolMonthID   string            `db:"school_month_id" json:"school_month_id"`
	PaymentType     types.PaymentType `db:"payment_type" json:"payment_type"`
	Amount          decimal.Decimal   `db:"amount" json:"amount" swaggertype:"string"`
	PaymentMethodID string            `db:"payment_method_id" json:"payment_method_id"`
	// Reference is set iff the payment method requires a reference id
	Reference *string `db:"reference" json:"reference,omitempty"`
	// Verified is set iff the payment method requires manual verification
	Verified *bool `db:"verified" json:"verified,omitempty"`

	types.BaseModel
}

// CountsTowardRevenue is false only for payments explicitly marked unverified
func (p *Payment) CountsTowardRevenue() bool {
	return p.Verified == nil || *p.Verified
}

func (p *Payment) Validate() error {
	if p.StudentID == "" || p.SchoolMonthID == "" || p.PaymentMethodID == "" {
		return ierr.NewError("payment is missing required fields").
			WithHint("Student, school month and payment method are required").
			Mark(ierr.ErrValidation)
	}
	if err := p.PaymentType.Validate(); err != nil {
		return err
	}
	if !p.Amount.IsPositive() {
		return ierr.NewError("payment amount must be greater than zero").
			WithHint("Amount must be a positive decimal").
			WithReportableDetails(map[string]any{
				"amount": p.Amount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ValidateAgainst checks the reference and verification fields against what the method requires
func (p *Payment) ValidateAgainst(method *PaymentMethod) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if method == nil || method.ID != p.PaymentMethodID {
		return ierr.NewError("payment method does not match the payment").
			WithHint("The payment method could not be found").
			Mark(ierr.ErrValidation)
	}

	hasReference := p.Reference != nil && *p.Reference != ""
	if method.RequiresReferenceID != hasReference {
		return ierr.NewErrorf("payment method %s requires reference: %t", method.Name, method.RequiresReferenceID).
			WithHint("Provide a reference only when the payment method requires one").
			WithReportableDetails(map[string]any{
				"payment_method_id":     method.ID,
				"requires_reference_id": method.RequiresReferenceID,
			}).
			Mark(ierr.ErrValidation)
	}

	hasVerified := p.Verified != nil
	if method.RequiresManualVerification != hasVerified {
		return ierr.NewErrorf("payment method %s requires manual verification: %t", method.Name, method.RequiresManualVerification).
			WithHint("Set the verified flag only when the payment method requires manual verification").
			WithReportableDetails(map[string]any{
				"payment_method_id":            method.ID,
				"requires_manual_verification": method.RequiresManualVerification,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentMethod describes how a payment was made and which proof it needs
type PaymentMethod struct {
	ID                         string `db:"id" json:"id"`
	Name                       string `db:"name" json:"name"`
	RequiresManualVerification bool   `db:"requires_manual_verification" json:"requires_manual_verification"`
	RequiresReferenceID        bool   `db:"requires_reference_id" json:"requires_reference_id"`

	types.BaseModel
}

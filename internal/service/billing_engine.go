package service

import (
	"github.com/flexprice/tuition/internal/interfaces"
)

type billingEngine struct {
	FeeResolutionService
	DiscountEngine
	BillingReportService
	PaymentHistoryService
}

var _ interfaces.BillingEngine = (*billingEngine)(nil)

// NewBillingEngine wires the billing services behind a single interface
func NewBillingEngine(params ServiceParams, settings SettingsService) interfaces.BillingEngine {
	return &billingEngine{
		FeeResolutionService:  NewFeeResolutionService(params),
		DiscountEngine:        NewDiscountEngine(params),
		BillingReportService:  NewBillingReportService(params, settings),
		PaymentHistoryService: NewPaymentHistoryService(params),
	}
}

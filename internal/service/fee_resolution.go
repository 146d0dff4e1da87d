package service

import (
	"context"

	"github.com/flexprice/tuition/internal/api/dto"
)

// FeeResolutionService resolves the monthly fee in force for a grade
type FeeResolutionService interface {
	// GetEffectiveFee fails with ErrNoEffectiveFee when no assignment qualifies; there is no implicit zero fee
	GetEffectiveFee(ctx context.Context, gradeID, schoolMonthID string) (*dto.EffectiveFeeResponse, error)
}

type feeResolutionService struct {
	billingReader
}

func NewFeeResolutionService(params ServiceParams) FeeResolutionService {
	return &feeResolutionService{
		billingReader: billingReader{ServiceParams: params},
	}
}

func (s *feeResolutionService) GetEffectiveFee(ctx context.Context, gradeID, schoolMonthID string) (*dto.EffectiveFeeResponse, error) {
	scope, err := s.loadMonthScope(ctx, schoolMonthID)
	if err != nil {
		return nil, err
	}

	if _, err := s.GradeRepo.Get(ctx, gradeID); err != nil {
		return nil, err
	}

	resolved, err := s.resolveEffectiveFee(ctx, gradeID, scope)
	if err != nil {
		return nil, err
	}

	return &dto.EffectiveFeeResponse{
		GradeID:                  gradeID,
		SchoolMonthID:            scope.Month.ID,
		MonthlyFeeID:             resolved.Fee.ID,
		FeeOnGradeID:             resolved.Assignment.ID,
		Description:              resolved.Fee.Description,
		Amount:                   resolved.Fee.Amount,
		EffectiveFromMonthID:     resolved.EffectiveFrom.ID,
		EffectiveFromMonthNumber: resolved.EffectiveFrom.MonthNumber,
	}, nil
}

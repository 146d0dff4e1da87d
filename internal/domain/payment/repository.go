package payment

import (
	"context"

	"github.com/flexprice/tuition/internal/types"
)

// Repository defines the interface for payment data access
type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	// List returns payments ordered by creation time, newest first
	List(ctx context.Context, filter *types.PaymentFilter) ([]*Payment, error)
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}

// MethodRepository defines the interface for payment method data access
type MethodRepository interface {
	Create(ctx context.Context, method *PaymentMethod) error
	Get(ctx context.Context, id string) (*PaymentMethod, error)
	List(ctx context.Context, filter *types.QueryFilter) ([]*PaymentMethod, error)
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}

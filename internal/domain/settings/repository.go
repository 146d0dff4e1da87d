package settings

import (
	"context"

	"github.com/flexprice/tuition/internal/types"
)

// Repository defines the interface for settings persistence operations
type Repository interface {
	// GetByKey returns ErrNotFound when the key was never set
	GetByKey(ctx context.Context, key types.SettingKey) (*Setting, error)
	// Upsert stores the value of setting.Key, replacing any previous value
	Upsert(ctx context.Context, setting *Setting) error
	DeleteByKey(ctx context.Context, key types.SettingKey) error
	List(ctx context.Context) ([]*Setting, error)
}

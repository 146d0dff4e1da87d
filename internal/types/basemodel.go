package types

import (
	"context"
	"time"
)

// BaseModel is embedded by every persisted entity.
// A non-nil DeletedAt marks the row as soft deleted; such rows are invisible to
// regular reads unless a filter explicitly asks for them.
type BaseModel struct {
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	CreatedBy string     `db:"created_by" json:"created_by"`
	UpdatedBy string     `db:"updated_by" json:"updated_by"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the row has been soft deleted
func (b BaseModel) IsDeleted() bool {
	return b.DeletedAt != nil
}

func GetDefaultBaseModel(ctx context.Context) BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: GetUserID(ctx),
		UpdatedBy: GetUserID(ctx),
	}
}

package types

import (
	"fmt"

	"github.com/samber/lo"
)

const (
	FILTER_DEFAULT_LIMIT = 50
	FILTER_DEFAULT_SORT  = "created_at"
	FILTER_DEFAULT_ORDER = "desc"

	OrderDesc = "desc"
	OrderAsc  = "asc"
)

// BaseFilter defines common filtering capabilities
type BaseFilter interface {
	GetLimit() int
	GetOffset() int
	GetSort() string
	GetOrder() string
	GetIncludeDeleted() bool
	Validate() error
	IsUnlimited() bool
}

// QueryFilter represents a generic query filter with optional fields.
// IncludeDeleted is the single switch that lets soft deleted rows through; every
// repository applies it in its query builder instead of checking deleted_at ad hoc.
type QueryFilter struct {
	Limit          *int    `json:"limit,omitempty" form:"limit" validate:"omitempty,min=1,max=1000"`
	Offset         *int    `json:"offset,omitempty" form:"offset" validate:"omitempty,min=0"`
	Sort           *string `json:"sort,omitempty" form:"sort"`
	Order          *string `json:"order,omitempty" form:"order" validate:"omitempty,oneof=asc desc"`
	IncludeDeleted *bool   `json:"include_deleted,omitempty" form:"include_deleted"`
}

// NewDefaultQueryFilter defines default values for query filters
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  lo.ToPtr(FILTER_DEFAULT_LIMIT),
		Offset: lo.ToPtr(0),
		Sort:   lo.ToPtr(FILTER_DEFAULT_SORT),
		Order:  lo.ToPtr(FILTER_DEFAULT_ORDER),
	}
}

// NewNoLimitQueryFilter returns a filter with no pagination limits
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  nil,
		Offset: lo.ToPtr(0),
		Sort:   lo.ToPtr(FILTER_DEFAULT_SORT),
		Order:  lo.ToPtr(FILTER_DEFAULT_ORDER),
	}
}

// WithDeleted returns a copy of the filter that also matches soft deleted rows
func (f QueryFilter) WithDeleted() *QueryFilter {
	f.IncludeDeleted = lo.ToPtr(true)
	return &f
}

// IsUnlimited returns true if this is an unlimited query
func (f QueryFilter) IsUnlimited() bool {
	return f.Limit == nil
}

// GetLimit returns the limit value, 0 for unlimited queries
func (f QueryFilter) GetLimit() int {
	if f.IsUnlimited() {
		return 0
	}
	return *f.Limit
}

// GetOffset returns the offset value or default if not set
func (f QueryFilter) GetOffset() int {
	if f.Offset == nil {
		return *NewDefaultQueryFilter().Offset
	}
	return *f.Offset
}

// GetSort returns the sort value or default if not set
func (f QueryFilter) GetSort() string {
	if f.Sort == nil {
		return *NewDefaultQueryFilter().Sort
	}
	return *f.Sort
}

// GetOrder returns the order value or default if not set
func (f QueryFilter) GetOrder() string {
	if f.Order == nil {
		return *NewDefaultQueryFilter().Order
	}
	return *f.Order
}

// GetIncludeDeleted reports whether soft deleted rows should be returned
func (f QueryFilter) GetIncludeDeleted() bool {
	return lo.FromPtr(f.IncludeDeleted)
}

// Validate validates the filter fields
func (f QueryFilter) Validate() error {
	if !f.IsUnlimited() && (*f.Limit < 1 || *f.Limit > 1000) {
		return fmt.Errorf("limit must be between 1 and 1000")
	}
	if f.Offset != nil && *f.Offset < 0 {
		return fmt.Errorf("offset must be non-negative")
	}
	if f.Order != nil && *f.Order != OrderAsc && *f.Order != OrderDesc {
		return fmt.Errorf("order must be either 'asc' or 'desc'")
	}
	return nil
}

// QueryFilterOrDefault keeps entity filters usable with a nil embedded QueryFilter
func QueryFilterOrDefault(f *QueryFilter) *QueryFilter {
	if f == nil {
		return NewNoLimitQueryFilter()
	}
	return f
}

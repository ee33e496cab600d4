package dto

import "github.com/comerzia/comerzia_backend/internal/utils/pagination"

// PageQuery binds the common listing query parameters.
type PageQuery struct {
	Page           int    `form:"page"`
	PageSize       int    `form:"pageSize"`
	OrderBy        string `form:"orderBy"`
	OrderDirection string `form:"orderDirection" binding:"omitempty,oneof=asc desc"`
	CountStrategy  string `form:"countStrategy" binding:"omitempty,oneof=exact estimated none"`
}

// ToParams converts the bound query into pagination parameters.
func (q PageQuery) ToParams() pagination.Params {
	return pagination.Params{
		Page:           q.Page,
		PageSize:       q.PageSize,
		OrderBy:        q.OrderBy,
		OrderDirection: pagination.Direction(q.OrderDirection),
		CountStrategy:  pagination.CountStrategy(q.CountStrategy),
	}
}

// PageResponse is the uniform paginated listing envelope.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

// NewPageResponse builds the listing envelope, echoing the effective page
// window rather than the raw query values.
func NewPageResponse[T any](data []T, totalCount int64, params pagination.Params) PageResponse[T] {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = pagination.DefaultPageSize
	}
	if params.PageSize > pagination.MaxPageSize {
		params.PageSize = pagination.MaxPageSize
	}
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       params.Page,
		PageSize:   params.PageSize,
	}
}

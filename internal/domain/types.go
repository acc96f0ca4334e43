package domain

import "math"

// DefaultQueryLimit caps list queries issued without pagination.
const DefaultQueryLimit = 100

// Pagination is the limit/offset window handed to repositories.
type Pagination struct {
	Limit  int
	Offset int
}

// PageRequest is the 1-based paging input taken from the query string.
// Paginated mode is active only when both values are present. The upper
// bounds keep pageId*pageSize far from integer overflow.
type PageRequest struct {
	PageID   *int `form:"pageId" binding:"omitempty,min=1,max=1000000"`
	PageSize *int `form:"pageSize" binding:"omitempty,min=1,max=1000"`
}

// Active reports whether both pageId and pageSize were supplied.
func (p PageRequest) Active() bool {
	return p.PageID != nil && p.PageSize != nil
}

// Window converts the request into a repository window; nil when not active.
// An offset past math.MaxInt saturates so the page comes back empty.
func (p PageRequest) Window() *Pagination {
	if !p.Active() {
		return nil
	}
	size, skip := *p.PageSize, *p.PageID-1
	offset := math.MaxInt
	if size <= 0 || skip <= 0 {
		offset = 0
	} else if skip <= math.MaxInt/size {
		offset = skip * size
	}
	return &Pagination{Limit: size, Offset: offset}
}

// LimitOffset resolves an optional window to concrete values.
func LimitOffset(p *Pagination) (int, int) {
	if p == nil {
		return DefaultQueryLimit, 0
	}
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

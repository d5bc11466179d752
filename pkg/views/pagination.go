package views

import "marketplace-web/pkg/inbox"

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

func NewPagination(page, pageSize int, total int64) Pagination {
	p := Pagination{Page: page, PageSize: pageSize, TotalItems: total}
	if pageSize > 0 {
		p.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return p
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }
func (p Pagination) PrevPage() int { return p.Page - 1 }
func (p Pagination) NextPage() int { return p.Page + 1 }

type ConversationListParams struct {
	UserID   string
	Tab      inbox.Tab
	Search   string
	Page     int
	PageSize int
}

// Normalize clamps the page to >= 1 and the page size into (0, max].
func (p *ConversationListParams) Normalize(defaultSize, maxSize int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultSize
	}
	if maxSize > 0 && p.PageSize > maxSize {
		p.PageSize = maxSize
	}
	if p.Tab == "" {
		p.Tab = inbox.TabAll
	}
}

func (p *ConversationListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page returns the window of items for the given offset and size.
func Page[T any](items []T, offset, size int) []T {
	if offset >= len(items) || size <= 0 {
		return []T{}
	}
	end := offset + size
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

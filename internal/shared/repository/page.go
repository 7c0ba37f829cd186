package repository

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a 1-based page request
type Page struct {
	Number int
	Size   int
}

// Normalize applies defaults (page 1, size 10) and caps the size
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

type PageResult[T any] struct {
	Items       []T   `json:"items"`
	TotalCount  int64 `json:"totalCount"`
	PageSize    int   `json:"pageSize"`
	CurrentPage int   `json:"currentPage"`
}

func (p *PageResult[T]) TotalPages() int {
	if p.PageSize == 0 {
		return 0
	}
	return int((p.TotalCount + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// MapPage projects the items of a page, keeping the paging metadata
func MapPage[T any, D any](p *PageResult[T], fn func(*T) D) *PageResult[D] {
	items := make([]D, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, fn(&p.Items[i]))
	}
	return &PageResult[D]{
		Items:       items,
		TotalCount:  p.TotalCount,
		PageSize:    p.PageSize,
		CurrentPage: p.CurrentPage,
	}
}

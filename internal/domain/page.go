package domain

// Page is a paginated result.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// Paginate slices items for page (1-based) of size pageSize.
// A page past the end is empty; Items is never nil.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	total := len(items)
	p := Page[T]{
		Items:    []T{},
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	if pageSize <= 0 || page <= 0 {
		return p
	}
	p.TotalPages = (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= total {
		return p
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	p.Items = append(p.Items, items[start:end]...)
	return p
}

// MapPage converts the items of a page, keeping its metadata.
func MapPage[T, U any](in Page[T], fn func(T) U) Page[U] {
	out := Page[U]{
		Items:      make([]U, 0, len(in.Items)),
		Total:      in.Total,
		Page:       in.Page,
		PageSize:   in.PageSize,
		TotalPages: in.TotalPages,
	}
	for _, item := range in.Items {
		out.Items = append(out.Items, fn(item))
	}
	return out
}

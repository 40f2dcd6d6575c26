package models

import "math"

// FilterField names the single dog field a listing is filtered on.
type FilterField string

const (
	FilterNone     FilterField = ""
	FilterName     FilterField = "name"
	FilterBreed    FilterField = "breed"
	FilterSupplier FilterField = "supplier"
)

// DogFilter is a case-insensitive substring match on one field.
type DogFilter struct {
	Field FilterField
	Value string
}

// NewDogFilter picks the filter from a set of request parameters.
// When several keys are present name wins over breed, and breed over supplier.
// Any other key is ignored.
func NewDogFilter(params map[string]string) DogFilter {
	for _, field := range []FilterField{FilterName, FilterBreed, FilterSupplier} {
		if v, ok := params[string(field)]; ok {
			return DogFilter{Field: field, Value: v}
		}
	}
	return DogFilter{}
}

// SortOrder orders a listing by one dog field.
type SortOrder struct {
	Field string
	Desc  bool
}

// PageRequest selects a 0-based page of a listing.
type PageRequest struct {
	Page int
	Size int
	Sort []SortOrder
}

// Offset returns the number of rows skipped before this page, saturating
// at math.MaxInt.
func (p PageRequest) Offset() int {
	if p.Size > 0 && p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Page is one slice of a listing along with the listing totals.
type Page[T any] struct {
	Content       []T
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// NewPage builds a Page, deriving TotalPages from total and the request size.
func NewPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

// MapPage converts the content of a page, keeping its totals.
func MapPage[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		out = append(out, fn(item))
	}
	return &Page[U]{
		Content:       out,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}

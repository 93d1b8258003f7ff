package shared

import "math"

const defaultPageSize = 10

// PageRequest describes a zero-based page request.
type PageRequest struct {
	Number int
	Size   int
}

// NewPageRequest clamps raw query values into a usable request.
func NewPageRequest(number, size int) PageRequest {
	if number < 0 {
		number = 0
	}
	if size < 1 {
		size = defaultPageSize
	}
	return PageRequest{Number: number, Size: size}
}

// Offset returns the row offset for the request.
func (p PageRequest) Offset() int {
	return p.Number * p.Size
}

// PageMetadata describes the position of a page within the full result set.
type PageMetadata struct {
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

// Page is the envelope returned by all paginated listings.
type Page[T any] struct {
	Content []T          `json:"content"`
	Page    PageMetadata `json:"page"`
}

// NewPage wraps content in the pagination envelope.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := int(math.Ceil(float64(total) / float64(req.Size)))
	meta := PageMetadata{
		Number:        req.Number,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         req.Number == 0,
		Last:          req.Number >= totalPages-1,
		HasNext:       req.Number < totalPages-1,
		HasPrevious:   req.Number > 0,
	}
	return Page[T]{Content: content, Page: meta}
}

// internal/api/types/response.go
package types

// PaginatedResponse defines a generic structure for paginated API responses.
// T represents the type of data contained in the 'Data' slice.
type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalCount int64 `json:"total_count"`
}

// Paginate slices items by offset and limit. Out-of-range offsets yield an empty page.
func Paginate[T any](items []T, limit, offset int) PaginatedResponse[T] {
	page := PaginatedResponse[T]{Data: []T{}, Limit: limit, Offset: offset, TotalCount: int64(len(items))}
	if offset >= len(items) {
		return page
	}
	end := offset + min(limit, len(items)-offset)
	page.Data = items[offset:end]
	return page
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

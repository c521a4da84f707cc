package store

// PaginateResult is one page of documents plus paging totals.
type PaginateResult[T any] struct {
	Page       int64 `json:"page"`
	PerPage    int64 `json:"perPage"`
	ItemCount  int64 `json:"itemCount"`
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// TotalPages computes ceil(total/perPage).
func TotalPages(total, perPage int64) int64 {
	if perPage < 1 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

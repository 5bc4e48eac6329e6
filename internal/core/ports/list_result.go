package ports

// ListResult is the canonical shape of every paginated listing: one page of
// items, the exact total for UI pagination controls, and a has-more flag
// derived from bounded overfetch (the repositories fetch one row beyond the
// page size instead of running a second existence query).
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	HasMore    bool  `json:"has_more"`
}

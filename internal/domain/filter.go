package domain

// Default and maximum page sizes for list endpoints.
const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// ClampLimit normalizes a requested page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

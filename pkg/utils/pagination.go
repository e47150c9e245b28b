package utils

const MaxPageSize = 100

func CalculateOffset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	return (page - 1) * perPage
}

// ClampLimit caps a page size; zero means no limit.
func ClampLimit(limit int) int {
	if limit < 0 {
		return 0
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

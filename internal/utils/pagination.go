package utils

import "strconv"

// Pagination holds page/limit parameters and the derived offset.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// NewPagination builds a Pagination from raw query values. Page is
// 1-based and defaults to 1, limit defaults to 20.
func NewPagination(pageValue, limitValue string) Pagination {
	page := parseInt(pageValue, 1)
	limit := parseInt(limitValue, 20)
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}

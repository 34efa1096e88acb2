package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// GetPageParam returns the requested 1-indexed page, or 0 when the request carries none.
func GetPageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page <= 0 {
		return 0
	}
	return page
}

// TotalPages is the ceiling of total/pageSize.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate returns the slice of items belonging to the given 1-indexed page.
// Pages outside 1..TotalPages yield an empty slice.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page <= 0 || pageSize <= 0 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams is a 1-based page window read from ?page= and ?limit=.
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPaginationParams reads the page window from the query string. Missing or
// non-positive values fall back to defaults and oversized pages are capped.
func GetPaginationParams(c echo.Context) PaginationParams {
	page := queryInt(c, "page", 1)
	size := queryInt(c, "limit", DefaultPageSize)
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PaginationParams{Page: page, PageSize: size, Offset: (page - 1) * size}
}

func queryInt(c echo.Context, name string, fallback int) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Page slices an in-memory collection. Collections are read whole from the
// entity store, so paging happens after the read.
func Page[T any](items []T, p PaginationParams) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := min(p.Offset+p.PageSize, len(items))
	return items[p.Offset:end]
}

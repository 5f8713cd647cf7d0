package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	e := echo.New()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?page=3&limit=10", nil), httptest.NewRecorder())
	assert.Equal(t, PaginationParams{Page: 3, PageSize: 10, Offset: 20}, GetPaginationParams(c))

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/?page=-1&limit=500", nil), httptest.NewRecorder())
	assert.Equal(t, PaginationParams{Page: 1, PageSize: MaxPageSize, Offset: 0}, GetPaginationParams(c))

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/?page=abc", nil), httptest.NewRecorder())
	assert.Equal(t, PaginationParams{Page: 1, PageSize: DefaultPageSize, Offset: 0}, GetPaginationParams(c))
}

func TestPage(t *testing.T) {
	items := []string{"a", "b", "c"}

	assert.Equal(t, []string{"c"}, Page(items, PaginationParams{Page: 2, PageSize: 2, Offset: 2}))
	assert.Equal(t, []string{"a", "b", "c"}, Page(items, PaginationParams{Page: 1, PageSize: 20}))
	assert.Empty(t, Page(items, PaginationParams{Page: 5, PageSize: 2, Offset: 8}))
}

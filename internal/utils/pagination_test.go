package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paginationContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c
}

func TestParsePaginationParamsDefaults(t *testing.T) {
	params := ParsePaginationParams(paginationContext(""), 20, 100)
	if params.Page != 1 || params.Limit != 20 {
		t.Fatalf("unexpected defaults: %+v", params)
	}
}

func TestParsePaginationParamsCapsLimit(t *testing.T) {
	params := ParsePaginationParams(paginationContext("page=3&limit=500"), 20, 100)
	if params.Page != 3 || params.Limit != 100 {
		t.Fatalf("expected capped limit: %+v", params)
	}
}

func TestParsePaginationParamsRejectsNegatives(t *testing.T) {
	params := ParsePaginationParams(paginationContext("page=-1&limit=-5"), 20, 100)
	if params.Page != 1 || params.Limit != 20 {
		t.Fatalf("expected sanitized params: %+v", params)
	}
}

func TestCalculateOffset(t *testing.T) {
	if got := CalculateOffset(3, 20); got != 40 {
		t.Fatalf("expected offset 40, got %d", got)
	}
}

func TestCalculateTotalPages(t *testing.T) {
	if got := CalculateTotalPages(0, 20); got != 1 {
		t.Fatalf("expected at least one page, got %d", got)
	}
	if got := CalculateTotalPages(41, 20); got != 3 {
		t.Fatalf("expected 3 pages, got %d", got)
	}
}

package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestCalculateSliceIndices(t *testing.T) {
	cases := []struct {
		page, size, total int
		start, end        int
	}{
		{1, 10, 25, 0, 10},
		{3, 10, 25, 20, 25},
		{4, 10, 25, 25, 25},
		{1, 1000, 50, 0, 50},
		{0, 0, 5, 0, 5},
	}
	for _, tc := range cases {
		start, end := CalculateSliceIndices(tc.page, tc.size, tc.total)
		if start != tc.start || end != tc.end {
			t.Fatalf("page %d size %d total %d: got [%d,%d) want [%d,%d)", tc.page, tc.size, tc.total, start, end, tc.start, tc.end)
		}
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 2, 10)
	if info.TotalPages != 3 || info.Total != 25 || info.Page != 2 || info.Limit != 10 {
		t.Fatalf("unexpected info %+v", info)
	}
	if NewPaginationInfo(0, 1, 10).TotalPages != 0 {
		t.Fatal("no items should give zero pages")
	}
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		url        string
		page, size int
	}{
		{"/students?page=2&limit=1000", 2, 1000},
		{"/students?page=-1&limit=5000", DefaultPage, DefaultPageSize},
		{"/students", DefaultPage, DefaultPageSize},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", tc.url, nil)
		page, size := ParsePaginationParams(c)
		if page != tc.page || size != tc.size {
			t.Fatalf("%s: got page %d size %d, want %d %d", tc.url, page, size, tc.page, tc.size)
		}
	}
}

func TestParseDurationFallsBack(t *testing.T) {
	if got := ParseDuration("nope", time.Minute); got != time.Minute {
		t.Fatalf("got %v", got)
	}
	if got := ParseDuration("2s", time.Minute); got != 2*time.Second {
		t.Fatalf("got %v", got)
	}
	if DateStamp(time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)) != "2024-03-07" {
		t.Fatal("unexpected date stamp")
	}
}

package repositories

import (
	"strings"

	"github.com/yigit/unirecords/internal/pkg/helpers"
)

// ListFilter narrows a list query. Search is a case-insensitive substring
// matched against each repository's searchable fields; Match holds exact
// field filters such as faculty or status.
type ListFilter struct {
	Search string
	Match  map[string]string
	Page   int
	Limit  int
}

func (f ListFilter) matches(fields map[string]string, searchable ...string) bool {
	for key, want := range f.Match {
		if want == "" {
			continue
		}
		got, ok := fields[key]
		if !ok || got != want {
			return false
		}
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	for _, s := range searchable {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// paginate slices rows for the filter's page and returns the total before
// slicing.
func paginate[T any](rows []T, f ListFilter) ([]T, int) {
	total := len(rows)
	start, end := helpers.CalculateSliceIndices(f.Page, f.Limit, total)
	return rows[start:end], total
}

package csvio

import (
	"io"
	"path/filepath"
	"strings"
)

// Preview is the parsed content of an upload before it is sent
type Preview struct {
	Headers []string
	Rows    []map[string]string
}

// Empty reports whether there is nothing to show.
func (p Preview) Empty() bool {
	return len(p.Headers) == 0
}

// PreviewFile parses an upload into header to value maps. Legacy .xls files
// cannot be previewed and yield an empty Preview.
func PreviewFile(name string, r io.Reader) (Preview, error) {
	if strings.EqualFold(filepath.Ext(name), ".xls") {
		return Preview{}, nil
	}
	rows, err := ReadTable(name, r)
	if err != nil {
		return Preview{}, err
	}
	return previewFromRows(rows), nil
}

func previewFromRows(rows [][]string) Preview {
	if len(rows) == 0 {
		return Preview{}
	}
	p := Preview{Headers: rows[0], Rows: make([]map[string]string, 0, len(rows)-1)}
	for _, values := range rows[1:] {
		row := make(map[string]string, len(p.Headers))
		for i, h := range p.Headers {
			if i < len(values) {
				row[h] = values[i]
			} else {
				row[h] = ""
			}
		}
		p.Rows = append(p.Rows, row)
	}
	return p
}

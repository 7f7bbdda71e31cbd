package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Width(18)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5B8DEF")).Padding(0, 2)
)

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.String())
}

type field struct {
	label string
	value string
}

// renderFields prints a titled block of label/value lines. Blank values show
// as "-".
func renderFields(w io.Writer, title string, fields []field) {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	for _, f := range fields {
		value := f.value
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		b.WriteString("\n" + labelStyle.Render(f.label) + value)
	}
	fmt.Fprintln(w, cardStyle.Render(b.String()))
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func yesNo(b bool) string {
	if b {
		return "ใช่"
	}
	return "ไม่"
}

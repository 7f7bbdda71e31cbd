package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"github.com/yigit/unirecords/internal/app/auth"
	"github.com/yigit/unirecords/internal/app/dashboard"
)

const barWidth = 30

var (
	statValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	statCardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5B8DEF")).Padding(0, 2).MarginRight(1)
	barStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
)

func (rt *runtime) dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "show totals and breakdowns of students, alumni and projects",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			app, _, err := rt.page(c, auth.NavDashboard, "")
			if err != nil {
				return err
			}
			stats := dashboard.Compute(app.Data.Students(), app.Data.Alumni(), app.Data.Projects())
			if c.Bool("json") {
				return writeJSON(c.App.Writer, stats)
			}
			renderDashboard(c.App.Writer, stats)
			return nil
		},
	}
}

func statCard(label, value, subtitle string) string {
	body := mutedStyle.Render(label) + "\n" + statValueStyle.Render(value)
	if subtitle != "" {
		body += "\n" + mutedStyle.Render(subtitle)
	}
	return statCardStyle.Render(body)
}

func renderDashboard(w io.Writer, s dashboard.Stats) {
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("นักศึกษาทั้งหมด", strconv.Itoa(s.TotalStudents), ""),
		statCard("สำเร็จการศึกษา", strconv.Itoa(s.GraduatedStudents), s.GraduatedSubtitle()),
		statCard("ศิษย์เก่า", strconv.Itoa(s.TotalAlumni), ""),
		statCard("โปรเจคจบ", strconv.Itoa(s.TotalProjects), fmt.Sprintf("ได้รับรางวัล %d", s.AwardProjects)),
	))

	renderBars(w, "นักศึกษาตามสาขา", s.StudentsByDept)
	renderBars(w, "ศิษย์เก่าตามสาขา", s.AlumniByDepartment)
	renderBars(w, "โปรเจคตามปี", yearCounts(s.ProjectsByYear))
	renderBars(w, "ศิษย์เก่าตามปีที่จบ", yearCounts(s.AlumniByYear))

	if len(s.RecentAlumni) > 0 {
		rows := make([][]string, 0, len(s.RecentAlumni))
		for _, a := range s.RecentAlumni {
			rows = append(rows, []string{a.FullName(), a.Department, strconv.Itoa(a.GraduationYear), a.Workplace})
		}
		fmt.Fprintln(w, titleStyle.Render("ศิษย์เก่าล่าสุด"))
		renderTable(w, []string{"ชื่อ-นามสกุล", "สาขา", "ปีที่จบ", "สถานที่ทำงาน"}, rows)
	}
	if len(s.AwardProjectList) > 0 {
		rows := make([][]string, 0, len(s.AwardProjectList))
		for _, p := range s.AwardProjectList {
			rows = append(rows, []string{p.TitleTH, p.Advisor, strconv.Itoa(p.Year)})
		}
		fmt.Fprintln(w, titleStyle.Render("โปรเจคที่ได้รับรางวัล"))
		renderTable(w, []string{"ชื่อโปรเจค", "อาจารย์ที่ปรึกษา", "ปี"}, rows)
	}
}

func yearCounts(in []dashboard.YearCount) []dashboard.Count {
	out := make([]dashboard.Count, len(in))
	for i, yc := range in {
		out[i] = dashboard.Count{Label: strconv.Itoa(yc.Year), Value: yc.Count}
	}
	return out
}

// renderBars draws a horizontal bar per count, scaled to the largest value.
func renderBars(w io.Writer, title string, counts []dashboard.Count) {
	if len(counts) == 0 {
		return
	}
	peak, labelWidth := 0, 0
	for _, c := range counts {
		peak = max(peak, c.Value)
		labelWidth = max(labelWidth, lipgloss.Width(c.Label))
	}
	fmt.Fprintln(w, titleStyle.Render(title))
	label := lipgloss.NewStyle().Width(labelWidth + 2)
	for _, c := range counts {
		n := 0
		if peak > 0 {
			n = c.Value * barWidth / peak
		}
		if c.Value > 0 && n == 0 {
			n = 1
		}
		fmt.Fprintf(w, "%s%s %d\n", label.Render(c.Label), barStyle.Render(strings.Repeat("█", n)), c.Value)
	}
}

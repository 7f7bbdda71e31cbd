// Package dashboard aggregates the statistics shown on the dashboard page.
package dashboard

import (
	"fmt"
	"sort"

	"github.com/yigit/unirecords/internal/app/models"
)

// UnknownDepartment labels records without a department.
const UnknownDepartment = "ไม่ระบุ"

// RecentLimit caps the recent alumni and award project lists.
const RecentLimit = 5

// Count is one bar or pie slice
type Count struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// YearCount is one point of a per-year series
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// Stats is everything the dashboard renders
type Stats struct {
	TotalStudents      int              `json:"total_students"`
	GraduatedStudents  int              `json:"graduated_students"`
	GraduatedPercent   float64          `json:"graduated_percent"`
	TotalAlumni        int              `json:"total_alumni"`
	TotalProjects      int              `json:"total_projects"`
	AwardProjects      int              `json:"award_projects"`
	AlumniByDepartment []Count          `json:"alumni_by_department"`
	ProjectsByYear     []YearCount      `json:"projects_by_year"`
	AlumniByYear       []YearCount      `json:"alumni_by_year"`
	StudentsByDept     []Count          `json:"students_by_department"`
	RecentAlumni       []models.Alumni  `json:"recent_alumni"`
	AwardProjectList   []models.Project `json:"award_project_list"`
}

// GraduatedSubtitle renders the graduated share, e.g. "12.5% ของทั้งหมด".
func (s Stats) GraduatedSubtitle() string {
	return fmt.Sprintf("%.1f%% ของทั้งหมด", s.GraduatedPercent)
}

// Compute derives Stats from the three collections.
func Compute(students []models.Student, alumni []models.Alumni, projects []models.Project) Stats {
	s := Stats{
		TotalStudents: len(students),
		TotalAlumni:   len(alumni),
		TotalProjects: len(projects),
	}

	for _, st := range students {
		if st.Status == models.StatusGraduated {
			s.GraduatedStudents++
		}
	}
	if s.TotalStudents > 0 {
		s.GraduatedPercent = float64(s.GraduatedStudents) / float64(s.TotalStudents) * 100
	}

	for _, p := range projects {
		if p.HasAward {
			s.AwardProjects++
			if len(s.AwardProjectList) < RecentLimit {
				s.AwardProjectList = append(s.AwardProjectList, p)
			}
		}
	}

	s.AlumniByDepartment = countBy(alumni, func(a models.Alumni) string { return a.Department })
	s.StudentsByDept = countBy(students, func(st models.Student) string { return st.Department })
	s.ProjectsByYear = countByYear(projects, func(p models.Project) int { return p.Year })
	s.AlumniByYear = countByYear(alumni, func(a models.Alumni) int { return a.GraduationYear })

	if len(alumni) > RecentLimit {
		s.RecentAlumni = alumni[:RecentLimit]
	} else {
		s.RecentAlumni = alumni
	}
	return s
}

// countBy groups by a label in first-seen order, blank labels as UnknownDepartment.
func countBy[T any](items []T, label func(T) string) []Count {
	index := make(map[string]int)
	var out []Count
	for _, item := range items {
		l := label(item)
		if l == "" {
			l = UnknownDepartment
		}
		i, ok := index[l]
		if !ok {
			i = len(out)
			index[l] = i
			out = append(out, Count{Label: l})
		}
		out[i].Value++
	}
	return out
}

func countByYear[T any](items []T, year func(T) int) []YearCount {
	counts := make(map[int]int)
	for _, item := range items {
		counts[year(item)]++
	}
	out := make([]YearCount, 0, len(counts))
	for y, n := range counts {
		out = append(out, YearCount{Year: y, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/unirecords/internal/app/models"
)

// ErrEmptySelection is returned when a bulk action has nothing selected.
var ErrEmptySelection = errors.New("กรุณาเลือกนักศึกษาที่ต้องการเปลี่ยนสถานะ")

// StudentFilter holds the students page search box and filters. Zero values
// match everything.
type StudentFilter struct {
	Search  string
	Faculty string
	Status  models.StudentStatus
	Year    int
}

// Active reports whether any filter narrows the list.
func (f StudentFilter) Active() bool {
	return f.Search != "" || f.Faculty != "" || f.Status != "" || f.Year != 0
}

func (f StudentFilter) matches(s models.Student) bool {
	if f.Search != "" && !containsFold(s.FirstName, f.Search) && !containsFold(s.LastName, f.Search) && !strings.Contains(s.StudentID, f.Search) {
		return false
	}
	if f.Faculty != "" && s.Faculty != f.Faculty {
		return false
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	return f.Year == 0 || s.Year == f.Year
}

// ScopeStudents limits teachers to students of their own department.
func ScopeStudents(user *models.User, students []models.Student) []models.Student {
	if user == nil || user.Role != models.RoleTeacher || user.Department == "" {
		return students
	}
	return filter(students, func(s models.Student) bool { return s.Department == user.Department })
}

// FilterStudents applies role scoping then f.
func FilterStudents(user *models.User, students []models.Student, f StudentFilter) []models.Student {
	return filter(ScopeStudents(user, students), f.matches)
}

// StudentFaculties lists the distinct faculties in first-seen order.
func StudentFaculties(students []models.Student) []string {
	return uniqueInOrder(students, func(s models.Student) string { return s.Faculty })
}

// StudentYears lists the distinct study years ascending.
func StudentYears(students []models.Student) []int {
	return uniqueSorted(students, func(s models.Student) int { return s.Year }, false)
}

// Selection is an ordered set of selected record ids
type Selection struct {
	ids []string
}

// NewSelection starts a selection holding ids.
func NewSelection(ids ...string) *Selection {
	s := &Selection{}
	for _, id := range ids {
		if !s.Has(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle selects id or removes it when already selected.
func (s *Selection) Toggle(id string) {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
	s.ids = append(s.ids, id)
}

// ToggleAll clears the selection when it already covers every visible row
// and selects exactly the visible rows otherwise.
func (s *Selection) ToggleAll(visible []string) {
	if s.AllSelected(visible) {
		s.ids = nil
		return
	}
	s.ids = append([]string(nil), visible...)
}

// AllSelected reports whether the selection covers a non-empty visible list.
func (s *Selection) AllSelected(visible []string) bool {
	return len(visible) > 0 && len(s.ids) == len(visible)
}

// IDs returns the selected ids in selection order.
func (s *Selection) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Len returns the number of selected ids.
func (s *Selection) Len() int { return len(s.ids) }

// Clear drops the selection.
func (s *Selection) Clear() { s.ids = nil }

// StudentIDs returns the record ids of students, for select-all.
func StudentIDs(students []models.Student) []string {
	ids := make([]string, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	return ids
}

// StatusChanger performs the bulk status operations
type StatusChanger interface {
	GraduateStudents(ctx context.Context, ids []string) error
	UpdateStudentStatus(ctx context.Context, ids []string, status models.StudentStatus) error
}

// ChangeStatus applies status to the selection. Graduated moves the students
// to alumni; other statuses are a batch update. The selection is cleared and a
// summary returned on success.
func ChangeStatus(ctx context.Context, store StatusChanger, sel *Selection, status models.StudentStatus) (string, error) {
	if sel.Len() == 0 {
		return "", ErrEmptySelection
	}
	ids := sel.IDs()

	if status == models.StatusGraduated {
		if err := store.GraduateStudents(ctx, ids); err != nil {
			return "", err
		}
		sel.Clear()
		return fmt.Sprintf("นักศึกษาจบการศึกษาสำเร็จ %d คน และย้ายไปยังระบบศิษย์เก่าแล้ว", len(ids)), nil
	}

	if err := store.UpdateStudentStatus(ctx, ids, status); err != nil {
		return "", err
	}
	sel.Clear()
	return fmt.Sprintf("เปลี่ยนสถานะเป็น \"%s\" สำเร็จ %d คน", status.Label(), len(ids)), nil
}

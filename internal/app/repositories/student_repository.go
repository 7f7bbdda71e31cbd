package repositories

import (
	"strconv"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
)

// StudentRepository stores enrolled students
type StudentRepository struct {
	t *table[models.Student]
}

// NewStudentRepository creates an empty StudentRepository
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{t: newTable(func(s *models.Student, id string) { s.ID = id })}
}

func studentFields(s models.Student) map[string]string {
	return map[string]string{
		"faculty":    s.Faculty,
		"department": s.Department,
		"status":     string(s.Status),
		"year":       strconv.Itoa(s.Year),
	}
}

// List returns one page of students matching f, and the total match count.
func (r *StudentRepository) List(f ListFilter) ([]models.Student, int) {
	var out []models.Student
	for _, s := range r.t.all() {
		if f.matches(studentFields(s), s.FirstName, s.LastName, s.StudentID) {
			out = append(out, s)
		}
	}
	return paginate(out, f)
}

// GetByID returns a student or ErrStudentNotFound.
func (r *StudentRepository) GetByID(id int64) (models.Student, error) {
	s, ok := r.t.get(id)
	if !ok {
		return s, apperrors.ErrStudentNotFound
	}
	return s, nil
}

// GetByStudentID looks a student up by the 8-digit code.
func (r *StudentRepository) GetByStudentID(code string) (models.Student, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	id := r.t.findLocked(func(s models.Student) bool { return s.StudentID == code })
	if id == 0 {
		return models.Student{}, apperrors.ErrStudentNotFound
	}
	return r.t.rows[id], nil
}

// Create stores a student; the student code must be unique.
func (r *StudentRepository) Create(s models.Student) (int64, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if r.t.findLocked(func(o models.Student) bool { return o.StudentID == s.StudentID }) != 0 {
		return 0, apperrors.ErrStudentIDAlreadyExists
	}
	return r.t.insertLocked(s), nil
}

// Update replaces a student, keeping the student code unique.
func (r *StudentRepository) Update(id int64, s models.Student) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if other := r.t.findLocked(func(o models.Student) bool { return o.StudentID == s.StudentID }); other != 0 && other != id {
		return apperrors.ErrStudentIDAlreadyExists
	}
	if !r.t.replaceLocked(id, s) {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student.
func (r *StudentRepository) Delete(id int64) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.removeLocked(id); !ok {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateStatus sets status on every listed student and returns how many
// existed.
func (r *StudentRepository) UpdateStatus(ids []int64, status models.StudentStatus) int {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	affected := 0
	for _, id := range ids {
		s, ok := r.t.rows[id]
		if !ok {
			continue
		}
		s.Status = status
		r.t.rows[id] = s
		affected++
	}
	return affected
}

// Take removes the listed students and returns them with their ids.
// Unknown ids are ignored.
func (r *StudentRepository) Take(ids []int64) map[int64]models.Student {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	out := make(map[int64]models.Student, len(ids))
	for _, id := range ids {
		if s, ok := r.t.removeLocked(id); ok {
			out[id] = s
		}
	}
	return out
}

// Count returns the number of stored students.
func (r *StudentRepository) Count() int {
	return r.t.len()
}

package repositories

import (
	"strconv"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
)

// AlumniRepository stores graduates
type AlumniRepository struct {
	t *table[models.Alumni]
}

// NewAlumniRepository creates an empty AlumniRepository
func NewAlumniRepository() *AlumniRepository {
	return &AlumniRepository{t: newTable(func(a *models.Alumni, id string) { a.ID = id })}
}

func alumniFields(a models.Alumni) map[string]string {
	return map[string]string{
		"faculty":           a.Faculty,
		"department":        a.Department,
		"graduation_year":   strconv.Itoa(a.GraduationYear),
		"employment_status": string(a.EmploymentStatus),
	}
}

// List returns one page of alumni matching f, and the total match count.
func (r *AlumniRepository) List(f ListFilter) ([]models.Alumni, int) {
	var out []models.Alumni
	for _, a := range r.t.all() {
		if f.matches(alumniFields(a), a.FirstName, a.LastName, a.Workplace) {
			out = append(out, a)
		}
	}
	return paginate(out, f)
}

// GetByID returns an alumni record or ErrResourceNotFound.
func (r *AlumniRepository) GetByID(id int64) (models.Alumni, error) {
	a, ok := r.t.get(id)
	if !ok {
		return a, apperrors.ErrResourceNotFound
	}
	return a, nil
}

// Create stores an alumni record.
func (r *AlumniRepository) Create(a models.Alumni) int64 {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return r.t.insertLocked(a)
}

// Update replaces an alumni record.
func (r *AlumniRepository) Update(id int64, a models.Alumni) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if !r.t.replaceLocked(id, a) {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Delete removes an alumni record.
func (r *AlumniRepository) Delete(id int64) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.removeLocked(id); !ok {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Count returns the number of stored alumni.
func (r *AlumniRepository) Count() int {
	return r.t.len()
}

package repositories

import (
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
)

// AdvisorRepository stores project advisors
type AdvisorRepository struct {
	t *table[models.Advisor]
}

// NewAdvisorRepository creates an empty AdvisorRepository
func NewAdvisorRepository() *AdvisorRepository {
	return &AdvisorRepository{t: newTable(func(a *models.Advisor, id string) { a.ID = id })}
}

// List returns one page of advisors matching f, and the total match count.
func (r *AdvisorRepository) List(f ListFilter) ([]models.Advisor, int) {
	var out []models.Advisor
	for _, a := range r.t.all() {
		fields := map[string]string{"faculty": a.Faculty, "department": a.Department}
		if f.matches(fields, a.Name, a.AdvisorID) {
			out = append(out, a)
		}
	}
	return paginate(out, f)
}

// GetByID returns an advisor or ErrResourceNotFound.
func (r *AdvisorRepository) GetByID(id int64) (models.Advisor, error) {
	a, ok := r.t.get(id)
	if !ok {
		return a, apperrors.ErrResourceNotFound
	}
	return a, nil
}

// Create stores an advisor; the advisor code must be unique when set.
func (r *AdvisorRepository) Create(a models.Advisor) (int64, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if a.AdvisorID != "" && r.t.findLocked(func(o models.Advisor) bool { return o.AdvisorID == a.AdvisorID }) != 0 {
		return 0, apperrors.ErrResourceAlreadyExists
	}
	return r.t.insertLocked(a), nil
}

// Update replaces an advisor.
func (r *AdvisorRepository) Update(id int64, a models.Advisor) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if !r.t.replaceLocked(id, a) {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Delete removes an advisor.
func (r *AdvisorRepository) Delete(id int64) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.removeLocked(id); !ok {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

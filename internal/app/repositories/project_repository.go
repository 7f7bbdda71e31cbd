package repositories

import (
	"strconv"
	"time"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
)

// ProjectRepository stores capstone projects and their comments
type ProjectRepository struct {
	t             *table[models.Project]
	nextCommentID int64
}

// NewProjectRepository creates an empty ProjectRepository
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{t: newTable(func(p *models.Project, id string) { p.ID = id })}
}

// List returns one page of projects matching f, and the total match count.
func (r *ProjectRepository) List(f ListFilter) ([]models.Project, int) {
	var out []models.Project
	for _, p := range r.t.all() {
		fields := map[string]string{
			"year":    strconv.Itoa(p.Year),
			"status":  string(p.Status),
			"type":    string(p.Type),
			"advisor": p.Advisor,
		}
		searchable := append([]string{p.TitleTH, p.TitleEN}, p.Tags...)
		if f.matches(fields, searchable...) {
			out = append(out, p)
		}
	}
	return paginate(out, f)
}

// GetByID returns a project or ErrResourceNotFound.
func (r *ProjectRepository) GetByID(id int64) (models.Project, error) {
	p, ok := r.t.get(id)
	if !ok {
		return p, apperrors.ErrResourceNotFound
	}
	return p, nil
}

// Create stores a project; comments always start empty.
func (r *ProjectRepository) Create(p models.Project) int64 {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	p.Comments = nil
	return r.t.insertLocked(p)
}

// Update replaces a project, keeping its comments and creator.
func (r *ProjectRepository) Update(id int64, p models.Project) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	old, ok := r.t.rows[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	p.Comments = old.Comments
	if p.CreatedBy == "" {
		p.CreatedBy = old.CreatedBy
	}
	r.t.replaceLocked(id, p)
	return nil
}

// Delete removes a project.
func (r *ProjectRepository) Delete(id int64) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.removeLocked(id); !ok {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// AddComment appends a comment and returns its id.
func (r *ProjectRepository) AddComment(projectID int64, authorName, authorRole, message string, at time.Time) (int64, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	p, ok := r.t.rows[projectID]
	if !ok {
		return 0, apperrors.ErrResourceNotFound
	}
	r.nextCommentID++
	id := r.nextCommentID
	p.Comments = append(p.Comments, models.ProjectComment{
		ID:         models.FlexString(strconv.FormatInt(id, 10)),
		ProjectID:  models.FlexString(strconv.FormatInt(projectID, 10)),
		AuthorName: authorName,
		AuthorRole: authorRole,
		Message:    message,
		CreatedAt:  at.UTC().Format(time.RFC3339),
	})
	r.t.rows[projectID] = p
	return id, nil
}

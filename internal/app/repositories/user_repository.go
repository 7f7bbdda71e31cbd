package repositories

import (
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
)

// UserRepository stores login accounts
type UserRepository struct {
	t *table[models.Account]
}

// NewUserRepository creates an empty UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{t: newTable(func(*models.Account, string) {})}
}

// CreateUser stores an account; usernames are unique.
func (r *UserRepository) CreateUser(acc models.Account) (int64, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if r.t.findLocked(func(a models.Account) bool { return a.Username == acc.Username }) != 0 {
		return 0, apperrors.ErrResourceAlreadyExists
	}
	id := r.t.nextID + 1
	acc.ID = id
	r.t.insertLocked(acc)
	return id, nil
}

// GetUserByUsername returns an account or ErrResourceNotFound.
func (r *UserRepository) GetUserByUsername(username string) (models.Account, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	id := r.t.findLocked(func(a models.Account) bool { return a.Username == username })
	if id == 0 {
		return models.Account{}, apperrors.ErrResourceNotFound
	}
	return r.t.rows[id], nil
}

// GetUserByID returns an account or ErrResourceNotFound.
func (r *UserRepository) GetUserByID(id int64) (models.Account, error) {
	acc, ok := r.t.get(id)
	if !ok {
		return acc, apperrors.ErrResourceNotFound
	}
	return acc, nil
}

// UpdatePassword stores a new password hash.
func (r *UserRepository) UpdatePassword(id int64, hash string) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	acc, ok := r.t.rows[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	acc.PasswordHash = hash
	r.t.rows[id] = acc
	return nil
}

// MarkAlumni flags the account linked to a graduated student.
func (r *UserRepository) MarkAlumni(studentRef, alumniRef int64) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	for _, id := range r.t.order {
		acc := r.t.rows[id]
		if acc.StudentRef == studentRef {
			acc.IsAlumni = true
			acc.AlumniRef = alumniRef
			r.t.rows[id] = acc
		}
	}
}

// Exists reports whether username is taken.
func (r *UserRepository) Exists(username string) bool {
	_, err := r.GetUserByUsername(username)
	return err == nil
}

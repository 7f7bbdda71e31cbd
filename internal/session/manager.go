package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/client"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/logger"
	"github.com/yigit/unirecords/internal/pkg/notify"
)

// Notice texts
const (
	MsgLoginSuccess     = "เข้าสู่ระบบสำเร็จ"
	MsgLoginFailed      = "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง"
	MsgLogoutSuccess    = "ออกจากระบบสำเร็จ"
	MsgSessionExpired   = "เซสชันหมดอายุ กรุณาเข้าสู่ระบบใหม่"
	MsgPasswordChanged  = "เปลี่ยนรหัสผ่านสำเร็จ"
	MsgPasswordNotSaved = "ไม่สามารถเปลี่ยนรหัสผ่านได้"
)

// Manager signs users in and out against the API and keeps the Store current.
type Manager struct {
	store    *Store
	api      *client.Client
	notifier notify.Notifier
	log      zerolog.Logger

	mu       sync.Mutex
	onLogout []func()
}

// NewManager wires a Store to an API client.
func NewManager(store *Store, api *client.Client, notifier notify.Notifier) *Manager {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Manager{
		store:    store,
		api:      api,
		notifier: notifier,
		log:      logger.Component("session"),
	}
}

// OnLogout registers fn to run after every logout, including forced ones.
func (m *Manager) OnLogout(fn func()) {
	m.mu.Lock()
	m.onLogout = append(m.onLogout, fn)
	m.mu.Unlock()
}

// User returns the signed-in user or nil.
func (m *Manager) User() *models.User {
	return m.store.User()
}

// IsAuthenticated reports whether a user is signed in.
func (m *Manager) IsAuthenticated() bool {
	return m.store.IsAuthenticated()
}

// Login authenticates and stores the session. It returns false with a nil
// error when the server answers with success=false.
func (m *Manager) Login(ctx context.Context, username, password string) (bool, error) {
	resp, err := m.api.Auth.Login(ctx, username, password)
	if err != nil {
		notify.Error(m.notifier, apperrors.Message(err, apperrors.DefaultMessage))
		return false, err
	}
	if !resp.Success {
		notify.Error(m.notifier, MsgLoginFailed)
		return false, nil
	}

	if err := m.store.SetToken(resp.Data.Token); err != nil {
		return false, err
	}

	user := models.User{
		ID:       string(resp.Data.User.ID),
		Username: resp.Data.User.Username,
		Role:     models.MapRole(resp.Data.User.Role),
		Name:     resp.Data.User.Username,
	}
	m.enrichFromProfile(ctx, &user)

	if err := m.store.SetUser(user); err != nil {
		return false, err
	}

	m.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("Signed in")
	notify.Success(m.notifier, MsgLoginSuccess)
	return true, nil
}

// enrichFromProfile fills optional user fields; a failed profile call keeps
// the basic login data.
func (m *Manager) enrichFromProfile(ctx context.Context, user *models.User) {
	resp, err := m.api.Auth.Profile(ctx)
	if err != nil {
		m.log.Debug().Err(err).Msg("Profile fetch failed, continuing with login data")
		return
	}
	if !resp.Success || resp.Data == nil {
		return
	}
	applyProfile(user, *resp.Data)
}

func applyProfile(user *models.User, p models.Profile) {
	first := string(p.FirstName)
	last := string(p.LastName)

	switch {
	case string(p.Name) != "":
		user.Name = string(p.Name)
	case first != "":
		user.Name = strings.TrimSpace(first + " " + last)
	}

	user.Email = string(p.Email)
	user.Faculty = string(p.Faculty)
	user.Department = string(p.Department)
	user.Phone = string(p.Phone)
	if first != "" {
		user.FirstName = first
	}
	if last != "" {
		user.LastName = last
	}
	if p.StudentID != "" {
		user.StudentID = string(p.StudentID)
	}
	if p.AdvisorID != "" {
		user.AdvisorID = string(p.AdvisorID)
	}
	if p.Year != 0 {
		user.Year = int(p.Year)
	}
	if p.IsAlumni {
		user.Role = models.RoleAlumni
		user.AlumniID = string(p.AlumniID)
	}
}

// Logout clears the session and notifies listeners.
func (m *Manager) Logout() error {
	err := m.store.ClearAuth()
	m.runLogoutHooks()
	notify.Success(m.notifier, MsgLogoutSuccess)
	return err
}

// Expire handles a session the server rejected: the client has already
// cleared the store, so only listeners and the notice remain.
func (m *Manager) Expire() {
	m.runLogoutHooks()
	notify.Warning(m.notifier, MsgSessionExpired)
}

// DropIfExpired clears a session whose token is past its exp claim and
// reports whether it did.
func (m *Manager) DropIfExpired(now time.Time) bool {
	if !m.store.Expired(now) {
		return false
	}
	if err := m.store.ClearAuth(); err != nil {
		m.log.Warn().Err(err).Msg("Failed to clear expired session")
	}
	m.Expire()
	return true
}

func (m *Manager) runLogoutHooks() {
	m.mu.Lock()
	hooks := append([]func(){}, m.onLogout...)
	m.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

// ChangePassword changes the password of the signed-in user.
func (m *Manager) ChangePassword(ctx context.Context, current, next string) error {
	if !m.IsAuthenticated() {
		return apperrors.ErrNotLoggedIn
	}
	if err := m.api.Auth.ChangePassword(ctx, current, next); err != nil {
		notify.Error(m.notifier, apperrors.Message(err, MsgPasswordNotSaved))
		return err
	}
	notify.Success(m.notifier, MsgPasswordChanged)
	return nil
}

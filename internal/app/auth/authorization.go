package auth

import (
	"fmt"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/logger"
)

// Capability is an action gated by the signed-in role
type Capability string

const (
	ManageStudents    Capability = "manage_students"
	ViewStudentDetail Capability = "view_student_detail"
	ManageAlumni      Capability = "manage_alumni"
	EditOwnAlumni     Capability = "edit_own_alumni"
	ManageAdvisors    Capability = "manage_advisors"
	ManageProjects    Capability = "manage_projects"
	DeleteProjects    Capability = "delete_projects"
	ReadComments      Capability = "read_comments"
	WriteComments     Capability = "write_comments"
	Export            Capability = "export"
	ImportStudents    Capability = "import_students"
)

var capabilityRoles = map[Capability][]models.Role{
	ManageStudents:    {models.RoleAdmin},
	ViewStudentDetail: {models.RoleAdmin, models.RoleTeacher},
	ManageAlumni:      {models.RoleAdmin},
	EditOwnAlumni:     {models.RoleAlumni},
	ManageAdvisors:    {models.RoleAdmin},
	ManageProjects:    {models.RoleAdmin, models.RoleStudent},
	DeleteProjects:    {models.RoleAdmin},
	ReadComments:      {models.RoleTeacher, models.RoleAdmin, models.RoleStudent},
	WriteComments:     {models.RoleTeacher, models.RoleAdmin},
	Export:            {models.RoleAdmin},
	ImportStudents:    {models.RoleAdmin},
}

// Can reports whether user holds capability c. A nil user holds nothing.
func Can(user *models.User, c Capability) bool {
	if user == nil {
		return false
	}
	return hasRole(capabilityRoles[c], user.Role)
}

// IsOwnAlumniRecord reports whether a belongs to the signed-in alumni user.
func IsOwnAlumniRecord(user *models.User, a models.Alumni) bool {
	return user != nil && user.Role == models.RoleAlumni && user.AlumniID != "" && user.AlumniID == a.AlumniID
}

// CanEditAlumni reports whether user may edit a: admins edit any record,
// alumni only their own.
func CanEditAlumni(user *models.User, a models.Alumni) bool {
	if Can(user, ManageAlumni) {
		return true
	}
	return Can(user, EditOwnAlumni) && IsOwnAlumniRecord(user, a)
}

func hasRole(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// CurrentUser provides the signed-in user, nil when nobody is.
type CurrentUser interface {
	User() *models.User
}

// AuthorizationService checks capabilities of the current session
type AuthorizationService struct {
	session CurrentUser
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(session CurrentUser) *AuthorizationService {
	return &AuthorizationService{session: session}
}

// Validate returns ErrNotLoggedIn without a session and ErrPermissionDenied
// when the role lacks c.
func (s *AuthorizationService) Validate(c Capability) error {
	user := s.session.User()
	if user == nil {
		return apperrors.ErrNotLoggedIn
	}
	if !Can(user, c) {
		logger.Debug().Str("role", string(user.Role)).Str("capability", string(c)).Msg("Capability denied")
		return fmt.Errorf("%w: %s", apperrors.ErrPermissionDenied, c)
	}
	return nil
}

// ValidateAlumniEdit validates that the current user may edit a.
func (s *AuthorizationService) ValidateAlumniEdit(a models.Alumni) error {
	user := s.session.User()
	if user == nil {
		return apperrors.ErrNotLoggedIn
	}
	if !CanEditAlumni(user, a) {
		logger.Debug().Str("role", string(user.Role)).Str("alumni_id", a.AlumniID).Msg("Alumni edit denied")
		return fmt.Errorf("%w: alumni %s", apperrors.ErrPermissionDenied, a.AlumniID)
	}
	return nil
}

// ValidateNav validates that the current user may open the page behind item.
func (s *AuthorizationService) ValidateNav(item NavItem) error {
	user := s.session.User()
	if user == nil {
		return apperrors.ErrNotLoggedIn
	}
	if !item.Allows(user.Role) {
		return fmt.Errorf("%w: %s", apperrors.ErrPermissionDenied, item.Path)
	}
	return nil
}

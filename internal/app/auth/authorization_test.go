package auth

import (
	"errors"
	"testing"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
)

type fixedSession struct{ user *models.User }

func (f fixedSession) User() *models.User { return f.user }

func TestCapabilitiesByRole(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin}
	student := &models.User{Role: models.RoleStudent}
	teacher := &models.User{Role: models.RoleTeacher}
	alumni := &models.User{Role: models.RoleAlumni}

	cases := []struct {
		cap  Capability
		want map[*models.User]bool
	}{
		{ManageStudents, map[*models.User]bool{admin: true, student: false, teacher: false, alumni: false}},
		{ViewStudentDetail, map[*models.User]bool{admin: true, student: false, teacher: true, alumni: false}},
		{ManageProjects, map[*models.User]bool{admin: true, student: true, teacher: false, alumni: false}},
		{DeleteProjects, map[*models.User]bool{admin: true, student: false, teacher: false, alumni: false}},
		{ReadComments, map[*models.User]bool{admin: true, student: true, teacher: true, alumni: false}},
		{WriteComments, map[*models.User]bool{admin: true, student: false, teacher: true, alumni: false}},
		{Export, map[*models.User]bool{admin: true, student: false, teacher: false, alumni: false}},
		{EditOwnAlumni, map[*models.User]bool{admin: false, student: false, teacher: false, alumni: true}},
	}
	for _, tc := range cases {
		for user, want := range tc.want {
			if got := Can(user, tc.cap); got != want {
				t.Errorf("Can(%s, %s) = %v, want %v", user.Role, tc.cap, got, want)
			}
		}
	}
	if Can(nil, Export) {
		t.Error("nil user must hold no capability")
	}
}

func TestAlumniOwnership(t *testing.T) {
	me := &models.User{Role: models.RoleAlumni, AlumniID: "60000001"}
	own := models.Alumni{AlumniID: "60000001"}
	other := models.Alumni{AlumniID: "60000002"}

	if !CanEditAlumni(me, own) || CanEditAlumni(me, other) {
		t.Fatal("alumni may edit only their own record")
	}
	if !CanEditAlumni(&models.User{Role: models.RoleAdmin}, other) {
		t.Fatal("admin may edit any record")
	}
	if IsOwnAlumniRecord(&models.User{Role: models.RoleStudent, AlumniID: "60000001"}, own) {
		t.Fatal("only alumni users own alumni records")
	}
	if IsOwnAlumniRecord(&models.User{Role: models.RoleAlumni}, models.Alumni{}) {
		t.Fatal("blank alumni ids never match")
	}
}

func TestNavFor(t *testing.T) {
	cases := []struct {
		role models.Role
		want []string
	}{
		{models.RoleAdmin, []string{"/dashboard", "/students", "/alumni", "/projects", "/advisors", "/import-students", "/profile"}},
		{models.RoleTeacher, []string{"/dashboard", "/students", "/alumni", "/projects", "/advisors", "/profile"}},
		{models.RoleStudent, []string{"/dashboard", "/alumni", "/projects", "/advisors", "/profile"}},
		{models.RoleAlumni, []string{"/dashboard", "/alumni", "/projects", "/profile"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			items := NavFor(tc.role)
			if len(items) != len(tc.want) {
				t.Fatalf("got %d items, want %d", len(items), len(tc.want))
			}
			for i, item := range items {
				if item.Path != tc.want[i] {
					t.Errorf("item %d = %s, want %s", i, item.Path, tc.want[i])
				}
			}
		})
	}
}

func TestAuthorizationService(t *testing.T) {
	anon := NewAuthorizationService(fixedSession{})
	if err := anon.Validate(Export); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("expected not logged in, got %v", err)
	}

	student := NewAuthorizationService(fixedSession{user: &models.User{Role: models.RoleStudent}})
	if err := student.Validate(ManageProjects); err != nil {
		t.Fatalf("student should manage projects: %v", err)
	}
	if err := student.Validate(DeleteProjects); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if err := student.ValidateNav(NavStudents); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("student must not open the students page, got %v", err)
	}

	alumni := NewAuthorizationService(fixedSession{user: &models.User{Role: models.RoleAlumni, AlumniID: "60000001"}})
	if err := alumni.ValidateAlumniEdit(models.Alumni{AlumniID: "60000002"}); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if err := alumni.ValidateAlumniEdit(models.Alumni{AlumniID: "60000001"}); err != nil {
		t.Fatalf("own record: %v", err)
	}
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/unirecords/internal/app/auth"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/csvio"
	"github.com/yigit/unirecords/internal/mockapi"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/notify"
	"github.com/yigit/unirecords/internal/seed"
)

type harness struct {
	t       *testing.T
	config  string
	outDir  string
	now     time.Time
	notices *notify.Recorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api, err := mockapi.New(mockapi.Options{Seed: 7, PasswordCost: bcrypt.MinCost, Mode: "test"})
	if err != nil {
		t.Fatalf("mockapi.New: %v", err)
	}
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	h := &harness{
		t:       t,
		config:  filepath.Join(dir, "config.yaml"),
		outDir:  filepath.Join(dir, "out"),
		now:     time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		notices: &notify.Recorder{},
	}
	body := fmt.Sprintf(`api:
  base_url: %s/api
session:
  file: %s
cache:
  backend: memory
output:
  dir: %s
logging:
  level: disabled
`, srv.URL, filepath.Join(dir, "session.json"), h.outDir)
	if err := os.WriteFile(h.config, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return h
}

// run executes one command line and returns what went to stdout.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	app := New(Options{
		Stdout:   &stdout,
		Stderr:   &stderr,
		Stdin:    strings.NewReader(""),
		Now:      func() time.Time { return h.now },
		Notifier: h.notices,
	})
	argv := append([]string{"unirecords", "--config", h.config}, args...)
	err := app.RunContext(context.Background(), argv)
	return stdout.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	if err != nil {
		h.t.Fatalf("%v: %v (%s)", args, err, ErrorMessage(err))
	}
	return out
}

func (h *harness) login(username, password string) {
	h.t.Helper()
	h.mustRun("login", "--username", username, "--password", password)
}

func (h *harness) hasNotice(level notify.Level, substr string) bool {
	for _, n := range h.notices.Notices() {
		if n.Level == level && strings.Contains(n.Message, substr) {
			return true
		}
	}
	return false
}

func TestCommandsRequireLogin(t *testing.T) {
	h := newHarness(t)
	for _, args := range [][]string{
		{"whoami"},
		{"students", "list"},
		{"dashboard"},
	} {
		_, err := h.run(args...)
		if !errors.Is(err, apperrors.ErrNotLoggedIn) {
			t.Fatalf("%v: want ErrNotLoggedIn, got %v", args, err)
		}
		if ErrorMessage(err) != msgNotLoggedIn {
			t.Fatalf("message = %q", ErrorMessage(err))
		}
	}
}

func TestLoginWhoamiLogout(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("login", "--username", seed.AdminUsername, "--password", "wrong")
	if err == nil || !Reported(err) {
		t.Fatalf("bad password should fail with a reported error, got %v", err)
	}

	h.login(seed.AdminUsername, seed.AdminPassword)
	out := h.mustRun("whoami", "--json")
	var user models.User
	if err := json.Unmarshal([]byte(out), &user); err != nil {
		t.Fatalf("whoami json: %v\n%s", err, out)
	}
	if user.Username != seed.AdminUsername || user.Role != models.RoleAdmin {
		t.Fatalf("unexpected user %+v", user)
	}

	out = h.mustRun("whoami")
	if !strings.Contains(out, "นำเข้าข้อมูลนักศึกษา") {
		t.Fatalf("admin menu should list the import page:\n%s", out)
	}

	h.mustRun("logout")
	if _, err := h.run("whoami"); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("after logout: %v", err)
	}
}

func TestLoginWithoutCredentialsNeedsTerminal(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("login", "--username", seed.AdminUsername)
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("want bad request, got %v", err)
	}
}

func TestStudentsListAndShow(t *testing.T) {
	h := newHarness(t)
	h.login(seed.AdminUsername, seed.AdminPassword)

	out := h.mustRun("students", "list", "--json")
	var students []models.Student
	if err := json.Unmarshal([]byte(out), &students); err != nil {
		t.Fatalf("list json: %v", err)
	}
	if len(students) != seed.StudentCount {
		t.Fatalf("got %d students, want %d", len(students), seed.StudentCount)
	}

	out = h.mustRun("students", "list", "--search", "66100001")
	if !strings.Contains(out, "66100001") || !strings.Contains(out, "(กรองแล้ว)") {
		t.Fatalf("filtered list:\n%s", out)
	}

	out = h.mustRun("students", "show", "66100001")
	if !strings.Contains(out, students[0].FullName()) && !strings.Contains(out, "66100001") {
		t.Fatalf("show output:\n%s", out)
	}

	if _, err := h.run("students", "show", "99999999"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("unknown student: %v", err)
	}
}

func TestStudentAddValidation(t *testing.T) {
	h := newHarness(t)
	h.login(seed.AdminUsername, seed.AdminPassword)
	h.notices.Reset()

	_, err := h.run("students", "add",
		"--student-id", "123",
		"--first-name", "สมชาย",
		"--last-name", "ใจดี",
		"--faculty", "คณะวิทยาศาสตร์",
		"--department", "เคมี",
		"--email", "somchai@gmail.com",
		"--phone", "0812345678",
	)
	if err == nil || !Reported(err) {
		t.Fatalf("invalid form should be reported, got %v", err)
	}
	if !h.hasNotice(notify.LevelInfo, "student_id") || !h.hasNotice(notify.LevelInfo, "email") {
		t.Fatalf("field notices missing: %+v", h.notices.Notices())
	}

	h.mustRun("students", "add",
		"--student-id", "67000001",
		"--first-name", "สมชาย",
		"--last-name", "ใจดี",
		"--faculty", "คณะวิทยาศาสตร์",
		"--department", "เคมี",
		"--email", "somchai@university.ac.th",
		"--phone", "0812345678",
	)
	out := h.mustRun("students", "show", "67000001")
	if !strings.Contains(out, "สมชาย ใจดี") {
		t.Fatalf("added student not shown:\n%s", out)
	}

	h.mustRun("students", "edit", "--year", "3", "67000001")
	out = h.mustRun("students", "show", "--json", "67000001")
	var s models.Student
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatal(err)
	}
	if s.Year != 3 || s.Email != "somchai@university.ac.th" {
		t.Fatalf("edit should only change the year: %+v", s)
	}

	if _, err := h.run("students", "delete", "67000001"); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("delete without --yes: %v", err)
	}
	h.mustRun("students", "delete", "--yes", "67000001")
	if _, err := h.run("students", "show", "67000001"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("deleted student still found: %v", err)
	}
}

func TestStudentStatusAndGraduate(t *testing.T) {
	h := newHarness(t)
	h.login(seed.AdminUsername, seed.AdminPassword)

	if _, err := h.run("students", "status", "--to", "Expelled", "66100001"); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("invalid status: %v", err)
	}
	if _, err := h.run("students", "status", "--to", "Active"); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("empty selection: %v", err)
	}

	if _, err := h.run("students", "status", "--to", "Active", "--all", "--search", "ไม่มีชื่อนี้"); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("--all with no matches: %v", err)
	}

	h.mustRun("students", "status", "--to", "Suspended", "66100001")
	out := h.mustRun("students", "show", "--json", "66100001")
	var s models.Student
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatal(err)
	}
	if s.Status != models.StatusSuspended {
		t.Fatalf("status = %s", s.Status)
	}

	h.mustRun("students", "graduate", "66100002")
	if _, err := h.run("students", "show", "66100002"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("graduated student should leave the student list: %v", err)
	}
	out = h.mustRun("alumni", "show", "--json", "66100002")
	var a models.Alumni
	if err := json.Unmarshal([]byte(out), &a); err != nil {
		t.Fatal(err)
	}
	if a.GraduationYear != time.Now().Year() {
		t.Fatalf("graduation year = %d", a.GraduationYear)
	}
}

func TestStudentExport(t *testing.T) {
	h := newHarness(t)
	h.login(seed.AdminUsername, seed.AdminPassword)

	h.mustRun("students", "export")
	path := filepath.Join(h.outDir, csvio.ExportFileName("students", csvio.FormatCSV, h.now))
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("export file: %v", err)
	}
	defer f.Close()
	preview, err := csvio.PreviewFile(path, f)
	if err != nil {
		t.Fatal(err)
	}
	if len(preview.Rows) != seed.StudentCount {
		t.Fatalf("exported %d rows", len(preview.Rows))
	}

	out := h.mustRun("students", "export", "--format", "xlsx", "--output", "-")
	if !strings.HasPrefix(out, "PK") {
		t.Fatal("xlsx output should be a zip archive")
	}
	if _, err := h.run("students", "export", "--format", "pdf"); err == nil {
		t.Fatal("unknown format should fail")
	}
}

func TestStudentRoleIsLimited(t *testing.T) {
	h := newHarness(t)
	h.login(seed.StudentUsername, seed.StudentPassword)

	_, err := h.run("students", "list")
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("students page: %v", err)
	}
	if ErrorMessage(err) != msgPermissionDenied {
		t.Fatalf("message = %q", ErrorMessage(err))
	}
	if _, err := h.run("alumni", "export", "--output", "-"); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("export: %v", err)
	}
	if _, err := h.run("projects", "delete", "--yes", "P001"); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("project delete: %v", err)
	}
	h.mustRun("advisors", "list")
	h.mustRun("dashboard")
}

func TestAlumniOwnRecord(t *testing.T) {
	h := newHarness(t)
	h.login(seed.AlumniUsername, seed.AlumniPassword)

	out := h.mustRun("alumni", "show", "--json")
	var own models.Alumni
	if err := json.Unmarshal([]byte(out), &own); err != nil {
		t.Fatalf("own record: %v\n%s", err, out)
	}

	h.mustRun("alumni", "edit", "--employment", "employed", "--workplace", "บริษัท ตัวอย่าง จำกัด", "--skill", "Go", "--skill", "SQL")
	out = h.mustRun("alumni", "show", "--json")
	var edited models.Alumni
	if err := json.Unmarshal([]byte(out), &edited); err != nil {
		t.Fatal(err)
	}
	if edited.ID != own.ID || edited.Workplace != "บริษัท ตัวอย่าง จำกัด" || len(edited.Skills) != 2 {
		t.Fatalf("edit not applied: %+v", edited)
	}

	card := filepath.Join(h.outDir, "card.png")
	h.mustRun("alumni", "portfolio", "--no-photo", "--scale", "1", "-o", card)
	data, err := os.ReadFile(card)
	if err != nil || !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatalf("portfolio not written: %v", err)
	}
	if !h.hasNotice(notify.LevelWarning, "output.font_path") {
		t.Fatal("expected a warning about the font without Thai glyphs")
	}

	out = h.mustRun("alumni", "list", "--json")
	var all []models.Alumni
	if err := json.Unmarshal([]byte(out), &all); err != nil {
		t.Fatal(err)
	}
	for _, a := range all {
		if a.ID == own.ID {
			continue
		}
		_, err := h.run("alumni", "edit", "--position", "CTO", a.AlumniID)
		if !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Fatalf("editing another record: %v", err)
		}
		break
	}
}

func TestProjectsCommentAndFilter(t *testing.T) {
	h := newHarness(t)
	h.login(seed.AdvisorUsername, seed.AdvisorPassword)

	out := h.mustRun("projects", "list", "--json")
	var projects []models.Project
	if err := json.Unmarshal([]byte(out), &projects); err != nil {
		t.Fatal(err)
	}
	if len(projects) == 0 {
		t.Skip("advisor department has no projects for this seed")
	}
	target := projects[0].ProjectID

	h.mustRun("projects", "comment", "--message", "ควรเพิ่มบทที่ 5", target)
	out = h.mustRun("projects", "show", target)
	if !strings.Contains(out, "ควรเพิ่มบทที่ 5") || !strings.Contains(out, "อาจารย์") {
		t.Fatalf("comment not shown:\n%s", out)
	}
	if _, err := h.run("projects", "add", "--title-th", "ระบบทดสอบ"); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("advisors cannot add projects: %v", err)
	}
}

func TestImportTemplateAndPreview(t *testing.T) {
	h := newHarness(t)

	tpl := filepath.Join(t.TempDir(), "students.csv")
	h.mustRun("import", "template", "--output", tpl)
	out := h.mustRun("import", "preview", tpl)
	if !strings.Contains(out, csvio.TemplateHeader[0]) {
		t.Fatalf("preview should show the template header:\n%s", out)
	}

	legacy := filepath.Join(t.TempDir(), "old.xls")
	if err := os.WriteFile(legacy, []byte("binary"), 0o600); err != nil {
		t.Fatal(err)
	}
	out = h.mustRun("import", "preview", legacy)
	if !strings.Contains(out, "ไม่สามารถแสดงตัวอย่าง") {
		t.Fatalf("xls preview:\n%s", out)
	}

	txt := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := h.run("import", "preview", txt); !errors.Is(err, apperrors.ErrFileType) {
		t.Fatalf("txt upload: %v", err)
	}

	h.login(seed.AdminUsername, seed.AdminPassword)
	// The template example row reuses a seeded student id.
	out = h.mustRun("import", "upload", tpl)
	if !strings.Contains(out, "แถวที่ข้าม") || !h.hasNotice(notify.LevelWarning, "1") {
		t.Fatalf("duplicate row should be skipped:\n%s\n%+v", out, h.notices.Notices())
	}
}

func TestConfigInit(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run("config", "init"); !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Fatalf("existing config: %v", err)
	}

	fresh := filepath.Join(t.TempDir(), "nested", "config.yaml")
	var stdout bytes.Buffer
	app := New(Options{Stdout: &stdout, Stderr: &bytes.Buffer{}, Notifier: notify.Discard{}})
	if err := app.RunContext(context.Background(), []string{"unirecords", "--config", fresh, "config", "init"}); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatalf("config not written: %v", err)
	}
}

func TestErrorMessage(t *testing.T) {
	if got := ErrorMessage(apperrors.NewBadRequestError("กรุณาระบุ ไฟล์")); got != "กรุณาระบุ ไฟล์" {
		t.Fatalf("custom message = %q", got)
	}
	if got := ErrorMessage(fmt.Errorf("wrap: %w", apperrors.ErrPermissionDenied)); got != msgPermissionDenied {
		t.Fatalf("permission message = %q", got)
	}
	if Reported(errors.New("plain")) || !Reported(reported(errors.New("x"))) {
		t.Fatal("Reported mismatch")
	}
	if reported(nil) != nil {
		t.Fatal("reported(nil) should be nil")
	}
}

func TestMenuArgsCarryGlobalFlags(t *testing.T) {
	var got []string
	app := New(Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Notifier: notify.Discard{}})
	for _, cmd := range app.Commands {
		if cmd.Name == "menu" {
			cmd.Action = func(c *cli.Context) error {
				got = menuArgs(c, auth.NavStudents)
				return nil
			}
		}
	}
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	if err := app.RunContext(context.Background(), []string{"unirecords", "--config", cfg, "--refresh", "--log-level", "debug", "menu"}); err != nil {
		t.Fatal(err)
	}
	want := []string{"unirecords", "--config", cfg, "--log-level", "debug", "--refresh", "students", "list"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("menuArgs = %v, want %v", got, want)
	}
}

package mockapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/client"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/seed"
	"golang.org/x/crypto/bcrypt"
)

type tokens struct{ token string }

func (t *tokens) Token() string    { return t.token }
func (t *tokens) ClearAuth() error { t.token = ""; return nil }

var fixedNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newBackend(t *testing.T) (*API, *httptest.Server) {
	t.Helper()
	api, err := New(Options{
		Seed:         7,
		PasswordCost: bcrypt.MinCost,
		Mode:         "test",
		Now:          func() time.Time { return fixedNow },
		StoragePath:  t.TempDir(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return api, srv
}

func login(t *testing.T, srv *httptest.Server, username, password string) *client.Client {
	t.Helper()
	tok := &tokens{}
	c := client.New(client.Config{BaseURL: srv.URL + "/api"}, tok)
	resp, err := c.Auth.Login(context.Background(), username, password)
	if err != nil {
		t.Fatalf("login %s: %v", username, err)
	}
	if !resp.Success || resp.Data.Token == "" {
		t.Fatalf("login %s failed: %+v", username, resp)
	}
	tok.token = resp.Data.Token
	return c
}

func TestSeededCollections(t *testing.T) {
	_, srv := newBackend(t)
	c := login(t, srv, seed.AdminUsername, seed.AdminPassword)
	ctx := context.Background()

	students, page, err := c.Students.List(ctx, dto.ListParams{Limit: client.DefaultListLimit})
	if err != nil {
		t.Fatalf("students: %v", err)
	}
	if len(students) != seed.StudentCount || page.Total != seed.StudentCount {
		t.Fatalf("got %d students, total %d", len(students), page.Total)
	}
	if students[0].ID != "1" || students[0].StudentID != "66100001" {
		t.Fatalf("unexpected first student %+v", students[0])
	}

	alumni, _, err := c.Alumni.List(ctx, dto.ListParams{Limit: client.DefaultListLimit})
	if err != nil {
		t.Fatalf("alumni: %v", err)
	}
	if len(alumni) != seed.AlumniCount {
		t.Fatalf("got %d alumni", len(alumni))
	}
	if len(alumni[0].Skills) < 3 || len(alumni[0].Education) != 2 || len(alumni[0].CustomFields) != 2 {
		t.Fatalf("portfolio lists not decoded: %+v", alumni[0])
	}

	projects, _, err := c.Projects.List(ctx, dto.ListParams{Limit: client.DefaultListLimit})
	if err != nil {
		t.Fatalf("projects: %v", err)
	}
	if len(projects) != seed.ProjectCount || len(projects[0].Members) == 0 || len(projects[0].Tags) == 0 {
		t.Fatalf("unexpected projects %d %+v", len(projects), projects[0])
	}

	page2, p, err := c.Students.List(ctx, dto.ListParams{Page: 2, Limit: 20})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(page2) != 20 || p.TotalPages != 3 || page2[0].StudentID != "66100021" {
		t.Fatalf("unexpected page %d %+v", len(page2), p)
	}
}

func TestWireShapeUsesTextLists(t *testing.T) {
	_, srv := newBackend(t)

	tok := &tokens{}
	anon := client.New(client.Config{BaseURL: srv.URL + "/api"}, tok)
	resp, err := anon.Auth.Login(context.Background(), seed.AdminUsername, seed.AdminPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/alumni/1", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Data.Token)
	raw, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer raw.Body.Close()
	body, _ := io.ReadAll(raw.Body)
	if !strings.Contains(string(body), `"id":1`) || !strings.Contains(string(body), `"skills":"[`) {
		t.Fatalf("unexpected wire shape %s", body)
	}
}

func TestLoginRejected(t *testing.T) {
	_, srv := newBackend(t)
	c := client.New(client.Config{BaseURL: srv.URL + "/api"}, &tokens{})
	_, err := c.Auth.Login(context.Background(), seed.AdminUsername, "wrong")
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected 401, got %v", err)
	}
	if err.Error() != "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestProfilesPerRole(t *testing.T) {
	_, srv := newBackend(t)
	ctx := context.Background()

	cases := []struct {
		user, pass string
		check      func(p *models.Profile) bool
	}{
		{seed.StudentUsername, seed.StudentPassword, func(p *models.Profile) bool {
			return p.StudentID == "66100001" && p.Year > 0
		}},
		{seed.AdvisorUsername, seed.AdvisorPassword, func(p *models.Profile) bool {
			return p.AdvisorID == "T1000" && strings.HasPrefix(string(p.Name), "อาจารย์")
		}},
		{seed.AlumniUsername, seed.AlumniPassword, func(p *models.Profile) bool {
			return bool(p.IsAlumni) && p.AlumniID == "60000001"
		}},
		{seed.AdminUsername, seed.AdminPassword, func(p *models.Profile) bool {
			return p.Name == "ผู้ดูแลระบบ"
		}},
	}
	for _, tc := range cases {
		t.Run(tc.user, func(t *testing.T) {
			c := login(t, srv, tc.user, tc.pass)
			resp, err := c.Auth.Profile(ctx)
			if err != nil {
				t.Fatalf("profile: %v", err)
			}
			if resp.Data == nil || !tc.check(resp.Data) {
				t.Fatalf("unexpected profile %+v", resp.Data)
			}
		})
	}
}

func TestGraduateMovesStudentToAlumni(t *testing.T) {
	api, srv := newBackend(t)
	c := login(t, srv, seed.AdminUsername, seed.AdminPassword)
	ctx := context.Background()

	first, err := c.Students.Get(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	n, err := c.Students.Graduate(ctx, []string{"1", "2", "999"})
	if err != nil {
		t.Fatalf("graduate: %v", err)
	}
	if n != 2 {
		t.Fatalf("graduated %d, want 2", n)
	}
	if api.Repos.StudentRepository.Count() != seed.StudentCount-2 {
		t.Fatalf("students left: %d", api.Repos.StudentRepository.Count())
	}

	alumni, _, err := c.Alumni.List(ctx, dto.ListParams{Search: first.FirstName, Limit: client.DefaultListLimit})
	if err != nil {
		t.Fatalf("alumni: %v", err)
	}
	found := false
	for _, a := range alumni {
		if a.AlumniID == first.StudentID {
			found = true
			if a.GraduationYear != fixedNow.Year() || a.EmploymentStatus != models.EmploymentSeeking {
				t.Fatalf("unexpected graduate %+v", a)
			}
		}
	}
	if !found {
		t.Fatal("graduated student not in alumni")
	}

	acc, err := api.Repos.UserRepository.GetUserByUsername(seed.StudentUsername)
	if err != nil || !acc.IsAlumni || acc.AlumniRef == 0 {
		t.Fatalf("student account not flagged: %+v %v", acc, err)
	}
}

func TestBatchStatus(t *testing.T) {
	api, srv := newBackend(t)
	c := login(t, srv, seed.AdminUsername, seed.AdminPassword)

	n, err := c.Students.BatchUpdateStatus(context.Background(), []string{"3", "4", "500"}, models.StatusSuspended)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if n != 2 {
		t.Fatalf("affected %d", n)
	}
	s, _ := api.Repos.StudentRepository.GetByID(4)
	if s.Status != models.StatusSuspended {
		t.Fatalf("status not updated: %s", s.Status)
	}
}

func TestRolePermissions(t *testing.T) {
	_, srv := newBackend(t)
	ctx := context.Background()
	student := login(t, srv, seed.StudentUsername, seed.StudentPassword)

	_, err := student.Students.Create(ctx, models.Student{StudentID: "66199999"})
	if apperrors.StatusCode(err) != http.StatusForbidden {
		t.Fatalf("student create: expected 403, got %v", err)
	}

	_, err = student.Projects.AddComment(ctx, "1", "x", "student", "hi")
	if apperrors.StatusCode(err) != http.StatusForbidden {
		t.Fatalf("student comment: expected 403, got %v", err)
	}

	advisor := login(t, srv, seed.AdvisorUsername, seed.AdvisorPassword)
	id, err := advisor.Projects.AddComment(ctx, "1", "อาจารย์ ทดสอบ", "teacher", "ดีมาก")
	if err != nil || id == "" {
		t.Fatalf("advisor comment: %q %v", id, err)
	}
	p, err := advisor.Projects.Get(ctx, "1")
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if len(p.Comments) != 1 || p.Comments[0].Message != "ดีมาก" {
		t.Fatalf("comment not stored: %+v", p.Comments)
	}
}

func TestAlumniEditsOnlyOwnRecord(t *testing.T) {
	_, srv := newBackend(t)
	ctx := context.Background()
	c := login(t, srv, seed.AlumniUsername, seed.AlumniPassword)

	own, err := c.Alumni.Get(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	own.Workplace = "บริษัท ใหม่ จำกัด"
	own.EmploymentStatus = models.EmploymentEmployed
	if err := c.Alumni.Update(ctx, "1", own); err != nil {
		t.Fatalf("update own: %v", err)
	}

	other, err := c.Alumni.Get(ctx, "2")
	if err != nil {
		t.Fatalf("get other: %v", err)
	}
	if err := c.Alumni.Update(ctx, "2", other); apperrors.StatusCode(err) != http.StatusForbidden {
		t.Fatalf("expected 403 for other record, got %v", err)
	}
}

func TestValidationErrorsReturnFieldMessages(t *testing.T) {
	_, srv := newBackend(t)
	c := login(t, srv, seed.AdminUsername, seed.AdminPassword)

	_, err := c.Students.Create(context.Background(), models.Student{
		StudentID: "123", FirstName: "สมชาย", LastName: "ใจดี",
		Faculty: "คณะวิทยาศาสตร์", Department: "เคมี", Year: 1,
		Email: "a@university.ac.th", Phone: "0812345678",
	})
	if apperrors.StatusCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if err.Error() != "รหัสนักศึกษาต้องเป็นตัวเลข 8 หลัก" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	_, err = c.Students.Create(context.Background(), models.Student{
		StudentID: "66100001", FirstName: "สมชาย", LastName: "ใจดี",
		Faculty: "คณะวิทยาศาสตร์", Department: "เคมี", Year: 1,
		Email: "a@university.ac.th", Phone: "0812345678",
	})
	if apperrors.StatusCode(err) != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate code, got %v", err)
	}
}

func TestImportStudents(t *testing.T) {
	api, srv := newBackend(t)
	c := login(t, srv, seed.AdminUsername, seed.AdminPassword)

	csv := "\uFEFFรหัสนักศึกษา,ชื่อ,นามสกุล,คณะ,สาขา,ชั้นปี,อีเมล,เบอร์โทร,สถานะ,รหัสผ่าน\n" +
		"66200001,สมชาย,ใจดี,คณะวิทยาศาสตร์,เคมี,2,,0812345678,Active,\n" +
		"66100001,ซ้ำ,ระบบ,คณะวิทยาศาสตร์,เคมี,1,,,,\n" +
		"66200001,ซ้ำ,ไฟล์,คณะวิทยาศาสตร์,เคมี,1,,,,\n" +
		"12,,ไม่ครบ,คณะวิทยาศาสตร์,เคมี,9,bad,,,\n"

	res, err := c.Import.Students(context.Background(), "students.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Total != 4 || res.Imported != 1 || res.Skipped != 3 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.SkippedDetails) != 2 || len(res.ValidationErrors) != 1 {
		t.Fatalf("unexpected details %+v", res)
	}
	if res.ValidationErrors[0].Row != 5 || len(res.ValidationErrors[0].Errors) < 3 {
		t.Fatalf("unexpected validation error %+v", res.ValidationErrors[0])
	}

	s, err := api.Repos.StudentRepository.GetByStudentID("66200001")
	if err != nil {
		t.Fatalf("imported student missing: %v", err)
	}
	if s.Email != "66200001@sskru.ac.th" || s.Year != 2 {
		t.Fatalf("defaults not applied: %+v", s)
	}

	// The imported login uses the student code as password.
	login(t, srv, "66200001", "66200001")
}

func TestImportRejectsUnsupportedFile(t *testing.T) {
	_, srv := newBackend(t)
	c := login(t, srv, seed.AdminUsername, seed.AdminPassword)

	_, err := c.Import.Students(context.Background(), "students.txt", strings.NewReader("x"))
	if apperrors.StatusCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if err.Error() != "รองรับไฟล์ .csv, .xls, .xlsx เท่านั้น" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestChangePassword(t *testing.T) {
	_, srv := newBackend(t)
	c := login(t, srv, seed.StudentUsername, seed.StudentPassword)
	ctx := context.Background()

	if err := c.Auth.ChangePassword(ctx, "nope", "newpass1"); apperrors.StatusCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrong current password, got %v", err)
	}
	if err := c.Auth.ChangePassword(ctx, seed.StudentPassword, "newpass1"); err != nil {
		t.Fatalf("change: %v", err)
	}
	login(t, srv, seed.StudentUsername, "newpass1")
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	_, srv := newBackend(t)
	tok := &tokens{token: "garbage"}
	c := client.New(client.Config{BaseURL: srv.URL + "/api"}, tok)
	_, _, err := c.Students.List(context.Background(), dto.ListParams{})
	if !client.IsUnauthorized(err) {
		t.Fatalf("expected 401, got %v", err)
	}
	if tok.token != "" {
		t.Fatal("token should be cleared after 401")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := seed.Generate(11)
	b := seed.Generate(11)
	if a.Students[5] != b.Students[5] || a.Projects[3].TitleTH != b.Projects[3].TitleTH {
		t.Fatal("same seed produced different data")
	}
	if len(a.Advisors) != 30 {
		t.Fatalf("expected 30 advisors, got %d", len(a.Advisors))
	}
}

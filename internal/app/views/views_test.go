package views

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/yigit/unirecords/internal/app/models"
)

var students = []models.Student{
	{ID: "1", StudentID: "66100001", FirstName: "สมชาย", LastName: "ใจดี", Faculty: "วิทยาศาสตร์", Department: "วิทยาการคอมพิวเตอร์", Year: 3, Status: models.StatusActive},
	{ID: "2", StudentID: "66100002", FirstName: "Alice", LastName: "Smith", Faculty: "วิทยาศาสตร์", Department: "เคมี", Year: 1, Status: models.StatusSuspended},
	{ID: "3", StudentID: "65100003", FirstName: "Bob", LastName: "Jones", Faculty: "บริหารธุรกิจ", Department: "การตลาด", Year: 3, Status: models.StatusActive},
}

func ids(list []models.Student) []string { return StudentIDs(list) }

func TestFilterStudents(t *testing.T) {
	cases := []struct {
		name string
		user *models.User
		f    StudentFilter
		want []string
	}{
		{"everything", nil, StudentFilter{}, []string{"1", "2", "3"}},
		{"name case-insensitive", nil, StudentFilter{Search: "alice"}, []string{"2"}},
		{"last name", nil, StudentFilter{Search: "JON"}, []string{"3"}},
		{"student id substring", nil, StudentFilter{Search: "6610"}, []string{"1", "2"}},
		{"faculty", nil, StudentFilter{Faculty: "บริหารธุรกิจ"}, []string{"3"}},
		{"status", nil, StudentFilter{Status: models.StatusSuspended}, []string{"2"}},
		{"year", nil, StudentFilter{Year: 3}, []string{"1", "3"}},
		{"teacher scoped", &models.User{Role: models.RoleTeacher, Department: "เคมี"}, StudentFilter{}, []string{"2"}},
		{"teacher without department", &models.User{Role: models.RoleTeacher}, StudentFilter{}, []string{"1", "2", "3"}},
		{"admin not scoped", &models.User{Role: models.RoleAdmin, Department: "เคมี"}, StudentFilter{Year: 3}, []string{"1", "3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(FilterStudents(tc.user, students, tc.f))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStudentChoices(t *testing.T) {
	if got := StudentFaculties(students); !reflect.DeepEqual(got, []string{"วิทยาศาสตร์", "บริหารธุรกิจ"}) {
		t.Fatalf("faculties = %v", got)
	}
	if got := StudentYears(students); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("years = %v", got)
	}
}

func TestSelection(t *testing.T) {
	visible := []string{"1", "2", "3"}
	sel := NewSelection()
	sel.Toggle("2")
	sel.Toggle("3")
	sel.Toggle("2")
	if !reflect.DeepEqual(sel.IDs(), []string{"3"}) {
		t.Fatalf("toggle: %v", sel.IDs())
	}

	sel.ToggleAll(visible)
	if !sel.AllSelected(visible) || !reflect.DeepEqual(sel.IDs(), visible) {
		t.Fatalf("select all: %v", sel.IDs())
	}
	sel.ToggleAll(visible)
	if sel.Len() != 0 {
		t.Fatalf("second select-all should clear, got %v", sel.IDs())
	}
	if sel.AllSelected(nil) {
		t.Fatal("an empty list is never fully selected")
	}
}

type fakeChanger struct {
	graduated []string
	status    models.StudentStatus
	updated   []string
	err       error
}

func (f *fakeChanger) GraduateStudents(_ context.Context, ids []string) error {
	f.graduated = ids
	return f.err
}

func (f *fakeChanger) UpdateStudentStatus(_ context.Context, ids []string, status models.StudentStatus) error {
	f.updated, f.status = ids, status
	return f.err
}

func TestChangeStatus(t *testing.T) {
	ctx := context.Background()

	store := &fakeChanger{}
	if _, err := ChangeStatus(ctx, store, NewSelection(), models.StatusActive); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected empty selection error, got %v", err)
	}

	sel := NewSelection("1", "2")
	msg, err := ChangeStatus(ctx, store, sel, models.StatusGraduated)
	if err != nil {
		t.Fatalf("graduate: %v", err)
	}
	if !reflect.DeepEqual(store.graduated, []string{"1", "2"}) || store.updated != nil {
		t.Fatalf("graduate should call GraduateStudents only: %+v", store)
	}
	if msg != "นักศึกษาจบการศึกษาสำเร็จ 2 คน และย้ายไปยังระบบศิษย์เก่าแล้ว" || sel.Len() != 0 {
		t.Fatalf("unexpected message %q or selection %v", msg, sel.IDs())
	}

	store = &fakeChanger{}
	sel = NewSelection("3")
	msg, err = ChangeStatus(ctx, store, sel, models.StatusSuspended)
	if err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if store.status != models.StatusSuspended || msg != "เปลี่ยนสถานะเป็น \"พักการศึกษา\" สำเร็จ 1 คน" {
		t.Fatalf("unexpected %q %+v", msg, store)
	}

	store = &fakeChanger{err: errors.New("boom")}
	sel = NewSelection("3")
	if _, err := ChangeStatus(ctx, store, sel, models.StatusActive); err == nil || sel.Len() != 1 {
		t.Fatal("failures keep the selection")
	}
}

var alumni = []models.Alumni{
	{AlumniID: "60000001", FirstName: "Somsri", LastName: "Rakdee", Faculty: "วิทยาศาสตร์", Department: "วิทยาการคอมพิวเตอร์", GraduationYear: 2021, Workplace: "Agoda"},
	{AlumniID: "60000002", FirstName: "Niran", LastName: "Kaewta", Faculty: "วิทยาศาสตร์", Department: "เคมี", GraduationYear: 2023, Workplace: "PTT"},
	{AlumniID: "60000003", FirstName: "Malee", LastName: "Boonmee", Faculty: "บริหารธุรกิจ", Department: "วิทยาการคอมพิวเตอร์", GraduationYear: 2021, Workplace: "SCB"},
}

func alumniIDs(list []models.Alumni) []string {
	var out []string
	for _, a := range list {
		out = append(out, a.AlumniID)
	}
	return out
}

func TestFilterAlumni(t *testing.T) {
	me := &models.User{Role: models.RoleAlumni, AlumniID: "60000003", Department: "วิทยาการคอมพิวเตอร์"}

	if got := alumniIDs(FilterAlumni(nil, alumni, AlumniFilter{Search: "agod"})); !reflect.DeepEqual(got, []string{"60000001"}) {
		t.Fatalf("workplace search = %v", got)
	}
	if got := alumniIDs(FilterAlumni(me, alumni, AlumniFilter{})); !reflect.DeepEqual(got, []string{"60000001", "60000003"}) {
		t.Fatalf("scoped = %v", got)
	}
	if got := alumniIDs(FilterAlumni(nil, alumni, AlumniFilter{Faculty: "วิทยาศาสตร์", Year: 2023})); !reflect.DeepEqual(got, []string{"60000002"}) {
		t.Fatalf("faculty+year = %v", got)
	}
	if got := AlumniYears(nil, alumni); !reflect.DeepEqual(got, []int{2023, 2021}) {
		t.Fatalf("years = %v", got)
	}
	if got := AlumniFaculties(me, alumni); !reflect.DeepEqual(got, []string{"วิทยาศาสตร์", "บริหารธุรกิจ"}) {
		t.Fatalf("faculties = %v", got)
	}
	rec, ok := MyAlumniRecord(me, alumni)
	if !ok || rec.AlumniID != "60000003" {
		t.Fatalf("own record = %+v %v", rec, ok)
	}
	if _, ok := MyAlumniRecord(&models.User{Role: models.RoleAdmin}, alumni); ok {
		t.Fatal("admins have no own alumni record")
	}
}

func TestFilterProjects(t *testing.T) {
	advisors := []models.Advisor{
		{Name: "ดร.สมศักดิ์", Department: "วิทยาการคอมพิวเตอร์"},
		{Name: "ดร.วิไล", Department: "เคมี"},
	}
	projects := []models.Project{
		{ID: "1", TitleTH: "ระบบจัดการหอพัก", TitleEN: "Dormitory System", Advisor: "ดร.สมศักดิ์", Year: 2023, Status: models.ProjectApproved, Type: models.ProjectGroup, Tags: []string{"Web Application"}},
		{ID: "2", TitleTH: "วิเคราะห์สารเคมี", TitleEN: "Chemical Analysis", Advisor: "ดร.วิไล", Year: 2024, Status: models.ProjectDraft, Type: models.ProjectIndividual, Tags: []string{"Data Science"}},
		{ID: "3", TitleTH: "แอปพลิเคชันสุขภาพ", TitleEN: "Health App", Advisor: "ดร.สมศักดิ์", Year: 2024, Status: models.ProjectCompleted, Type: models.ProjectIndividual, Tags: []string{"Mobile App", "AI/ML"}},
	}
	pids := func(list []models.Project) []string {
		var out []string
		for _, p := range list {
			out = append(out, p.ID)
		}
		return out
	}

	cases := []struct {
		name string
		user *models.User
		f    ProjectFilter
		want []string
	}{
		{"admin sees all", &models.User{Role: models.RoleAdmin, Department: "เคมี"}, ProjectFilter{}, []string{"1", "2", "3"}},
		{"student scoped by advisor department", &models.User{Role: models.RoleStudent, Department: "วิทยาการคอมพิวเตอร์"}, ProjectFilter{}, []string{"1", "3"}},
		{"no department no scope", &models.User{Role: models.RoleTeacher}, ProjectFilter{}, []string{"1", "2", "3"}},
		{"english title", nil, ProjectFilter{Search: "health"}, []string{"3"}},
		{"tag", nil, ProjectFilter{Search: "ai/"}, []string{"3"}},
		{"year status type", nil, ProjectFilter{Year: 2024, Status: models.ProjectDraft, Type: models.ProjectIndividual}, []string{"2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pids(FilterProjects(tc.user, projects, advisors, tc.f)); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
	if got := ProjectYears(projects); !reflect.DeepEqual(got, []int{2024, 2023}) {
		t.Fatalf("years = %v", got)
	}
}

func TestFilterAdvisors(t *testing.T) {
	advisors := []models.Advisor{
		{Name: "Dr. Anan", Faculty: "วิทยาศาสตร์"},
		{Name: "Dr. Boonma", Faculty: "บริหารธุรกิจ"},
		{Name: "Prof. Chai", Faculty: "วิทยาศาสตร์"},
	}
	got := FilterAdvisors(advisors, AdvisorFilter{Search: "dr.", Faculty: "วิทยาศาสตร์"})
	if len(got) != 1 || got[0].Name != "Dr. Anan" {
		t.Fatalf("got %+v", got)
	}
	if f := AdvisorFaculties(advisors); !reflect.DeepEqual(f, []string{"วิทยาศาสตร์", "บริหารธุรกิจ"}) {
		t.Fatalf("faculties = %v", f)
	}
}

func TestCountLabel(t *testing.T) {
	if got := CountLabel(3, "คน", true); got != "ทั้งหมด 3 คน (กรองแล้ว)" {
		t.Fatalf("got %q", got)
	}
	if got := CountLabel(0, "ท่าน", false); got != "ทั้งหมด 0 ท่าน" {
		t.Fatalf("got %q", got)
	}
}

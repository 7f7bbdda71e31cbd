package validation

import (
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
)

// SubmitFailedMessage is shown when any field fails.
const SubmitFailedMessage = "กรุณาตรวจสอบข้อมูลให้ถูกต้อง"

// Errors maps form fields (by JSON name) to their Thai messages.
type Errors struct {
	Fields map[string]string
}

// Error implements error interface
func (e *Errors) Error() string {
	return SubmitFailedMessage
}

// Unwrap lets errors.Is match apperrors.ErrValidationFailed.
func (e *Errors) Unwrap() error {
	return apperrors.ErrValidationFailed
}

// Field returns the message for one field, or "".
func (e *Errors) Field(name string) string {
	if e == nil {
		return ""
	}
	return e.Fields[name]
}

// Names returns the failing field names in sorted order.
func (e *Errors) Names() []string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

var studentMessages = map[string]string{
	"student_id": "รหัสนักศึกษาต้องเป็นตัวเลข 8 หลัก",
	"first_name": "ชื่อต้องเป็นตัวอักษรเท่านั้น",
	"last_name":  "นามสกุลต้องเป็นตัวอักษรเท่านั้น",
	"email":      "อีเมลต้องเป็นของมหาวิทยาลัย (@university.ac.th)",
	"phone":      "เบอร์โทรต้องเป็นตัวเลข 10 หลักและขึ้นต้นด้วย 0",
	"year":       "ชั้นปีต้องอยู่ระหว่าง 1-5",
	"faculty":    "กรุณาเลือกคณะ",
	"department": "กรุณาเลือกสาขา",
}

var alumniMessages = map[string]string{
	"first_name":      "ชื่อต้องเป็นตัวอักษรเท่านั้น",
	"last_name":       "นามสกุลต้องเป็นตัวอักษรเท่านั้น",
	"faculty":         "กรุณาเลือกคณะ",
	"department":      "กรุณาเลือกสาขา",
	"graduation_year": "ปีที่จบไม่ถูกต้อง",
	"workplace":       "กรุณากรอกสถานที่ทำงาน",
}

var advisorMessages = map[string]string{
	"name":       "กรุณากรอกชื่ออาจารย์",
	"faculty":    "กรุณาเลือกคณะ",
	"department": "กรุณาเลือกภาควิชา",
	"email":      "อีเมลต้องเป็นของมหาวิทยาลัย (@university.ac.th)",
	"phone":      "เบอร์โทรต้องเป็นตัวเลข 10 หลักและขึ้นต้นด้วย 0",
}

var projectMessages = map[string]string{
	"project_id":  "กรุณาระบุรหัสโครงงาน",
	"title_th":    "ชื่อโปรเจคต้องมีความยาวอย่างน้อย 5 ตัวอักษร",
	"advisor":     "กรุณาเลือกอาจารย์ที่ปรึกษา",
	"description": "กรุณากรอกรายละเอียดโปรเจค",
	"members":     "โปรเจคกลุ่มต้องมีสมาชิกอย่างน้อย 2 คน",
}

var passwordMessages = map[string]string{
	"currentPassword": "กรุณากรอกรหัสผ่านปัจจุบัน",
	"newPassword":     "รหัสผ่านใหม่ต้องมีอย่างน้อย 6 ตัวอักษร",
}

type studentForm struct {
	StudentID  string `json:"student_id" validate:"studentid"`
	FirstName  string `json:"first_name" validate:"personname"`
	LastName   string `json:"last_name" validate:"personname"`
	Email      string `json:"email" validate:"uniemail"`
	Phone      string `json:"phone" validate:"thphone"`
	Year       int    `json:"year" validate:"min=1,max=5"`
	Faculty    string `json:"faculty" validate:"required"`
	Department string `json:"department" validate:"required"`
}

type alumniForm struct {
	FirstName        string `json:"first_name" validate:"personname"`
	LastName         string `json:"last_name" validate:"personname"`
	Faculty          string `json:"faculty" validate:"required"`
	Department       string `json:"department" validate:"required"`
	GraduationYear   int    `json:"graduation_year" validate:"gradyear"`
	EmploymentStatus string `json:"employment_status"`
	Workplace        string `json:"workplace" validate:"required_if=EmploymentStatus employed"`
}

type advisorForm struct {
	Name       string `json:"name" validate:"required"`
	Faculty    string `json:"faculty" validate:"required"`
	Department string `json:"department" validate:"required"`
	Email      string `json:"email" validate:"uniemail"`
	Phone      string `json:"phone" validate:"thphone"`
}

type projectForm struct {
	ProjectID   string   `json:"project_id" validate:"notblank"`
	TitleTH     string   `json:"title_th" validate:"min=5"`
	Advisor     string   `json:"advisor" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Type        string   `json:"type"`
	Members     []string `json:"members"`
}

type passwordForm struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"min=6"`
}

// Validator checks record forms before they are submitted.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New returns a Validator using the wall clock for year checks.
func New() *Validator {
	return NewWithClock(time.Now)
}

// NewWithClock returns a Validator whose graduation-year bound follows now.
func NewWithClock(now func() time.Time) *Validator {
	v := &Validator{validate: validator.New(validator.WithRequiredStructEnabled()), now: now}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.mustRegister("studentid", matchPattern(CompiledPatterns.StudentID.MatchString))
	v.mustRegister("personname", matchPattern(CompiledPatterns.Name.MatchString))
	v.mustRegister("uniemail", matchPattern(CompiledPatterns.UniversityEmail.MatchString))
	v.mustRegister("thphone", matchPattern(CompiledPatterns.Phone.MatchString))
	v.mustRegister("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.mustRegister("gradyear", func(fl validator.FieldLevel) bool {
		return NewNumericValidation(int(fl.Field().Int())).
			WithMin(MinGraduationYear).
			WithMax(v.now().Year()).
			Validate()
	})

	v.validate.RegisterStructValidation(func(sl validator.StructLevel) {
		form := sl.Current().Interface().(projectForm)
		if form.Type == string(models.ProjectGroup) && len(CleanMembers(form.Members)) < MinGroupMembers {
			sl.ReportError(form.Members, "members", "Members", "groupmembers", "")
		}
	}, projectForm{})

	return v
}

func (v *Validator) mustRegister(tag string, fn validator.Func) {
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func matchPattern(match func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return match(fl.Field().String())
	}
}

// Student validates a student form.
func (v *Validator) Student(s models.Student) error {
	return v.check(studentForm{
		StudentID:  s.StudentID,
		FirstName:  s.FirstName,
		LastName:   s.LastName,
		Email:      s.Email,
		Phone:      s.Phone,
		Year:       s.Year,
		Faculty:    s.Faculty,
		Department: s.Department,
	}, studentMessages)
}

// Alumni validates an alumni form.
func (v *Validator) Alumni(a models.Alumni) error {
	return v.check(alumniForm{
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		Faculty:          a.Faculty,
		Department:       a.Department,
		GraduationYear:   a.GraduationYear,
		EmploymentStatus: string(a.EmploymentStatus),
		Workplace:        a.Workplace,
	}, alumniMessages)
}

// Advisor validates an advisor form.
func (v *Validator) Advisor(a models.Advisor) error {
	return v.check(advisorForm{
		Name:       a.Name,
		Faculty:    a.Faculty,
		Department: a.Department,
		Email:      a.Email,
		Phone:      a.Phone,
	}, advisorMessages)
}

// Project validates a project form. Call NormalizeProject before submitting.
func (v *Validator) Project(p models.Project) error {
	return v.check(projectForm{
		ProjectID:   p.ProjectID,
		TitleTH:     p.TitleTH,
		Advisor:     p.Advisor,
		Description: p.Description,
		Type:        string(p.Type),
		Members:     p.Members,
	}, projectMessages)
}

// ChangePassword validates a password change request.
func (v *Validator) ChangePassword(current, next string) error {
	return v.check(passwordForm{CurrentPassword: current, NewPassword: next}, passwordMessages)
}

func (v *Validator) check(form interface{}, messages map[string]string) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("%v", err)
	}

	out := &Errors{Fields: make(map[string]string, len(validationErrors))}
	for _, fe := range validationErrors {
		if _, seen := out.Fields[fe.Field()]; seen {
			continue
		}
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = formatValidationError(fe)
		}
		out.Fields[fe.Field()] = msg
	}
	return out
}

// formatValidationError creates a fallback message for fields without a Thai text
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}

// CleanMembers trims member names and drops blanks.
func CleanMembers(members []string) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// DedupTags trims tags and keeps the first occurrence of each.
func DedupTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// NormalizeProject returns p with members cleaned and tags deduplicated.
func NormalizeProject(p models.Project) models.Project {
	p.Members = CleanMembers(p.Members)
	p.Tags = DedupTags(p.Tags)
	if p.Type == "" {
		p.Type = models.ProjectIndividual
	}
	if p.Status == "" {
		p.Status = models.ProjectDraft
	}
	return p
}

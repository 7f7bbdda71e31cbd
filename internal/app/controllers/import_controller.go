package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/app/repositories"
	"github.com/yigit/unirecords/internal/csvio"
	"github.com/yigit/unirecords/internal/middleware"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/auth"
	"github.com/yigit/unirecords/internal/pkg/filestorage"
	"github.com/yigit/unirecords/internal/pkg/validation"
)

// ImportEmailDomain is appended to the student code when a row has no email.
const ImportEmailDomain = "@sskru.ac.th"

// importColumns maps template headers, Thai or English, to row fields.
var importColumns = map[string]string{
	"รหัสนักศึกษา": "student_id",
	"ชื่อ":         "first_name",
	"นามสกุล":      "last_name",
	"คณะ":          "faculty",
	"สาขา":         "department",
	"ชั้นปี":       "year",
	"อีเมล":        "email",
	"เบอร์โทร":     "phone",
	"ที่อยู่":      "address",
	"สถานะ":        "status",
	"รหัสผ่าน":     "password",
}

// ImportController handles bulk student uploads
type ImportController struct {
	repos        *repositories.Repositories
	storage      filestorage.FileStorage
	passwordCost int
	logger       zerolog.Logger
}

// NewImportController creates a new ImportController. storage may be nil, in
// which case uploads are not archived.
func NewImportController(repos *repositories.Repositories, storage filestorage.FileStorage, passwordCost int, logger zerolog.Logger) *ImportController {
	return &ImportController{repos: repos, storage: storage, passwordCost: passwordCost, logger: logger}
}

// ImportStudents reads a CSV or XLSX upload and creates one student and one
// login per valid row. Duplicate codes are skipped; invalid rows are reported.
func (c *ImportController) ImportStudents(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrBadRequest, "กรุณาเลือกไฟล์"))
		return
	}
	if err := csvio.CheckUpload(fileHeader.Filename, fileHeader.Size); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	rows, err := csvio.ReadTable(fileHeader.Filename, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if len(rows) < 2 {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrBadRequest, "ไม่พบข้อมูลในไฟล์"))
		return
	}

	if c.storage != nil {
		if _, err := c.storage.SaveFileWithPath(fileHeader, "imports"); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to archive upload")
		}
	}

	result := c.importRows(rows)
	c.logger.Info().
		Int("total", result.Total).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("Student import finished")

	ctx.JSON(http.StatusOK, dto.NewSuccess(result, "นำเข้าข้อมูลเสร็จสิ้น"))
}

func (c *ImportController) importRows(rows [][]string) dto.ImportResult {
	index := make(map[string]int)
	for i, h := range rows[0] {
		key := strings.TrimSpace(h)
		if field, ok := importColumns[key]; ok {
			key = field
		}
		index[strings.ToLower(key)] = i
	}

	result := dto.ImportResult{
		Total:            len(rows) - 1,
		ValidationErrors: []dto.ImportRowError{},
		SkippedDetails:   []dto.ImportSkipped{},
	}
	seen := make(map[string]bool)

	for i, rec := range rows[1:] {
		rowNum := i + 2
		get := func(field string) string {
			col, ok := index[field]
			if !ok || col >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[col])
		}

		student, password, problems := parseImportRow(get)
		if len(problems) > 0 {
			result.ValidationErrors = append(result.ValidationErrors, dto.ImportRowError{
				Row:       rowNum,
				StudentID: student.StudentID,
				Errors:    problems,
			})
			continue
		}

		if seen[student.StudentID] {
			result.SkippedDetails = append(result.SkippedDetails, dto.ImportSkipped{
				Row: rowNum, StudentID: student.StudentID, Reason: "รหัสนักศึกษาซ้ำในไฟล์",
			})
			continue
		}
		seen[student.StudentID] = true

		id, err := c.repos.StudentRepository.Create(student)
		if err != nil {
			result.SkippedDetails = append(result.SkippedDetails, dto.ImportSkipped{
				Row: rowNum, StudentID: student.StudentID, Reason: "รหัสนักศึกษานี้มีอยู่ในระบบแล้ว",
			})
			continue
		}
		c.createLogin(id, student, password)
		result.Imported++
	}

	result.Skipped = len(result.SkippedDetails) + len(result.ValidationErrors)
	return result
}

func (c *ImportController) createLogin(studentRef int64, s models.Student, password string) {
	hash, err := auth.HashPasswordCost(password, c.passwordCost)
	if err != nil {
		c.logger.Warn().Err(err).Str("studentID", s.StudentID).Msg("Failed to hash imported password")
		return
	}
	_, err = c.repos.UserRepository.CreateUser(models.Account{
		Username:     s.StudentID,
		PasswordHash: hash,
		Role:         models.RoleStudent,
		Name:         s.FullName(),
		StudentRef:   studentRef,
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("studentID", s.StudentID).Msg("Login not created for imported student")
	}
}

// parseImportRow builds a student from one row. The password defaults to the
// student code and the email to <code>@sskru.ac.th.
func parseImportRow(get func(string) string) (models.Student, string, []string) {
	var problems []string
	patterns := validation.CompiledPatterns

	s := models.Student{
		StudentID:  get("student_id"),
		FirstName:  get("first_name"),
		LastName:   get("last_name"),
		Faculty:    get("faculty"),
		Department: get("department"),
		Email:      get("email"),
		Phone:      get("phone"),
		Address:    get("address"),
		Status:     models.StudentStatus(get("status")),
		Year:       1,
	}

	text := func(v string) *validation.StringValidation {
		return validation.NewStringValidation(v).WithMaxLength(validation.MaxTextLength)
	}
	checks := []struct {
		rule    *validation.StringValidation
		problem string
	}{
		{validation.NewStringValidation(s.StudentID).WithPattern(patterns.StudentID), "รหัสนักศึกษาต้องเป็นตัวเลข 8 หลัก"},
		{text(s.FirstName), "กรุณากรอกชื่อ ไม่เกิน 100 ตัวอักษร"},
		{text(s.LastName), "กรุณากรอกนามสกุล ไม่เกิน 100 ตัวอักษร"},
		{text(s.Faculty), "กรุณากรอกคณะ"},
		{text(s.Department), "กรุณากรอกสาขา"},
		{text(s.Email).WithRequired(false).WithPattern(patterns.Email), "รูปแบบอีเมลไม่ถูกต้อง"},
		{validation.NewStringValidation(s.Phone).WithRequired(false).WithPattern(patterns.Phone), "เบอร์โทรต้องเป็นตัวเลข 10 หลักและขึ้นต้นด้วย 0"},
	}
	for _, c := range checks {
		if !c.rule.Validate() {
			problems = append(problems, c.problem)
		}
	}

	if raw := get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1 || year > 5 {
			problems = append(problems, "ชั้นปีต้องอยู่ระหว่าง 1-5")
		} else {
			s.Year = year
		}
	}

	if s.Email == "" {
		s.Email = s.StudentID + ImportEmailDomain
	}

	if s.Status == "" {
		s.Status = models.StatusActive
	} else if !s.Status.Valid() {
		problems = append(problems, "สถานะต้องเป็น Active, Graduated หรือ Suspended")
	}

	password := get("password")
	if password == "" {
		password = s.StudentID
	}
	return s, password, problems
}

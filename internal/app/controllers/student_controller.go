package controllers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/app/repositories"
	"github.com/yigit/unirecords/internal/middleware"
	"github.com/yigit/unirecords/internal/pkg/helpers"
	"github.com/yigit/unirecords/internal/pkg/validation"
)

// StudentController handles /students
type StudentController struct {
	repos     *repositories.Repositories
	validator *validation.Validator
	now       func() time.Time
	logger    zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(repos *repositories.Repositories, v *validation.Validator, now func() time.Time, logger zerolog.Logger) *StudentController {
	if now == nil {
		now = time.Now
	}
	return &StudentController{repos: repos, validator: v, now: now, logger: logger}
}

// listFilter reads page, limit, search and the given exact-match keys.
func listFilter(ctx *gin.Context, keys ...string) repositories.ListFilter {
	page, limit := helpers.ParsePaginationParams(ctx)
	f := repositories.ListFilter{
		Search: ctx.Query("search"),
		Page:   page,
		Limit:  limit,
		Match:  make(map[string]string, len(keys)),
	}
	for _, k := range keys {
		f.Match[k] = ctx.Query(k)
	}
	return f
}

// GetStudents lists students
func (c *StudentController) GetStudents(ctx *gin.Context) {
	f := listFilter(ctx, "faculty", "department", "status", "year")
	rows, total := c.repos.StudentRepository.List(f)
	ctx.JSON(http.StatusOK, dto.NewList(mapRows(rows, toStudentWire), helpers.NewPaginationInfo(total, f.Page, f.Limit)))
}

// GetStudentByID returns one student
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "นักศึกษา")
	if !ok {
		return
	}
	student, err := c.repos.StudentRepository.GetByID(id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccess(toStudentWire(student), ""))
}

// CreateStudent adds a student
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var student models.Student
	if !middleware.BindJSON(ctx, &student) {
		return
	}
	if student.Status == "" {
		student.Status = models.StatusActive
	}
	if err := c.validator.Student(student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	id, err := c.repos.StudentRepository.Create(student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("id", id).Str("studentID", student.StudentID).Msg("Student created")
	ctx.JSON(http.StatusCreated, dto.NewSuccess(dto.CreatedID{ID: id}, "เพิ่มข้อมูลนักศึกษาสำเร็จ"))
}

// UpdateStudent replaces a student
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseID(ctx, "นักศึกษา")
	if !ok {
		return
	}
	var student models.Student
	if !middleware.BindJSON(ctx, &student) {
		return
	}
	if student.Status == "" {
		student.Status = models.StatusActive
	}
	if err := c.validator.Student(student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.repos.StudentRepository.Update(id, student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccess(struct{}{}, "แก้ไขข้อมูลนักศึกษาสำเร็จ"))
}

// DeleteStudent removes a student
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseID(ctx, "นักศึกษา")
	if !ok {
		return
	}
	if err := c.repos.StudentRepository.Delete(id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccess(struct{}{}, "ลบข้อมูลนักศึกษาสำเร็จ"))
}

// BatchUpdateStatus sets one status on many students
func (c *StudentController) BatchUpdateStatus(ctx *gin.Context) {
	var req dto.BatchStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	affected := c.repos.StudentRepository.UpdateStatus(req.StudentIDs, models.StudentStatus(req.Status))
	c.logger.Info().Int("affected", affected).Str("status", req.Status).Msg("Student status updated")
	ctx.JSON(http.StatusOK, dto.NewSuccess(dto.BatchStatusResult{AffectedRows: affected}, "อัปเดตสถานะสำเร็จ"))
}

// GraduateStudents moves students into the alumni table. Each new alumni
// record keeps the student code as its alumni id and starts as seeking work;
// linked accounts are flagged as alumni.
func (c *StudentController) GraduateStudents(ctx *gin.Context) {
	var req dto.StudentIDsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	taken := c.repos.StudentRepository.Take(req.StudentIDs)
	ids := make([]int64, 0, len(taken))
	for id := range taken {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	year := c.now().Year()
	for _, id := range ids {
		s := taken[id]
		alumniRef := c.repos.AlumniRepository.Create(models.Alumni{
			AlumniID:         s.StudentID,
			FirstName:        s.FirstName,
			LastName:         s.LastName,
			Faculty:          s.Faculty,
			Department:       s.Department,
			GraduationYear:   year,
			Email:            s.Email,
			Phone:            s.Phone,
			Address:          s.Address,
			EmploymentStatus: models.EmploymentSeeking,
		})
		c.repos.UserRepository.MarkAlumni(id, alumniRef)
	}

	c.logger.Info().Int("count", len(ids)).Str("year", strconv.Itoa(year)).Msg("Students graduated")
	ctx.JSON(http.StatusOK, dto.NewSuccess(dto.GraduateResult{GraduatedCount: len(ids)}, "ย้ายนักศึกษาไปยังศิษย์เก่าสำเร็จ"))
}

package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/app/models/dto/enums"
)

// The records backend stores sub-lists as JSON text columns and flags as
// tinyints; responses keep that shape.

type studentWire struct {
	ID int64 `json:"id"`
	models.Student
}

type alumniWire struct {
	ID int64 `json:"id"`
	models.Alumni
	Skills       string `json:"skills"`
	Education    string `json:"education"`
	Experience   string `json:"experience"`
	CustomFields string `json:"custom_fields"`
}

type advisorWire struct {
	ID int64 `json:"id"`
	models.Advisor
}

type projectWire struct {
	ID int64 `json:"id"`
	models.Project
	Members  string                  `json:"members"`
	Tags     string                  `json:"tags"`
	HasAward int                     `json:"has_award"`
	Comments []models.ProjectComment `json:"comments"`
}

type loginUserWire struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type loginWire struct {
	Token string        `json:"token"`
	User  loginUserWire `json:"user"`
}

type profileWire struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	Name       string `json:"name,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Email      string `json:"email,omitempty"`
	Faculty    string `json:"faculty,omitempty"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty"`
	StudentID  string `json:"student_id,omitempty"`
	AdvisorID  string `json:"advisor_id,omitempty"`
	AlumniID   string `json:"alumni_id,omitempty"`
	Year       int    `json:"year,omitempty"`
	IsAlumni   int    `json:"is_alumni"`
}

func recordID(id string) int64 {
	n, _ := strconv.ParseInt(id, 10, 64)
	return n
}

func jsonText(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return "[]"
	}
	return string(b)
}

func toStudentWire(s models.Student) studentWire {
	return studentWire{ID: recordID(s.ID), Student: s}
}

func toAlumniWire(a models.Alumni) alumniWire {
	return alumniWire{
		ID:           recordID(a.ID),
		Alumni:       a,
		Skills:       jsonText(a.Skills),
		Education:    jsonText(a.Education),
		Experience:   jsonText(a.Experience),
		CustomFields: jsonText(a.CustomFields),
	}
}

func toAdvisorWire(a models.Advisor) advisorWire {
	return advisorWire{ID: recordID(a.ID), Advisor: a}
}

func toProjectWire(p models.Project) projectWire {
	award := 0
	if p.HasAward {
		award = 1
	}
	comments := p.Comments
	if comments == nil {
		comments = []models.ProjectComment{}
	}
	return projectWire{
		ID:       recordID(p.ID),
		Project:  p,
		Members:  jsonText(p.Members),
		Tags:     jsonText(p.Tags),
		HasAward: award,
		Comments: comments,
	}
}

func mapRows[T, W any](rows []T, fn func(T) W) []W {
	out := make([]W, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}

// parseID reads the :id path parameter, answering 400 when it is not a
// positive number.
func parseID(ctx *gin.Context, what string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(enums.ErrorCodeValidationFailed, "รหัส"+what+"ไม่ถูกต้อง").
			WithDetails("ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

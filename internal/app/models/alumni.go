package models

import "strings"

// EducationEntry is one line of an alumnus' education history
type EducationEntry struct {
	Years       string `json:"years"`
	Institution string `json:"institution"`
	Address     string `json:"address"`
	Grade       string `json:"grade"`
}

// ExperienceEntry is one line of work history
type ExperienceEntry struct {
	Years    string `json:"years"`
	Company  string `json:"company"`
	Position string `json:"position"`
}

// CustomField is a free-form label/value pair shown on the portfolio
type CustomField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Alumni is a graduate record with portfolio fields
type Alumni struct {
	ID               string            `json:"id,omitempty"`
	AlumniID         string            `json:"alumni_id"`
	FirstName        string            `json:"first_name"`
	LastName         string            `json:"last_name"`
	Faculty          string            `json:"faculty"`
	Department       string            `json:"department"`
	GraduationYear   int               `json:"graduation_year"`
	Workplace        string            `json:"workplace"`
	Position         string            `json:"position"`
	ContactInfo      string            `json:"contact_info"`
	Portfolio        string            `json:"portfolio"`
	PhotoURL         string            `json:"photo_url"`
	EmploymentStatus EmploymentStatus  `json:"employment_status"`
	AboutMe          string            `json:"about_me"`
	Email            string            `json:"email"`
	Address          string            `json:"address"`
	Phone            string            `json:"phone"`
	Skills           []string          `json:"skills"`
	Education        []EducationEntry  `json:"education"`
	Experience       []ExperienceEntry `json:"experience"`
	CustomFields     []CustomField     `json:"custom_fields"`
}

// FullName joins first and last name.
func (a Alumni) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// AlumniRow is an alumni record as returned by the API
type AlumniRow struct {
	ID               FlexString                `json:"id"`
	AlumniID         FlexString                `json:"alumni_id"`
	FirstName        FlexString                `json:"first_name"`
	LastName         FlexString                `json:"last_name"`
	Faculty          FlexString                `json:"faculty"`
	Department       FlexString                `json:"department"`
	GraduationYear   FlexInt                   `json:"graduation_year"`
	Workplace        FlexString                `json:"workplace"`
	Position         FlexString                `json:"position"`
	ContactInfo      FlexString                `json:"contact_info"`
	Portfolio        FlexString                `json:"portfolio"`
	PhotoURL         FlexString                `json:"photo_url"`
	EmploymentStatus FlexString                `json:"employment_status"`
	AboutMe          FlexString                `json:"about_me"`
	Email            FlexString                `json:"email"`
	Address          FlexString                `json:"address"`
	Phone            FlexString                `json:"phone"`
	Skills           JSONList[string]          `json:"skills"`
	Education        JSONList[EducationEntry]  `json:"education"`
	Experience       JSONList[ExperienceEntry] `json:"experience"`
	CustomFields     JSONList[CustomField]     `json:"custom_fields"`
}

// Record maps the row into an Alumni, defaulting employment to seeking.
func (r AlumniRow) Record() Alumni {
	employment := EmploymentStatus(r.EmploymentStatus)
	if employment == "" {
		employment = EmploymentSeeking
	}
	return Alumni{
		ID:               string(r.ID),
		AlumniID:         string(r.AlumniID),
		FirstName:        string(r.FirstName),
		LastName:         string(r.LastName),
		Faculty:          string(r.Faculty),
		Department:       string(r.Department),
		GraduationYear:   int(r.GraduationYear),
		Workplace:        string(r.Workplace),
		Position:         string(r.Position),
		ContactInfo:      string(r.ContactInfo),
		Portfolio:        string(r.Portfolio),
		PhotoURL:         string(r.PhotoURL),
		EmploymentStatus: employment,
		AboutMe:          string(r.AboutMe),
		Email:            string(r.Email),
		Address:          string(r.Address),
		Phone:            string(r.Phone),
		Skills:           r.Skills.Slice(),
		Education:        r.Education.Slice(),
		Experience:       r.Experience.Slice(),
		CustomFields:     r.CustomFields.Slice(),
	}
}

// AlumniFromRows maps a list of rows.
func AlumniFromRows(rows []AlumniRow) []Alumni {
	out := make([]Alumni, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Record())
	}
	return out
}

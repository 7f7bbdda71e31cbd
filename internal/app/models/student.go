package models

import "strings"

// Student is a currently enrolled student record
type Student struct {
	ID         string        `json:"id,omitempty"`
	StudentID  string        `json:"student_id"`
	FirstName  string        `json:"first_name"`
	LastName   string        `json:"last_name"`
	Faculty    string        `json:"faculty"`
	Department string        `json:"department"`
	Year       int           `json:"year"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	Address    string        `json:"address"`
	Status     StudentStatus `json:"status"`
}

// FullName joins first and last name.
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// StudentRow is a student as returned by the API
type StudentRow struct {
	ID         FlexString `json:"id"`
	StudentID  FlexString `json:"student_id"`
	FirstName  FlexString `json:"first_name"`
	LastName   FlexString `json:"last_name"`
	Faculty    FlexString `json:"faculty"`
	Department FlexString `json:"department"`
	Year       FlexInt    `json:"year"`
	Email      FlexString `json:"email"`
	Phone      FlexString `json:"phone"`
	Address    FlexString `json:"address"`
	Status     FlexString `json:"status"`
}

// Record maps the row into a Student, applying year 1 and Active defaults.
func (r StudentRow) Record() Student {
	year := int(r.Year)
	if year == 0 {
		year = 1
	}
	status := StudentStatus(r.Status)
	if status == "" {
		status = StatusActive
	}
	return Student{
		ID:         string(r.ID),
		StudentID:  string(r.StudentID),
		FirstName:  string(r.FirstName),
		LastName:   string(r.LastName),
		Faculty:    string(r.Faculty),
		Department: string(r.Department),
		Year:       year,
		Email:      string(r.Email),
		Phone:      string(r.Phone),
		Address:    string(r.Address),
		Status:     status,
	}
}

// StudentsFromRows maps a list of rows.
func StudentsFromRows(rows []StudentRow) []Student {
	out := make([]Student, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Record())
	}
	return out
}

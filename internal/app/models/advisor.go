package models

// Advisor is a faculty member who supervises projects
type Advisor struct {
	ID         string `json:"id,omitempty"`
	AdvisorID  string `json:"advisor_id"`
	Name       string `json:"name"`
	Faculty    string `json:"faculty"`
	Department string `json:"department"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// AdvisorRow is an advisor as returned by the API
type AdvisorRow struct {
	ID         FlexString `json:"id"`
	AdvisorID  FlexString `json:"advisor_id"`
	Name       FlexString `json:"name"`
	Faculty    FlexString `json:"faculty"`
	Department FlexString `json:"department"`
	Email      FlexString `json:"email"`
	Phone      FlexString `json:"phone"`
}

// Record maps the row into an Advisor.
func (r AdvisorRow) Record() Advisor {
	return Advisor{
		ID:         string(r.ID),
		AdvisorID:  string(r.AdvisorID),
		Name:       string(r.Name),
		Faculty:    string(r.Faculty),
		Department: string(r.Department),
		Email:      string(r.Email),
		Phone:      string(r.Phone),
	}
}

// AdvisorsFromRows maps a list of rows.
func AdvisorsFromRows(rows []AdvisorRow) []Advisor {
	out := make([]Advisor, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Record())
	}
	return out
}

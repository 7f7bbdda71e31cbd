package models

// ProjectComment is an advisor remark attached to a project
type ProjectComment struct {
	ID         FlexString `json:"id"`
	ProjectID  FlexString `json:"projectId"`
	AuthorName string     `json:"authorName"`
	AuthorRole string     `json:"authorRole"`
	Message    string     `json:"message"`
	CreatedAt  string     `json:"createdAt"`
}

// Project is a capstone project record
type Project struct {
	ID          string           `json:"id,omitempty"`
	ProjectID   string           `json:"project_id"`
	TitleTH     string           `json:"title_th"`
	TitleEN     string           `json:"title_en"`
	Description string           `json:"description"`
	Advisor     string           `json:"advisor"`
	Year        int              `json:"year"`
	Members     []string         `json:"members"`
	DocumentURL string           `json:"document_url"`
	Tags        []string         `json:"tags"`
	Status      ProjectStatus    `json:"status"`
	Type        ProjectType      `json:"type"`
	HasAward    bool             `json:"has_award"`
	Comments    []ProjectComment `json:"comments,omitempty"`
	CreatedBy   string           `json:"created_by,omitempty"`
}

// ProjectRow is a project as returned by the API
type ProjectRow struct {
	ID          FlexString               `json:"id"`
	ProjectID   FlexString               `json:"project_id"`
	TitleTH     FlexString               `json:"title_th"`
	TitleEN     FlexString               `json:"title_en"`
	Description FlexString               `json:"description"`
	Advisor     FlexString               `json:"advisor"`
	Year        FlexInt                  `json:"year"`
	Members     JSONList[string]         `json:"members"`
	DocumentURL FlexString               `json:"document_url"`
	Tags        JSONList[string]         `json:"tags"`
	Status      FlexString               `json:"status"`
	Type        FlexString               `json:"type"`
	HasAward    FlexBool                 `json:"has_award"`
	Comments    JSONList[ProjectComment] `json:"comments"`
	CreatedBy   FlexString               `json:"created_by"`
	// CreatedByAlt is the camelCase spelling some endpoints use.
	CreatedByAlt FlexString `json:"createdBy"`
}

// Record maps the row into a Project, defaulting to a Draft individual project.
func (r ProjectRow) Record() Project {
	status := ProjectStatus(r.Status)
	if status == "" {
		status = ProjectDraft
	}
	typ := ProjectType(r.Type)
	if typ == "" {
		typ = ProjectIndividual
	}
	createdBy := string(r.CreatedBy)
	if createdBy == "" {
		createdBy = string(r.CreatedByAlt)
	}
	return Project{
		ID:          string(r.ID),
		ProjectID:   string(r.ProjectID),
		TitleTH:     string(r.TitleTH),
		TitleEN:     string(r.TitleEN),
		Description: string(r.Description),
		Advisor:     string(r.Advisor),
		Year:        int(r.Year),
		Members:     r.Members.Slice(),
		DocumentURL: string(r.DocumentURL),
		Tags:        r.Tags.Slice(),
		Status:      status,
		Type:        typ,
		HasAward:    bool(r.HasAward),
		Comments:    r.Comments.Slice(),
		CreatedBy:   createdBy,
	}
}

// ProjectsFromRows maps a list of rows.
func ProjectsFromRows(rows []ProjectRow) []Project {
	out := make([]Project, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Record())
	}
	return out
}

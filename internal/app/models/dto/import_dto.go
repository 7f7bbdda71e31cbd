package dto

// ImportRowError lists the problems of one rejected import row
type ImportRowError struct {
	Row       int      `json:"row"`
	StudentID string   `json:"student_id"`
	Errors    []string `json:"errors"`
}

// ImportSkipped describes a row that was skipped, usually a duplicate
type ImportSkipped struct {
	Row       int    `json:"row"`
	StudentID string `json:"student_id"`
	Reason    string `json:"reason"`
}

// ImportResult is the data of /import/students
type ImportResult struct {
	Total            int              `json:"total"`
	Imported         int              `json:"imported"`
	Skipped          int              `json:"skipped"`
	ValidationErrors []ImportRowError `json:"validationErrors"`
	SkippedDetails   []ImportSkipped  `json:"skippedDetails"`
}

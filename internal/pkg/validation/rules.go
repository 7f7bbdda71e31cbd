package validation

import (
	"regexp"
	"unicode/utf8"
)

// Validation rule patterns
var (
	// StudentIDPattern - 8 digits
	StudentIDPattern = `^\d{8}$`

	// NamePattern allows Thai and Latin letters and spaces
	NamePattern = `^[ก-๙a-zA-Z\s]+$`

	// UniversityEmailPattern only accepts the university domain
	UniversityEmailPattern = `^[^\s@]+@university\.ac\.th$`

	// EmailPattern is the general address check used for imported rows
	EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

	// PhonePattern is a 10 digit Thai number starting with 0
	PhonePattern = `^0\d{9}$`

	// MinGraduationYear is the oldest accepted graduation year
	MinGraduationYear = 1990

	// MinTitleLength is the minimum Thai project title length, in characters
	MinTitleLength = 5

	// MinGroupMembers for group projects
	MinGroupMembers = 2

	// PasswordMinLength applies to password changes
	PasswordMinLength = 6

	// MaxTextLength caps free text columns of imported rows, in characters
	MaxTextLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	StudentID       *regexp.Regexp
	Name            *regexp.Regexp
	UniversityEmail *regexp.Regexp
	Email           *regexp.Regexp
	Phone           *regexp.Regexp
}{
	StudentID:       regexp.MustCompile(StudentIDPattern),
	Name:            regexp.MustCompile(NamePattern),
	UniversityEmail: regexp.MustCompile(UniversityEmailPattern),
	Email:           regexp.MustCompile(EmailPattern),
	Phone:           regexp.MustCompile(PhonePattern),
}

// StringValidation checks a single string value
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length in characters
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length in characters
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	n := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && n < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && n > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// NumericValidation checks an int against an inclusive range
type NumericValidation struct {
	Value int
	Min   int
	Max   int
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int) *NumericValidation {
	return &NumericValidation{Value: value}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.Min = min
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.Max = max
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	return v.Value >= v.Min && v.Value <= v.Max
}

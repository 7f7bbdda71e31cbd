package validation

// Faculty groups the departments offered by one faculty
type Faculty struct {
	Name        string
	Departments []string
}

// Faculties is the choice list offered by the record forms.
var Faculties = []Faculty{
	{Name: "คณะวิทยาศาสตร์", Departments: []string{"เคมี", "ฟิสิกส์", "คณิตศาสตร์", "ชีววิทยา"}},
	{Name: "คณะวิศวกรรมศาสตร์", Departments: []string{"วิศวกรรมไฟฟ้า", "วิศวกรรมเครื่องกล", "วิศวกรรมโยธา", "วิศวกรรมคอมพิวเตอร์"}},
	{Name: "คณะเทคโนโลยีสารสนเทศ", Departments: []string{"วิทยาการคอมพิวเตอร์", "เทคโนโลยีสารสนเทศ", "วิศวกรรมซอฟต์แวร์"}},
	{Name: "คณะบริหารธุรกิจ", Departments: []string{"การจัดการ", "การตลาด", "การเงิน", "การบัญชี"}},
}

// FacultyNames lists the faculty names in catalogue order.
func FacultyNames() []string {
	names := make([]string, 0, len(Faculties))
	for _, f := range Faculties {
		names = append(names, f.Name)
	}
	return names
}

// DepartmentsOf returns the departments of a faculty, or nil if unknown.
func DepartmentsOf(faculty string) []string {
	for _, f := range Faculties {
		if f.Name == faculty {
			return f.Departments
		}
	}
	return nil
}

// IsKnownDepartment reports whether department belongs to faculty.
func IsKnownDepartment(faculty, department string) bool {
	for _, d := range DepartmentsOf(faculty) {
		if d == department {
			return true
		}
	}
	return false
}

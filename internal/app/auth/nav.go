package auth

import "github.com/yigit/unirecords/internal/app/models"

// NavItem is one page of the application and the roles that see it
type NavItem struct {
	Command string
	Path    string
	Label   string
	Roles   []models.Role
}

// Allows reports whether role may open the page.
func (n NavItem) Allows(role models.Role) bool {
	return hasRole(n.Roles, role)
}

var allRoles = []models.Role{models.RoleAdmin, models.RoleStudent, models.RoleTeacher, models.RoleAlumni}

var (
	NavDashboard = NavItem{Command: "dashboard", Path: "/dashboard", Label: "แดชบอร์ด", Roles: allRoles}
	NavStudents  = NavItem{Command: "students", Path: "/students", Label: "นักศึกษา", Roles: []models.Role{models.RoleAdmin, models.RoleTeacher}}
	NavAlumni    = NavItem{Command: "alumni", Path: "/alumni", Label: "ศิษย์เก่า", Roles: allRoles}
	NavProjects  = NavItem{Command: "projects", Path: "/projects", Label: "โปรเจคจบ", Roles: allRoles}
	NavAdvisors  = NavItem{Command: "advisors", Path: "/advisors", Label: "อาจารย์ที่ปรึกษา", Roles: []models.Role{models.RoleAdmin, models.RoleStudent, models.RoleTeacher}}
	NavImport    = NavItem{Command: "import", Path: "/import-students", Label: "นำเข้าข้อมูลนักศึกษา", Roles: []models.Role{models.RoleAdmin}}
	NavProfile   = NavItem{Command: "whoami", Path: "/profile", Label: "โปรไฟล์", Roles: allRoles}
)

// NavItems lists every page in menu order.
var NavItems = []NavItem{NavDashboard, NavStudents, NavAlumni, NavProjects, NavAdvisors, NavImport, NavProfile}

// NavFor returns the pages visible to role.
func NavFor(role models.Role) []NavItem {
	var out []NavItem
	for _, item := range NavItems {
		if item.Allows(role) {
			out = append(out, item)
		}
	}
	return out
}

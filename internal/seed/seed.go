// Package seed fills the mock backend with deterministic sample records.
package seed

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/repositories"
	"github.com/yigit/unirecords/internal/pkg/auth"
	"github.com/yigit/unirecords/internal/pkg/validation"
)

// Record counts produced by Generate
const (
	StudentCount = 50
	AlumniCount  = 30
	ProjectCount = 40
	// AdvisorsPerDepartment applies to every catalogue department
	AdvisorsPerDepartment = 2
)

// Demo logins created by Load
const (
	AdminUsername   = "admin"
	AdminPassword   = "admin123"
	StudentUsername = "student"
	StudentPassword = "student123"
	AdvisorUsername = "advisor"
	AdvisorPassword = "advisor123"
	AlumniUsername  = "alumni"
	AlumniPassword  = "alumni123"
)

var (
	firstNames = []string{
		"สมชาย", "สมหญิง", "วิชัย", "วิภา", "ประเสริฐ", "ประภา", "สุรชัย", "สุดารัตน์",
		"นิรันดร์", "นภัสวรรณ", "ธนากร", "ธนาภรณ์", "ชัยวัฒน์", "ชนิดา", "พงศ์พัฒน์", "พรรณี",
	}
	lastNames = []string{
		"สมบูรณ์", "ใจดี", "รักษาสิทธิ์", "เจริญสุข", "พัฒนากิจ",
		"วิริยะ", "สุขสวัสดิ์", "มั่นคง", "เพียรทำการ", "ชำนาญกิจ",
	}
	workplaces = []string{
		"บริษัท ไทยเบฟเวอเรจ จำกัด",
		"บริษัท ปตท. จำกัด (มหาชน)",
		"ธนาคารกสิกรไทย",
		"บริษัท กูเกิล (ประเทศไทย)",
		"บริษัท ไมโครซอฟท์ (ประเทศไทย)",
		"บริษัท ซีพี ออลล์ จำกัด",
		"บริษัท เซ็นทรัล รีเทล คอร์ปอเรชั่น",
		"สำนักงานพัฒนาวิทยาศาสตร์และเทคโนโลยีแห่งชาติ",
	}
	positions = []string{
		"Software Engineer", "Data Analyst", "Project Manager", "Business Analyst",
		"UX/UI Designer", "Marketing Manager", "Financial Analyst", "Research Scientist",
	}
	sampleSkills = []string{
		"JavaScript", "TypeScript", "React", "Node.js", "Python", "Java", "SQL",
		"MongoDB", "Git", "Docker", "AWS", "Azure", "Figma", "Adobe XD",
	}
)

const (
	aboutMe        = "ฉันเป็นศิษย์เก่าที่หลงใหลในการพัฒนาเทคโนโลยีและนวัตกรรมใหม่ๆ มีประสบการณ์ในการทำงานกับทีมที่หลากหลายและมุ่งมั่นในการสร้างสรรค์ผลงานที่มีคุณภาพ"
	sampleAddress  = "123 ถนนสุขุมวิท แขวงคลองเตย เขตคลองเตย กรุงเทพมหานคร 10110"
	schoolName     = "โรงเรียนศรีสะเกษวิทยาลัย"
	schoolAddress  = "319 หมู่5 ถนนวันลูกเสือ เมืองศรีสะเกษ ศรีสะเกษ 33000"
	collegeName    = "มหาวิทยาลัยราชภัฏศรีสะเกษ"
	collegeAddress = "319 ถนนไทยพันทา ตำบลโพธิ์ อำเภอเมืองศรีสะเกษ ศรีสะเกษ 33000"
)

// Data is one generated set of records
type Data struct {
	Students []models.Student
	Alumni   []models.Alumni
	Advisors []models.Advisor
	Projects []models.Project
}

type generator struct {
	rng *rand.Rand
}

func (g generator) pick(list []string) string {
	return list[g.rng.IntN(len(list))]
}

func (g generator) digits(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + g.rng.IntN(10)))
	}
	return b.String()
}

func (g generator) facultyAndDepartment() (string, string) {
	f := validation.Faculties[g.rng.IntN(len(validation.Faculties))]
	return f.Name, g.pick(f.Departments)
}

// Generate builds the sample records. The same seed yields the same data.
func Generate(seed int64) Data {
	g := generator{rng: rand.New(rand.NewPCG(uint64(seed), 0))}
	var d Data

	for i := 0; i < StudentCount; i++ {
		faculty, department := g.facultyAndDepartment()
		status := models.StatusActive
		if g.rng.Float64() <= 0.1 {
			if g.rng.Float64() > 0.5 {
				status = models.StatusGraduated
			} else {
				status = models.StatusSuspended
			}
		}
		d.Students = append(d.Students, models.Student{
			StudentID:  fmt.Sprintf("661%05d", i+1),
			FirstName:  g.pick(firstNames),
			LastName:   g.pick(lastNames),
			Faculty:    faculty,
			Department: department,
			Year:       g.rng.IntN(4) + 1,
			Email:      fmt.Sprintf("student%d@university.ac.th", i+1),
			Phone:      "08" + g.digits(8),
			Status:     status,
		})
	}

	for i := 0; i < AlumniCount; i++ {
		d.Alumni = append(d.Alumni, g.alumni(i))
	}

	for _, f := range validation.Faculties {
		for _, department := range f.Departments {
			for k := 0; k < AdvisorsPerDepartment; k++ {
				n := len(d.Advisors)
				d.Advisors = append(d.Advisors, models.Advisor{
					AdvisorID:  fmt.Sprintf("T%d", 1000+n),
					Name:       fmt.Sprintf("อาจารย์ %s %s", g.pick(firstNames), g.pick(lastNames)),
					Faculty:    f.Name,
					Department: department,
					Email:      fmt.Sprintf("advisor%d@university.ac.th", n+1),
					Phone:      "02" + g.digits(8),
				})
			}
		}
	}

	for i := 0; i < ProjectCount; i++ {
		d.Projects = append(d.Projects, g.project(i, d.Advisors))
	}

	return d
}

func (g generator) alumni(i int) models.Alumni {
	faculty, department := g.facultyAndDepartment()
	year := 2018 + g.rng.IntN(7)
	employment := models.EmploymentSeeking
	if g.rng.Float64() > 0.2 {
		employment = models.EmploymentEmployed
	}

	a := models.Alumni{
		AlumniID:         fmt.Sprintf("60%06d", i+1),
		FirstName:        g.pick(firstNames),
		LastName:         g.pick(lastNames),
		Faculty:          faculty,
		Department:       department,
		GraduationYear:   year,
		Workplace:        g.pick(workplaces),
		Position:         g.pick(positions),
		ContactInfo:      fmt.Sprintf("alumni%d@email.com", i+1),
		Portfolio:        fmt.Sprintf("https://portfolio%d.com", i+1),
		PhotoURL:         fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/png?seed=%d", i),
		EmploymentStatus: employment,
		Email:            fmt.Sprintf("alumni%d@email.com", i+1),
		Phone:            "08" + g.digits(8),
	}

	if i%3 == 0 {
		a.AboutMe = aboutMe
		a.Education = []models.EducationEntry{
			{Years: "2011-2015", Institution: schoolName, Address: schoolAddress, Grade: "3.65"},
			{Years: fmt.Sprintf("%d-%d", year-4, year), Institution: collegeName, Address: collegeAddress, Grade: "3.74"},
		}
	}
	if i%2 == 0 {
		a.Address = sampleAddress
		a.Skills = append([]string(nil), sampleSkills[:3+g.rng.IntN(4)]...)
		a.Experience = []models.ExperienceEntry{{
			Years:    fmt.Sprintf("%d-%d", year, year+3),
			Company:  g.pick(workplaces),
			Position: g.pick(positions),
		}}
	}
	if i%4 == 0 {
		a.CustomFields = []models.CustomField{
			{Label: "รางวัลที่ได้รับ", Value: "รางวัลนักศึกษาดีเด่น ประจำปี 2020"},
			{Label: "งานอดิเรก", Value: "การเขียนโปรแกรม, การอ่านหนังสือ"},
		}
	}
	return a
}

func (g generator) project(i int, advisors []models.Advisor) models.Project {
	group := g.rng.Float64() > 0.3
	year := 2020 + g.rng.IntN(5)
	advisor := advisors[g.rng.IntN(len(advisors))]

	tags := make([]string, g.rng.IntN(3)+1)
	for k := range tags {
		tags[k] = g.pick(models.AvailableTags)
	}

	memberCount := 1
	if group {
		memberCount = g.rng.IntN(3) + 2
	}
	members := make([]string, memberCount)
	for k := range members {
		members[k] = g.pick(firstNames) + " " + g.pick(lastNames)
	}

	kind, kindEN, typ := "เดี่ยว", "Individual", models.ProjectIndividual
	if group {
		kind, kindEN, typ = "กลุ่ม", "Group", models.ProjectGroup
	}

	doc := ""
	if g.rng.Float64() > 0.3 {
		doc = fmt.Sprintf("https://docs.example.com/project%d.pdf", i+1)
	}

	status := models.ProjectCompleted
	if g.rng.Float64() <= 0.2 {
		if g.rng.Float64() > 0.5 {
			status = models.ProjectApproved
		} else {
			status = models.ProjectDraft
		}
	}

	return models.Project{
		ProjectID:   fmt.Sprintf("PRJ%d", 2024000+i),
		TitleTH:     fmt.Sprintf("โครงงาน%sเกี่ยวกับ %s ปี %d", kind, tags[0], year),
		TitleEN:     fmt.Sprintf("%s Project about %s %d", kindEN, tags[0], year),
		Description: fmt.Sprintf("นี่คือโครงงานที่พัฒนาขึ้นเพื่อแก้ปัญหาในด้าน %s โดยใช้เทคโนโลยีสมัยใหม่และมีการประยุกต์ใช้ในชีวิตจริง", strings.Join(tags, ", ")),
		Advisor:     advisor.Name,
		Year:        year,
		Members:     members,
		DocumentURL: doc,
		Tags:        tags,
		Status:      status,
		Type:        typ,
		HasAward:    g.rng.Float64() > 0.8,
		CreatedBy:   AdminUsername,
	}
}

// Load stores d in repos and creates the demo logins. The student, advisor
// and alumni logins are linked to the first record of their kind.
func Load(repos *repositories.Repositories, d Data, passwordCost int, log zerolog.Logger) error {
	var firstStudent, firstAdvisor, firstAlumni int64
	var errs error

	for _, s := range d.Students {
		id, err := repos.StudentRepository.Create(s)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("seed student %s: %w", s.StudentID, err))
			continue
		}
		if firstStudent == 0 {
			firstStudent = id
		}
	}
	for _, a := range d.Alumni {
		id := repos.AlumniRepository.Create(a)
		if firstAlumni == 0 {
			firstAlumni = id
		}
	}
	for _, a := range d.Advisors {
		id, err := repos.AdvisorRepository.Create(a)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("seed advisor %s: %w", a.AdvisorID, err))
			continue
		}
		if firstAdvisor == 0 {
			firstAdvisor = id
		}
	}
	for _, p := range d.Projects {
		repos.ProjectRepository.Create(p)
	}

	accounts := []struct {
		acc      models.Account
		password string
	}{
		{models.Account{Username: AdminUsername, Role: models.RoleAdmin, Name: models.RoleAdmin.Label()}, AdminPassword},
		{models.Account{Username: StudentUsername, Role: models.RoleStudent, StudentRef: firstStudent}, StudentPassword},
		{models.Account{Username: AdvisorUsername, Role: models.RoleAdvisor, AdvisorRef: firstAdvisor}, AdvisorPassword},
		{models.Account{Username: AlumniUsername, Role: models.RoleStudent, AlumniRef: firstAlumni, IsAlumni: true}, AlumniPassword},
	}
	for _, a := range accounts {
		hash, err := auth.HashPasswordCost(a.password, passwordCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", a.acc.Username, err)
		}
		a.acc.PasswordHash = hash
		if _, err := repos.UserRepository.CreateUser(a.acc); err != nil {
			errs = errors.Join(errs, fmt.Errorf("seed user %s: %w", a.acc.Username, err))
		}
	}

	log.Info().
		Int("students", repos.StudentRepository.Count()).
		Int("alumni", repos.AlumniRepository.Count()).
		Int("advisors", len(d.Advisors)).
		Int("projects", len(d.Projects)).
		Msg("Sample data loaded")
	return errs
}

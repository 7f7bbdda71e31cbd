package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yigit/unirecords/internal/app/auth"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/views"
	"github.com/yigit/unirecords/internal/csvio"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/notify"
)

func studentFilterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "match first name, last name or student id"},
		&cli.StringFlag{Name: "faculty"},
		&cli.StringFlag{Name: "status", Usage: "Active, Graduated or Suspended"},
		&cli.IntFlag{Name: "year", Usage: "study year 1-5"},
	}
}

func studentFilter(c *cli.Context) views.StudentFilter {
	return views.StudentFilter{
		Search:  c.String("search"),
		Faculty: c.String("faculty"),
		Status:  models.StudentStatus(c.String("status")),
		Year:    c.Int("year"),
	}
}

func studentFormFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "student-id", Usage: "8 digits"},
		&cli.StringFlag{Name: "first-name"},
		&cli.StringFlag{Name: "last-name"},
		&cli.StringFlag{Name: "faculty"},
		&cli.StringFlag{Name: "department"},
		&cli.IntFlag{Name: "year", Value: 1},
		&cli.StringFlag{Name: "email", Usage: "must end in @university.ac.th"},
		&cli.StringFlag{Name: "phone", Usage: "10 digits starting with 0"},
		&cli.StringFlag{Name: "address"},
		&cli.StringFlag{Name: "status", Value: string(models.StatusActive)},
	}
}

// applyStudentFlags copies the flags the user set onto s; with all true every
// flag, including defaults, is applied.
func applyStudentFlags(c *cli.Context, s *models.Student, all bool) {
	set := func(name string) bool { return all || c.IsSet(name) }
	if set("student-id") {
		s.StudentID = c.String("student-id")
	}
	if set("first-name") {
		s.FirstName = c.String("first-name")
	}
	if set("last-name") {
		s.LastName = c.String("last-name")
	}
	if set("faculty") {
		s.Faculty = c.String("faculty")
	}
	if set("department") {
		s.Department = c.String("department")
	}
	if set("year") {
		s.Year = c.Int("year")
	}
	if set("email") {
		s.Email = c.String("email")
	}
	if set("phone") {
		s.Phone = c.String("phone")
	}
	if set("address") {
		s.Address = c.String("address")
	}
	if set("status") {
		s.Status = models.StudentStatus(c.String("status"))
	}
}

func studentKeys(s models.Student) []string { return []string{s.ID, s.StudentID} }

func (rt *runtime) studentsCommand() *cli.Command {
	return &cli.Command{
		Name:    "students",
		Aliases: []string{"student"},
		Usage:   "manage current students",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list students visible to you",
				Flags:  append(studentFilterFlags(), jsonFlag()),
				Action: rt.listStudents,
			},
			{
				Name:      "show",
				Usage:     "show one student",
				ArgsUsage: "<id|student-id>",
				Flags:     []cli.Flag{jsonFlag()},
				Action:    rt.showStudent,
			},
			{
				Name:   "add",
				Usage:  "add a student",
				Flags:  studentFormFlags(),
				Action: rt.addStudent,
			},
			{
				Name:      "edit",
				Usage:     "change the given fields of a student",
				ArgsUsage: "<id|student-id>",
				Flags:     studentFormFlags(),
				Action:    rt.editStudent,
			},
			{
				Name:      "delete",
				Usage:     "delete a student",
				ArgsUsage: "<id|student-id>",
				Flags:     []cli.Flag{yesFlag()},
				Action:    rt.deleteStudent,
			},
			{
				Name:      "status",
				Usage:     "change the status of the selected students",
				ArgsUsage: "<id|student-id>...",
				Flags: append(studentFilterFlags(),
					&cli.StringFlag{Name: "to", Required: true, Usage: "Active, Graduated or Suspended"},
					&cli.BoolFlag{Name: "all", Usage: "select every student matching the filters"},
				),
				Action: func(c *cli.Context) error {
					return rt.changeStatus(c, models.StudentStatus(c.String("to")))
				},
			},
			{
				Name:      "graduate",
				Usage:     "graduate the selected students and move them to alumni",
				ArgsUsage: "<id|student-id>...",
				Flags: append(studentFilterFlags(),
					&cli.BoolFlag{Name: "all", Usage: "select every student matching the filters"},
				),
				Action: func(c *cli.Context) error {
					return rt.changeStatus(c, models.StatusGraduated)
				},
			},
			{
				Name:   "export",
				Usage:  "export the filtered student list",
				Flags:  append(studentFilterFlags(), exportFlags()...),
				Action: rt.exportStudents,
			},
		},
	}
}

func (rt *runtime) listStudents(c *cli.Context) error {
	app, user, err := rt.page(c, auth.NavStudents, "")
	if err != nil {
		return err
	}
	f := studentFilter(c)
	list := views.FilterStudents(user, app.Data.Students(), f)
	out := c.App.Writer
	if c.Bool("json") {
		return writeJSON(out, list)
	}

	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{s.StudentID, s.FullName(), s.Faculty, s.Department, strconv.Itoa(s.Year), s.Status.Label()})
	}
	renderTable(out, []string{"รหัสนักศึกษา", "ชื่อ-นามสกุล", "คณะ", "สาขา", "ชั้นปี", "สถานะ"}, rows)
	fmt.Fprintln(out, mutedStyle.Render(views.CountLabel(len(list), "คน", f.Active())))
	return nil
}

func (rt *runtime) showStudent(c *cli.Context) error {
	key, err := requireArg(c, "รหัสนักศึกษา")
	if err != nil {
		return err
	}
	app, user, err := rt.page(c, auth.NavStudents, auth.ViewStudentDetail)
	if err != nil {
		return err
	}
	s, err := find(views.ScopeStudents(user, app.Data.Students()), key, studentKeys, "นักศึกษา")
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, s)
	}
	renderFields(c.App.Writer, s.FullName(), []field{
		{"รหัสนักศึกษา", s.StudentID},
		{"คณะ", s.Faculty},
		{"สาขา", s.Department},
		{"ชั้นปี", strconv.Itoa(s.Year)},
		{"อีเมล", s.Email},
		{"เบอร์โทร", s.Phone},
		{"ที่อยู่", s.Address},
		{"สถานะ", s.Status.Label()},
	})
	return nil
}

func (rt *runtime) addStudent(c *cli.Context) error {
	app, _, err := rt.page(c, auth.NavStudents, auth.ManageStudents)
	if err != nil {
		return err
	}
	var s models.Student
	applyStudentFlags(c, &s, true)
	if err := app.Validator.Student(s); err != nil {
		return rt.reportValidation(err)
	}
	return reported(app.Data.AddStudent(c.Context, s))
}

func (rt *runtime) editStudent(c *cli.Context) error {
	key, err := requireArg(c, "รหัสนักศึกษา")
	if err != nil {
		return err
	}
	app, _, err := rt.page(c, auth.NavStudents, auth.ManageStudents)
	if err != nil {
		return err
	}
	s, err := find(app.Data.Students(), key, studentKeys, "นักศึกษา")
	if err != nil {
		return err
	}
	applyStudentFlags(c, &s, false)
	if err := app.Validator.Student(s); err != nil {
		return rt.reportValidation(err)
	}
	return reported(app.Data.UpdateStudent(c.Context, s.ID, s))
}

func (rt *runtime) deleteStudent(c *cli.Context) error {
	key, err := requireArg(c, "รหัสนักศึกษา")
	if err != nil {
		return err
	}
	if err := confirmDelete(c); err != nil {
		return err
	}
	app, _, err := rt.page(c, auth.NavStudents, auth.ManageStudents)
	if err != nil {
		return err
	}
	s, err := find(app.Data.Students(), key, studentKeys, "นักศึกษา")
	if err != nil {
		return err
	}
	return reported(app.Data.DeleteStudent(c.Context, s.ID))
}

// changeStatus builds a selection from the arguments, or from every filtered
// student with --all, and applies status to it.
func (rt *runtime) changeStatus(c *cli.Context, status models.StudentStatus) error {
	if !status.Valid() {
		return apperrors.NewBadRequestError(fmt.Sprintf("สถานะไม่ถูกต้อง: %s", status))
	}
	app, user, err := rt.page(c, auth.NavStudents, auth.ManageStudents)
	if err != nil {
		return err
	}
	students := app.Data.Students()

	sel := views.NewSelection()
	if c.Bool("all") {
		visible := views.StudentIDs(views.FilterStudents(user, students, studentFilter(c)))
		sel.ToggleAll(visible)
		if !sel.AllSelected(visible) {
			return apperrors.NewBadRequestError("ไม่พบนักศึกษาตามเงื่อนไขที่เลือก")
		}
	}
	for _, key := range c.Args().Slice() {
		s, err := find(students, key, studentKeys, "นักศึกษา")
		if err != nil {
			return err
		}
		if !sel.Has(s.ID) {
			sel.Toggle(s.ID)
		}
	}

	msg, err := views.ChangeStatus(c.Context, app.Data, sel, status)
	if err != nil {
		if errors.Is(err, views.ErrEmptySelection) {
			return apperrors.NewBadRequestError(err.Error())
		}
		return reported(err)
	}
	notify.Success(rt.opts.Notifier, msg)
	return nil
}

func (rt *runtime) exportStudents(c *cli.Context) error {
	app, user, err := rt.page(c, auth.NavStudents, auth.Export)
	if err != nil {
		return err
	}
	list := views.FilterStudents(user, app.Data.Students(), studentFilter(c))
	return rt.exportTable(c, "students", "Students", csvio.StudentRows(list))
}

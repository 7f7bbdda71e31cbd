package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yigit/unirecords/internal/app/auth"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/views"
	"github.com/yigit/unirecords/internal/bootstrap"
	"github.com/yigit/unirecords/internal/csvio"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/validation"
)

const anonymousAuthor = "ไม่ระบุชื่อ"

func projectFilterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "match Thai or English title, or a tag"},
		&cli.IntFlag{Name: "year"},
		&cli.StringFlag{Name: "status", Usage: "Draft, Approved or Completed"},
		&cli.StringFlag{Name: "type", Usage: "individual or group"},
	}
}

func projectFilter(c *cli.Context) views.ProjectFilter {
	return views.ProjectFilter{
		Search: c.String("search"),
		Year:   c.Int("year"),
		Status: models.ProjectStatus(c.String("status")),
		Type:   models.ProjectType(c.String("type")),
	}
}

func projectFormFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "project-id"},
		&cli.StringFlag{Name: "title-th"},
		&cli.StringFlag{Name: "title-en"},
		&cli.StringFlag{Name: "description"},
		&cli.StringFlag{Name: "advisor", Usage: "advisor name"},
		&cli.IntFlag{Name: "year"},
		&cli.StringSliceFlag{Name: "member", Usage: "repeatable"},
		&cli.StringFlag{Name: "document-url"},
		&cli.StringSliceFlag{Name: "tag", Usage: "repeatable; one of: " + strings.Join(models.AvailableTags, ", ")},
		&cli.StringFlag{Name: "status", Value: string(models.ProjectDraft)},
		&cli.StringFlag{Name: "type", Value: string(models.ProjectIndividual)},
		&cli.BoolFlag{Name: "award"},
	}
}

func applyProjectFlags(c *cli.Context, p *models.Project, all bool) {
	set := func(name string) bool { return all || c.IsSet(name) }
	for name, dst := range map[string]*string{
		"project-id":   &p.ProjectID,
		"title-th":     &p.TitleTH,
		"title-en":     &p.TitleEN,
		"description":  &p.Description,
		"advisor":      &p.Advisor,
		"document-url": &p.DocumentURL,
	} {
		if set(name) {
			*dst = c.String(name)
		}
	}
	if set("year") {
		p.Year = c.Int("year")
	}
	if set("member") {
		p.Members = c.StringSlice("member")
	}
	if set("tag") {
		p.Tags = c.StringSlice("tag")
	}
	if set("status") {
		p.Status = models.ProjectStatus(c.String("status"))
	}
	if set("type") {
		p.Type = models.ProjectType(c.String("type"))
	}
	if set("award") {
		p.HasAward = c.Bool("award")
	}
}

// lookupProject resolves key within the projects visible to user.
func lookupProject(app *bootstrap.App, user *models.User, key string) (models.Project, error) {
	visible := views.ScopeProjects(user, app.Data.Projects(), app.Data.Advisors())
	p, ok := views.FindProject(visible, key)
	if !ok {
		return models.Project{}, apperrors.NewResourceNotFoundError("ไม่พบโปรเจค " + key)
	}
	return p, nil
}

func (rt *runtime) projectsCommand() *cli.Command {
	return &cli.Command{
		Name:    "projects",
		Aliases: []string{"project"},
		Usage:   "browse and manage capstone projects",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list projects visible to you",
				Flags:  append(projectFilterFlags(), jsonFlag()),
				Action: rt.listProjects,
			},
			{
				Name:      "show",
				Usage:     "show one project with its comments",
				ArgsUsage: "<id|project-id>",
				Flags:     []cli.Flag{jsonFlag()},
				Action:    rt.showProject,
			},
			{
				Name:   "add",
				Usage:  "add a project",
				Flags:  projectFormFlags(),
				Action: rt.addProject,
			},
			{
				Name:      "edit",
				Usage:     "change the given fields of a project",
				ArgsUsage: "<id|project-id>",
				Flags:     projectFormFlags(),
				Action:    rt.editProject,
			},
			{
				Name:      "delete",
				Usage:     "delete a project",
				ArgsUsage: "<id|project-id>",
				Flags:     []cli.Flag{yesFlag()},
				Action:    rt.deleteProject,
			},
			{
				Name:      "comment",
				Usage:     "comment on a project",
				ArgsUsage: "<id|project-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Required: true},
				},
				Action: rt.commentProject,
			},
			{
				Name:   "export",
				Usage:  "export the filtered project list",
				Flags:  append(projectFilterFlags(), exportFlags()...),
				Action: rt.exportProjects,
			},
		},
	}
}

func (rt *runtime) listProjects(c *cli.Context) error {
	app, user, err := rt.page(c, auth.NavProjects, "")
	if err != nil {
		return err
	}
	f := projectFilter(c)
	list := views.FilterProjects(user, app.Data.Projects(), app.Data.Advisors(), f)
	out := c.App.Writer
	if c.Bool("json") {
		return writeJSON(out, list)
	}

	rows := make([][]string, 0, len(list))
	for _, p := range list {
		title := p.TitleTH
		if p.HasAward {
			title += " 🏆"
		}
		rows = append(rows, []string{
			p.ProjectID, title, p.Advisor, strconv.Itoa(p.Year),
			string(p.Status), p.Type.Label(), strings.Join(p.Tags, ", "),
		})
	}
	renderTable(out, []string{"รหัส", "ชื่อโปรเจค", "อาจารย์ที่ปรึกษา", "ปี", "สถานะ", "ประเภท", "แท็ก"}, rows)
	fmt.Fprintln(out, mutedStyle.Render(views.CountLabel(len(list), "โปรเจค", f.Active())))
	return nil
}

func (rt *runtime) showProject(c *cli.Context) error {
	key, err := requireArg(c, "รหัสโปรเจค")
	if err != nil {
		return err
	}
	app, user, err := rt.page(c, auth.NavProjects, "")
	if err != nil {
		return err
	}
	p, err := lookupProject(app, user, key)
	if err != nil {
		return err
	}
	canRead := auth.Can(user, auth.ReadComments)
	if !canRead {
		p.Comments = nil
	}
	out := c.App.Writer
	if c.Bool("json") {
		return writeJSON(out, p)
	}

	renderFields(out, p.TitleTH, []field{
		{"รหัส", p.ProjectID},
		{"ชื่อภาษาอังกฤษ", p.TitleEN},
		{"อาจารย์ที่ปรึกษา", p.Advisor},
		{"ปี", strconv.Itoa(p.Year)},
		{"สถานะ", string(p.Status)},
		{"ประเภท", p.Type.Label()},
		{"ได้รับรางวัล", yesNo(p.HasAward)},
		{"สมาชิก", strings.Join(p.Members, ", ")},
		{"แท็ก", strings.Join(p.Tags, ", ")},
		{"เอกสาร", p.DocumentURL},
		{"รายละเอียด", p.Description},
	})
	if !canRead {
		return nil
	}
	if len(p.Comments) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("ยังไม่มีความคิดเห็น"))
		return nil
	}
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("ความคิดเห็น (%d)", len(p.Comments))))
	for _, cm := range p.Comments {
		fmt.Fprintf(out, "%s %s\n  %s\n",
			labelStyle.Render(cm.AuthorName),
			mutedStyle.Render(models.Role(cm.AuthorRole).Label()+" · "+cm.CreatedAt),
			cm.Message)
	}
	return nil
}

func (rt *runtime) addProject(c *cli.Context) error {
	app, user, err := rt.page(c, auth.NavProjects, auth.ManageProjects)
	if err != nil {
		return err
	}
	var p models.Project
	applyProjectFlags(c, &p, true)
	p = validation.NormalizeProject(p)
	p.CreatedBy = user.ID
	if err := app.Validator.Project(p); err != nil {
		return rt.reportValidation(err)
	}
	return reported(app.Data.AddProject(c.Context, p))
}

func (rt *runtime) editProject(c *cli.Context) error {
	key, err := requireArg(c, "รหัสโปรเจค")
	if err != nil {
		return err
	}
	app, user, err := rt.page(c, auth.NavProjects, auth.ManageProjects)
	if err != nil {
		return err
	}
	p, err := lookupProject(app, user, key)
	if err != nil {
		return err
	}
	applyProjectFlags(c, &p, false)
	p = validation.NormalizeProject(p)
	if err := app.Validator.Project(p); err != nil {
		return rt.reportValidation(err)
	}
	return reported(app.Data.UpdateProject(c.Context, p.ID, p))
}

func (rt *runtime) deleteProject(c *cli.Context) error {
	key, err := requireArg(c, "รหัสโปรเจค")
	if err != nil {
		return err
	}
	if err := confirmDelete(c); err != nil {
		return err
	}
	app, user, err := rt.page(c, auth.NavProjects, auth.DeleteProjects)
	if err != nil {
		return err
	}
	p, err := lookupProject(app, user, key)
	if err != nil {
		return err
	}
	return reported(app.Data.DeleteProject(c.Context, p.ID))
}

func (rt *runtime) commentProject(c *cli.Context) error {
	key, err := requireArg(c, "รหัสโปรเจค")
	if err != nil {
		return err
	}
	message := strings.TrimSpace(c.String("message"))
	if message == "" {
		return apperrors.NewBadRequestError("กรุณากรอกความคิดเห็น")
	}
	app, user, err := rt.page(c, auth.NavProjects, auth.WriteComments)
	if err != nil {
		return err
	}
	p, err := lookupProject(app, user, key)
	if err != nil {
		return err
	}
	author := user.Name
	if author == "" {
		author = anonymousAuthor
	}
	return reported(app.Data.AddProjectComment(c.Context, p.ID, author, string(user.Role), message))
}

func (rt *runtime) exportProjects(c *cli.Context) error {
	app, user, err := rt.page(c, auth.NavProjects, auth.Export)
	if err != nil {
		return err
	}
	list := views.FilterProjects(user, app.Data.Projects(), app.Data.Advisors(), projectFilter(c))
	return rt.exportTable(c, "projects", "Projects", csvio.ProjectRows(list))
}

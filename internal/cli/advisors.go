package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yigit/unirecords/internal/app/auth"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/views"
)

func advisorFormFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "advisor-id"},
		&cli.StringFlag{Name: "name"},
		&cli.StringFlag{Name: "faculty"},
		&cli.StringFlag{Name: "department"},
		&cli.StringFlag{Name: "email"},
		&cli.StringFlag{Name: "phone"},
	}
}

func applyAdvisorFlags(c *cli.Context, a *models.Advisor, all bool) {
	for name, dst := range map[string]*string{
		"advisor-id": &a.AdvisorID,
		"name":       &a.Name,
		"faculty":    &a.Faculty,
		"department": &a.Department,
		"email":      &a.Email,
		"phone":      &a.Phone,
	} {
		if all || c.IsSet(name) {
			*dst = c.String(name)
		}
	}
}

func advisorKeys(a models.Advisor) []string { return []string{a.ID, a.AdvisorID} }

func (rt *runtime) advisorsCommand() *cli.Command {
	return &cli.Command{
		Name:    "advisors",
		Aliases: []string{"advisor"},
		Usage:   "browse and manage project advisors",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list advisors",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "match name, email or department"},
					&cli.StringFlag{Name: "faculty"},
					jsonFlag(),
				},
				Action: rt.listAdvisors,
			},
			{
				Name:   "add",
				Usage:  "add an advisor",
				Flags:  advisorFormFlags(),
				Action: rt.addAdvisor,
			},
			{
				Name:      "edit",
				Usage:     "change the given fields of an advisor",
				ArgsUsage: "<id|advisor-id>",
				Flags:     advisorFormFlags(),
				Action:    rt.editAdvisor,
			},
			{
				Name:      "delete",
				Usage:     "delete an advisor",
				ArgsUsage: "<id|advisor-id>",
				Flags:     []cli.Flag{yesFlag()},
				Action:    rt.deleteAdvisor,
			},
		},
	}
}

func (rt *runtime) listAdvisors(c *cli.Context) error {
	app, _, err := rt.page(c, auth.NavAdvisors, "")
	if err != nil {
		return err
	}
	f := views.AdvisorFilter{Search: c.String("search"), Faculty: c.String("faculty")}
	list := views.FilterAdvisors(app.Data.Advisors(), f)
	out := c.App.Writer
	if c.Bool("json") {
		return writeJSON(out, list)
	}

	rows := make([][]string, 0, len(list))
	for _, a := range list {
		rows = append(rows, []string{a.AdvisorID, a.Name, a.Faculty, a.Department, a.Email, a.Phone})
	}
	renderTable(out, []string{"รหัส", "ชื่อ", "คณะ", "สาขา", "อีเมล", "เบอร์โทร"}, rows)
	fmt.Fprintln(out, mutedStyle.Render(views.CountLabel(len(list), "คน", f.Search != "" || f.Faculty != "")))
	return nil
}

func (rt *runtime) addAdvisor(c *cli.Context) error {
	app, _, err := rt.page(c, auth.NavAdvisors, auth.ManageAdvisors)
	if err != nil {
		return err
	}
	var a models.Advisor
	applyAdvisorFlags(c, &a, true)
	if err := app.Validator.Advisor(a); err != nil {
		return rt.reportValidation(err)
	}
	return reported(app.Data.AddAdvisor(c.Context, a))
}

func (rt *runtime) editAdvisor(c *cli.Context) error {
	key, err := requireArg(c, "รหัสอาจารย์")
	if err != nil {
		return err
	}
	app, _, err := rt.page(c, auth.NavAdvisors, auth.ManageAdvisors)
	if err != nil {
		return err
	}
	a, err := find(app.Data.Advisors(), key, advisorKeys, "อาจารย์")
	if err != nil {
		return err
	}
	applyAdvisorFlags(c, &a, false)
	if err := app.Validator.Advisor(a); err != nil {
		return rt.reportValidation(err)
	}
	return reported(app.Data.UpdateAdvisor(c.Context, a.ID, a))
}

func (rt *runtime) deleteAdvisor(c *cli.Context) error {
	key, err := requireArg(c, "รหัสอาจารย์")
	if err != nil {
		return err
	}
	if err := confirmDelete(c); err != nil {
		return err
	}
	app, _, err := rt.page(c, auth.NavAdvisors, auth.ManageAdvisors)
	if err != nil {
		return err
	}
	a, err := find(app.Data.Advisors(), key, advisorKeys, "อาจารย์")
	if err != nil {
		return err
	}
	return reported(app.Data.DeleteAdvisor(c.Context, a.ID))
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/yigit/unirecords/internal/app/auth"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/tui"
)

func (rt *runtime) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in; prompts when username or password is missing",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, EnvVars: []string{"UNIRECORDS_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			app, err := rt.application(c.Context)
			if err != nil {
				return err
			}
			username := strings.TrimSpace(c.String("username"))
			password := c.String("password")

			if username == "" || password == "" {
				if !rt.opts.Interactive {
					return apperrors.NewBadRequestError("กรุณากรอกชื่อผู้ใช้และรหัสผ่าน")
				}
				err := tui.RunLogin(c.Context, app.Login, username,
					tea.WithInput(rt.opts.Stdin), tea.WithOutput(rt.opts.Stderr))
				if err != nil {
					return err
				}
			} else {
				ok, err := app.Login(c.Context, username, password)
				if err != nil {
					return reported(err)
				}
				if !ok {
					return reported(apperrors.ErrInvalidCredentials)
				}
			}

			if err := app.Data.RefreshAll(c.Context); err != nil {
				rt.lgr.Debug().Err(err).Msg("Initial refresh incomplete")
			}
			return nil
		},
	}
}

func (rt *runtime) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "sign out and drop cached data",
		Action: func(c *cli.Context) error {
			app, err := rt.application(c.Context)
			if err != nil {
				return err
			}
			return app.Session.Logout()
		},
	}
}

func (rt *runtime) whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:    "whoami",
		Aliases: []string{"profile"},
		Usage:   "show the signed-in user and the pages available to the role",
		Flags:   []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			_, user, err := rt.signedIn(c)
			if err != nil {
				return err
			}
			out := c.App.Writer
			if c.Bool("json") {
				return writeJSON(out, user)
			}
			fields := []field{
				{"ชื่อผู้ใช้", user.Username},
				{"ชื่อ", user.Name},
				{"บทบาท", user.Role.Label()},
				{"อีเมล", user.Email},
				{"คณะ", user.Faculty},
				{"สาขา", user.Department},
				{"เบอร์โทร", user.Phone},
			}
			if user.StudentID != "" {
				fields = append(fields, field{"รหัสนักศึกษา", user.StudentID})
			}
			if user.AlumniID != "" {
				fields = append(fields, field{"รหัสศิษย์เก่า", user.AlumniID})
			}
			if user.AdvisorID != "" {
				fields = append(fields, field{"รหัสอาจารย์", user.AdvisorID})
			}
			if user.Year != 0 {
				fields = append(fields, field{"ชั้นปี", fmt.Sprint(user.Year)})
			}
			renderFields(out, "โปรไฟล์", fields)

			var pages []string
			for _, item := range auth.NavFor(user.Role) {
				pages = append(pages, fmt.Sprintf("%s (%s)", item.Label, item.Command))
			}
			fmt.Fprintln(out, mutedStyle.Render("เมนู: "+strings.Join(pages, ", ")))
			return nil
		},
	}
}

func (rt *runtime) passwdCommand() *cli.Command {
	return &cli.Command{
		Name:  "passwd",
		Usage: "change the password of the signed-in user",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "current", Required: true},
			&cli.StringFlag{Name: "new", Required: true},
		},
		Action: func(c *cli.Context) error {
			app, _, err := rt.signedIn(c)
			if err != nil {
				return err
			}
			current, next := c.String("current"), c.String("new")
			if err := app.Validator.ChangePassword(current, next); err != nil {
				return rt.reportValidation(err)
			}
			return reported(app.Session.ChangePassword(c.Context, current, next))
		},
	}
}

// menuCommand lets the user pick a page and runs its default listing.
func (rt *runtime) menuCommand() *cli.Command {
	return &cli.Command{
		Name:  "menu",
		Usage: "choose a page from the menu for your role",
		Action: func(c *cli.Context) error {
			_, user, err := rt.signedIn(c)
			if err != nil {
				return err
			}
			if !rt.opts.Interactive {
				return apperrors.NewBadRequestError("menu ต้องใช้งานผ่านเทอร์มินัล")
			}
			item, err := tui.RunMenu("เมนู: "+user.Role.Label(), auth.NavFor(user.Role),
				tea.WithInput(rt.opts.Stdin), tea.WithOutput(rt.opts.Stderr))
			if err != nil {
				return err
			}
			return c.App.RunContext(c.Context, menuArgs(c, item))
		},
	}
}

// menuArgs re-runs the app for item, carrying the global flags over.
func menuArgs(c *cli.Context, item auth.NavItem) []string {
	args := []string{c.App.Name, "--config", c.String("config")}
	for _, name := range []string{"api-url", "log-level"} {
		if c.IsSet(name) {
			args = append(args, "--"+name, c.String(name))
		}
	}
	if c.Bool("refresh") {
		args = append(args, "--refresh")
	}
	args = append(args, item.Command)
	switch item.Command {
	case auth.NavStudents.Command, auth.NavAlumni.Command, auth.NavProjects.Command, auth.NavAdvisors.Command:
		args = append(args, "list")
	case auth.NavImport.Command:
		args = append(args, "--help")
	}
	return args
}

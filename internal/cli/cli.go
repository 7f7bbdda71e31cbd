// Package cli defines the unirecords command tree.
package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/bootstrap"
	"github.com/yigit/unirecords/internal/config"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/logger"
	"github.com/yigit/unirecords/internal/pkg/notify"
	"github.com/yigit/unirecords/internal/pkg/validation"
)

// Version is stamped at build time.
var Version = "dev"

const (
	msgNotLoggedIn      = "กรุณาเข้าสู่ระบบก่อน (unirecords login)"
	msgPermissionDenied = "คุณไม่มีสิทธิ์ดำเนินการนี้"
	msgPartialLoad      = "โหลดข้อมูลบางส่วนไม่สำเร็จ"
	msgConfirmDelete    = "ใช้ --yes เพื่อยืนยันการลบ"
)

// Options configures the command tree
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	// Interactive allows terminal prompts; set when stdin is a terminal.
	Interactive bool
	Now         func() time.Time
	// Notifier replaces the console notices written to Stderr.
	Notifier notify.Notifier
	// HTTPClient fetches portfolio photos.
	HTTPClient *http.Client
}

func (o *Options) setDefaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Notifier == nil {
		o.Notifier = notify.NewConsole(o.Stderr)
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
}

// runtime carries state between the Before hook and the actions.
type runtime struct {
	opts       Options
	configPath string
	cfg        *config.Config
	lgr        zerolog.Logger
	app        *bootstrap.App
}

// New builds the CLI application.
func New(opts Options) *cli.App {
	opts.setDefaults()
	rt := &runtime{opts: opts}

	return &cli.App{
		Name:      "unirecords",
		Usage:     "ระบบจัดการข้อมูลนักศึกษา ศิษย์เก่า อาจารย์ที่ปรึกษา และโปรเจคจบ",
		Version:   Version,
		Writer:    opts.Stdout,
		ErrWriter: opts.Stderr,
		Reader:    opts.Stdin,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML config file",
				Value:   config.DefaultConfigPath(),
				EnvVars: []string{"UNIRECORDS_CONFIG"},
			},
			&cli.StringFlag{Name: "api-url", Usage: "override api.base_url"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn, error or disabled"},
			&cli.BoolFlag{Name: "refresh", Usage: "ignore the cached snapshot and fetch from the API"},
		},
		Before: rt.before,
		After:  rt.after,
		// Errors go back to main, which decides the exit status.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			rt.loginCommand(),
			rt.logoutCommand(),
			rt.whoamiCommand(),
			rt.passwdCommand(),
			rt.menuCommand(),
			rt.dashboardCommand(),
			rt.studentsCommand(),
			rt.alumniCommand(),
			rt.advisorsCommand(),
			rt.projectsCommand(),
			rt.importCommand(),
			rt.mockServerCommand(),
			rt.configCommand(),
		},
	}
}

func (rt *runtime) before(c *cli.Context) error {
	rt.configPath = c.String("config")
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(rt.configPath)
	if err != nil {
		return err
	}
	if c.IsSet("api-url") {
		cfg.API.BaseURL = c.String("api-url")
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
		logger.Configure(logger.Config{
			Level:  logger.ParseLevel(cfg.Logging.Level),
			Pretty: cfg.PrettyLogs(),
			Output: rt.opts.Stderr,
		})
		lgr = logger.Component("cli")
	}
	rt.cfg, rt.lgr = cfg, lgr
	return nil
}

func (rt *runtime) after(*cli.Context) error {
	if rt.app == nil {
		return nil
	}
	err := rt.app.Close()
	rt.app = nil
	return err
}

// application builds the session, client and data store on first use.
func (rt *runtime) application(ctx context.Context) (*bootstrap.App, error) {
	if rt.app != nil {
		return rt.app, nil
	}
	app, err := bootstrap.BuildApp(ctx, rt.cfg, rt.opts.Notifier, rt.lgr)
	if err != nil {
		return nil, err
	}
	rt.app = app
	return app, nil
}

// signedIn returns the app and the current user, or ErrNotLoggedIn.
func (rt *runtime) signedIn(c *cli.Context) (*bootstrap.App, *models.User, error) {
	app, err := rt.application(c.Context)
	if err != nil {
		return nil, nil, err
	}
	user := app.Session.User()
	if user == nil {
		return nil, nil, apperrors.ErrNotLoggedIn
	}
	return app, user, nil
}

// loadData fills the data store, from the snapshot cache unless --refresh.
// Collections that fail to load stay empty and only produce a warning.
func (rt *runtime) loadData(c *cli.Context, app *bootstrap.App) error {
	cached, err := app.Data.Load(c.Context, !c.Bool("refresh"))
	if !app.Session.IsAuthenticated() {
		return reported(apperrors.ErrNotLoggedIn)
	}
	if err != nil {
		rt.lgr.Debug().Err(err).Msg("Partial data load")
		notify.Warning(rt.opts.Notifier, msgPartialLoad)
	}
	rt.lgr.Debug().Bool("cached", cached).Msg("Data loaded")
	return nil
}

// reportValidation lists each failing field under the submit notice.
func (rt *runtime) reportValidation(err error) error {
	var verr *validation.Errors
	if !errors.As(err, &verr) {
		return err
	}
	notify.Error(rt.opts.Notifier, validation.SubmitFailedMessage)
	for _, name := range verr.Names() {
		notify.Info(rt.opts.Notifier, name+": "+verr.Field(name))
	}
	return reported(err)
}

// reportedError marks an error the user has already been shown as a notice.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err}
}

// Reported reports whether err was already shown to the user.
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// ErrorMessage turns err into the Thai message shown on exit.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNotLoggedIn):
		return msgNotLoggedIn
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return msgPermissionDenied
	}
	var verr *validation.Errors
	if errors.As(err, &verr) {
		return validation.SubmitFailedMessage
	}
	return apperrors.Message(err, err.Error())
}

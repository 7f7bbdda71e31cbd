package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yigit/unirecords/internal/app/auth"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/bootstrap"
	"github.com/yigit/unirecords/internal/csvio"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/notify"
)

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table"}
}

func yesFlag() cli.Flag {
	return &cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "confirm deletion"}
}

func exportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: string(csvio.FormatCSV), Usage: "csv or xlsx"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "file path, or - for stdout; defaults to a dated file in output.dir"},
	}
}

// page checks that the user may open nav and, when capability is set, hold
// it. Data is loaded only after both checks pass.
func (rt *runtime) page(c *cli.Context, nav auth.NavItem, capability auth.Capability) (*bootstrap.App, *models.User, error) {
	app, user, err := rt.signedIn(c)
	if err != nil {
		return nil, nil, err
	}
	if err := app.Authz.ValidateNav(nav); err != nil {
		return nil, nil, err
	}
	if capability != "" {
		if err := app.Authz.Validate(capability); err != nil {
			return nil, nil, err
		}
	}
	if err := rt.loadData(c, app); err != nil {
		return nil, nil, err
	}
	return app, user, nil
}

// find returns the first item whose keys include key.
func find[T any](items []T, key string, keys func(T) []string, what string) (T, error) {
	key = strings.TrimSpace(key)
	for _, item := range items {
		for _, k := range keys(item) {
			if k != "" && k == key {
				return item, nil
			}
		}
	}
	var zero T
	return zero, apperrors.NewResourceNotFoundError(fmt.Sprintf("ไม่พบ%s %s", what, key))
}

func requireArg(c *cli.Context, name string) (string, error) {
	arg := strings.TrimSpace(c.Args().First())
	if arg == "" {
		return "", apperrors.NewBadRequestError("กรุณาระบุ " + name)
	}
	return arg, nil
}

func confirmDelete(c *cli.Context) error {
	if !c.Bool("yes") {
		return apperrors.NewBadRequestError(msgConfirmDelete)
	}
	return nil
}

// exportTable writes rows to --output, or to a dated file under output.dir.
func (rt *runtime) exportTable(c *cli.Context, kind, sheet string, rows [][]string) error {
	format, err := csvio.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	write := func(w io.Writer) error { return csvio.Write(w, format, sheet, rows) }

	path := c.String("output")
	if path == "-" {
		return write(c.App.Writer)
	}
	if path == "" {
		path = filepath.Join(rt.cfg.Output.Dir, csvio.ExportFileName(kind, format, rt.opts.Now()))
	}
	if err := writeFile(path, write); err != nil {
		return err
	}
	rt.lgr.Info().Str("path", path).Int("rows", len(rows)-1).Msg("Exported")
	notify.Success(rt.opts.Notifier, fmt.Sprintf("ส่งออกข้อมูล %d รายการไปยัง %s", len(rows)-1, path))
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

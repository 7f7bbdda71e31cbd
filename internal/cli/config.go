package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yigit/unirecords/internal/bootstrap"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/notify"
)

func (rt *runtime) configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "inspect or create the config file",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "write a starter config to the --config path",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Usage: "overwrite an existing file"},
				},
				Action: func(c *cli.Context) error {
					path := rt.configPath
					if _, err := os.Stat(path); err == nil && !c.Bool("force") {
						return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, "มีไฟล์ตั้งค่าอยู่แล้ว: "+path+" (ใช้ --force เพื่อเขียนทับ)")
					}
					if err := writeFile(path, bootstrap.WriteDefaultConfig); err != nil {
						return err
					}
					notify.Success(rt.opts.Notifier, "สร้างไฟล์ตั้งค่าแล้ว: "+path)
					return nil
				},
			},
			{
				Name:  "path",
				Usage: "print the config file path in use",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprintln(c.App.Writer, rt.configPath)
					return err
				},
			},
			{
				Name:  "show",
				Usage: "print the effective API, cache and output settings",
				Action: func(c *cli.Context) error {
					cfg := rt.cfg
					renderFields(c.App.Writer, "การตั้งค่า", []field{
						{"api.base_url", cfg.API.BaseURL},
						{"api.timeout", cfg.API.Timeout},
						{"session.file", cfg.Session.File},
						{"cache.backend", cfg.Cache.Backend},
						{"cache.ttl", cfg.Cache.TTL},
						{"output.dir", cfg.Output.Dir},
						{"output.font_path", cfg.Output.FontPath},
						{"logging.level", cfg.Logging.Level},
					})
					return nil
				},
			},
		},
	}
}


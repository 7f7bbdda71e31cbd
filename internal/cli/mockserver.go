package cli

import (
	"github.com/urfave/cli/v2"

	"github.com/yigit/unirecords/internal/bootstrap"
	"github.com/yigit/unirecords/internal/pkg/logger"
	"github.com/yigit/unirecords/internal/server"
)

func (rt *runtime) mockServerCommand() *cli.Command {
	return &cli.Command{
		Name:  "mock-server",
		Usage: "serve an in-memory backend with seeded sample data",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "defaults to mock_server.port"},
			&cli.Int64Flag{Name: "seed", Usage: "sample data seed; defaults to mock_server.seed"},
			&cli.BoolFlag{Name: "empty", Usage: "start with demo logins only"},
			&cli.StringFlag{Name: "storage", Usage: "directory that keeps uploaded import files"},
		},
		Action: func(c *cli.Context) error {
			cfg := *rt.cfg
			if c.IsSet("port") {
				cfg.MockServer.Port = c.String("port")
			}
			if c.IsSet("seed") {
				cfg.MockServer.Seed = c.Int64("seed")
			}
			lgr := logger.Component("mock-server")

			api, err := bootstrap.BuildMockAPI(&cfg, c.Bool("empty"), c.String("storage"), lgr)
			if err != nil {
				return err
			}
			lgr.Info().Str("port", cfg.MockServer.Port).Int64("seed", cfg.MockServer.Seed).Msg("Starting mock backend")
			return server.NewServer(":"+cfg.MockServer.Port, api.Handler(), lgr).Run(c.Context)
		},
	}
}

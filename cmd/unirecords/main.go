package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yigit/unirecords/internal/cli"
	"github.com/yigit/unirecords/internal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.New(cli.Options{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Stdin:       os.Stdin,
		Interactive: isTerminal(os.Stdin),
	})
	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Debug().Err(err).Msg("Command failed")
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, cli.ErrorMessage(err))
		}
		stop()
		os.Exit(1)
	}
}

// isTerminal reports whether f is a character device.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

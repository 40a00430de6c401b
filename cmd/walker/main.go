// Package main runs the walker against the components described by a robot config.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	// registers all components.
	_ "go.viam.com/walker/components/base/fake"
	_ "go.viam.com/walker/lidar/fake"
	_ "go.viam.com/walker/ros"

	"go.viam.com/walker/config"
	"go.viam.com/walker/logging"
	"go.viam.com/walker/services/walker"
)

func main() {
	logger := logging.NewLogger("walker")
	logging.ReplaceGlobal(logger)

	app := &cli.App{
		Name:  "walker",
		Usage: "drive a base forward and turn away from obstacles seen by a lidar",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Load configuration from `FILE`",
				Required: true,
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, c.String("config"), c.Bool("debug"), logger)
		},
	}
	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		utils.UncheckedError(logger.Sync())
		os.Exit(1)
	}
	utils.UncheckedError(logger.Sync())
}

func run(ctx context.Context, configPath string, debug bool, logger logging.Logger) (err error) {
	cfg, err := config.Read(configPath, logger)
	if err != nil {
		return err
	}
	if debug || cfg.Debug {
		logger.SetLevel(logging.DEBUG)
	}
	if cfg.LogFilePath != "" {
		appender, closer := logging.NewFileAppender(cfg.LogFilePath)
		logger.AddAppender(appender)
		defer func() {
			err = multierr.Combine(err, logger.Sync(), closer.Close())
		}()
	}

	deps, err := config.BuildComponents(ctx, cfg, logger)
	if err != nil {
		return errors.Wrap(err, "cannot build components")
	}
	defer func() {
		err = multierr.Combine(err, config.CloseComponents(context.Background(), deps))
	}()

	w, err := walker.New(ctx, deps, cfg.WalkerConfig, logger)
	if err != nil {
		return err
	}
	<-ctx.Done()
	logger.Info("shutting down")
	return w.Close(context.Background())
}

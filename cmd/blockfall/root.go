package main

import (
	"fmt"
	"io"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	conf   *config.Config
	log    *logrus.Logger
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "blockfall",
		Short:         "A falling-block puzzle game",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file (environment only when empty)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level")

	cmd.AddCommand(newPlayCmd(a))
	cmd.AddCommand(newSimCmd(a))

	return cmd
}

func (a *app) init(logOut io.Writer) error {
	conf, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		conf.LogLevel = a.logLevel
	}

	log, closer, err := logger.New(logOut, conf.LogLevel, conf.LogFile)
	if err != nil {
		return fmt.Errorf("could not set up logging: %w", err)
	}

	a.conf = conf
	a.log = log
	a.closer = closer

	log.WithFields(logrus.Fields{
		"board": fmt.Sprintf("%dx%d", conf.Board.Height, conf.Board.Width),
		"fps":   conf.Window.FPS,
	}).Debug("config loaded")
	return nil
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

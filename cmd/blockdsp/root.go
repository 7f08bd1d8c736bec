package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-blockdsp/internal/config"
	"github.com/cwbudde/algo-blockdsp/internal/logging"
)

// app carries the state shared by all subcommands after the persistent
// pre-run has loaded configuration and logging.
type app struct {
	cfgPath  string
	logLevel string

	cfg *config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "blockdsp",
		Short:         "Block convolution and overlap-add segmentation for audio files",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newFilterCmd(a),
		newResynthCmd(a),
		newRampsCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg, a.log = cfg, log
	return nil
}

// changed reports whether the named flag was given on the command line.
func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

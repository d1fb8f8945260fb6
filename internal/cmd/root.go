// Package cmd implements the hookmux command line.
package cmd

import (
	"github.com/rickchristie/hookmux"
	"github.com/rickchristie/hookmux/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd builds the hookmux command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "hookmux",
		Short: "In-process event dispatcher playground",
		Long: `hookmux registers handlers against wildcard namespace and event patterns
and triggers them in priority order. The CLI runs YAML scripts of bindings and
triggers, or an interactive shell, against a fresh dispatcher.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default is ./hookmux.yaml or $HOME/.config/hookmux/hookmux.yaml)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = a.v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newRunCmd(a), newShellCmd(a))
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) init() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) newDispatcher() *hookmux.Dispatcher {
	return hookmux.New(a.cfg.DispatcherOptions(a.logger)...)
}

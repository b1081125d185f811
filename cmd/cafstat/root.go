package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-hist/internal/config"
	"github.com/cwbudde/algo-hist/internal/logging"
)

// app is the state shared by all subcommands once flags are parsed.
type app struct {
	out io.Writer
	cfg *config.Config
	log zerolog.Logger

	configPath string
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "cafstat",
		Short:         "Inspect histograms, spectra and likelihood surfaces.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Log, errOut)
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, log.With().Str("cmd", cmd.Name()).Logger()
			a.log.Debug().Str("config", a.configPath).Msg("configuration loaded")
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	defaults := logging.DefaultConfig()
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default: ./cafstat.yaml if present)")
	pf.String("log-level", defaults.Level, "log level (debug, info, warn, error)")
	pf.String("log-format", defaults.Format, "log format (json, console)")

	root.AddCommand(
		a.probCmd(),
		a.poissonCmd(),
		a.histCmd(),
		a.spectrumCmd(),
		a.surfaceCmd(),
		a.formatsCmd(),
	)
	return root
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"regexfsm/internal/config"
	"regexfsm/internal/telemetry"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// app carries state shared by every subcommand once the root pre-run has
// loaded configuration.
type app struct {
	configPath string
	logLevel   string

	cfg      config.Config
	log      *slog.Logger
	shutdown func(context.Context) error
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.shutdown != nil {
		if serr := a.shutdown(context.Background()); serr != nil {
			fmt.Fprintf(stderr, "telemetry shutdown: %v\n", serr)
		}
	}
	if err != nil {
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "regexfsm",
		Short: "Compile regular expressions into minimal DFAs and match strings",
		Long: `regexfsm compiles patterns over letters and digits through a Thompson NFA,
subset construction and minimization, then matches whole strings.

Pattern syntax:
  ab      concatenation
  a+b     union
  a*      Kleene star
  (a+b)   grouping`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(a.matchCmd(), a.dumpCmd(), a.runCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	lvl, err := cfg.Level()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))

	shutdown, err := telemetry.Init(cmd.Context(), cfg.Telemetry, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	a.shutdown = shutdown
	a.log.Debug("configuration loaded", "path", a.configPath, "stage", cfg.Stage, "format", cfg.Format)
	return nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"regexfsm/internal/casefile"
	"regexfsm/internal/config"
	"regexfsm/internal/fsm"
	"regexfsm/regexlib"
)

var (
	errVerifyMismatch = errors.New("minimal DFA disagrees with NFA simulation")
	errCasesFailed    = errors.New("some cases failed")
)

func verdict(ok bool) string {
	if ok {
		return "accept"
	}
	return "reject"
}

// =============================================================================
// match
// =============================================================================

func (a *app) matchCmd() *cobra.Command {
	var verify bool
	cmd := &cobra.Command{
		Use:   "match PATTERN SUBJECT",
		Short: "Match a whole subject against a pattern",
		Example: `  regexfsm match '(a+b)*c' ababc
  regexfsm match --verify 'a*' ''`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, subject := args[0], args[1]
			re, err := regexlib.CompileContext(cmd.Context(), pattern)
			if err != nil {
				return err
			}
			a.log.Debug("compiled",
				"pattern", pattern,
				"nfa_states", re.NFA().NumStates(),
				"dfa_states", re.RawDFA().NumStates(),
				"min_states", re.DFA().NumStates())

			got := re.MatchString(subject)
			if verify {
				if want := fsm.Simulate(re.NFA(), subject); want != got {
					a.log.Error("verification failed", "pattern", pattern, "subject", subject, "dfa", got, "nfa", want)
					return errVerifyMismatch
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), verdict(got))
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "cross-check the result against an NFA simulation")
	return cmd
}

// =============================================================================
// dump
// =============================================================================

func (a *app) dumpCmd() *cobra.Command {
	var stage, format string
	cmd := &cobra.Command{
		Use:   "dump PATTERN",
		Short: "Print an automaton of the compile pipeline",
		Long: `Print the Thompson NFA (nfa), the subset-construction DFA (dfa) or the
minimal DFA (min) of a pattern, as a text listing or Graphviz DOT.`,
		Example: `  regexfsm dump '(a+b)*c' --stage nfa
  regexfsm dump 'ab*' --format dot | dot -Tpng -o min.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("stage") {
				stage = a.cfg.Stage
			}
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Format
			}

			re, err := regexlib.CompileContext(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var g *regexlib.Graph
			switch stage {
			case config.StageNFA:
				g = re.NFA()
			case config.StageDFA:
				g = re.RawDFA()
			case config.StageMin:
				g = re.DFA()
			default:
				return fmt.Errorf("unknown stage %q", stage)
			}

			switch format {
			case config.FormatText:
				return g.Dump(cmd.OutOrStdout())
			case config.FormatDOT:
				return g.WriteDOT(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&stage, "stage", config.StageMin, "automaton to print: nfa, dfa or min")
	cmd.Flags().StringVar(&format, "format", config.FormatText, "output format: text or dot")
	return cmd
}

// =============================================================================
// run
// =============================================================================

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE",
		Short: "Run a file of match cases",
		Long: `Run every case of a case file. Each line holds a quoted pattern, a quoted
subject and an optional expectation (accept or reject). Lines starting
with # are comments. Use - to read from standard input.`,
		Example: `  regexfsm run testdata/scenarios.cases`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			name := "stdin"
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r, name = f, args[0]
			}

			file, err := casefile.Parse(name, r)
			if err != nil {
				return err
			}
			results, sum := casefile.Run(cmd.Context(), file)

			out := cmd.OutOrStdout()
			for _, res := range results {
				status := "ok  "
				if res.Failed() {
					status = "FAIL"
				}
				switch {
				case res.Err != nil:
					fmt.Fprintf(out, "%s %s: %v\n", status, res.Case, res.Err)
				default:
					fmt.Fprintf(out, "%s %s: %s\n", status, res.Case, verdict(res.Accepted))
				}
			}
			fmt.Fprintf(out, "%d cases, %d failed\n", sum.Total, sum.Failed)
			a.log.Info("case file done", "file", name, "total", sum.Total, "failed", sum.Failed)

			if sum.Failed > 0 {
				return errCasesFailed
			}
			return nil
		},
	}
}

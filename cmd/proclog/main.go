// Package main provides the proclog CLI, which drives the process-aware
// console logger from YAML scenarios.
//
// # Usage
//
//	proclog demo [scenario.yaml]   log a scenario to stdout
//	proclog tree [scenario.yaml]   print the process forest of a scenario
//	proclog watch [scenario.yaml]  stream a scenario in a terminal UI
//	proclog bench                  measure logging throughput
//	proclog schema                 print the config file JSON Schema
//	proclog version                print build information
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/proclog/console"
	"go.jacobcolvin.com/proclog/log"
	"go.jacobcolvin.com/proclog/style"
	"go.jacobcolvin.com/proclog/version"
)

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// app holds state shared by all subcommands.
type app struct {
	console    *console.Config
	log        *log.Config
	diag       *slog.Logger
	isTerminal func() bool
}

func newApp() *app {
	return &app{
		console: console.NewConfig(),
		log:     log.NewConfig(),
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

func newRootCommand() *cobra.Command {
	return newApp().rootCommand()
}

func (a *app) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "proclog",
		Short: "Process-aware console logging",
		Long: `proclog renders log entries of named processes and their sub-processes with
colored, aligned service tags. Its subcommands play YAML scenarios through the
logger.`,
		Version:           version.Summary(),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	a.console.RegisterFlags(rootCmd.PersistentFlags())
	a.log.RegisterFlags(rootCmd.PersistentFlags())

	for _, register := range []func(*cobra.Command) error{
		a.console.RegisterCompletions,
		a.log.RegisterCompletions,
	} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
		}
	}

	rootCmd.AddCommand(
		a.demoCommand(),
		a.treeCommand(),
		a.watchCommand(),
		a.benchCommand(),
		schemaCommand(),
		versionCommand(),
	)

	return rootCmd
}

// setup merges the config file, builds the diagnostics logger, and falls
// back to classic mode when stdout is not a terminal and neither --mode nor
// the config file chose a mode.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	fileless := a.console.Mode

	err := a.console.LoadFile(flags)
	if err != nil {
		return err
	}

	modeChosen := flags.Changed(a.console.Flags.Mode) || a.console.Mode != fileless

	a.diag, err = a.log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	if !modeChosen && !a.isTerminal() {
		a.console.Mode = style.Classic.String()
	}

	return a.console.Validate()
}

func (a *app) newLogger(w io.Writer) (*console.Logger, error) {
	return a.console.NewLogger(w, console.WithDiagnostics(a.diag))
}

func scenarioArg(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return args[0]
}

func (a *app) demoCommand() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "demo [scenario.yaml]",
		Short: "Log a scenario to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := LoadScenario(scenarioArg(args))
			if err != nil {
				return err
			}

			l, err := a.newLogger(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			return s.Play(cmd.Context(), l, interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "delay between scenario steps")

	return cmd
}

func (a *app) treeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [scenario.yaml]",
		Short: "Print the process forest of a scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := LoadScenario(scenarioArg(args))
			if err != nil {
				return err
			}

			l, err := a.newLogger(io.Discard)
			if err != nil {
				return err
			}

			_, err = s.Register(l)
			if err != nil {
				return err
			}

			return writeTree(cmd.OutOrStdout(), l)
		},
	}
}

func (a *app) watchCommand() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch [scenario.yaml]",
		Short: "Stream a scenario in a terminal UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := LoadScenario(scenarioArg(args))
			if err != nil {
				return err
			}

			return a.watch(cmd.Context(), s, interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 500*time.Millisecond, "delay between scenario steps")

	return cmd
}

func schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the config file JSON Schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := json.MarshalIndent(console.Schema(), "", "  ")
			if err != nil {
				return fmt.Errorf("encoding schema: %w", err)
			}

			out = append(out, '\n')

			_, err = cmd.OutOrStdout().Write(out)
			if err != nil {
				return fmt.Errorf("writing schema: %w", err)
			}

			return nil
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			if err != nil {
				return fmt.Errorf("writing version: %w", err)
			}

			return nil
		},
	}
}

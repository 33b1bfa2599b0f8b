package profile

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrInvalidRate indicates a negative sampling rate.
var ErrInvalidRate = errors.New("invalid profile rate")

// Flags holds CLI flag names for profiling configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	CPU           string
	Heap          string
	Mutex         string
	Block         string
	MutexFraction string
	BlockRate     string
}

// NewConfig creates a new [Config] embedding these flag names. Every profile
// is disabled; contended mutex and blocking events are sampled fully once a
// profile path is set.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:         f,
		MutexFraction: 1,
		BlockRate:     1,
	}
}

// Config holds profile output paths and sampling rates. An empty path
// disables that profile.
//
// Create instances with [NewConfig], register CLI flags with
// [Config.RegisterFlags], and begin recording with [Config.Start].
type Config struct {
	Flags         Flags
	CPU           string
	Heap          string
	Mutex         string
	Block         string
	MutexFraction int
	BlockRate     int
}

// NewConfig returns a new [Config] with the default flag names.
func NewConfig() *Config {
	f := Flags{
		CPU:           "cpu-profile",
		Heap:          "heap-profile",
		Mutex:         "mutex-profile",
		Block:         "block-profile",
		MutexFraction: "mutex-profile-fraction",
		BlockRate:     "block-profile-rate",
	}

	return f.NewConfig()
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPU, c.Flags.CPU, c.CPU, "write a CPU profile to file")
	flags.StringVar(&c.Heap, c.Flags.Heap, c.Heap, "write a heap profile to file")
	flags.StringVar(&c.Mutex, c.Flags.Mutex, c.Mutex, "write a mutex contention profile to file")
	flags.StringVar(&c.Block, c.Flags.Block, c.Block, "write a blocking profile to file")
	flags.IntVar(&c.MutexFraction, c.Flags.MutexFraction, c.MutexFraction,
		"report 1/N of contended mutex events")
	flags.IntVar(&c.BlockRate, c.Flags.BlockRate, c.BlockRate,
		"sample one blocking event per N nanoseconds blocked")
}

// RegisterCompletions registers shell completions for profile flags on cmd.
// Path flags complete *.prof and *.pprof files; rate flags disable file
// completion.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.MutexFraction, c.Flags.BlockRate} {
		err := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	for _, flag := range []string{c.Flags.CPU, c.Flags.Heap, c.Flags.Mutex, c.Flags.Block} {
		err := cmd.RegisterFlagCompletionFunc(flag,
			cobra.FixedCompletions([]string{"prof", "pprof"}, cobra.ShellCompDirectiveFilterFileExt))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// Enabled reports whether any profile path is set.
func (c *Config) Enabled() bool {
	return c.CPU != "" || c.Heap != "" || c.Mutex != "" || c.Block != ""
}

// Validate reports whether the sampling rates are usable.
func (c *Config) Validate() error {
	if c.MutexFraction < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d",
			ErrInvalidRate, c.Flags.MutexFraction, c.MutexFraction)
	}

	if c.BlockRate < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d",
			ErrInvalidRate, c.Flags.BlockRate, c.BlockRate)
	}

	return nil
}

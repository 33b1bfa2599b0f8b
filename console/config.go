package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/proclog/format"
	"go.jacobcolvin.com/proclog/level"
	"go.jacobcolvin.com/proclog/style"
)

// DefaultTagsMaxLength is the default cap on service names in tags.
const DefaultTagsMaxLength = 20

var (
	// ErrInvalidArgument indicates an invalid configuration value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidConfigFile indicates a config file that cannot be read or
	// decoded.
	ErrInvalidConfigFile = errors.New("invalid config file")
)

// Flags holds CLI flag names for logger configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Mode          string
	Level         string
	Details       string
	Scheme        string
	TagsMaxLength string
	ShowHierarchy string
	ShowTimestamp string
	NeutralColors string
	File          string
}

// NewConfig creates a new [Config] with default values, embedding these flag
// names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:         f,
		Mode:          style.Classic.String(),
		Level:         "info",
		Details:       format.Default.String(),
		Scheme:        style.Dark.String(),
		TagsMaxLength: DefaultTagsMaxLength,
		ShowTimestamp: true,
	}
}

// Config holds logger settings from CLI flags and an optional YAML file.
//
// Create instances with [NewConfig], register CLI flags with
// [Config.RegisterFlags], merge a file with [Config.LoadFile], and build a
// [Logger] with [Config.NewLogger].
type Config struct {
	Styles        *style.Overrides `json:"styles,omitempty"        yaml:"styles,omitempty"`
	Flags         Flags            `json:"-"                       yaml:"-"`
	Mode          string           `json:"mode,omitempty"          yaml:"mode,omitempty"`
	Level         string           `json:"level,omitempty"         yaml:"level,omitempty"`
	Details       string           `json:"details,omitempty"       yaml:"details,omitempty"`
	Scheme        string           `json:"scheme,omitempty"        yaml:"scheme,omitempty"`
	File          string           `json:"-"                       yaml:"-"`
	TagsMaxLength int              `json:"tagsMaxLength"           yaml:"tagsMaxLength"`
	ShowHierarchy bool             `json:"showHierarchy"           yaml:"showHierarchy"`
	ShowTimestamp bool             `json:"showTimestamp"           yaml:"showTimestamp"`
	NeutralColors bool             `json:"neutralColors"           yaml:"neutralColors"`
}

// NewConfig returns a new [Config] with default values and flag names.
func NewConfig() *Config {
	f := Flags{
		Mode:          "mode",
		Level:         "level",
		Details:       "details",
		Scheme:        "scheme",
		TagsMaxLength: "tags-max-length",
		ShowHierarchy: "show-hierarchy",
		ShowTimestamp: "show-timestamp",
		NeutralColors: "neutral-colors",
		File:          "config",
	}

	return f.NewConfig()
}

// RegisterFlags adds logger flags to the given [*pflag.FlagSet]. Current
// field values become the flag defaults.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Mode, c.Flags.Mode, "m", c.Mode,
		fmt.Sprintf("display mode, one of: %s", style.GetAllModeStrings()))
	flags.StringVarP(&c.Level, c.Flags.Level, "l", c.Level,
		fmt.Sprintf("minimum level, one of: %s", level.GetAllLevelStrings()))
	flags.StringVar(&c.Details, c.Flags.Details, c.Details,
		fmt.Sprintf("hierarchy details, one of: %s", format.GetAllDetailsStrings()))
	flags.StringVar(&c.Scheme, c.Flags.Scheme, c.Scheme,
		fmt.Sprintf("color scheme, one of: %s", style.GetAllSchemeStrings()))
	flags.IntVar(&c.TagsMaxLength, c.Flags.TagsMaxLength, c.TagsMaxLength,
		"maximum service name width in tags (0 for no limit)")
	flags.BoolVar(&c.ShowHierarchy, c.Flags.ShowHierarchy, c.ShowHierarchy,
		"show the parent process, or the full path with --details=detailed")
	flags.BoolVar(&c.ShowTimestamp, c.Flags.ShowTimestamp, c.ShowTimestamp,
		"prefix lines with the time of day")
	flags.BoolVar(&c.NeutralColors, c.Flags.NeutralColors, c.NeutralColors,
		"include white and black in the color rotation")
	flags.StringVarP(&c.File, c.Flags.File, "c", c.File,
		"YAML config file; explicitly set flags take precedence")
}

// RegisterCompletions registers shell completions for logger flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	fixed := map[string][]string{
		c.Flags.Mode:    style.GetAllModeStrings(),
		c.Flags.Level:   level.GetAllLevelStrings(),
		c.Flags.Details: format.GetAllDetailsStrings(),
		c.Flags.Scheme:  style.GetAllSchemeStrings(),
	}

	for _, flag := range []string{c.Flags.Mode, c.Flags.Level, c.Flags.Details, c.Flags.Scheme} {
		err := cmd.RegisterFlagCompletionFunc(flag,
			cobra.FixedCompletions(fixed[flag], cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.TagsMaxLength,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return []string{strconv.Itoa(DefaultTagsMaxLength)}, cobra.ShellCompDirectiveNoFileComp
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.TagsMaxLength, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.File,
		cobra.FixedCompletions([]string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.File, err)
	}

	return nil
}

// LoadFile reads the YAML file named by c.File, if any, on top of c. Values
// of flags explicitly set on flags keep precedence over the file. flags may
// be nil, in which case the file wins for every key it sets.
func (c *Config) LoadFile(flags *pflag.FlagSet) error {
	if c.File == "" {
		return nil
	}

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
	}
	defer f.Close() //nolint:errcheck // Read-only file.

	return c.Decode(f, flags)
}

// Decode reads YAML from r on top of c with the same precedence rules as
// [Config.LoadFile]. Unknown keys are rejected.
func (c *Config) Decode(r io.Reader, flags *pflag.FlagSet) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
	}

	merged := *c

	err = yaml.UnmarshalWithOptions(data, &merged, yaml.DisallowUnknownField())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
	}

	if flags != nil {
		merged.keepChanged(c, flags)
	}

	merged.Flags = c.Flags
	merged.File = c.File
	*c = merged

	return nil
}

// keepChanged restores, from flagged, every field whose flag was set
// explicitly.
func (c *Config) keepChanged(flagged *Config, flags *pflag.FlagSet) {
	changed := func(name string) bool {
		return name != "" && flags.Changed(name)
	}

	if changed(c.Flags.Mode) {
		c.Mode = flagged.Mode
	}

	if changed(c.Flags.Level) {
		c.Level = flagged.Level
	}

	if changed(c.Flags.Details) {
		c.Details = flagged.Details
	}

	if changed(c.Flags.Scheme) {
		c.Scheme = flagged.Scheme
	}

	if changed(c.Flags.TagsMaxLength) {
		c.TagsMaxLength = flagged.TagsMaxLength
	}

	if changed(c.Flags.ShowHierarchy) {
		c.ShowHierarchy = flagged.ShowHierarchy
	}

	if changed(c.Flags.ShowTimestamp) {
		c.ShowTimestamp = flagged.ShowTimestamp
	}

	if changed(c.Flags.NeutralColors) {
		c.NeutralColors = flagged.NeutralColors
	}
}

// Settings is a validated, typed view of a [Config].
type Settings struct {
	Styles        *style.Config
	Format        format.Options
	Mode          style.Mode
	Level         level.Level
	Scheme        style.Scheme
	NeutralColors bool
}

// Settings validates c and returns its typed form. Every error wraps
// [ErrInvalidArgument].
func (c *Config) Settings() (Settings, error) {
	mode, err := style.ParseMode(c.Mode)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	lvl, err := level.Parse(c.Level)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	details, err := format.ParseDetails(c.Details)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	scheme, err := style.ParseScheme(c.Scheme)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	if c.TagsMaxLength < 0 {
		return Settings{}, fmt.Errorf("%w: %s must not be negative, got %d",
			ErrInvalidArgument, c.Flags.TagsMaxLength, c.TagsMaxLength)
	}

	s := Settings{
		Mode:          mode,
		Level:         lvl,
		Scheme:        scheme,
		NeutralColors: c.NeutralColors,
		Format: format.Options{
			TagsMaxLength: c.TagsMaxLength,
			Details:       details,
			ShowHierarchy: c.ShowHierarchy,
			ShowTimestamp: c.ShowTimestamp,
		},
	}

	s.Styles, err = c.stylesFor(mode, scheme)
	if err != nil {
		return Settings{}, err
	}

	return s, nil
}

// stylesFor returns the preset of mode with the file overrides and scheme
// applied.
func (c *Config) stylesFor(mode style.Mode, scheme style.Scheme) (*style.Config, error) {
	cfg := style.Preset(mode).WithScheme(scheme)
	if c.Styles == nil {
		return cfg, nil
	}

	cfg, err := cfg.Override(*c.Styles)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return cfg, nil
}

// Validate reports whether c can build a [Logger].
func (c *Config) Validate() error {
	_, err := c.Settings()

	return err
}

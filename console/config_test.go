package console_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/proclog/console"
	"go.jacobcolvin.com/proclog/format"
	"go.jacobcolvin.com/proclog/level"
	"go.jacobcolvin.com/proclog/stringtest"
	"go.jacobcolvin.com/proclog/style"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	s, err := console.NewConfig().Settings()
	require.NoError(t, err)

	assert.Equal(t, style.Classic, s.Mode)
	assert.Equal(t, level.Info, s.Level)
	assert.Equal(t, style.Dark, s.Scheme)
	assert.False(t, s.NeutralColors)
	assert.Equal(t, format.Options{
		TagsMaxLength: 20,
		Details:       format.Default,
		ShowTimestamp: true,
	}, s.Format)
	assert.Equal(t, style.Preset(style.Classic), s.Styles)
}

func TestSettingsErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		mutate func(*console.Config)
		target error
	}{
		"mode": {
			mutate: func(c *console.Config) { c.Mode = "rainbow" },
			target: style.ErrUnknownMode,
		},
		"level": {
			mutate: func(c *console.Config) { c.Level = "fatal" },
			target: level.ErrUnknownLevel,
		},
		"details": {
			mutate: func(c *console.Config) { c.Details = "verbose" },
			target: format.ErrUnknownDetails,
		},
		"scheme": {
			mutate: func(c *console.Config) { c.Scheme = "sepia" },
			target: style.ErrUnknownScheme,
		},
		"negative tags length": {
			mutate: func(c *console.Config) { c.TagsMaxLength = -1 },
			target: console.ErrInvalidArgument,
		},
		"style override": {
			mutate: func(c *console.Config) {
				c.Styles = &style.Overrides{Message: &style.ElementOverride{
					Main: style.RuleOverride{"info": {"sparkle"}},
				}}
			},
			target: style.ErrUnknownStyle,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := console.NewConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, console.ErrInvalidArgument)
			require.ErrorIs(t, err, tc.target)

			_, err = cfg.NewLogger(&strings.Builder{})
			require.ErrorIs(t, err, tc.target)
		})
	}
}

const fileConfig = `
mode: colored
level: debug
details: detailed
scheme: light
tagsMaxLength: 12
showHierarchy: true
showTimestamp: false
neutralColors: true
styles:
  message:
    main:
      info: [bright]
      default: [dim]
`

func TestDecode(t *testing.T) {
	t.Parallel()

	cfg := console.NewConfig()
	require.NoError(t, cfg.Decode(strings.NewReader(stringtest.Input(fileConfig)), nil))

	s, err := cfg.Settings()
	require.NoError(t, err)

	assert.Equal(t, style.Colored, s.Mode)
	assert.Equal(t, level.Debug, s.Level)
	assert.Equal(t, style.Light, s.Scheme)
	assert.True(t, s.NeutralColors)
	assert.Equal(t, format.Options{
		TagsMaxLength: 12,
		Details:       format.Detailed,
		ShowHierarchy: true,
	}, s.Format)

	assert.Equal(t, style.Light, s.Styles.Scheme)
	assert.Equal(t, []style.Style{style.Bright}, s.Styles.Styles(style.FieldMessage, true, level.Info))
	assert.Equal(t, []style.Style{style.Dim}, s.Styles.Styles(style.FieldMessage, true, level.None))
	// Other entries come from the colored preset.
	assert.Equal(t, []style.Style{style.Reverse}, s.Styles.Styles(style.FieldMessage, true, level.Error))
	assert.Equal(t, "config", cfg.Flags.File)
}

func TestDecodePartial(t *testing.T) {
	t.Parallel()

	cfg := console.NewConfig()
	require.NoError(t, cfg.Decode(strings.NewReader("level: warn\n"), nil))

	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "classic", cfg.Mode)
	assert.True(t, cfg.ShowTimestamp)
	assert.Equal(t, console.DefaultTagsMaxLength, cfg.TagsMaxLength)
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"unknown key":  "colour: red\n",
		"wrong type":   "tagsMaxLength: [1]\n",
		"invalid yaml": "mode: [\n",
	}

	for name, input := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := console.NewConfig()
			err := cfg.Decode(strings.NewReader(input), nil)
			require.ErrorIs(t, err, console.ErrInvalidConfigFile)
		})
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	t.Parallel()

	cfg := console.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse([]string{"--mode=docker", "--show-timestamp=true", "--tags-max-length=5"}))

	require.NoError(t, cfg.Decode(strings.NewReader(stringtest.Input(fileConfig)), cmd.Flags()))

	assert.Equal(t, "docker", cfg.Mode)
	assert.True(t, cfg.ShowTimestamp)
	assert.Equal(t, 5, cfg.TagsMaxLength)
	// Keys without an explicit flag come from the file.
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "light", cfg.Scheme)
	assert.True(t, cfg.ShowHierarchy)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "proclog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(stringtest.Input(fileConfig)), 0o600))

	cfg := console.NewConfig()
	cfg.File = path
	require.NoError(t, cfg.LoadFile(nil))
	assert.Equal(t, "colored", cfg.Mode)
	assert.Equal(t, path, cfg.File)

	missing := console.NewConfig()
	missing.File = filepath.Join(t.TempDir(), "missing.yaml")
	require.ErrorIs(t, missing.LoadFile(nil), console.ErrInvalidConfigFile)

	none := console.NewConfig()
	require.NoError(t, none.LoadFile(nil))
	assert.Equal(t, "classic", none.Mode)
}

func TestRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := console.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cfg.RegisterCompletions(cmd))

	tcs := map[string]struct {
		flag      string
		want      []string
		directive cobra.ShellCompDirective
	}{
		"mode":    {flag: "mode", want: style.GetAllModeStrings(), directive: cobra.ShellCompDirectiveNoFileComp},
		"level":   {flag: "level", want: level.GetAllLevelStrings(), directive: cobra.ShellCompDirectiveNoFileComp},
		"details": {flag: "details", want: format.GetAllDetailsStrings(), directive: cobra.ShellCompDirectiveNoFileComp},
		"scheme":  {flag: "scheme", want: style.GetAllSchemeStrings(), directive: cobra.ShellCompDirectiveNoFileComp},
		"tags":    {flag: "tags-max-length", want: []string{"20"}, directive: cobra.ShellCompDirectiveNoFileComp},
		"config":  {flag: "config", want: []string{"yaml", "yml"}, directive: cobra.ShellCompDirectiveFilterFileExt},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fn, ok := cmd.GetFlagCompletionFunc(tc.flag)
			require.True(t, ok)

			values, directive := fn(cmd, nil, "")
			assert.Equal(t, tc.directive, directive)
			assert.Equal(t, tc.want, values)
		})
	}
}

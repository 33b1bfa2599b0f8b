package log_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/proclog/log"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    log.Level
		expectError bool
	}{
		"error level":      {input: "error", expected: log.LevelError},
		"warn level":       {input: "warn", expected: log.LevelWarn},
		"warning alias":    {input: "warning", expected: log.LevelWarn},
		"info level":       {input: "info", expected: log.LevelInfo},
		"debug level":      {input: "debug", expected: log.LevelDebug},
		"case insensitive": {input: " INFO ", expected: log.LevelInfo},
		"unknown level":    {input: "trace", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			lvl, err := log.ParseLevel(tc.input)
			if tc.expectError {
				require.ErrorIs(t, err, log.ErrUnknownLogLevel)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, lvl)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    log.Format
		expectError bool
	}{
		"json format":      {input: "json", expected: log.FormatJSON},
		"logfmt format":    {input: "logfmt", expected: log.FormatLogfmt},
		"text format":      {input: "text", expected: log.FormatText},
		"case insensitive": {input: "JSON", expected: log.FormatJSON},
		"unknown format":   {input: "xml", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.ParseFormat(tc.input)
			if tc.expectError {
				require.ErrorIs(t, err, log.ErrUnknownLogFormat)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		checkFunc func(*testing.T, []byte)
		format    log.Format
	}{
		"json handler": {
			format: log.FormatJSON,
			checkFunc: func(t *testing.T, output []byte) {
				t.Helper()

				var entry map[string]any

				require.NoError(t, json.Unmarshal(output, &entry))
				assert.Equal(t, "unknown process", entry["msg"])
				assert.Equal(t, "WARN", entry["level"])
				assert.Equal(t, "ghost_1", entry["id"])
			},
		},
		"logfmt handler": {
			format: log.FormatLogfmt,
			checkFunc: func(t *testing.T, output []byte) {
				t.Helper()

				out := string(output)
				assert.Contains(t, out, "level=WARN")
				assert.Contains(t, out, `msg="unknown process"`)
				assert.Contains(t, out, "id=ghost_1")
			},
		},
		"text handler": {
			format: log.FormatText,
			checkFunc: func(t *testing.T, output []byte) {
				t.Helper()

				out := string(output)
				assert.Contains(t, out, "WARN")
				assert.Contains(t, out, "unknown process")
				assert.Contains(t, out, "id=ghost_1")
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := slog.New(log.NewHandler(&buf, log.LevelInfo, tc.format))
			logger.Warn("unknown process", slog.String("id", "ghost_1"))

			tc.checkFunc(t, buf.Bytes())
		})
	}
}

func TestNewHandlerFromStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level, format string
		expectError   bool
	}{
		"valid":          {level: "debug", format: "json"},
		"invalid level":  {level: "loud", format: "json", expectError: true},
		"invalid format": {level: "info", format: "yaml", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			handler, err := log.NewHandlerFromStrings(&buf, tc.level, tc.format)
			if tc.expectError {
				require.ErrorIs(t, err, log.ErrInvalidArgument)
				assert.Nil(t, handler)

				return
			}

			require.NoError(t, err)
			slog.New(handler).Debug("registered")
			assert.Contains(t, buf.String(), "registered")
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		logFunc func(*slog.Logger)
		level   log.Level
		emitted bool
	}{
		"info passes info":   {level: log.LevelInfo, logFunc: func(l *slog.Logger) { l.Info("m") }, emitted: true},
		"info blocks debug":  {level: log.LevelInfo, logFunc: func(l *slog.Logger) { l.Debug("m") }},
		"error passes error": {level: log.LevelError, logFunc: func(l *slog.Logger) { l.Error("m") }, emitted: true},
		"error blocks warn":  {level: log.LevelError, logFunc: func(l *slog.Logger) { l.Warn("m") }},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			for _, f := range []log.Format{log.FormatJSON, log.FormatText} {
				var buf bytes.Buffer

				tc.logFunc(slog.New(log.NewHandler(&buf, tc.level, f)))
				assert.Equal(t, tc.emitted, buf.Len() > 0, f)
			}
		})
	}
}

func TestNewDiagnostics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	diag := log.NewDiagnostics(&buf)
	diag.Info("not shown")
	assert.Empty(t, buf.String())

	diag.Warn("dropped entry", slog.String("id", "ghost_1"))
	assert.Contains(t, buf.String(), "dropped entry")
}

func TestRegisterCompletions(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		flag string
		want []string
	}{
		"log-level completions":  {flag: "log-level", want: log.GetAllLevelStrings()},
		"log-format completions": {flag: "log-format", want: log.GetAllFormatStrings()},
	}

	cfg := log.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cfg.RegisterCompletions(cmd))

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			completionFn, ok := cmd.GetFlagCompletionFunc(tc.flag)
			require.True(t, ok)

			values, directive := completionFn(cmd, nil, "")
			assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
			assert.Equal(t, tc.want, values)
		})
	}
}

func TestConfigNewHandler(t *testing.T) {
	t.Parallel()

	cfg := log.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse([]string{"--log-level=debug", "--log-format=logfmt"}))

	var buf bytes.Buffer

	handler, err := cfg.NewHandler(&buf)
	require.NoError(t, err)

	slog.New(handler).Debug("tree rendered")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

package format_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/proclog/format"
	"go.jacobcolvin.com/proclog/level"
	"go.jacobcolvin.com/proclog/palette"
	"go.jacobcolvin.com/proclog/process"
	"go.jacobcolvin.com/proclog/registry"
	"go.jacobcolvin.com/proclog/stringtest"
	"go.jacobcolvin.com/proclog/style"
)

var fixedTime = time.Date(2024, 3, 9, 7, 5, 3, 0, time.UTC)

func clock() time.Time { return fixedTime }

type fixture struct {
	svc              *registry.Service
	api, worker, job process.ID
}

func newFixture(t *testing.T, m style.Mode) fixture {
	t.Helper()

	svc := registry.New(process.NewDatabase(), palette.New(m))

	api, err := svc.RegisterMain("API")
	require.NoError(t, err)

	worker, err := svc.RegisterSub("Worker", api)
	require.NoError(t, err)

	job, err := svc.RegisterSub("Job", worker)
	require.NoError(t, err)

	return fixture{svc: svc, api: api, worker: worker, job: job}
}

func TestFormatLayout(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, style.Classic)

	tcs := map[string]struct {
		id    process.ID
		opts  format.Options
		level level.Level
		want  string
	}{
		"hierarchy default shows parent": {
			id:    fx.worker,
			opts:  format.Options{ShowHierarchy: true, TagsMaxLength: 20},
			level: level.Info,
			want:  "[INFO]  [API] [Worker] - started",
		},
		"hierarchy light shows parent": {
			id:    fx.job,
			opts:  format.Options{ShowHierarchy: true, Details: format.Light, TagsMaxLength: 20},
			level: level.Info,
			want:  "[INFO]  [Worker] [Job]    - started",
		},
		"root has no parent tag": {
			id:    fx.api,
			opts:  format.Options{ShowHierarchy: true, TagsMaxLength: 20},
			level: level.Error,
			want:  "[ERROR] [API]    - started",
		},
		"hierarchy hidden": {
			id:    fx.worker,
			opts:  format.Options{Details: format.Detailed, TagsMaxLength: 20},
			level: level.Warn,
			want:  "[WARN]  [Worker] - started",
		},
		"detailed path": {
			id:    fx.job,
			opts:  format.Options{ShowHierarchy: true, Details: format.Detailed, TagsMaxLength: 20},
			level: level.Debug,
			want:  "[DEBUG] [API] -> [Worker] -> [Job] - started\n",
		},
		"detailed root": {
			id:    fx.api,
			opts:  format.Options{ShowHierarchy: true, Details: format.Detailed, TagsMaxLength: 20},
			level: level.Info,
			want:  "[INFO]  [API] - started\n",
		},
		"timestamp": {
			id:    fx.api,
			opts:  format.Options{ShowTimestamp: true, TagsMaxLength: 20},
			level: level.Trace,
			want:  "[07:05:03] [TRACE] [API]    - started",
		},
		"no cap": {
			id:    fx.api,
			opts:  format.Options{},
			level: level.Info,
			want:  "[INFO]  [API]    - started",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := format.New(fx.svc.Database(), tc.opts, format.WithClock(clock))

			got, err := f.Format(tc.id, tc.level, "started")
			require.NoError(t, err)
			assert.Equal(t, tc.want, stringtest.Strip(got))
		})
	}
}

func TestFormatEndToEnd(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, style.Colored)
	f := format.New(fx.svc.Database(), format.Options{ShowHierarchy: true, TagsMaxLength: 20})

	got, err := f.Format(fx.worker, level.Info, "started")
	require.NoError(t, err)

	plain := stringtest.Strip(got)
	apiAt := strings.Index(plain, "[API]")
	workerAt := strings.Index(plain, "[Worker]")
	msgAt := strings.Index(plain, "started")

	require.NotEqual(t, -1, apiAt)
	assert.Less(t, apiAt, workerAt)
	assert.Less(t, workerAt, msgAt)
	assert.Equal(t, 1, strings.Count(plain, "[INFO]"))
	assert.True(t, strings.HasPrefix(plain, "[INFO]"+strings.Repeat(" ", level.TagWidth()-len("[INFO]"))+" "))
}

func TestFormatTruncation(t *testing.T) {
	t.Parallel()

	svc := registry.New(process.NewDatabase(), palette.New(style.Classic))

	long, err := svc.RegisterMain("VeryLongServiceName")
	require.NoError(t, err)

	short, err := svc.RegisterMain("db")
	require.NoError(t, err)

	f := format.New(svc.Database(), format.Options{TagsMaxLength: 8})

	got, err := f.Format(long, level.Info, "x")
	require.NoError(t, err)
	assert.Equal(t, "[INFO]  [VeryL...] - x", stringtest.Strip(got))

	got, err = f.Format(short, level.Info, "x")
	require.NoError(t, err)
	assert.Equal(t, "[INFO]  [db]       - x", stringtest.Strip(got))

	for _, name := range []string{"a", "abcdefgh", "abcdefghi", "VeryLongServiceName"} {
		tag := "[" + format.Truncate(name, 8) + "]"
		assert.LessOrEqual(t, len(tag), 8+2, name)
	}

	assert.Equal(t, "abcdefgh", format.Truncate("abcdefgh", 8))
	assert.Equal(t, "abcde...", format.Truncate("abcdefghi", 8))
	assert.Equal(t, "ab", format.Truncate("abcdef", 2))
}

func TestFormatStyles(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, style.Docker)
	cfg := style.Preset(style.Docker)

	f := format.New(fx.svc.Database(), format.Options{TagsMaxLength: 20},
		format.WithStyles(func() *style.Config { return cfg }))

	got, err := f.Format(fx.api, level.Error, "boom")
	require.NoError(t, err)

	reverse := []style.Style{style.Reverse}
	assert.Contains(t, got, style.Apply("[ERROR]", style.Blue, reverse, style.Dark))
	assert.Contains(t, got, style.Apply("[API]", style.Blue, reverse, style.Dark))
	assert.True(t, strings.HasSuffix(got, " - "+style.Apply("boom", style.Blue, reverse, style.Dark)))
}

func TestFormatPerNodeColors(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, style.Colored)
	cfg := style.Preset(style.Classic)

	f := format.New(fx.svc.Database(),
		format.Options{ShowHierarchy: true, Details: format.Detailed},
		format.WithStyles(func() *style.Config { return cfg }))

	got, err := f.Format(fx.job, level.Info, "x")
	require.NoError(t, err)

	reset := []style.Style{style.Reset}
	want := style.Apply("[API]", style.Blue, reset, style.Dark) + " -> " +
		style.Apply("[Worker]", style.Green, reset, style.Dark) + " -> " +
		style.Apply("[Job]", style.Green, reset, style.Dark)
	assert.Contains(t, got, want)
}

func TestFormatStyleProviderSwap(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, style.Classic)
	cfg := style.Preset(style.Classic)

	f := format.New(fx.svc.Database(), format.Options{},
		format.WithStyles(func() *style.Config { return cfg }))

	first, err := f.Format(fx.api, level.Info, "x")
	require.NoError(t, err)
	assert.Contains(t, first, "\x1b[37m")

	cfg = cfg.WithScheme(style.Light)

	second, err := f.Format(fx.api, level.Info, "x")
	require.NoError(t, err)
	assert.Contains(t, second, "\x1b[97m")
	assert.NotContains(t, second, "\x1b[37m")
}

func TestFormatUnknownProcess(t *testing.T) {
	t.Parallel()

	f := format.New(process.NewDatabase(), format.Options{})

	_, err := f.Format("ghost_1", level.Info, "x")
	require.ErrorIs(t, err, format.ErrUnknownProcess)
}

func TestParseDetails(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  format.Details
		err   bool
	}{
		"default":  {input: "default", want: format.Default},
		"light":    {input: "Light", want: format.Light},
		"detailed": {input: "DETAILED", want: format.Detailed},
		"unknown":  {input: "verbose", err: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := format.ParseDetails(tc.input)
			if tc.err {
				require.ErrorIs(t, err, format.ErrUnknownDetails)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, strings.ToLower(tc.input), got.String())
		})
	}
}

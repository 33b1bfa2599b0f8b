package console

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.jacobcolvin.com/proclog/format"
	"go.jacobcolvin.com/proclog/level"
	"go.jacobcolvin.com/proclog/log"
	"go.jacobcolvin.com/proclog/palette"
	"go.jacobcolvin.com/proclog/process"
	"go.jacobcolvin.com/proclog/registry"
	"go.jacobcolvin.com/proclog/style"
	"go.jacobcolvin.com/proclog/treeview"
)

// ErrNotInitialized indicates a call on a nil [*Logger].
var ErrNotInitialized = errors.New("logger is not initialized")

// Logger writes styled, process-aware log entries to a sink. Every entry is
// written with exactly one Write call. It is safe for concurrent use.
//
// Create instances with [New] or [Config.NewLogger]. Methods on a nil
// Logger do not panic; registration and [Logger.SetMode] return
// [ErrNotInitialized].
type Logger struct {
	w         io.Writer
	diag      *slog.Logger
	svc       *registry.Service
	formatter *format.Formatter
	overrides *style.Overrides
	styles    atomic.Pointer[style.Config]
	mode      atomic.Int64
	minLevel  atomic.Int64
	scheme    style.Scheme
	mu        sync.Mutex
}

type options struct {
	diag *slog.Logger
	now  func() time.Time
}

// Option configures a [Logger].
type Option func(*options)

// WithDiagnostics sets the logger that receives dropped entries and sink
// write failures. The default writes warnings to stderr.
func WithDiagnostics(l *slog.Logger) Option {
	return func(o *options) {
		o.diag = l
	}
}

// WithClock sets the time source for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// NewLogger validates c and creates a [Logger] writing to w.
func (c *Config) NewLogger(w io.Writer, opts ...Option) (*Logger, error) {
	s, err := c.Settings()
	if err != nil {
		return nil, err
	}

	l := New(w, s, opts...)
	l.overrides = c.Styles

	return l, nil
}

// New creates a [Logger] writing to w with already validated settings.
func New(w io.Writer, s Settings, opts ...Option) *Logger {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	if o.diag == nil {
		o.diag = log.NewDiagnostics(os.Stderr)
	}

	var colorOpts []palette.Option
	if s.NeutralColors {
		colorOpts = append(colorOpts, palette.WithNeutralColors(true))
	}

	l := &Logger{
		w:      w,
		diag:   o.diag,
		svc:    registry.New(process.NewDatabase(), palette.New(s.Mode, colorOpts...)),
		scheme: s.Scheme,
	}

	styles := s.Styles
	if styles == nil {
		styles = style.Preset(s.Mode).WithScheme(s.Scheme)
	}

	l.styles.Store(styles)
	l.mode.Store(int64(s.Mode))
	l.minLevel.Store(int64(s.Level))
	l.formatter = format.New(l.svc.Database(), s.Format,
		format.WithStyles(l.styles.Load),
		format.WithClock(o.now))

	return l
}

// RegisterMain registers a top-level process and returns its ID.
func (l *Logger) RegisterMain(name string) (process.ID, error) {
	return l.Register(process.Main{Info: process.Info{ServiceName: name}})
}

// RegisterSub registers a process under parent and returns its ID.
func (l *Logger) RegisterSub(name string, parent process.ID) (process.ID, error) {
	return l.Register(process.Sub{Info: process.Info{ServiceName: name}, ParentID: parent})
}

// Register registers md and returns its ID. See [registry.Service.Register].
func (l *Logger) Register(md process.Metadata) (process.ID, error) {
	if l == nil {
		return "", ErrNotInitialized
	}

	id, err := l.svc.Register(md)
	if err != nil {
		return "", err
	}

	l.diag.Debug("registered process", slog.String("id", string(id)))

	return id, nil
}

// Enabled reports whether entries at lvl pass the minimum level.
func (l *Logger) Enabled(lvl level.Level) bool {
	if l == nil {
		return false
	}

	return lvl >= level.Level(l.minLevel.Load())
}

// Log writes one entry for process id. Entries below the minimum level are
// skipped. Unknown IDs and write failures are reported to the diagnostics
// logger; the entry is then dropped.
func (l *Logger) Log(id process.ID, lvl level.Level, values ...any) {
	if !l.Enabled(lvl) {
		return
	}

	entry, err := l.formatter.Format(id, lvl, values...)
	if err != nil {
		l.diag.Warn("dropping log entry",
			slog.String("id", string(id)),
			slog.String("level", lvl.String()),
			slog.Any("error", err))

		return
	}

	l.write(entry + "\n")
}

func (l *Logger) write(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := io.WriteString(l.w, entry)
	if err != nil {
		l.diag.Error("writing log entry", slog.Any("error", err))
	}
}

// Trace logs at [level.Trace].
func (l *Logger) Trace(id process.ID, values ...any) { l.Log(id, level.Trace, values...) }

// Debug logs at [level.Debug].
func (l *Logger) Debug(id process.ID, values ...any) { l.Log(id, level.Debug, values...) }

// Info logs at [level.Info].
func (l *Logger) Info(id process.ID, values ...any) { l.Log(id, level.Info, values...) }

// Warn logs at [level.Warn].
func (l *Logger) Warn(id process.ID, values ...any) { l.Log(id, level.Warn, values...) }

// Error logs at [level.Error].
func (l *Logger) Error(id process.ID, values ...any) { l.Log(id, level.Error, values...) }

// SetLevel changes the minimum level. It does nothing on a nil logger.
func (l *Logger) SetLevel(lvl level.Level) {
	if l == nil {
		return
	}

	l.minLevel.Store(int64(lvl))
}

// Level returns the minimum level, or [level.None] on a nil logger.
func (l *Logger) Level() level.Level {
	if l == nil {
		return level.None
	}

	return level.Level(l.minLevel.Load())
}

// Mode returns the current display mode, or [style.Classic] on a nil logger.
func (l *Logger) Mode() style.Mode {
	if l == nil {
		return style.Classic
	}

	return style.Mode(l.mode.Load())
}

// SetMode switches to the preset styles of m, with any config file overrides
// and the configured scheme applied. Entries written afterwards use the new
// styles; colors of already registered processes are kept, and later
// registrations are colored with the strategy of m.
func (l *Logger) SetMode(m style.Mode) error {
	if l == nil {
		return ErrNotInitialized
	}

	cfg := style.Preset(m).WithScheme(l.scheme)
	if l.overrides != nil {
		var err error

		cfg, err = cfg.Override(*l.overrides)
		if err != nil {
			return err
		}
	}

	l.styles.Store(cfg)
	l.mode.Store(int64(m))
	l.svc.Colors().SetMode(m)

	return nil
}

// SetStyles replaces the style configuration used for later entries. cfg
// must not be modified afterwards.
func (l *Logger) SetStyles(cfg *style.Config) {
	if l == nil || cfg == nil {
		return
	}

	l.styles.Store(cfg)
}

// Styles returns the active style configuration. Treat it as read-only.
func (l *Logger) Styles() *style.Config {
	if l == nil {
		return nil
	}

	return l.styles.Load()
}

// Database returns the process database, or nil on a nil logger.
func (l *Logger) Database() *process.Database {
	if l == nil {
		return nil
	}

	return l.svc.Database()
}

// Tree renders every registered process tree, colored like the log output
// unless the logger is in [style.Classic] mode.
func (l *Logger) Tree() string {
	if l == nil {
		return ""
	}

	return treeview.Render(l.svc.Database(), treeview.Options{
		Color:  l.Mode() != style.Classic,
		Scheme: l.Styles().Scheme,
	})
}

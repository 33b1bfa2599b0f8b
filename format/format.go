package format

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"go.jacobcolvin.com/proclog/level"
	"go.jacobcolvin.com/proclog/process"
	"go.jacobcolvin.com/proclog/style"
)

const (
	// TimestampLayout is the [time.Time.Format] layout of the timestamp field.
	TimestampLayout = "15:04:05"

	hierarchySeparator = " -> "
	ellipsis           = "..."
)

// ErrUnknownProcess indicates a log call for an unregistered process ID.
var ErrUnknownProcess = errors.New("unknown process")

// Options controls the layout of formatted entries.
type Options struct {
	// TagsMaxLength caps the width of service names in tags. Values below
	// one disable the cap.
	TagsMaxLength int
	Details       Details
	ShowHierarchy bool
	ShowTimestamp bool
}

// StyleProvider returns the style configuration to use for the next entry.
type StyleProvider func() *style.Config

// Formatter builds styled log entries. It is safe for concurrent use as long
// as its [StyleProvider] is.
//
// Create instances with [New].
type Formatter struct {
	db     *process.Database
	styles StyleProvider
	now    func() time.Time
	opts   Options
}

// Option configures a [Formatter].
type Option func(*Formatter)

// WithStyles sets the style provider. The default always returns
// [style.Base].
func WithStyles(p StyleProvider) Option {
	return func(f *Formatter) {
		f.styles = p
	}
}

// WithClock sets the time source for the timestamp field.
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) {
		f.now = now
	}
}

// New creates a [Formatter] reading processes from db.
func New(db *process.Database, opts Options, fopts ...Option) *Formatter {
	base := style.Base()

	f := &Formatter{
		db:     db,
		opts:   opts,
		now:    time.Now,
		styles: func() *style.Config { return base },
	}
	for _, opt := range fopts {
		opt(f)
	}

	return f
}

// Options returns the layout options of f.
func (f *Formatter) Options() Options {
	return f.opts
}

// Format renders one entry for process id at level l. It returns
// [ErrUnknownProcess] when id is not registered. The result carries no
// trailing newline, except for the blank separator line added in [Detailed]
// hierarchy mode.
func (f *Formatter) Format(id process.ID, l level.Level, values ...any) (string, error) {
	path := f.db.Path(id)
	if len(path) == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownProcess, id)
	}

	cfg := f.styles()
	if cfg == nil {
		cfg = style.Base()
	}

	r := renderer{cfg: cfg, level: l}
	node := path[len(path)-1]
	detailed := f.opts.ShowHierarchy && f.opts.Details == Detailed

	fields := make([]string, 0, 4)

	if f.opts.ShowTimestamp {
		ts := "[" + f.now().Format(TimestampLayout) + "]"
		fields = append(fields, r.field(style.FieldTimestamp, node, ts))
	}

	fields = append(fields, pad(r.field(style.FieldLevel, node, level.Tag(l)), level.TagWidth()))

	width := f.tagWidth()

	if f.opts.ShowHierarchy {
		if h := f.hierarchy(r, path, width); h != "" {
			fields = append(fields, h)
		}
	}

	if !detailed {
		tag := r.field(style.FieldServiceName, node, tagOf(node, width))
		fields = append(fields, pad(tag, width+2))
	}

	var sb strings.Builder

	sb.WriteString(strings.Join(fields, " "))
	sb.WriteString(" - ")
	sb.WriteString(r.field(style.FieldMessage, node, Values(values...)))

	if detailed {
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}

func (f *Formatter) hierarchy(r renderer, path []*process.Node, width int) string {
	if f.opts.Details == Detailed {
		tags := make([]string, 0, len(path))
		for _, n := range path {
			tags = append(tags, r.field(style.FieldServiceName, n, tagOf(n, width)))
		}

		return strings.Join(tags, hierarchySeparator)
	}

	if len(path) < 2 {
		return ""
	}

	parent := path[len(path)-2]

	return r.field(style.FieldServiceName, parent, tagOf(parent, width))
}

// tagWidth is the widest service name a tag may show.
func (f *Formatter) tagWidth() int {
	width := f.db.MaxServiceNameLength()
	if f.opts.TagsMaxLength > 0 {
		width = min(width, f.opts.TagsMaxLength)
	}

	return width
}

type renderer struct {
	cfg   *style.Config
	level level.Level
}

func (r renderer) field(fd style.Field, n *process.Node, text string) string {
	styles := r.cfg.Styles(fd, n.IsMain(), r.level)

	return style.Apply(text, n.Info().Color, styles, r.cfg.Scheme)
}

// tagOf returns the bracketed service name of n, truncated with an ellipsis
// when it is wider than width.
func tagOf(n *process.Node, width int) string {
	return "[" + Truncate(n.Info().ServiceName, width) + "]"
}

// Truncate shortens s to at most width cells, replacing the tail with "..."
// when anything is cut.
func Truncate(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}

	if width <= len(ellipsis) {
		return ansi.Truncate(s, width, "")
	}

	return ansi.Truncate(s, width, ellipsis)
}

// pad right-pads styled text with spaces until its visible width reaches
// width. The padding goes after the escape codes so it stays unstyled.
func pad(styled string, width int) string {
	if w := ansi.StringWidth(styled); w < width {
		return styled + strings.Repeat(" ", width-w)
	}

	return styled
}

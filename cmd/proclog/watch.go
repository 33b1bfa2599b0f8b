package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/proclog/console"
	"go.jacobcolvin.com/proclog/log"
)

// maxWatchLines bounds the log lines kept by the watch UI.
const maxWatchLines = 500

var headerStyle = lipgloss.NewStyle().Bold(true)

// watch plays s into a [log.Publisher] and shows the process forest above
// the streamed entries until the user quits.
func (a *app) watch(ctx context.Context, s *Scenario, interval time.Duration) error {
	pub := log.NewPublisher(log.WithBufferSize(maxWatchLines), log.WithHistory(maxWatchLines))
	defer pub.Close() //nolint:errcheck // Close never fails.

	l, err := a.newLogger(pub)
	if err != nil {
		return err
	}

	sub := pub.Subscribe()
	defer sub.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- s.Play(ctx, l, interval)
	}()

	_, err = tea.NewProgram(newWatchModel(l, sub, done)).Run()
	if err != nil {
		return fmt.Errorf("running watch UI: %w", err)
	}

	return nil
}

// entryMsg carries one formatted log entry.
type entryMsg []byte

// playedMsg reports the end of the scenario.
type playedMsg struct{ err error }

// watchModel is the bubbletea model for the watch UI.
type watchModel struct {
	logger *console.Logger
	sub    *log.Subscription
	done   <-chan error
	err    error
	lines  []string
	width  int
	height int
	played bool
}

func newWatchModel(l *console.Logger, sub *log.Subscription, done <-chan error) *watchModel {
	return &watchModel{
		logger: l,
		sub:    sub,
		done:   done,
	}
}

func waitForEntry(sub *log.Subscription) tea.Cmd {
	return func() tea.Msg {
		b, ok := <-sub.C()
		if !ok {
			return nil
		}

		return entryMsg(b)
	}
}

func waitForPlay(done <-chan error) tea.Cmd {
	return func() tea.Msg {
		return playedMsg{err: <-done}
	}
}

// Init starts listening for entries and for the end of the scenario.
func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(waitForEntry(m.sub), waitForPlay(m.done))
}

// Update handles entries, resizes, and quit keys.
func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case entryMsg:
		m.append(string(msg))

		return m, waitForEntry(m.sub)

	case playedMsg:
		m.played = true
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
	}

	return m, nil
}

// append adds the lines of one entry, dropping the oldest past
// maxWatchLines.
func (m *watchModel) append(entry string) {
	entry = strings.TrimSuffix(entry, "\n")
	m.lines = append(m.lines, strings.Split(entry, "\n")...)

	if over := len(m.lines) - maxWatchLines; over > 0 {
		m.lines = m.lines[over:]
	}
}

// View renders the forest and the most recent entries.
func (m *watchModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true

	return v
}

func (m *watchModel) render() string {
	status := "streaming, q to quit"

	switch {
	case m.err != nil:
		status = "scenario failed: " + m.err.Error()
	case m.played:
		status = "scenario finished, q to quit"
	}

	if n := m.sub.Dropped(); n > 0 {
		status += fmt.Sprintf(", %d dropped", n)
	}

	top := []string{
		headerStyle.Render("processes"),
		m.logger.Tree(),
		"",
		headerStyle.Render("log") + " (" + status + ")",
	}

	lines := m.lines
	if m.height > 0 {
		room := max(m.height-lipgloss.Height(strings.Join(top, "\n")), 0)
		if len(lines) > room {
			lines = lines[len(lines)-room:]
		}
	}

	out := make([]string, 0, len(top)+len(lines))
	out = append(out, top...)

	for _, line := range lines {
		if m.width > 0 {
			line = ansi.Truncate(line, m.width, "")
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

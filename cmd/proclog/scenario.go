package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/proclog/console"
	"go.jacobcolvin.com/proclog/level"
	"go.jacobcolvin.com/proclog/process"
	"go.jacobcolvin.com/proclog/style"
)

// pathSeparator joins service names into a process path in scenario steps.
const pathSeparator = "/"

var (
	// ErrInvalidScenario indicates a scenario that cannot be decoded or
	// refers to processes it does not declare.
	ErrInvalidScenario = errors.New("invalid scenario")

	//go:embed default_scenario.yaml
	defaultScenario []byte
)

// Scenario is a scripted set of processes and the entries they log.
type Scenario struct {
	Processes []ProcessSpec `yaml:"processes"`
	Steps     []Step        `yaml:"steps"`
}

// ProcessSpec declares a process and its children.
type ProcessSpec struct {
	Name     string        `yaml:"name"`
	Children []ProcessSpec `yaml:"children,omitempty"`
}

// Step is one scenario action. A step with Mode set switches the display
// mode; otherwise it logs Values for the process at Process, a path of
// service names such as "API/Worker".
type Step struct {
	Process string `yaml:"process,omitempty"`
	Level   string `yaml:"level,omitempty"`
	Mode    string `yaml:"mode,omitempty"`
	Values  []any  `yaml:"values,omitempty"`
}

// LoadScenario reads a scenario from path. An empty path returns the
// built-in scenario.
func LoadScenario(path string) (*Scenario, error) {
	if path == "" {
		return ParseScenario(defaultScenario)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	return ParseScenario(data)
}

// ParseScenario decodes and validates a YAML scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario

	err := yaml.UnmarshalWithOptions(data, &s, yaml.DisallowUnknownField())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	err = s.validate()
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (s *Scenario) validate() error {
	paths := map[string]bool{}

	var walk func(prefix string, specs []ProcessSpec) error

	walk = func(prefix string, specs []ProcessSpec) error {
		for _, p := range specs {
			if strings.TrimSpace(p.Name) == "" {
				return fmt.Errorf("%w: process under %q has no name", ErrInvalidScenario, prefix)
			}

			if strings.Contains(p.Name, pathSeparator) {
				return fmt.Errorf("%w: process name %q contains %q", ErrInvalidScenario, p.Name, pathSeparator)
			}

			path := joinPath(prefix, p.Name)
			if paths[path] {
				return fmt.Errorf("%w: duplicate process %q", ErrInvalidScenario, path)
			}

			paths[path] = true

			err := walk(path, p.Children)
			if err != nil {
				return err
			}
		}

		return nil
	}

	err := walk("", s.Processes)
	if err != nil {
		return err
	}

	for i, step := range s.Steps {
		if step.Mode != "" {
			_, err := style.ParseMode(step.Mode)
			if err != nil {
				return fmt.Errorf("%w: step %d: %w", ErrInvalidScenario, i, err)
			}

			continue
		}

		if !paths[step.Process] {
			return fmt.Errorf("%w: step %d: unknown process %q", ErrInvalidScenario, i, step.Process)
		}

		_, err := stepLevel(step)
		if err != nil {
			return fmt.Errorf("%w: step %d: %w", ErrInvalidScenario, i, err)
		}
	}

	return nil
}

func stepLevel(step Step) (level.Level, error) {
	if step.Level == "" {
		return level.Info, nil
	}

	return level.Parse(step.Level)
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + pathSeparator + name
}

// Register registers every declared process with l, parents first, and
// returns the IDs keyed by path.
func (s *Scenario) Register(l *console.Logger) (map[string]process.ID, error) {
	ids := make(map[string]process.ID)

	var register func(prefix string, parent process.ID, specs []ProcessSpec) error

	register = func(prefix string, parent process.ID, specs []ProcessSpec) error {
		for _, p := range specs {
			var (
				id  process.ID
				err error
			)

			if parent == "" {
				id, err = l.RegisterMain(p.Name)
			} else {
				id, err = l.RegisterSub(p.Name, parent)
			}

			if err != nil {
				return fmt.Errorf("registering %q: %w", p.Name, err)
			}

			path := joinPath(prefix, p.Name)
			ids[path] = id

			err = register(path, id, p.Children)
			if err != nil {
				return err
			}
		}

		return nil
	}

	err := register("", "", s.Processes)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// Play registers the processes of s and runs its steps against l, waiting
// interval between steps. It stops early when ctx is done.
func (s *Scenario) Play(ctx context.Context, l *console.Logger, interval time.Duration) error {
	ids, err := s.Register(l)
	if err != nil {
		return err
	}

	for i, step := range s.Steps {
		if i > 0 && interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
		}

		if step.Mode != "" {
			m, err := style.ParseMode(step.Mode)
			if err != nil {
				return fmt.Errorf("%w: step %d: %w", ErrInvalidScenario, i, err)
			}

			err = l.SetMode(m)
			if err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}

			continue
		}

		lvl, err := stepLevel(step)
		if err != nil {
			return fmt.Errorf("%w: step %d: %w", ErrInvalidScenario, i, err)
		}

		l.Log(ids[step.Process], lvl, step.Values...)
	}

	return nil
}

// writeTree writes the process forest of l to w.
func writeTree(w io.Writer, l *console.Logger) error {
	_, err := fmt.Fprintln(w, l.Tree())
	if err != nil {
		return fmt.Errorf("writing tree: %w", err)
	}

	return nil
}

package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Session is a running profile recording. Call [Session.Stop] to write the
// enabled snapshot profiles and restore the previous sampling rates.
//
// Create instances with [Config.Start].
type Session struct {
	cpuFile           *os.File
	cfg               Config
	prevMutexFraction int
	stopped           bool
}

// Start validates c, enables mutex and block sampling for the profiles that
// need it, and starts CPU profiling when a CPU path is set.
func (c *Config) Start() (*Session, error) {
	err := c.Validate()
	if err != nil {
		return nil, err
	}

	s := &Session{cfg: *c, prevMutexFraction: -1}

	if c.Mutex != "" {
		s.prevMutexFraction = runtime.SetMutexProfileFraction(c.MutexFraction)
	}

	if c.Block != "" {
		runtime.SetBlockProfileRate(c.BlockRate)
	}

	if c.CPU != "" {
		f, err := os.Create(c.CPU) //nolint:gosec // Profile path from CLI flag is expected.
		if err != nil {
			s.restore()

			return nil, fmt.Errorf("creating CPU profile: %w", err)
		}

		err = pprof.StartCPUProfile(f)
		if err != nil {
			s.restore()

			return nil, errors.Join(fmt.Errorf("starting CPU profile: %w", err), f.Close())
		}

		s.cpuFile = f
	}

	return s, nil
}

// Stop ends CPU profiling, writes the snapshot profiles, and restores the
// sampling rates. Calling Stop more than once is a no-op.
func (s *Session) Stop() error {
	if s == nil || s.stopped {
		return nil
	}

	s.stopped = true

	var errs []error

	if s.cpuFile != nil {
		pprof.StopCPUProfile()

		err := s.cpuFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("closing CPU profile: %w", err))
		}
	}

	if s.cfg.Heap != "" {
		runtime.GC()
	}

	for _, p := range []struct{ name, path string }{
		{"heap", s.cfg.Heap},
		{"mutex", s.cfg.Mutex},
		{"block", s.cfg.Block},
	} {
		if p.path == "" {
			continue
		}

		err := writeProfile(p.name, p.path)
		if err != nil {
			errs = append(errs, err)
		}
	}

	s.restore()

	return errors.Join(errs...)
}

func (s *Session) restore() {
	if s.prevMutexFraction >= 0 {
		runtime.SetMutexProfileFraction(s.prevMutexFraction)
	}

	if s.cfg.Block != "" {
		runtime.SetBlockProfileRate(0)
	}
}

// writeProfile writes the named pprof profile to path.
func writeProfile(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("unknown profile: %s", name)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("creating %s profile: %w", name, err)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("writing %s profile: %w", name, err), f.Close())
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("closing %s profile: %w", name, err)
	}

	return nil
}

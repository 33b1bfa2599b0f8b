package registry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.jacobcolvin.com/proclog/palette"
	"go.jacobcolvin.com/proclog/process"
)

var (
	// ErrInvalidParent indicates a sub-process whose parent is not registered.
	ErrInvalidParent = errors.New("invalid parent process")
	// ErrInvalidMetadata indicates metadata that cannot be registered.
	ErrInvalidMetadata = errors.New("invalid process metadata")
)

// Service registers processes. It is safe for concurrent use; each
// registration is atomic with respect to the others.
//
// Create instances with [New].
type Service struct {
	db     *process.Database
	colors *palette.Assigner
	mu     sync.Mutex
}

// New creates a [Service] writing to db and coloring with colors.
func New(db *process.Database, colors *palette.Assigner) *Service {
	return &Service{db: db, colors: colors}
}

// Database returns the underlying database.
func (s *Service) Database() *process.Database {
	return s.db
}

// Colors returns the color assigner.
func (s *Service) Colors() *palette.Assigner {
	return s.colors
}

// RegisterMain registers a top-level process named name.
func (s *Service) RegisterMain(name string) (process.ID, error) {
	return s.Register(process.Main{Info: process.Info{ServiceName: name}})
}

// RegisterSub registers a process named name under parent.
func (s *Service) RegisterSub(name string, parent process.ID) (process.ID, error) {
	return s.Register(process.Sub{
		Info:     process.Info{ServiceName: name},
		ParentID: parent,
	})
}

// Register de-duplicates the service name of md, assigns its color and
// inserts it into the database. Any color already set on md is replaced.
func (s *Service) Register(md process.Metadata) (process.ID, error) {
	if md == nil {
		return "", fmt.Errorf("%w: nil metadata", ErrInvalidMetadata)
	}

	info := md.Details()
	if strings.TrimSpace(info.ServiceName) == "" {
		return "", fmt.Errorf("%w: empty service name", ErrInvalidMetadata)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	info.ServiceName = s.uniqueName(info.ServiceName)

	switch v := md.(type) {
	case process.Main:
		info.Color = s.colors.Assign(v, nil)
		v.Info = info

		id, err := s.db.AddMainProcess(v)
		if err != nil {
			return "", fmt.Errorf("registering %q: %w", info.ServiceName, err)
		}

		return id, nil

	case process.Sub:
		parent, ok := s.db.FindProcessByID(v.ParentID)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrInvalidParent, v.ParentID)
		}

		info.Color = s.colors.Assign(v, parent.Metadata)
		v.Info = info

		id, err := s.db.AddSubProcess(v.ParentID, v)
		if errors.Is(err, process.ErrParentNotFound) {
			return "", fmt.Errorf("%w: %w", ErrInvalidParent, err)
		} else if err != nil {
			return "", fmt.Errorf("registering %q: %w", info.ServiceName, err)
		}

		return id, nil
	}

	return "", fmt.Errorf("%w: unsupported variant %T", ErrInvalidMetadata, md)
}

// uniqueName returns name, or the first of name_1, name_2, ... that is not
// taken. Callers must hold the lock.
func (s *Service) uniqueName(name string) string {
	candidate := name
	for n := 1; s.db.HasServiceName(candidate); n++ {
		candidate = name + "_" + strconv.Itoa(n)
	}

	return candidate
}

package process

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

var (
	// ErrDuplicateRoot indicates that a generated ID already names a tree.
	ErrDuplicateRoot = errors.New("main process already exists")
	// ErrDuplicateID indicates that a generated ID is already registered.
	ErrDuplicateID = errors.New("process ID already exists")
	// ErrParentNotFound indicates that a sub-process names an unknown parent.
	ErrParentNotFound = errors.New("parent process not found")
)

// Database is the in-memory forest of every registered process. It is safe
// for concurrent use.
type Database struct {
	trees    map[ID]*Tree
	byID     map[ID]*Node
	parents  map[ID]ID
	counters map[string]int
	names    map[string]struct{}
	order    []ID
	maxName  int
	mu       sync.RWMutex
}

// NewDatabase creates an empty [Database].
func NewDatabase() *Database {
	return &Database{
		trees:    map[ID]*Tree{},
		byID:     map[ID]*Node{},
		parents:  map[ID]ID{},
		counters: map[string]int{},
		names:    map[string]struct{}{},
	}
}

// nextID returns "<name>_<n>", where n counts how many IDs were generated for
// name so far. Callers must hold the write lock.
func (db *Database) nextID(name string) ID {
	db.counters[name]++

	return ID(name + "_" + strconv.Itoa(db.counters[name]))
}

// track records n in the indexes. Callers must hold the write lock.
func (db *Database) track(n *Node) {
	name := n.Info().ServiceName

	db.byID[n.ID] = n
	db.names[name] = struct{}{}
	db.maxName = max(db.maxName, ansi.StringWidth(name))
}

// AddMainProcess creates a new tree rooted at md and returns its ID.
func (db *Database) AddMainProcess(md Main) (ID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	id := db.nextID(md.ServiceName)
	if _, ok := db.trees[id]; ok {
		return "", fmt.Errorf("%w: %s", ErrDuplicateRoot, id)
	}

	if _, ok := db.byID[id]; ok {
		return "", fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	n := newNode(id, md)
	db.trees[id] = newTree(n)
	db.order = append(db.order, id)
	db.track(n)

	return id, nil
}

// AddSubProcess inserts md as a child of parentID and returns its ID. The
// stored metadata always references parentID. When the parent is unknown,
// nothing is inserted and no ID is consumed.
func (db *Database) AddSubProcess(parentID ID, md Sub) (ID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	parent, ok := db.byID[parentID]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrParentNotFound, parentID)
	}

	id := db.nextID(md.ServiceName)
	if _, ok := db.byID[id]; ok {
		return "", fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	md.ParentID = parentID
	n := newNode(id, md)
	parent.addChild(n)
	db.parents[id] = parentID
	db.track(n)

	return id, nil
}

// FindProcessByID returns the node registered under id.
func (db *Database) FindProcessByID(id ID) (*Node, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	n, ok := db.byID[id]

	return n, ok
}

// Parent returns the parent of id. Main processes have no parent.
func (db *Database) Parent(id ID) (*Node, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	pid, ok := db.parents[id]
	if !ok {
		return nil, false
	}

	n, ok := db.byID[pid]

	return n, ok
}

// Path returns the nodes from the root of id's tree down to id itself. It
// returns nil when id is unknown.
func (db *Database) Path(id ID) []*Node {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var path []*Node

	for cur, ok := id, true; ok; cur, ok = db.parents[cur] {
		n, found := db.byID[cur]
		if !found {
			return nil
		}

		path = append(path, n)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// MaxServiceNameLength returns the display width, in terminal cells, of the
// longest service name registered so far. It never decreases.
func (db *Database) MaxServiceNameLength() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.maxName
}

// HasServiceName reports whether any registered process uses name.
func (db *Database) HasServiceName(name string) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()

	_, ok := db.names[name]

	return ok
}

// Len returns the number of registered processes.
func (db *Database) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.byID)
}

func (db *Database) orderedTrees() []*Tree {
	out := make([]*Tree, 0, len(db.order))
	for _, id := range db.order {
		out = append(out, db.trees[id])
	}

	return out
}

// View calls fn with every tree in registration order while holding the read
// lock. fn must not call back into the database.
func (db *Database) View(fn func(trees []*Tree)) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	fn(db.orderedTrees())
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/animclone/pkg/domain"
)

// Database implements the ownership bookkeeping shared by every in-memory container.
// Safe for concurrent use.
type Database struct {
	mu     sync.RWMutex
	owners map[domain.ID]string
	hidden map[domain.ID]bool
}

// NewDatabase creates an empty in-memory asset database.
func NewDatabase() *Database {
	return &Database{
		owners: make(map[domain.ID]string),
		hidden: make(map[domain.ID]bool),
	}
}

// Container returns a handle on the named container. Handles are cheap; two handles with the
// same name address the same container.
func (db *Database) Container(name string) *Container {
	return &Container{db: db, name: name}
}

// Owner returns the container owning id, if any.
func (db *Database) Owner(id domain.ID) (string, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	owner, ok := db.owners[id]
	return owner, ok
}

// Container implements ports.Container in memory.
type Container struct {
	db   *Database
	name string
}

// Name returns the container name.
func (c *Container) Name() string {
	return c.name
}

// IsOwned reports whether any container of the database owns obj.
func (c *Container) IsOwned(ctx context.Context, obj domain.Object) (bool, error) {
	_, ok := c.db.Owner(obj.ObjectID())
	return ok, nil
}

// AddOwned attaches obj to this container.
func (c *Container) AddOwned(ctx context.Context, obj domain.Object) error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	if _, ok := c.db.owners[obj.ObjectID()]; ok {
		return domain.ErrAlreadyOwned
	}
	c.db.owners[obj.ObjectID()] = c.name
	return nil
}

// MarkHidden flags an object owned by this container as internal.
func (c *Container) MarkHidden(ctx context.Context, obj domain.Object) error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	if c.db.owners[obj.ObjectID()] != c.name {
		return domain.ErrNotOwned
	}
	c.db.hidden[obj.ObjectID()] = true
	return nil
}

// Members returns the ids owned by this container in sorted order.
func (c *Container) Members(ctx context.Context) ([]domain.ID, error) {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	members := make([]domain.ID, 0)
	for id, owner := range c.db.owners {
		if owner == c.name {
			members = append(members, id)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] }) // Deterministic order
	return members, nil
}

// IsHidden reports whether id was marked hidden.
func (c *Container) IsHidden(ctx context.Context, id domain.ID) (bool, error) {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()
	return c.db.hidden[id], nil
}

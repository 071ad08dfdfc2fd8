package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/animclone/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by a Container.
const DefaultPrefix = "animclone:"

// Container implements ports.Container on Redis.
// Ownership is claimed with SET NX, so two processes registering the same object
// cannot both succeed.
type Container struct {
	client *backend.Client
	name   string
	prefix string
}

// Option configures a Container.
type Option func(*Container)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Container) {
		c.prefix = prefix
	}
}

// NewFromClient creates a handle on the named container using an existing client.
func NewFromClient(client *backend.Client, name string, opts ...Option) *Container {
	c := &Container{
		client: client,
		name:   name,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the container name.
func (c *Container) Name() string {
	return c.name
}

func (c *Container) ownerKey(id domain.ID) string {
	return c.prefix + "owner:" + string(id)
}

func (c *Container) membersKey() string {
	return c.prefix + "container:" + c.name + ":members"
}

func (c *Container) hiddenKey() string {
	return c.prefix + "container:" + c.name + ":hidden"
}

// IsOwned reports whether any container sharing the prefix owns obj.
func (c *Container) IsOwned(ctx context.Context, obj domain.Object) (bool, error) {
	n, err := c.client.Exists(ctx, c.ownerKey(obj.ObjectID())).Result()
	if err != nil {
		return false, fmt.Errorf("redis error checking owner: %w", err)
	}
	return n > 0, nil
}

// AddOwned claims obj for this container.
func (c *Container) AddOwned(ctx context.Context, obj domain.Object) error {
	id := string(obj.ObjectID())
	claimed, err := c.client.SetNX(ctx, c.ownerKey(obj.ObjectID()), c.name, 0).Result()
	if err != nil {
		return fmt.Errorf("redis error claiming owner: %w", err)
	}
	if !claimed {
		return domain.ErrAlreadyOwned
	}
	if err := c.client.SAdd(ctx, c.membersKey(), id).Err(); err != nil {
		return fmt.Errorf("redis error adding member: %w", err)
	}
	return nil
}

// MarkHidden flags an object owned by this container as internal.
func (c *Container) MarkHidden(ctx context.Context, obj domain.Object) error {
	owner, err := c.client.Get(ctx, c.ownerKey(obj.ObjectID())).Result()
	if errors.Is(err, backend.Nil) {
		return domain.ErrNotOwned
	}
	if err != nil {
		return fmt.Errorf("redis error reading owner: %w", err)
	}
	if owner != c.name {
		return domain.ErrNotOwned
	}
	if err := c.client.SAdd(ctx, c.hiddenKey(), string(obj.ObjectID())).Err(); err != nil {
		return fmt.Errorf("redis error marking hidden: %w", err)
	}
	return nil
}

// Members returns the ids owned by this container in sorted order.
func (c *Container) Members(ctx context.Context) ([]domain.ID, error) {
	raw, err := c.client.SMembers(ctx, c.membersKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error listing members: %w", err)
	}
	members := make([]domain.ID, 0, len(raw))
	for _, id := range raw {
		members = append(members, domain.ID(id))
	}
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	return members, nil
}

// IsHidden reports whether id was marked hidden in this container.
func (c *Container) IsHidden(ctx context.Context, id domain.ID) (bool, error) {
	ok, err := c.client.SIsMember(ctx, c.hiddenKey(), string(id)).Result()
	if err != nil {
		return false, fmt.Errorf("redis error checking hidden: %w", err)
	}
	return ok, nil
}

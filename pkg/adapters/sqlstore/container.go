package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aretw0/animclone/pkg/domain"
)

// Container implements ports.Container on a SQL table.
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
	var n int
	err := c.db.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ownership WHERE object_id = ?`, string(obj.ObjectID())).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query owner: %w", err)
	}
	return n > 0, nil
}

// AddOwned claims obj for this container.
func (c *Container) AddOwned(ctx context.Context, obj domain.Object) error {
	res, err := c.db.db.ExecContext(ctx, c.db.claimQuery(),
		string(obj.ObjectID()), c.name, string(obj.ObjectKind()), obj.ObjectName())
	if err != nil {
		return fmt.Errorf("failed to claim object: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read claim result: %w", err)
	}
	if n == 0 {
		return domain.ErrAlreadyOwned
	}
	return nil
}

// MarkHidden flags an object owned by this container as internal.
func (c *Container) MarkHidden(ctx context.Context, obj domain.Object) error {
	owner, err := c.owner(ctx, obj.ObjectID())
	if err != nil {
		return err
	}
	if owner != c.name {
		return domain.ErrNotOwned
	}
	_, err = c.db.db.ExecContext(ctx,
		`UPDATE ownership SET hidden = 1 WHERE object_id = ? AND container = ?`,
		string(obj.ObjectID()), c.name)
	if err != nil {
		return fmt.Errorf("failed to mark hidden: %w", err)
	}
	return nil
}

func (c *Container) owner(ctx context.Context, id domain.ID) (string, error) {
	var owner string
	err := c.db.db.QueryRowContext(ctx,
		`SELECT container FROM ownership WHERE object_id = ?`, string(id)).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query owner: %w", err)
	}
	return owner, nil
}

// Members returns the ids owned by this container in sorted order.
func (c *Container) Members(ctx context.Context) ([]domain.ID, error) {
	rows, err := c.db.db.QueryContext(ctx,
		`SELECT object_id FROM ownership WHERE container = ? ORDER BY object_id`, c.name)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := make([]domain.ID, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, domain.ID(id))
	}
	return members, rows.Err()
}

// IsHidden reports whether id was marked hidden in this container.
func (c *Container) IsHidden(ctx context.Context, id domain.ID) (bool, error) {
	var hidden bool
	err := c.db.db.QueryRowContext(ctx,
		`SELECT hidden FROM ownership WHERE object_id = ? AND container = ?`, string(id), c.name).Scan(&hidden)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query hidden flag: %w", err)
	}
	return hidden, nil
}

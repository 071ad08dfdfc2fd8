package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/animclone/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ContainerOpener opens the named container of a single backend.
// Two calls with different names must share ownership bookkeeping.
type ContainerOpener func(t *testing.T, name string) InspectableContainer

// RunContainerContract runs a suite of tests to verify that a Container implementation
// adheres to the defined interface contract.
func RunContainerContract(t *testing.T, open ContainerOpener) {
	ctx := context.Background()
	suffix := time.Now().Format("20060102150405.000000000")
	newState := func(name string) *domain.State {
		return &domain.State{ID: domain.ID(fmt.Sprintf("contract-%s-%s", name, suffix)), Name: name}
	}

	t.Run("Add and Query", func(t *testing.T) {
		c := open(t, "primary")
		s := newState("add")

		owned, err := c.IsOwned(ctx, s)
		require.NoError(t, err)
		assert.False(t, owned, "fresh object must not be owned")

		require.NoError(t, c.AddOwned(ctx, s))

		owned, err = c.IsOwned(ctx, s)
		require.NoError(t, err)
		assert.True(t, owned)

		members, err := c.Members(ctx)
		require.NoError(t, err)
		assert.Contains(t, members, s.ID)
	})

	t.Run("Add Twice", func(t *testing.T) {
		c := open(t, "primary")
		s := newState("twice")

		require.NoError(t, c.AddOwned(ctx, s))
		err := c.AddOwned(ctx, s)
		assert.ErrorIs(t, err, domain.ErrAlreadyOwned)

		members, err := c.Members(ctx)
		require.NoError(t, err)
		count := 0
		for _, id := range members {
			if id == s.ID {
				count++
			}
		}
		assert.Equal(t, 1, count, "object must be listed once")
	})

	t.Run("Owned Elsewhere", func(t *testing.T) {
		first := open(t, "first")
		second := open(t, "second")
		s := newState("elsewhere")

		require.NoError(t, first.AddOwned(ctx, s))

		owned, err := second.IsOwned(ctx, s)
		require.NoError(t, err)
		assert.True(t, owned, "ownership must be visible across containers")

		assert.ErrorIs(t, second.AddOwned(ctx, s), domain.ErrAlreadyOwned)
		assert.ErrorIs(t, second.MarkHidden(ctx, s), domain.ErrNotOwned)

		members, err := second.Members(ctx)
		require.NoError(t, err)
		assert.NotContains(t, members, s.ID)
	})

	t.Run("Mark Hidden", func(t *testing.T) {
		c := open(t, "primary")
		s := newState("hidden")

		assert.ErrorIs(t, c.MarkHidden(ctx, s), domain.ErrNotOwned)

		require.NoError(t, c.AddOwned(ctx, s))
		hidden, err := c.IsHidden(ctx, s.ID)
		require.NoError(t, err)
		assert.False(t, hidden)

		require.NoError(t, c.MarkHidden(ctx, s))
		hidden, err = c.IsHidden(ctx, s.ID)
		require.NoError(t, err)
		assert.True(t, hidden)
	})

	t.Run("Name", func(t *testing.T) {
		assert.Equal(t, "named", open(t, "named").Name())
	})
}

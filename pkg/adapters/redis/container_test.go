package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/animclone/pkg/adapters/redis"
	"github.com/aretw0/animclone/pkg/domain"
	"github.com/aretw0/animclone/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisContainer_Contract(t *testing.T) {
	_, client := newClient(t)

	ports.RunContainerContract(t, func(t *testing.T, name string) ports.InspectableContainer {
		return redis.NewFromClient(client, name)
	})
}

func TestRedisContainer_Prefix(t *testing.T) {
	mr, client := newClient(t)
	ctx := context.Background()

	c := redis.NewFromClient(client, "graph", redis.WithPrefix("custom:app:"))
	state := &domain.State{ID: "s-1", Name: "Idle"}

	require.NoError(t, c.AddOwned(ctx, state))
	require.NoError(t, c.MarkHidden(ctx, state))

	owner, err := mr.Get("custom:app:owner:s-1")
	require.NoError(t, err)
	assert.Equal(t, "graph", owner)

	members, err := mr.Members("custom:app:container:graph:members")
	require.NoError(t, err)
	assert.Equal(t, []string{"s-1"}, members)
	assert.True(t, mr.Exists("custom:app:container:graph:hidden"))

	// A different prefix is a different database.
	other := redis.NewFromClient(client, "graph")
	owned, err := other.IsOwned(ctx, state)
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestRedisContainer_MarkHiddenUnowned(t *testing.T) {
	_, client := newClient(t)
	c := redis.NewFromClient(client, "graph")

	err := c.MarkHidden(context.Background(), &domain.State{ID: "nobody"})
	assert.ErrorIs(t, err, domain.ErrNotOwned)
}

func TestRedisContainer_ClosedBackend(t *testing.T) {
	mr, client := newClient(t)
	c := redis.NewFromClient(client, "graph")
	mr.Close()

	_, err := c.IsOwned(context.Background(), &domain.State{ID: "s"})
	assert.Error(t, err)
}

package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/animclone/pkg/adapters/memory"
	"github.com/aretw0/animclone/pkg/domain"
	"github.com/aretw0/animclone/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryContainer_Contract(t *testing.T) {
	db := memory.NewDatabase()
	ports.RunContainerContract(t, func(t *testing.T, name string) ports.InspectableContainer {
		return db.Container(name)
	})
}

func TestDatabase_Owner(t *testing.T) {
	db := memory.NewDatabase()
	s := &domain.State{ID: "s1", Name: "Idle"}

	_, ok := db.Owner(s.ID)
	assert.False(t, ok)

	require.NoError(t, db.Container("clone").AddOwned(context.Background(), s))

	owner, ok := db.Owner(s.ID)
	assert.True(t, ok)
	assert.Equal(t, "clone", owner)
}

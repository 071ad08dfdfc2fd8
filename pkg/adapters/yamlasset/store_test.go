package yamlasset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/animclone/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewStore(dir, nil)
	root := loadFixture(t)

	require.NoError(t, store.Save(ctx, "locomotion", root))
	require.NoError(t, store.Save(ctx, "locomotion", root), "overwrite must succeed")

	loaded, err := store.Load(ctx, "locomotion")
	require.NoError(t, err)
	assert.Equal(t, domain.Summarize(root), domain.Summarize(loaded))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"locomotion"}, names)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	require.NoError(t, store.Delete(ctx, "locomotion"))
	require.NoError(t, store.Delete(ctx, "locomotion"))
	_, err = store.Load(ctx, "locomotion")
	assert.ErrorIs(t, err, domain.ErrGraphNotFound)
}

func TestStore_InvalidNames(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	ctx := context.Background()

	for _, name := range []string{"", "..", "a/b", `a\b`} {
		_, err := store.Load(ctx, name)
		assert.Error(t, err, name)
		assert.Error(t, store.Save(ctx, name, &domain.StateMachine{Name: "M"}), name)
	}
}

func TestStore_ListMissingDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing"), nil)
	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: [oops"), 0644))

	_, err := NewStore(dir, nil).Load(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrGraphNotFound)
}

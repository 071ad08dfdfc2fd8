package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aretw0/animclone/pkg/domain"
	"github.com/stretchr/testify/require"
)

// SetupAssetDir creates a temporary directory holding one YAML file per entry of assets,
// keyed by asset name. It returns the absolute path to the directory.
// It fails the test immediately on error.
func SetupAssetDir(t *testing.T, assets map[string]string) string {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, doc := range assets {
		path := filepath.Join(absPath, name+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(doc), 0644), "Failed to write asset %s", name)
	}
	return absPath
}

// Sequence returns an ID generator yielding prefix-1, prefix-2, and so on.
// Deterministic ids keep clone output comparable across runs.
func Sequence(prefix string) func() domain.ID {
	var (
		mu sync.Mutex
		n  int
	)
	return func() domain.ID {
		mu.Lock()
		defer mu.Unlock()
		n++
		return domain.ID(fmt.Sprintf("%s-%d", prefix, n))
	}
}

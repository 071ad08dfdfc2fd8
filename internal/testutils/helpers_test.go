package testutils

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/animclone/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestSetupAssetDir(t *testing.T) {
	dir := SetupAssetDir(t, map[string]string{"idle": "name: Idle\n"})
	assert.True(t, filepath.IsAbs(dir))
	assert.FileExists(t, filepath.Join(dir, "idle.yaml"))
}

func TestSequence(t *testing.T) {
	next := Sequence("n")
	assert.Equal(t, domain.ID("n-1"), next())
	assert.Equal(t, domain.ID("n-2"), next())
	assert.Equal(t, domain.ID("m-1"), Sequence("m")())
}

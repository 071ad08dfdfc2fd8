package yamlasset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/animclone/pkg/domain"
)

// Ext is the file extension of stored assets.
const Ext = ".yaml"

// Store implements ports.GraphStore on a directory of YAML files.
type Store struct {
	BasePath string
	codec    *Codec
}

// NewStore creates a store rooted at basePath.
// If basePath is empty, it defaults to ".animclone/assets".
func NewStore(basePath string, codec *Codec) *Store {
	if basePath == "" {
		basePath = filepath.Join(".animclone", "assets")
	}
	if codec == nil {
		codec = NewCodec(nil)
	}
	return &Store{BasePath: basePath, codec: codec}
}

// Codec returns the codec the store reads and writes with.
func (s *Store) Codec() *Codec {
	return s.codec
}

func (s *Store) path(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("asset name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid asset name %q", name)
	}
	return filepath.Join(s.BasePath, name+Ext), nil
}

// Load reads and decodes the named asset.
func (s *Store) Load(ctx context.Context, name string) (*domain.StateMachine, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrGraphNotFound, name)
		}
		return nil, fmt.Errorf("failed to read asset file: %w", err)
	}
	root, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", name, err)
	}
	return root, nil
}

// Save encodes root and writes it atomically: a temp file in the same directory is synced and
// then renamed over the destination.
func (s *Store) Save(ctx context.Context, name string, root *domain.StateMachine) error {
	destPath, err := s.path(name)
	if err != nil {
		return err
	}
	data, err := s.codec.Encode(root)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure asset directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+name+"-*"+Ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Windows refuses to rename over an existing file.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing asset for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to asset: %w", err)
	}
	return nil
}

// List returns the names of all stored assets in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read asset directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Ext) || strings.HasPrefix(name, "tmp-") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, Ext))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the named asset. Removing a missing asset is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete asset file: %w", err)
	}
	return nil
}

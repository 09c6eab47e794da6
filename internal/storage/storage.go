// filepath: internal/storage/storage.go
// Package storage stores and serves the uploaded audio assets referenced by
// tracks. The catalog store never touches these files; saving happens on
// upload and deletion happens after the track record is removed, with no
// coordination between the two (a crash in between leaves an orphan).
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"

	"soundvault/internal/logging"
)

// AssetStore saves, resolves and deletes audio files under a single root
// directory.
type AssetStore struct {
	Root string
}

// NewAssetStore creates the upload root if needed.
func NewAssetStore(root string) (*AssetStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("could not create upload root %s: %w", root, err)
	}
	return &AssetStore{Root: root}, nil
}

// Save streams an uploaded file to disk under a fresh ULID-derived name,
// keeping the original extension. It returns the generated file name and
// the number of bytes written.
func (a *AssetStore) Save(data io.Reader, originalName string) (string, int64, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	fileName := ulid.Make().String() + ext

	path, err := a.Resolve(fileName)
	if err != nil {
		return "", 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("could not create file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, data)
	if err != nil {
		return "", 0, fmt.Errorf("could not write file: %w", err)
	}
	return fileName, size, nil
}

// Delete removes a stored asset. Missing files are not an error; the record
// may have outlived the file.
func (a *AssetStore) Delete(fileName string) error {
	path, err := a.Resolve(fileName)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete asset %s: %w", fileName, err)
	}
	return nil
}

// Resolve maps a file name to its absolute path, rejecting anything that
// would escape the upload root.
func (a *AssetStore) Resolve(fileName string) (string, error) {
	fullPath := filepath.Join(a.Root, fileName)
	cleanedPath := filepath.Clean(fullPath)
	cleanedRoot := filepath.Clean(a.Root)

	if !strings.HasPrefix(cleanedPath, cleanedRoot+string(filepath.Separator)) {
		logging.Log.Warnf("Path traversal attempt blocked for: %s", fileName)
		return "", fmt.Errorf("invalid file name")
	}
	return cleanedPath, nil
}

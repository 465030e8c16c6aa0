package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskStorage writes uploads to a local directory served as static files.
type DiskStorage struct {
	root       string // filesystem directory, e.g. ./uploads
	pathPrefix string // public URL prefix, e.g. /uploads
}

// NewDiskStorage creates a DiskStorage. The root directory is created on
// first save if absent.
func NewDiskStorage(root, pathPrefix string) *DiskStorage {
	return &DiskStorage{root: root, pathPrefix: strings.TrimSuffix(pathPrefix, "/")}
}

// Root returns the filesystem directory uploads are written to.
func (d *DiskStorage) Root() string {
	return d.root
}

// Save writes the file to disk and returns its public path.
func (d *DiskStorage) Save(ctx context.Context, storedName string, r io.Reader, contentType string) (string, error) {
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory %s: %w", d.root, err)
	}

	dst := filepath.Join(d.root, storedName)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file %s: %w", dst, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		// Don't leave a truncated file behind
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to write upload file %s: %w", dst, err)
	}

	return path.Join(d.pathPrefix, storedName), nil
}

// Delete removes the file addressed by its public path. Paths outside the
// upload prefix are rejected.
func (d *DiskStorage) Delete(ctx context.Context, publicPath string) error {
	name, ok := strings.CutPrefix(publicPath, d.pathPrefix+"/")
	if !ok {
		return fmt.Errorf("path %s is not under upload prefix %s", publicPath, d.pathPrefix)
	}
	// basename only: stored paths never contain subdirectories
	name = filepath.Base(name)
	if err := os.Remove(filepath.Join(d.root, name)); err != nil {
		return fmt.Errorf("failed to remove upload file %s: %w", name, err)
	}
	return nil
}

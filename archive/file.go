package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// FileClient stores archive objects under a root directory, one file
// per key. Key path separators map to directories.
type FileClient struct {
	root string
}

var _ Client = (*FileClient)(nil)

// NewFileClient creates a FileClient rooted at dir. The directory is
// created on first Put, not here, so constructing a client is cheap.
func NewFileClient(dir string) (*FileClient, error) {
	if dir == "" {
		return nil, WrapInitError(os.ErrInvalid, "file root")
	}
	return &FileClient{root: dir}, nil
}

// Put writes data to root/key, creating parent directories as needed.
// Keys escaping the root with ".." segments are rejected.
func (c *FileClient) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.Contains(key, "..") {
		return NewStorageError(ErrPermissionDenied, "write", key, os.ErrInvalid)
	}

	path := filepath.Join(c.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return WrapWriteError(err, path)
	}
	return WrapWriteError(os.WriteFile(path, data, 0o644), path)
}

// Close implements Client. The filesystem holds no open state.
func (c *FileClient) Close() error {
	return nil
}

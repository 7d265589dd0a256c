// Package adapter contains terminal and filesystem adapters for the filepipe CLI.
package adapter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	m "filepipe.dev/pkg/filepipe/internal/model"
)

// FSAdapter abstracts the filesystem operations the pipeline relies on so the
// validation and persistence logic can be tested without touching the disk.
//
//nolint:interfacebloat // one method per host capability the pipeline needs.
type FSAdapter interface {
	// AbsPath resolves raw against the working directory.
	AbsPath(ctx context.Context, raw string) (m.Path, error)

	// FileInfo returns metadata for a path so the domain can check existence
	// or distinguish between files and directories.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)

	// CanRead reports whether the current process may read path.
	CanRead(ctx context.Context, path m.Path) error

	// CanWrite reports whether the current process may write path. For a
	// directory this means creating entries inside it.
	CanWrite(ctx context.Context, path m.Path) error

	// MkdirAll creates path and any missing parents.
	MkdirAll(ctx context.Context, path m.Path) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// WriteFile replaces the file at path with content and returns the
	// number of bytes written. Short writes are reported as errors.
	WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) (int, error)
}

// LocalFSAdapter implements FSAdapter on top of the os package.
type LocalFSAdapter struct{}

// NewLocalFSAdapter constructs a LocalFSAdapter.
func NewLocalFSAdapter() *LocalFSAdapter {
	return &LocalFSAdapter{}
}

// AbsPath resolves raw to an absolute, cleaned path.
func (a *LocalFSAdapter) AbsPath(ctx context.Context, raw string) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}

// CanRead checks read access for path.
func (a *LocalFSAdapter) CanRead(ctx context.Context, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return checkAccess(string(path), accessRead)
}

// CanWrite checks write access for path.
func (a *LocalFSAdapter) CanWrite(ctx context.Context, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return checkAccess(string(path), accessWrite)
}

// MkdirAll creates a directory tree.
func (a *LocalFSAdapter) MkdirAll(ctx context.Context, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.MkdirAll(string(path), 0o750)
}

// ReadFile loads file contents from disk.
func (a *LocalFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - the path was chosen and validated interactively by the user
	return os.ReadFile(string(path))
}

// WriteFile truncates path and writes content, syncing before close so a
// full disk surfaces here rather than later.
func (a *LocalFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	// #nosec G304 - the path was chosen and validated interactively by the user
	f, err := os.OpenFile(string(path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return 0, err
	}

	n, err := f.Write(content)
	if err == nil && n < len(content) {
		err = io.ErrShortWrite
	}

	if err != nil {
		_ = f.Close()
		return n, fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return n, fmt.Errorf("sync %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return n, fmt.Errorf("close %s: %w", path, err)
	}

	return n, nil
}

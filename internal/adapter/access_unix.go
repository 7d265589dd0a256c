//go:build unix

package adapter

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

type accessMode uint32

const (
	accessRead  accessMode = unix.R_OK
	accessWrite accessMode = unix.W_OK
)

// checkAccess asks the kernel via access(2), which honors the real uid the
// same way the user's shell would.
func checkAccess(path string, mode accessMode) error {
	if err := unix.Access(path, uint32(mode)); err != nil {
		return &fs.PathError{Op: "access", Path: path, Err: err}
	}

	return nil
}

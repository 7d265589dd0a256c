//go:build !unix

package adapter

import (
	"os"
)

type accessMode int

const (
	accessRead accessMode = iota
	accessWrite
)

// checkAccess probes access by opening path, since access(2) is unavailable.
func checkAccess(path string, mode accessMode) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		if mode == accessRead {
			_, err := os.ReadDir(path)
			return err
		}

		f, err := os.CreateTemp(path, ".filepipe-probe-*")
		if err != nil {
			return err
		}

		name := f.Name()
		_ = f.Close()

		return os.Remove(name)
	}

	flag := os.O_RDONLY
	if mode == accessWrite {
		flag = os.O_WRONLY
	}

	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return err
	}

	return f.Close()
}

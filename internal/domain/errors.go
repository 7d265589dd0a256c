package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"syscall"

	"filepipe.dev/pkg/filepipe/internal/adapter"
	m "filepipe.dev/pkg/filepipe/internal/model"
)

// ErrorKind classifies every failure the pipeline can report.
type ErrorKind int

// Available ErrorKind values.
const (
	KindIOFailure ErrorKind = iota
	KindNotFound
	KindPermissionDenied
	KindIsDirectory
	KindAlreadyExists
	KindEncodingUnsupported
	KindUserAbandoned
	KindUserInterrupted
	KindNotRegular
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermissionDenied:
		return "permission denied"
	case KindIsDirectory:
		return "is a directory"
	case KindAlreadyExists:
		return "already exists"
	case KindEncodingUnsupported:
		return "encoding unsupported"
	case KindUserAbandoned:
		return "abandoned by user"
	case KindUserInterrupted:
		return "interrupted by user"
	case KindNotRegular:
		return "not a regular file"
	default:
		return "i/o failure"
	}
}

// Sentinel errors, one per kind, for errors.Is checks.
var (
	ErrNotFound            = errors.New("not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrIsDirectory         = errors.New("is a directory")
	ErrAlreadyExists       = errors.New("already exists")
	ErrEncodingUnsupported = errors.New("encoding unsupported")
	ErrIOFailure           = errors.New("i/o failure")
	ErrUserAbandoned       = errors.New("abandoned by user")
	ErrUserInterrupted     = errors.New("interrupted by user")
	ErrNotRegular          = errors.New("not a regular file")
)

var sentinels = map[ErrorKind]error{
	KindNotFound:            ErrNotFound,
	KindPermissionDenied:    ErrPermissionDenied,
	KindIsDirectory:         ErrIsDirectory,
	KindAlreadyExists:       ErrAlreadyExists,
	KindEncodingUnsupported: ErrEncodingUnsupported,
	KindIOFailure:           ErrIOFailure,
	KindUserAbandoned:       ErrUserAbandoned,
	KindUserInterrupted:     ErrUserInterrupted,
	KindNotRegular:          ErrNotRegular,
}

// PipelineError carries the kind, the failed operation and the path.
type PipelineError struct {
	Kind ErrorKind
	Op   string
	Path m.Path
	Err  error
}

func (e *PipelineError) Error() string {
	msg := e.message()

	// The message already says everything for path-state kinds.
	if e.Err == nil || (e.Kind != KindIOFailure && e.Kind != KindEncodingUnsupported) {
		return msg
	}

	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *PipelineError) message() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("File not found: %s", e.Path)
	case KindPermissionDenied:
		if e.Op == "write" {
			return fmt.Sprintf("No write permission: %s", e.Path)
		}

		return fmt.Sprintf("No read permission: %s", e.Path)
	case KindIsDirectory:
		return fmt.Sprintf("Path is a directory: %s", e.Path)
	case KindNotRegular:
		return fmt.Sprintf("Not a regular file: %s", e.Path)
	case KindAlreadyExists:
		return fmt.Sprintf("File already exists: %s", e.Path)
	case KindEncodingUnsupported:
		return fmt.Sprintf("Could not decode file content: %s", e.Path)
	case KindUserAbandoned, KindUserInterrupted:
		return "Operation cancelled by user"
	default:
		if e.Path == "" {
			return fmt.Sprintf("%s failed", e.Op)
		}

		return fmt.Sprintf("%s failed for %s", e.Op, e.Path)
	}
}

// Unwrap exposes the underlying cause.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *PipelineError) Is(target error) bool {
	return sentinels[e.Kind] == target
}

func newError(kind ErrorKind, op string, path m.Path, err error) *PipelineError {
	return &PipelineError{Kind: kind, Op: op, Path: path, Err: err}
}

// Classify wraps err as a PipelineError, mapping OS errors to kinds.
// Errors that already are PipelineErrors are returned unchanged.
func Classify(op string, path m.Path, err error) error {
	if err == nil {
		return nil
	}

	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe
	}

	return newError(KindOf(err), op, path, err)
}

// KindOf maps an arbitrary error to an ErrorKind.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}

	switch {
	case errors.Is(err, adapter.ErrInterrupted), errors.Is(err, context.Canceled):
		return KindUserInterrupted
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.EROFS):
		return KindPermissionDenied
	case errors.Is(err, syscall.EISDIR):
		return KindIsDirectory
	case errors.Is(err, fs.ErrExist):
		return KindAlreadyExists
	default:
		return KindIOFailure
	}
}

// IsAbandon reports whether err is the user giving up rather than a failure.
func IsAbandon(err error) bool {
	return errors.Is(err, ErrUserAbandoned) || errors.Is(err, ErrUserInterrupted)
}

func abandoned(op string) error {
	return newError(KindUserAbandoned, op, "", nil)
}

func interrupted(op string) error {
	return newError(KindUserInterrupted, op, "", adapter.ErrInterrupted)
}

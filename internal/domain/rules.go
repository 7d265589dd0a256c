package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	m "filepipe.dev/pkg/filepipe/internal/model"
)

// check is the state shared by the rules of one validation pass.
type check struct {
	req  m.PathRequest
	info os.FileInfo // nil when the target does not exist
}

// rule is one validation step. decided=false lets the next rule run.
type rule struct {
	name  string
	apply func(ctx context.Context, c *check) (outcome m.ValidationOutcome, decided bool)
}

func pass() (m.ValidationOutcome, bool) {
	return m.ValidationOutcome{}, false
}

// inputRules fail fast in order: existence, readability, not a directory,
// regular file.
func (a *pathAcquirer) inputRules() []rule {
	return []rule{
		{name: "exists", apply: a.requireExisting},
		{name: "readable", apply: a.requireReadable},
		{name: "directory", apply: a.rejectDirectory},
		{name: "regular", apply: a.requireRegular},
	}
}

// outputRules make sure the target can be created or replaced.
func (a *pathAcquirer) outputRules() []rule {
	return []rule{
		{name: "parent", apply: a.ensureParent},
		{name: "target", apply: a.statTarget},
		{name: "directory", apply: a.rejectDirectory},
		{name: "regular", apply: a.requireRegular},
		{name: "overwrite", apply: a.confirmOverwrite},
		{name: "writable", apply: a.requireWritable},
	}
}

func (a *pathAcquirer) requireExisting(ctx context.Context, c *check) (m.ValidationOutcome, bool) {
	info, err := a.fsAdapter.FileInfo(ctx, c.req.Abs)
	if err != nil {
		return m.Rejected(Classify("stat", c.req.Abs, err)), true
	}

	c.info = info

	return pass()
}

func (a *pathAcquirer) requireReadable(ctx context.Context, c *check) (m.ValidationOutcome, bool) {
	if err := a.fsAdapter.CanRead(ctx, c.req.Abs); err != nil {
		return m.Rejected(Classify("read", c.req.Abs, err)), true
	}

	return pass()
}

func (a *pathAcquirer) rejectDirectory(_ context.Context, c *check) (m.ValidationOutcome, bool) {
	if c.info != nil && c.info.IsDir() {
		return m.Rejected(newError(KindIsDirectory, "stat", c.req.Abs, ErrIsDirectory)), true
	}

	return pass()
}

// requireRegular rejects FIFOs, devices and sockets, which could block or
// never end when read.
func (a *pathAcquirer) requireRegular(_ context.Context, c *check) (m.ValidationOutcome, bool) {
	if c.info != nil && !c.info.Mode().IsRegular() {
		return m.Rejected(newError(KindNotRegular, "stat", c.req.Abs, ErrNotRegular)), true
	}

	return pass()
}

func (a *pathAcquirer) ensureParent(ctx context.Context, c *check) (m.ValidationOutcome, bool) {
	dir := m.Path(filepath.Dir(string(c.req.Abs)))

	info, err := a.fsAdapter.FileInfo(ctx, dir)

	switch {
	case err == nil && !info.IsDir():
		return m.Rejected(newError(KindIOFailure, "resolve parent", dir, syscall.ENOTDIR)), true

	case err == nil:
		return pass()

	case !errors.Is(err, fs.ErrNotExist):
		return m.Rejected(Classify("stat", dir, err)), true
	}

	if !a.confirmer.Ask(ctx, fmt.Sprintf("Directory doesn't exist. Create it? (%s)", dir)) {
		return declined(ctx, m.Reprompt(nil)), true
	}

	if err := a.fsAdapter.MkdirAll(ctx, dir); err != nil {
		return m.Rejected(Classify("create directory", dir, err)), true
	}

	a.ui.Info(ctx, "Created directory: %s", dir)

	return pass()
}

func (a *pathAcquirer) statTarget(ctx context.Context, c *check) (m.ValidationOutcome, bool) {
	info, err := a.fsAdapter.FileInfo(ctx, c.req.Abs)

	switch {
	case err == nil:
		c.info = info
	case errors.Is(err, fs.ErrNotExist):
		c.info = nil
	default:
		return m.Rejected(Classify("stat", c.req.Abs, err)), true
	}

	return pass()
}

func (a *pathAcquirer) confirmOverwrite(ctx context.Context, c *check) (m.ValidationOutcome, bool) {
	if c.info == nil {
		return pass()
	}

	if a.confirmer.Ask(ctx, fmt.Sprintf("File exists. Overwrite? (%s)", c.req.Abs)) {
		return pass()
	}

	return declined(ctx, m.Reprompt(newError(KindAlreadyExists, "write", c.req.Abs, ErrAlreadyExists))), true
}

// declined returns outcome for a "no" answer, or Abandoned when the answer
// came from an interrupt.
func declined(ctx context.Context, outcome m.ValidationOutcome) m.ValidationOutcome {
	if ctx.Err() != nil {
		return m.Abandoned()
	}

	return outcome
}

func (a *pathAcquirer) requireWritable(ctx context.Context, c *check) (m.ValidationOutcome, bool) {
	target := c.req.Abs
	if c.info == nil {
		target = m.Path(filepath.Dir(string(c.req.Abs)))
	}

	if err := a.fsAdapter.CanWrite(ctx, target); err != nil {
		return m.Rejected(Classify("write", target, err)), true
	}

	return pass()
}

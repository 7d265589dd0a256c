package domain

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"filepipe.dev/pkg/filepipe/internal/adapter"
	"filepipe.dev/pkg/filepipe/internal/controller"
)

// scriptPrompter answers prompts from a fixed script and records every
// prompt it was shown.
type scriptPrompter struct {
	answers  []string
	prompts  []string
	cancelOn string
	cancel   context.CancelFunc
}

func newScript(answers ...string) *scriptPrompter {
	return &scriptPrompter{answers: answers}
}

func (s *scriptPrompter) ReadLine(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)

	if s.cancelOn != "" && strings.HasPrefix(prompt, s.cancelOn) && s.cancel != nil {
		s.cancel()
	}

	if ctx.Err() != nil || len(s.answers) == 0 {
		return "", adapter.ErrInterrupted
	}

	answer := s.answers[0]
	s.answers = s.answers[1:]

	return answer, nil
}

func (s *scriptPrompter) count(prefix string) int {
	n := 0

	for _, p := range s.prompts {
		if strings.HasPrefix(p, prefix) {
			n++
		}
	}

	return n
}

func newTestUI() (controller.UI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return controller.NewSimpleUI(cmd), &buf
}

type harness struct {
	prompter *scriptPrompter
	ui       controller.UI
	out      *bytes.Buffer
	fs       adapter.FSAdapter
	acquirer PathAcquirer
}

func newHarness(answers ...string) *harness {
	prompter := newScript(answers...)
	ui, out := newTestUI()
	fsAdapter := adapter.NewLocalFSAdapter()
	confirmer := NewConfirmer(prompter, ui)

	return &harness{
		prompter: prompter,
		ui:       ui,
		out:      out,
		fs:       fsAdapter,
		acquirer: NewPathAcquirer(fsAdapter, prompter, confirmer, ui),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	return string(data)
}

type fakeFileInfo struct {
	name string
	size int64
	dir  bool
}

func (f fakeFileInfo) Name() string { return f.name }
func (f fakeFileInfo) Size() int64  { return f.size }
func (f fakeFileInfo) Mode() os.FileMode {
	if f.dir {
		return os.ModeDir | 0o755
	}

	return 0o644
}
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return f.dir }
func (f fakeFileInfo) Sys() any           { return nil }

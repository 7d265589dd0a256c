package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filepipe.dev/pkg/filepipe/internal/adapter"
	"filepipe.dev/pkg/filepipe/internal/controller"
	"filepipe.dev/pkg/filepipe/internal/domain"
)

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "filepipe", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)

	for _, name := range []string{transformFlagName, plainFlagName} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	for _, name := range []string{logFileFlagName, verboseFlagName} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	assert.Equal(t, "t", cmd.Flags().Lookup(transformFlagName).Shorthand)
	assert.Equal(t, "v", cmd.PersistentFlags().Lookup(verboseFlagName).Shorthand)
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := newRootCmd()
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"--help"})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Usage:")
	assert.Contains(t, output.String(), "numbered-upper")
}

func TestInit(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.Contains(t, names, "init")
	assert.Contains(t, names, "config")
	assert.Contains(t, names, "version")
}

// runRoot executes a fresh root command in plain mode with stdin taken
// from input.
func runRoot(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	logPath := filepath.Join(t.TempDir(), "filepipe.log")
	cmd.SetArgs(append([]string{"--plain", "--log-file", logPath}, args...))

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestRootCmd_RunsPipeline(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte("hello\nworld\n"), 0o600))

	transcript, err := runRoot(t, in+"\n"+out+"\n")
	require.NoError(t, err)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "   1 | hello\n   2 | world", string(written))

	assert.Contains(t, transcript, "Enter input file path: ")
	assert.Contains(t, transcript, "Enter output file path: ")
	assert.Contains(t, transcript, "Success! Modified file saved to: "+out)
}

func TestRootCmd_UppercaseFlag(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte("shout\n"), 0o600))

	_, err := runRoot(t, in+"\n"+out+"\n", "-t", "uppercase")
	require.NoError(t, err)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "SHOUT\n", string(written))
}

func TestRootCmd_EndOfInputCancels(t *testing.T) {
	transcript, err := runRoot(t, "")
	require.NoError(t, err)
	assert.Contains(t, transcript, "Operation cancelled by user")
}

func TestRootCmd_UnknownTransform(t *testing.T) {
	_, err := runRoot(t, "", "-t", "rot13")
	require.Error(t, err)
	assert.False(t, errors.Is(err, errReported))
	assert.Contains(t, err.Error(), "rot13")
}

func TestFinish(t *testing.T) {
	newUI := func() (controller.UI, *bytes.Buffer) {
		out := &bytes.Buffer{}
		c := &cobra.Command{}
		c.SetOut(out)

		return controller.NewSimpleUI(c), out
	}

	t.Run("success", func(t *testing.T) {
		ui, out := newUI()
		require.NoError(t, finish(context.Background(), ui, nil))
		assert.Empty(t, out.String())
	})

	t.Run("abandon is not an error", func(t *testing.T) {
		ui, out := newUI()
		err := finish(context.Background(), ui, domain.Classify("prompt", "", adapter.ErrInterrupted))
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Operation cancelled by user")
	})

	t.Run("classified failure is reported once", func(t *testing.T) {
		ui, out := newUI()
		err := finish(context.Background(), ui, domain.Classify("write", "/data/out.txt", syscall.ENOSPC))
		require.Error(t, err)
		assert.ErrorIs(t, err, errReported)
		assert.ErrorIs(t, err, domain.ErrIOFailure)
		assert.Contains(t, out.String(), "Failed: write failed for /data/out.txt")
	})

	t.Run("unknown error passes through", func(t *testing.T) {
		ui, out := newUI()
		boom := errors.New("boom")
		err := finish(context.Background(), ui, boom)
		assert.Same(t, boom, err)
		assert.Empty(t, out.String())
	})
}

func TestExecute_ExitCodes(t *testing.T) {
	newCmd := func(run func() error) *cobra.Command {
		c := &cobra.Command{
			Use:           "test",
			SilenceErrors: true,
			SilenceUsage:  true,
			RunE: func(_ *cobra.Command, _ []string) error {
				return run()
			},
		}
		c.SetArgs([]string{})
		c.SetOut(&bytes.Buffer{})

		return c
	}

	tests := []struct {
		name     string
		run      func() error
		wantCode int
		wantErr  string
	}{
		{"success", func() error { return nil }, 0, ""},
		{"unknown error", func() error { return fmt.Errorf("command failed") }, 1, "Critical error: command failed"},
		{"reported failure", func() error { return errors.Join(errReported, errors.New("disk full")) }, 1, ""},
		{"panic", func() error { panic("boom") }, 1, "Critical error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errOut := &bytes.Buffer{}

			code := execute(context.Background(), newCmd(tt.run), errOut)
			assert.Equal(t, tt.wantCode, code)

			if tt.wantErr == "" {
				assert.Empty(t, errOut.String())
			} else {
				assert.Contains(t, errOut.String(), tt.wantErr)
			}
		})
	}
}

func TestExecute_ProcessLevel_Success(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS") == "1" {
		rootCmd.SetArgs([]string{"version", "--log-file", os.Getenv("TEST_EXECUTE_LOG")})
		Execute()

		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Success")
	cmd.Env = append(os.Environ(),
		"TEST_EXECUTE_SUBPROCESS=1",
		"TEST_EXECUTE_LOG="+filepath.Join(t.TempDir(), "filepipe.log"),
	)
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, string(output), "version")
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		rootCmd.SetArgs([]string{"--plain", "-t", "rot13", "--log-file", os.Getenv("TEST_EXECUTE_LOG")})
		Execute() // exits 1

		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(),
		"TEST_EXECUTE_SUBPROCESS_FAIL=1",
		"TEST_EXECUTE_LOG="+filepath.Join(t.TempDir(), "filepipe.log"),
	)
	output, err := cmd.CombinedOutput()

	require.Error(t, err)

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		assert.Equal(t, 1, exitErr.ExitCode())
	} else {
		assert.Fail(t, "expected exec.ExitError", "got %T", err)
	}

	assert.Contains(t, string(output), "Critical error")
}

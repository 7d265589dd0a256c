package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	m "filepipe.dev/pkg/filepipe/internal/model"
)

// SimpleUI implements UI using the cobra command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Banner prints the program title.
func (s *SimpleUI) Banner(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n%s\n", bannerTitle, strings.Repeat("-", len(bannerTitle)))
}

// Info prints a progress message.
func (s *SimpleUI) Info(_ context.Context, format string, args ...any) {
	s.printf(format+"\n", args...)
}

// Warn prints a recoverable problem.
func (s *SimpleUI) Warn(_ context.Context, format string, args ...any) {
	s.printf("Warning: "+format+"\n", args...)
}

// Error prints a validation or I/O error.
func (s *SimpleUI) Error(_ context.Context, format string, args ...any) {
	s.printf("Error: "+format+"\n", args...)
}

// DisplayPreview prints the bounded file preview.
func (s *SimpleUI) DisplayPreview(_ context.Context, content m.FileContent, preview m.Preview) {
	s.printf("Read %d characters (%d lines, %s)\n", len([]rune(content.Text)), content.Lines, content.Encoding)
	s.printf("\nFile preview:\n")

	for i, line := range preview.Lines {
		s.printf("%d: %s\n", i+1, line)
	}

	if preview.Truncated {
		s.printf("... (truncated)\n")
	}
}

// DisplaySummary prints the success message and the run table.
func (s *SimpleUI) DisplaySummary(_ context.Context, summary m.Summary) {
	s.printf("\nSuccess! Modified file saved to: %s\n", summary.OutputPath)
	s.printf("%d lines processed\n\n", summary.OutputLines)
	s.printf("%s", renderSummaryTable(summary))
}

// DisplayCancelled prints the cancellation notice.
func (s *SimpleUI) DisplayCancelled(_ context.Context) {
	s.printf("\nOperation cancelled by user\n")
}

// DisplayFailure prints a terminal failure.
func (s *SimpleUI) DisplayFailure(_ context.Context, err error) {
	s.printf("\nFailed: %v\n", err)
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

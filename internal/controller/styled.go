package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "filepipe.dev/pkg/filepipe/internal/model"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	faintStyle   = lipgloss.NewStyle().Faint(true)

	previewBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1)
)

// StyledUI implements UI with lipgloss styling for interactive terminals.
type StyledUI struct {
	cmd *cobra.Command
}

// NewStyledUI creates a new StyledUI.
func NewStyledUI(cmd *cobra.Command) *StyledUI {
	return &StyledUI{cmd: cmd}
}

// Banner prints the program title.
func (s *StyledUI) Banner(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.println(headerStyle.Render("📂 " + bannerTitle + " 📂"))
	s.println(faintStyle.Render(strings.Repeat("─", len(bannerTitle)+6)))
}

// Info prints a progress message.
func (s *StyledUI) Info(_ context.Context, format string, args ...any) {
	s.println(infoStyle.Render(fmt.Sprintf(format, args...)))
}

// Warn prints a recoverable problem.
func (s *StyledUI) Warn(_ context.Context, format string, args ...any) {
	s.println(warningStyle.Render("⚠️  " + fmt.Sprintf(format, args...)))
}

// Error prints a validation or I/O error.
func (s *StyledUI) Error(_ context.Context, format string, args ...any) {
	s.println(errorStyle.Render("❌ " + fmt.Sprintf(format, args...)))
}

// DisplayPreview renders the preview inside a bordered box.
func (s *StyledUI) DisplayPreview(_ context.Context, content m.FileContent, preview m.Preview) {
	s.println(infoStyle.Render(fmt.Sprintf("📄 Read %d characters (%d lines, %s)",
		len([]rune(content.Text)), content.Lines, content.Encoding)))

	var b strings.Builder

	for i, line := range preview.Lines {
		if i > 0 {
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "%s %s", faintStyle.Render(fmt.Sprintf("%d:", i+1)), line)
	}

	if preview.Truncated {
		b.WriteString("\n")
		b.WriteString(faintStyle.Render("... (truncated)"))
	}

	if b.Len() == 0 {
		b.WriteString(faintStyle.Render("(empty file)"))
	}

	s.println("")
	s.println("File preview:")
	s.println(previewBoxStyle.Render(b.String()))
}

// DisplaySummary prints the success message and the run table.
func (s *StyledUI) DisplaySummary(_ context.Context, summary m.Summary) {
	s.println("")
	s.println(successStyle.Render("✅ Success! Modified file saved to: " + string(summary.OutputPath)))
	s.println(successStyle.Render(fmt.Sprintf("📝 %d lines processed", summary.OutputLines)))
	s.println("")
	_, _ = fmt.Fprint(s.cmd.OutOrStdout(), renderSummaryTable(summary))
}

// DisplayCancelled prints the cancellation notice.
func (s *StyledUI) DisplayCancelled(_ context.Context) {
	s.println("")
	s.println(warningStyle.Render("🚫 Operation cancelled by user"))
}

// DisplayFailure prints a terminal failure.
func (s *StyledUI) DisplayFailure(_ context.Context, err error) {
	s.println("")
	s.println(errorStyle.Render(fmt.Sprintf("❌ Failed: %v", err)))
}

func (s *StyledUI) println(line string) {
	_, _ = fmt.Fprintln(s.cmd.OutOrStdout(), line)
}

// Package controller provides output adapters for the file pipeline transcript.
package controller

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "filepipe.dev/pkg/filepipe/internal/model"
)

// UI defines how the pipeline reports progress to the user.
// Implementations can use different output methods (plain text, styled, etc).
type UI interface {
	Banner(ctx context.Context)
	Info(ctx context.Context, format string, args ...any)
	Warn(ctx context.Context, format string, args ...any)
	Error(ctx context.Context, format string, args ...any)
	DisplayPreview(ctx context.Context, content m.FileContent, preview m.Preview)
	DisplaySummary(ctx context.Context, summary m.Summary)
	DisplayCancelled(ctx context.Context)
	DisplayFailure(ctx context.Context, err error)
}

// NewUI picks the styled UI for terminals and the plain UI otherwise.
func NewUI(cmd *cobra.Command, styled bool) UI {
	if styled {
		return NewStyledUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const bannerTitle = "File Processor with Error Handling"

func renderSummaryTable(summary m.Summary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	table.Append([]string{"Input", string(summary.InputPath)})
	table.Append([]string{"Output", string(summary.OutputPath)})
	table.Append([]string{"Transform", string(summary.Strategy)})
	table.Append([]string{"Encoding", string(summary.Encoding)})
	table.Append([]string{"Lines read", fmt.Sprintf("%d", summary.InputLines)})
	table.Append([]string{"Lines written", fmt.Sprintf("%d", summary.OutputLines)})
	table.Append([]string{"Bytes written", fmt.Sprintf("%d", summary.BytesWritten)})

	table.Render()

	return tableBuffer.String()
}

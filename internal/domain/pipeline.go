// Package domain implements the interactive file pipeline: path acquisition,
// reading, transforming and writing.
package domain

import (
	"context"
	"log/slog"

	"filepipe.dev/pkg/filepipe/internal/controller"
	m "filepipe.dev/pkg/filepipe/internal/model"
)

// Pipeline runs one prompt -> read -> transform -> prompt -> write cycle.
type Pipeline interface {
	// Run returns the summary of a completed run. When the user gives up the
	// error satisfies IsAbandon; any other error is a failure.
	Run(ctx context.Context) (m.Summary, error)
}

type pipeline struct {
	controller.UI
	PathAcquirer
	ContentReader
	ContentWriter
	transform Transform
	preview   PreviewOptions
}

// NewPipeline wires the pipeline stages together. The transform is fixed for
// the lifetime of the pipeline.
func NewPipeline(
	ui controller.UI,
	acquirer PathAcquirer,
	reader ContentReader,
	writer ContentWriter,
	transform Transform,
	preview PreviewOptions,
) Pipeline {
	return &pipeline{
		UI:            ui,
		PathAcquirer:  acquirer,
		ContentReader: reader,
		ContentWriter: writer,
		transform:     transform,
		preview:       preview,
	}
}

func (p *pipeline) Run(ctx context.Context) (m.Summary, error) {
	p.Banner(ctx)

	inputPath, err := p.Acquire(ctx, m.RoleInput)
	if err != nil {
		return m.Summary{}, err
	}

	content, err := p.Read(ctx, inputPath)
	if err != nil {
		return m.Summary{}, err
	}

	p.DisplayPreview(ctx, content, BuildPreview(content, p.preview))

	result := p.transform.Apply(content)
	slog.Info("Transformed content", "strategy", result.Strategy, "lines", result.Lines)

	outputPath, err := p.Acquire(ctx, m.RoleOutput)
	if err != nil {
		return m.Summary{}, err
	}

	written, err := p.Write(ctx, outputPath, result)
	if err != nil {
		return m.Summary{}, err
	}

	summary := m.Summary{
		InputPath:    inputPath,
		OutputPath:   outputPath,
		Strategy:     result.Strategy,
		Encoding:     content.Encoding,
		InputLines:   content.Lines,
		OutputLines:  result.Lines,
		BytesWritten: written,
	}

	p.DisplaySummary(ctx, summary)

	return summary, nil
}

package domain

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/encoding/charmap"

	"filepipe.dev/pkg/filepipe/internal/adapter"
	"filepipe.dev/pkg/filepipe/internal/controller"
	m "filepipe.dev/pkg/filepipe/internal/model"
)

// DefaultConfirmAboveBytes is the size above which reading asks first.
const DefaultConfirmAboveBytes int64 = 10 * 1024 * 1024

// ContentReader loads and decodes the input file.
type ContentReader interface {
	Read(ctx context.Context, path m.Path) (m.FileContent, error)
}

type contentReader struct {
	fsAdapter    adapter.FSAdapter
	confirmer    Confirmer
	ui           controller.UI
	confirmAbove int64
}

// NewContentReader constructs a ContentReader. confirmAbove <= 0 disables
// the large-file confirmation.
func NewContentReader(fsAdapter adapter.FSAdapter, confirmer Confirmer, ui controller.UI, confirmAbove int64) ContentReader {
	return &contentReader{
		fsAdapter:    fsAdapter,
		confirmer:    confirmer,
		ui:           ui,
		confirmAbove: confirmAbove,
	}
}

func (r *contentReader) Read(ctx context.Context, path m.Path) (m.FileContent, error) {
	r.ui.Info(ctx, "Reading file: %s", path)

	info, err := r.fsAdapter.FileInfo(ctx, path)
	if err != nil {
		slog.Error("Failed to stat input", "path", path, "error", err)
		return m.FileContent{}, Classify("read", path, err)
	}

	if r.confirmAbove > 0 && info.Size() > r.confirmAbove {
		question := fmt.Sprintf("Large file detected (%s). Continue?", humanize.IBytes(uint64(info.Size())))
		if !r.confirmer.Ask(ctx, question) {
			if ctx.Err() != nil {
				return m.FileContent{}, interrupted("read")
			}

			return m.FileContent{}, abandoned("read")
		}
	}

	data, err := r.fsAdapter.ReadFile(ctx, path)
	if err != nil {
		slog.Error("Failed to read input", "path", path, "error", err)
		return m.FileContent{}, Classify("read", path, err)
	}

	text, encoding, err := Decode(data)
	if err != nil {
		slog.Error("Failed to decode input", "path", path, "error", err)
		return m.FileContent{}, newError(KindEncodingUnsupported, "decode", path, err)
	}

	if encoding != m.EncodingUTF8 {
		slog.Warn("Input is not valid UTF-8, decoded with fallback", "path", path, "encoding", encoding)
	}

	content := m.FileContent{
		Path:     path,
		Text:     text,
		Lines:    len(SplitLines(text)),
		Size:     int64(len(data)),
		Encoding: encoding,
	}

	slog.Info("Read input", "path", path, "bytes", content.Size, "lines", content.Lines, "encoding", encoding)

	return content, nil
}

// Decode returns data as text, trying UTF-8 first and falling back to
// ISO-8859-1, which assigns a character to every byte.
func Decode(data []byte) (string, m.Encoding, error) {
	if utf8.Valid(data) {
		return string(data), m.EncodingUTF8, nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", err
	}

	return string(decoded), m.EncodingLatin1, nil
}

// SplitLines splits text on \n, \r\n and \r. A terminator at the end of
// text does not start another line, so "a\nb\n" has two lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	var lines []string

	start := 0

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])

			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}

			start = i + 1
		}
	}

	if start < len(text) {
		lines = append(lines, text[start:])
	}

	return lines
}

// PreviewOptions bound the preview shown after reading.
type PreviewOptions struct {
	Lines int
	Width int
}

// DefaultPreviewOptions shows five lines of at most 80 cells.
var DefaultPreviewOptions = PreviewOptions{Lines: 5, Width: 80}

// BuildPreview returns the first opts.Lines lines of content, each cut to
// opts.Width display cells.
func BuildPreview(content m.FileContent, opts PreviewOptions) m.Preview {
	lines := SplitLines(content.Text)

	limit := min(opts.Lines, len(lines))
	if limit < 0 {
		limit = 0
	}

	preview := m.Preview{
		Lines:     make([]string, 0, limit),
		Truncated: len(lines) > limit,
	}

	for _, line := range lines[:limit] {
		if opts.Width > 0 && runewidth.StringWidth(line) > opts.Width {
			line = runewidth.Truncate(line, opts.Width, "") + "..."
		}

		preview.Lines = append(preview.Lines, line)
	}

	return preview
}

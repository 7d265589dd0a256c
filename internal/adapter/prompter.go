package adapter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInterrupted is returned by a Prompter when the user interrupts the
// prompt (Ctrl-C, closed stdin, cancelled context).
var ErrInterrupted = errors.New("prompt interrupted")

// Prompter reads one line of user input after showing a prompt.
type Prompter interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// LinePrompter reads newline-terminated answers from an io.Reader.
//
// The reader is drained by a single background goroutine so that a blocked
// read can be abandoned when ctx is cancelled by a signal.
type LinePrompter struct {
	in    io.Reader
	out   io.Writer
	lines chan string
	start sync.Once
}

// NewLinePrompter creates a LinePrompter that writes prompts to out and reads
// answers from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:    in,
		out:   out,
		lines: make(chan string),
	}
}

// ReadLine prints prompt and waits for the next line. EOF and context
// cancellation both yield ErrInterrupted.
func (p *LinePrompter) ReadLine(ctx context.Context, prompt string) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInterrupted
	}

	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	p.start.Do(func() {
		go p.readLoop()
	})

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(p.out)
		return "", ErrInterrupted
	case line, ok := <-p.lines:
		if !ok {
			_, _ = fmt.Fprintln(p.out)
			return "", ErrInterrupted
		}

		return line, nil
	}
}

func (p *LinePrompter) readLoop() {
	defer close(p.lines)

	reader := bufio.NewReader(p.in)

	for {
		line, err := reader.ReadString('\n')
		if err == nil || line != "" {
			p.lines <- strings.TrimRight(line, "\r\n")
		}

		if err != nil {
			return
		}
	}
}

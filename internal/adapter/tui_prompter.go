package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TUIPrompter asks each question with a short-lived Bubble Tea program so the
// terminal is in raw mode only while a question is on screen.
type TUIPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewTUIPrompter creates a TUIPrompter bound to a terminal.
func NewTUIPrompter(in io.Reader, out io.Writer) *TUIPrompter {
	return &TUIPrompter{in: in, out: out}
}

// ReadLine runs a single-field prompt. Ctrl-C, Esc and context cancellation
// yield ErrInterrupted.
func (p *TUIPrompter) ReadLine(ctx context.Context, prompt string) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInterrupted
	}

	program := tea.NewProgram(
		newPromptModel(prompt),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || ctx.Err() != nil {
			return "", ErrInterrupted
		}

		return "", fmt.Errorf("run prompt: %w", err)
	}

	result, ok := final.(promptModel)
	if !ok || result.interrupted {
		return "", ErrInterrupted
	}

	return result.value, nil
}

// promptModel is the Bubble Tea model for one line of input.
type promptModel struct {
	input       textinput.Model
	label       string
	value       string
	done        bool
	interrupted bool
}

func newPromptModel(label string) promptModel {
	input := textinput.New()
	input.Prompt = ""
	input.Focus()

	return promptModel{
		input: input,
		label: label,
	}
}

func (pm promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (pm promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // only submit and cancel keys are handled here
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			pm.interrupted = true
			return pm, tea.Quit
		case tea.KeyEnter:
			pm.value = pm.input.Value()
			pm.done = true

			return pm, tea.Quit
		}
	}

	var cmd tea.Cmd

	pm.input, cmd = pm.input.Update(msg)

	return pm, cmd
}

func (pm promptModel) View() string {
	switch {
	case pm.interrupted:
		return pm.label + "^C\n"
	case pm.done:
		return pm.label + pm.value + "\n"
	default:
		return pm.label + pm.input.View()
	}
}

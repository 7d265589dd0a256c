package domain

import (
	"context"
	"log/slog"
	"strings"

	"filepipe.dev/pkg/filepipe/internal/adapter"
	"filepipe.dev/pkg/filepipe/internal/controller"
)

// Confirmer asks yes/no questions.
type Confirmer interface {
	// Ask repeats question until the user answers yes or no. An interrupt
	// resolves to no.
	Ask(ctx context.Context, question string) bool
}

type confirmer struct {
	prompter adapter.Prompter
	ui       controller.UI
}

// NewConfirmer constructs a Confirmer reading answers from prompter and
// printing hints through ui.
func NewConfirmer(prompter adapter.Prompter, ui controller.UI) Confirmer {
	return &confirmer{prompter: prompter, ui: ui}
}

func (c *confirmer) Ask(ctx context.Context, question string) bool {
	for {
		answer, err := c.prompter.ReadLine(ctx, question+" (y/n): ")
		if err != nil {
			slog.Debug("Confirmation resolved to no", "question", question, "error", err)
			return false
		}

		if yes, ok := ParseYesNo(answer); ok {
			slog.Debug("Confirmation answered", "question", question, "yes", yes)
			return yes
		}

		c.ui.Warn(ctx, "Please enter 'y' or 'n'")
	}
}

// ParseYesNo accepts y/yes/n/no in any case, ignoring surrounding space.
func ParseYesNo(answer string) (yes bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}

package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"filepipe.dev/pkg/filepipe/internal/adapter"
	"filepipe.dev/pkg/filepipe/internal/controller"
	m "filepipe.dev/pkg/filepipe/internal/model"
)

// PathAcquirer runs the prompt/validate/retry loop for one path.
type PathAcquirer interface {
	// Acquire returns an accepted absolute path, or an error for which
	// IsAbandon is true when the user gave up.
	Acquire(ctx context.Context, role m.Role) (m.Path, error)
}

type pathAcquirer struct {
	fsAdapter adapter.FSAdapter
	prompter  adapter.Prompter
	confirmer Confirmer
	ui        controller.UI
	rules     map[m.Role][]rule
}

// NewPathAcquirer constructs a PathAcquirer with the input and output rule
// tables.
func NewPathAcquirer(
	fsAdapter adapter.FSAdapter,
	prompter adapter.Prompter,
	confirmer Confirmer,
	ui controller.UI,
) PathAcquirer {
	a := &pathAcquirer{
		fsAdapter: fsAdapter,
		prompter:  prompter,
		confirmer: confirmer,
		ui:        ui,
	}

	a.rules = map[m.Role][]rule{
		m.RoleInput:  a.inputRules(),
		m.RoleOutput: a.outputRules(),
	}

	return a
}

// transitions maps a validation outcome to the next loop state.
var transitions = map[m.OutcomeKind]m.AcquireState{
	m.OutcomeAccepted:  m.StateAccepted,
	m.OutcomeRejected:  m.StateConfirming,
	m.OutcomeReprompt:  m.StatePrompting,
	m.OutcomeAbandoned: m.StateAbandoned,
}

var promptLabels = map[m.Role]string{
	m.RoleInput:  "Enter input file path: ",
	m.RoleOutput: "Enter output file path: ",
}

var retryQuestions = map[m.Role]string{
	m.RoleInput:  "Try another input file?",
	m.RoleOutput: "Try another output file?",
}

func (a *pathAcquirer) Acquire(ctx context.Context, role m.Role) (m.Path, error) {
	if _, ok := a.rules[role]; !ok {
		return "", fmt.Errorf("unknown path role %q", role)
	}

	var (
		req     m.PathRequest
		outcome m.ValidationOutcome
	)

	state := m.StatePrompting

	for {
		slog.Debug("Path acquisition", "role", role, "state", state)

		switch state {
		case m.StatePrompting:
			req, state = a.prompt(ctx, role)

		case m.StateValidating:
			outcome = a.validate(ctx, req)
			a.report(ctx, req, outcome)
			state = transitions[outcome.Kind]

		case m.StateConfirming:
			if a.confirmer.Ask(ctx, retryQuestions[role]) {
				state = m.StatePrompting
			} else {
				state = m.StateAbandoned
			}

		case m.StateAccepted:
			slog.Info("Path accepted", "role", role, "path", outcome.Path)
			return outcome.Path, nil

		case m.StateAbandoned:
			slog.Info("Path acquisition abandoned", "role", role)

			if ctx.Err() != nil {
				return "", interrupted("acquire " + string(role))
			}

			return "", abandoned("acquire " + string(role))
		}
	}
}

func (a *pathAcquirer) prompt(ctx context.Context, role m.Role) (m.PathRequest, m.AcquireState) {
	line, err := a.prompter.ReadLine(ctx, promptLabels[role])
	if err != nil {
		slog.Debug("Prompt ended", "role", role, "error", err)
		return m.PathRequest{}, m.StateAbandoned
	}

	raw := strings.TrimSpace(line)
	if raw == "" {
		a.ui.Warn(ctx, "Please enter a file path")
		return m.PathRequest{}, m.StatePrompting
	}

	return m.PathRequest{Raw: raw, Role: role}, m.StateValidating
}

func (a *pathAcquirer) validate(ctx context.Context, req m.PathRequest) m.ValidationOutcome {
	abs, err := a.fsAdapter.AbsPath(ctx, req.Raw)
	if err != nil {
		return m.Rejected(Classify("resolve", m.Path(req.Raw), err))
	}

	req.Abs = abs
	c := &check{req: req}

	for _, r := range a.rules[req.Role] {
		if outcome, decided := r.apply(ctx, c); decided {
			slog.Debug("Validation rule decided", "rule", r.name, "path", abs, "outcome", outcome.Kind)
			return outcome
		}
	}

	return m.Accepted(abs)
}

func (a *pathAcquirer) report(ctx context.Context, req m.PathRequest, outcome m.ValidationOutcome) {
	if outcome.Err == nil {
		return
	}

	slog.Warn("Path rejected", "role", req.Role, "raw", req.Raw, "error", outcome.Err)
	a.ui.Error(ctx, "%v", outcome.Err)
}

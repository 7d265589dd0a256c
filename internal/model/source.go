// Package model defines the data structures passed through the file pipeline.
package model

// Path represents a file system path.
type Path string

// Role tags a path request with the side of the pipeline it serves.
type Role string

const (
	// RoleInput is the file the pipeline reads from.
	RoleInput Role = "input"
	// RoleOutput is the file the pipeline writes to.
	RoleOutput Role = "output"
)

// PathRequest is one prompt cycle's worth of user input.
// It is discarded once the path is accepted or the loop is abandoned.
type PathRequest struct {
	Raw  string
	Abs  Path
	Role Role
}

// AcquireState is a state of the path acquisition loop.
type AcquireState int

// Available AcquireState values.
const (
	StatePrompting AcquireState = iota
	StateValidating
	StateConfirming
	StateAccepted
	StateAbandoned
)

func (s AcquireState) String() string {
	switch s {
	case StatePrompting:
		return "prompting"
	case StateValidating:
		return "validating"
	case StateConfirming:
		return "confirming"
	case StateAccepted:
		return "accepted"
	case StateAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// OutcomeKind tags a ValidationOutcome.
type OutcomeKind int

const (
	// OutcomeAccepted means the path passed every rule.
	OutcomeAccepted OutcomeKind = iota
	// OutcomeRejected means a rule failed; the user is asked whether to retry.
	OutcomeRejected
	// OutcomeReprompt means a rule failed after a declined confirmation;
	// the user is asked for a new path straight away.
	OutcomeReprompt
	// OutcomeAbandoned means the user gave up.
	OutcomeAbandoned
)

// ValidationOutcome is produced by a validation rule and consumed
// immediately by the acquisition loop.
type ValidationOutcome struct {
	Kind OutcomeKind
	Path Path
	Err  error
}

// Accepted builds an accepting outcome.
func Accepted(path Path) ValidationOutcome {
	return ValidationOutcome{Kind: OutcomeAccepted, Path: path}
}

// Rejected builds an outcome that sends the loop to the retry question.
func Rejected(err error) ValidationOutcome {
	return ValidationOutcome{Kind: OutcomeRejected, Err: err}
}

// Reprompt builds an outcome that sends the loop back to the path prompt.
func Reprompt(err error) ValidationOutcome {
	return ValidationOutcome{Kind: OutcomeReprompt, Err: err}
}

// Abandoned builds an outcome that ends the loop without a path.
func Abandoned() ValidationOutcome {
	return ValidationOutcome{Kind: OutcomeAbandoned}
}

package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	m "filepipe.dev/pkg/filepipe/internal/model"
)

// DefaultNumberFormat renders "   1 | text".
const DefaultNumberFormat = "%4d | %s"

// Transform is a pure mapping from file content to output text.
type Transform interface {
	Strategy() m.Strategy
	Apply(content m.FileContent) m.TransformResult
}

// ParseStrategy resolves a strategy name, accepting a few short aliases.
func ParseStrategy(name string) (m.Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "uppercase", "upper":
		return m.StrategyUppercase, nil
	case "line-numbers", "numbers", "":
		return m.StrategyLineNumbers, nil
	case "numbered-upper":
		return m.StrategyNumberedUpper, nil
	default:
		return "", fmt.Errorf("unknown transform %q (must be uppercase, line-numbers or numbered-upper)", name)
	}
}

// NewTransform builds the transform for strategy. numberFormat applies to
// line-numbers and must take an int and a string; empty means the default.
func NewTransform(strategy m.Strategy, numberFormat string) (Transform, error) {
	switch strategy {
	case m.StrategyUppercase:
		return uppercaseTransform{}, nil

	case m.StrategyLineNumbers:
		if numberFormat == "" {
			numberFormat = DefaultNumberFormat
		}

		if err := validateNumberFormat(numberFormat); err != nil {
			return nil, err
		}

		return lineNumberTransform{format: numberFormat}, nil

	case m.StrategyNumberedUpper:
		return numberedUpperTransform{}, nil

	default:
		return nil, fmt.Errorf("unknown transform %q", strategy)
	}
}

func validateNumberFormat(format string) error {
	out := fmt.Sprintf(format, 1, "x")
	if strings.Contains(out, "%!") {
		return fmt.Errorf("invalid number format %q: want one integer and one string verb", format)
	}

	if strings.ContainsAny(out, "\r\n") {
		return fmt.Errorf("invalid number format %q: must not contain line breaks", format)
	}

	return nil
}

type uppercaseTransform struct{}

func (uppercaseTransform) Strategy() m.Strategy { return m.StrategyUppercase }

// Apply uppercases the whole text, leaving line terminators untouched.
func (uppercaseTransform) Apply(content m.FileContent) m.TransformResult {
	text := upper(content.Text)

	return m.TransformResult{
		Strategy: m.StrategyUppercase,
		Text:     text,
		Lines:    len(SplitLines(text)),
	}
}

type lineNumberTransform struct {
	format string
}

func (lineNumberTransform) Strategy() m.Strategy { return m.StrategyLineNumbers }

func (t lineNumberTransform) Apply(content m.FileContent) m.TransformResult {
	return numberLines(m.StrategyLineNumbers, content.Text, func(n int, line string) string {
		return fmt.Sprintf(t.format, n, line)
	})
}

type numberedUpperTransform struct{}

func (numberedUpperTransform) Strategy() m.Strategy { return m.StrategyNumberedUpper }

func (numberedUpperTransform) Apply(content m.FileContent) m.TransformResult {
	return numberLines(m.StrategyNumberedUpper, content.Text, func(n int, line string) string {
		return fmt.Sprintf("Line %d: %s", n, upper(line))
	})
}

// numberLines rewrites every line and joins them with "\n" without a final
// terminator.
func numberLines(strategy m.Strategy, text string, render func(n int, line string) string) m.TransformResult {
	lines := SplitLines(text)
	out := make([]string, len(lines))

	for i, line := range lines {
		out[i] = render(i+1, line)
	}

	return m.TransformResult{
		Strategy: strategy,
		Text:     strings.Join(out, "\n"),
		Lines:    len(out),
	}
}

func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

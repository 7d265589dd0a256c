package adapter

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptModel_TypingAndEnter(t *testing.T) {
	var model tea.Model = newPromptModel("Enter output file path: ")

	for _, r := range "out.txt" {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	pm, ok := model.(promptModel)
	require.True(t, ok)
	assert.True(t, pm.done)
	assert.False(t, pm.interrupted)
	assert.Equal(t, "out.txt", pm.value)
	assert.Equal(t, "Enter output file path: out.txt\n", pm.View())
}

func TestPromptModel_CancelKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyType
	}{
		{"ctrl+c", tea.KeyCtrlC},
		{"esc", tea.KeyEsc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, cmd := newPromptModel("Overwrite? (y/n): ").Update(tea.KeyMsg{Type: tt.key})
			require.NotNil(t, cmd)

			pm, ok := model.(promptModel)
			require.True(t, ok)
			assert.True(t, pm.interrupted)
			assert.Contains(t, pm.View(), "^C")
		})
	}
}

func TestPromptModel_ViewWhileEditing(t *testing.T) {
	pm := newPromptModel("Enter input file path: ")
	assert.Contains(t, pm.View(), "Enter input file path: ")
}

func TestTUIPrompter_CancelledContext(t *testing.T) {
	prompter := NewTUIPrompter(nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := prompter.ReadLine(ctx, "> ")
	require.ErrorIs(t, err, ErrInterrupted)
}

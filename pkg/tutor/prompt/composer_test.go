package prompt

import (
	"testing"

	"ai-homework-helper-be/internal/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeOrdering(t *testing.T) {
	history := []Turn{
		{Type: constant.MessageTypeUser, Content: "Solve: 2x + 3 = 7"},
		{Type: constant.MessageTypeAssistant, Content: "Try isolating x first!"},
	}

	got := Compose(constant.ModeHint, constant.SubjectMath, history, "What comes next?", "")

	require.Len(t, got, 4)
	assert.Equal(t, constant.ChatMessageRoleSystem, got[0].Role)
	assert.Equal(t, constant.SystemPrompt(constant.ModeHint, constant.SubjectMath), got[0].Content)
	assert.Equal(t, constant.ChatMessageRoleUser, got[1].Role)
	assert.Equal(t, "Solve: 2x + 3 = 7", got[1].Content)
	assert.Equal(t, constant.ChatMessageRoleAssistant, got[2].Role)
	assert.Equal(t, "Try isolating x first!", got[2].Content)
	assert.Equal(t, constant.ChatMessageRoleUser, got[3].Role)
	assert.Equal(t, "What comes next?", got[3].Content)
}

func TestComposeExtractedTextReplacesInput(t *testing.T) {
	got := Compose(constant.ModeConcept, constant.SubjectScience, nil, "typed question", "What is photosynthesis?")

	require.Len(t, got, 2)
	assert.Equal(t, "What is photosynthesis?", got[1].Content)
	assert.NotContains(t, got[1].Content, "typed question")
}

func TestComposeDoesNotMutateHistory(t *testing.T) {
	history := []Turn{
		{Type: constant.MessageTypeUser, Content: "original"},
	}

	_ = Compose(constant.ModeQuiz, constant.SubjectWriting, history, "new input", "")

	assert.Equal(t, "original", history[0].Content)
	assert.Len(t, history, 1)
}

func TestComposeChatModeUsesConversationTemplate(t *testing.T) {
	for _, subject := range constant.AllSubjects() {
		got := Compose(constant.ModeChat, subject, nil, "hello", "")
		assert.Equal(t, constant.ChatConversationPrompt, got[0].Content)
	}
}

// Every (mode, subject) pair must resolve to a non-empty instruction.
func TestSystemPromptTableIsComplete(t *testing.T) {
	for _, mode := range constant.AllModes() {
		for _, subject := range constant.AllSubjects() {
			p := constant.SystemPrompt(mode, subject)
			assert.NotEmptyf(t, p, "missing template for (%s, %s)", mode, subject)
		}
	}
}

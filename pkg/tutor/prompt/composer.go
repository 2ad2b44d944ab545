package prompt

import (
	"ai-homework-helper-be/internal/constant"
	"ai-homework-helper-be/pkg/llm"
)

// Turn is one prior entry of a session transcript, as the composer sees it.
type Turn struct {
	Type    constant.MessageType
	Content string
}

// Compose builds the ordered message list for one completion call:
// the (mode, subject) system instruction, the prior turns in original
// order, then the new user turn. When OCR text is present it replaces the
// typed input as the true question. Pure function; history is never
// mutated.
func Compose(mode constant.Mode, subject constant.Subject, history []Turn, newInput, extractedText string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: constant.SystemPrompt(mode, subject),
	})

	for _, turn := range history {
		role := constant.ChatMessageRoleUser
		if turn.Type == constant.MessageTypeAssistant {
			role = constant.ChatMessageRoleAssistant
		}
		messages = append(messages, llm.Message{
			Role:    role,
			Content: turn.Content,
		})
	}

	input := newInput
	if extractedText != "" {
		input = extractedText
	}
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: input,
	})

	return messages
}

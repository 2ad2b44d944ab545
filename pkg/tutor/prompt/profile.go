package prompt

import (
	"ai-homework-helper-be/internal/constant"
	"ai-homework-helper-be/pkg/llm"
)

// ProfileFor picks the generation settings for a tutoring mode. Open-ended
// modes run creative; quiz generation runs precise so the questions stay
// well-formed; hints and concept explanations use the quick defaults.
func ProfileFor(mode constant.Mode) llm.GenerationProfile {
	switch mode {
	case constant.ModePractice, constant.ModeChat:
		return llm.ProfileCreative
	case constant.ModeQuiz:
		return llm.ProfilePrecise
	default:
		return llm.ProfileQuick
	}
}

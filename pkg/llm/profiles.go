package llm

// GenerationProfile is a named bundle of generation parameters. Profiles
// mirror the use cases of the tutoring pipeline: QUICK for fast factual
// replies, CREATIVE for open-ended generation (practice problems, chat),
// PRECISE for near-deterministic calls (classification, quizzes).
type GenerationProfile string

const (
	ProfileQuick    GenerationProfile = "QUICK"
	ProfileCreative GenerationProfile = "CREATIVE"
	ProfilePrecise  GenerationProfile = "PRECISE"
)

// ProfileOptions expands a profile into provider options. Unknown profiles
// get QUICK settings.
func ProfileOptions(p GenerationProfile) []Option {
	switch p {
	case ProfileCreative:
		return []Option{WithTemperature(1.0), WithMaxTokens(2000)}
	case ProfilePrecise:
		return []Option{WithTemperature(0.1), WithMaxTokens(1500)}
	default:
		return []Option{WithTemperature(0.7), WithMaxTokens(1000)}
	}
}

package classify

import (
	"context"
	"regexp"
	"strings"

	"ai-homework-helper-be/internal/constant"
	"ai-homework-helper-be/internal/pkg/logger"
	"ai-homework-helper-be/pkg/llm"
)

// Classifier resolves the academic subject of a piece of homework text.
// The model-backed path runs with PRECISE settings; any failure or
// unrecognized answer falls back to the keyword heuristic, so Classify
// never fails.
type Classifier struct {
	provider llm.LLMProvider
	log      logger.ILogger
}

func NewClassifier(provider llm.LLMProvider, log logger.ILogger) *Classifier {
	return &Classifier{
		provider: provider,
		log:      log,
	}
}

var fallbackPatterns = []struct {
	subject constant.Subject
	re      *regexp.Regexp
}{
	{constant.SubjectMath, regexp.MustCompile(`\d+x|solve|equation|calculate|math|algebra|geometry`)},
	{constant.SubjectWriting, regexp.MustCompile(`essay|write|paragraph|argument|thesis`)},
	{constant.SubjectSummary, regexp.MustCompile(`summarize|summary|main idea|condense`)},
	{constant.SubjectScience, regexp.MustCompile(`science|physics|chemistry|biology|experiment|hypothesis`)},
}

// Classify returns the best-guess subject tag for text. It never returns an
// error: a failed or unusable model answer degrades to FallbackClassify.
func (c *Classifier) Classify(ctx context.Context, text string) constant.Subject {
	answer, err := c.provider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.SubjectDetectionPrompt},
		{Role: constant.ChatMessageRoleUser, Content: text},
	}, llm.ProfileOptions(llm.ProfilePrecise)...)
	if err != nil {
		if c.log != nil {
			c.log.Warn("classify", "subject detection call failed, using fallback", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return FallbackClassify(text)
	}

	tag := strings.ToLower(strings.TrimSpace(answer))
	subject, ok := constant.ParseSubject(tag)
	if !ok {
		if c.log != nil {
			c.log.Warn("classify", "unrecognized subject tag from model, using fallback", map[string]interface{}{
				"answer": answer,
			})
		}
		return FallbackClassify(text)
	}
	return subject
}

// FallbackClassify is the deterministic keyword heuristic. First pattern
// that matches wins; nothing matching yields the default tag.
func FallbackClassify(text string) constant.Subject {
	lowered := strings.ToLower(text)
	for _, p := range fallbackPatterns {
		if p.re.MatchString(lowered) {
			return p.subject
		}
	}
	return constant.SubjectDefault
}

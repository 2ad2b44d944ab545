package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

// Subject is the academic domain a homework session is classified into.
// The set is closed: every value the system stores or dispatches on is one
// of the constants below.
type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectScience Subject = "science"
	SubjectWriting Subject = "writing"
	SubjectSummary Subject = "summary"
	SubjectOther   Subject = "other"
)

// SubjectDefault is what classification falls back to when nothing matches.
const SubjectDefault = SubjectOther

func AllSubjects() []Subject {
	return []Subject{SubjectMath, SubjectScience, SubjectWriting, SubjectSummary, SubjectOther}
}

func (s Subject) IsValid() bool {
	switch s {
	case SubjectMath, SubjectScience, SubjectWriting, SubjectSummary, SubjectOther:
		return true
	}
	return false
}

// ParseSubject normalizes a raw tag (e.g. a model answer) into a Subject.
// Unrecognized input reports ok=false so callers can apply their fallback.
func ParseSubject(raw string) (Subject, bool) {
	s := Subject(raw)
	if s.IsValid() {
		return s, true
	}
	return SubjectDefault, false
}

// Mode is the kind of tutoring response requested for a turn.
type Mode string

const (
	ModeHint     Mode = "hint"
	ModeConcept  Mode = "concept"
	ModePractice Mode = "practice"
	ModeQuiz     Mode = "quiz"
	ModeChat     Mode = "chat"
)

func AllModes() []Mode {
	return []Mode{ModeHint, ModeConcept, ModePractice, ModeQuiz, ModeChat}
}

func (m Mode) IsValid() bool {
	switch m {
	case ModeHint, ModeConcept, ModePractice, ModeQuiz, ModeChat:
		return true
	}
	return false
}

// InputMethod is how the first homework input entered the system.
type InputMethod string

const (
	InputMethodPhoto InputMethod = "photo"
	InputMethodText  InputMethod = "text"
)

func (i InputMethod) IsValid() bool {
	return i == InputMethodPhoto || i == InputMethodText
}

// MessageType distinguishes the two sides of a transcript.
type MessageType string

const (
	MessageTypeUser      MessageType = "user"
	MessageTypeAssistant MessageType = "assistant"
)

// ProgressAction is a countable tutoring event for the progress tracker.
type ProgressAction string

const (
	ProgressActionTask     ProgressAction = "task"
	ProgressActionHint     ProgressAction = "hint"
	ProgressActionConcept  ProgressAction = "concept"
	ProgressActionPractice ProgressAction = "practice"
	ProgressActionQuiz     ProgressAction = "quiz"
)

// ProgressActionForMode maps an assistant turn's mode to the counter it bumps.
// Plain chat counts as a task attempt.
func ProgressActionForMode(m Mode) ProgressAction {
	switch m {
	case ModeHint:
		return ProgressActionHint
	case ModeConcept:
		return ProgressActionConcept
	case ModePractice:
		return ProgressActionPractice
	case ModeQuiz:
		return ProgressActionQuiz
	default:
		return ProgressActionTask
	}
}

package dto

import "time"

type ProgressEntryResponse struct {
	Subject           string    `json:"subject"`
	TasksAttempted    int       `json:"tasks_attempted"`
	HintsUsed         int       `json:"hints_used"`
	ConceptsLearned   int       `json:"concepts_learned"`
	PracticeCompleted int       `json:"practice_completed"`
	QuizzesTaken      int       `json:"quizzes_taken"`
	LastActivity      time.Time `json:"last_activity"`
}

// ProgressEventMessage is the payload published to the progress topic after
// an assistant turn completes.
type ProgressEventMessage struct {
	UserId  string `json:"user_id"`
	Subject string `json:"subject"`
	Action  string `json:"action"`
}

type ProgressSummaryResponse struct {
	Entries        []ProgressEntryResponse `json:"entries"`
	TotalAttempted int                     `json:"total_attempted"`
}

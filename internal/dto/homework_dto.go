package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title string `json:"title" validate:"required,min=1,max=120"`
}

type SessionResponse struct {
	Id            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Subject       string    `json:"subject,omitempty"`
	InputMethod   string    `json:"input_method,omitempty"`
	OriginalInput string    `json:"original_input,omitempty"`
	ExtractedText *string   `json:"extracted_text,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ChooseInputMethodRequest struct {
	InputMethod string `json:"input_method" validate:"required,oneof=photo text"`
}

// SubmitInputRequest carries the first homework input of a session. Text is
// required for the text method; for the photo method the image has already
// been run through extraction and ExtractedText holds the result.
type SubmitInputRequest struct {
	Text          string `json:"text,omitempty"`
	ExtractedText string `json:"extracted_text,omitempty"`
}

// SubmitInputResponse reports the detected subject and the now-active
// session.
type SubmitInputResponse struct {
	Session SessionResponse `json:"session"`
	Subject string          `json:"subject"`
}

type AskTutorRequest struct {
	Mode     string `json:"mode" validate:"required,oneof=hint concept practice quiz chat"`
	Question string `json:"question" validate:"required,min=1"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Mode      string    `json:"mode,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AskTutorResponse struct {
	SessionId uuid.UUID        `json:"session_id"`
	Sent      *MessageResponse `json:"sent"`
	Reply     *MessageResponse `json:"reply"`
}

type RenameSessionRequest struct {
	Title string `json:"title" validate:"required,min=1,max=120"`
}

type TranscriptResponse struct {
	Session  SessionResponse   `json:"session"`
	Messages []MessageResponse `json:"messages"`
}

type ExtractTextResponse struct {
	ExtractedText string `json:"extracted_text"`
}

// StreamStateResponse is the presenter draft pushed over the websocket while
// a reply is being revealed.
type StreamStateResponse struct {
	SessionId  string `json:"session_id"`
	Content    string `json:"content"`
	Mode       string `json:"mode,omitempty"`
	IsComplete bool   `json:"is_complete"`
}

type DetectSubjectRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

type DetectSubjectResponse struct {
	Subject string `json:"subject"`
}

package service

import (
	"context"
	"errors"
	"testing"

	"ai-homework-helper-be/internal/dto"
	"ai-homework-helper-be/internal/repository/memory"
	"ai-homework-helper-be/pkg/llm"
	"ai-homework-helper-be/pkg/ocr"
	"ai-homework-helper-be/pkg/tutor/classify"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guestFixture struct {
	service IGuestService
	llm     *stubLLM
}

func newGuestFixture(t *testing.T) *guestFixture {
	t.Helper()

	model := &stubLLM{reply: "math"}
	log := nopLogger{}
	svc := NewGuestService(
		memory.NewGuestRepository(),
		memory.NewFlowRepository(),
		model,
		classify.NewClassifier(model, log),
		ocr.NewMockExtractor(),
		&stubStreams{},
		log,
	)
	return &guestFixture{service: svc, llm: model}
}

func startGuestSession(t *testing.T, f *guestFixture, guestID string) {
	t.Helper()
	ctx := context.Background()

	_, err := f.service.CreateSession(ctx, guestID, &dto.CreateSessionRequest{Title: "Guest homework"})
	require.NoError(t, err)
	_, err = f.service.ChooseInputMethod(ctx, guestID, &dto.ChooseInputMethodRequest{InputMethod: "text"})
	require.NoError(t, err)
	_, err = f.service.SubmitInput(ctx, guestID, &dto.SubmitInputRequest{Text: "Solve: 2x + 3 = 7"})
	require.NoError(t, err)
}

func TestGuestSecondSessionRejected(t *testing.T) {
	f := newGuestFixture(t)
	guestID := uuid.NewString()
	ctx := context.Background()

	_, err := f.service.CreateSession(ctx, guestID, &dto.CreateSessionRequest{Title: "First"})
	require.NoError(t, err)

	_, err = f.service.CreateSession(ctx, guestID, &dto.CreateSessionRequest{Title: "Second"})
	require.Error(t, err)
	assert.ErrorIs(t, err, memory.ErrGuestSessionExists)
}

func TestGuestCanStartAgainAfterDelete(t *testing.T) {
	f := newGuestFixture(t)
	guestID := uuid.NewString()
	ctx := context.Background()

	_, err := f.service.CreateSession(ctx, guestID, &dto.CreateSessionRequest{Title: "First"})
	require.NoError(t, err)
	require.NoError(t, f.service.DeleteSession(ctx, guestID))

	res, err := f.service.CreateSession(ctx, guestID, &dto.CreateSessionRequest{Title: "Second"})
	require.NoError(t, err)
	assert.Equal(t, "Second", res.Title)
}

func TestGuestFullFlowBuildsTranscript(t *testing.T) {
	f := newGuestFixture(t)
	guestID := uuid.NewString()
	ctx := context.Background()

	startGuestSession(t, f, guestID)

	f.llm.reply = "Subtract three from both sides."
	res, err := f.service.AskTutor(ctx, guestID, &dto.AskTutorRequest{Mode: "hint", Question: "First step?"})
	require.NoError(t, err)
	assert.Equal(t, "Subtract three from both sides.", res.Reply.Content)

	transcriptRes, err := f.service.GetTranscript(ctx, guestID)
	require.NoError(t, err)
	require.Len(t, transcriptRes.Messages, 3)
	assert.Equal(t, "math", transcriptRes.Session.Subject)
}

func TestGuestFailedGenerationRemovesSentTurn(t *testing.T) {
	f := newGuestFixture(t)
	guestID := uuid.NewString()
	ctx := context.Background()

	startGuestSession(t, f, guestID)

	f.llm.err = llm.GenerationError(errors.New("upstream down"))
	_, err := f.service.AskTutor(ctx, guestID, &dto.AskTutorRequest{Mode: "hint", Question: "Help?"})
	require.Error(t, err)

	// Only the submitted homework remains; the failed question was removed
	// so a retry does not duplicate it.
	transcriptRes, err := f.service.GetTranscript(ctx, guestID)
	require.NoError(t, err)
	require.Len(t, transcriptRes.Messages, 1)
}

func TestGuestProgressSurvivesSessionDelete(t *testing.T) {
	f := newGuestFixture(t)
	guestID := uuid.NewString()
	ctx := context.Background()

	startGuestSession(t, f, guestID)
	require.NoError(t, f.service.DeleteSession(ctx, guestID))

	progress, err := f.service.GetProgress(ctx, guestID)
	require.NoError(t, err)
	require.Len(t, progress.Entries, 1)
	assert.Equal(t, "math", progress.Entries[0].Subject)
	assert.Equal(t, 1, progress.Entries[0].TasksAttempted)
	assert.Equal(t, 1, progress.TotalAttempted)
}

func TestGuestAskWithoutSessionIsNotFound(t *testing.T) {
	f := newGuestFixture(t)

	_, err := f.service.AskTutor(context.Background(), uuid.NewString(), &dto.AskTutorRequest{Mode: "chat", Question: "Hello?"})
	require.Error(t, err)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

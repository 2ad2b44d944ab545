package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"

	"ai-homework-helper-be/internal/constant"
	"ai-homework-helper-be/internal/dto"
	"ai-homework-helper-be/internal/entity"
	"ai-homework-helper-be/internal/repository/contract"
	"ai-homework-helper-be/internal/repository/memory"
	"ai-homework-helper-be/internal/repository/specification"
	"ai-homework-helper-be/internal/repository/unitofwork"
	"ai-homework-helper-be/pkg/llm"
	"ai-homework-helper-be/pkg/ocr"
	"ai-homework-helper-be/pkg/store"
	"ai-homework-helper-be/pkg/tutor/classify"
	"ai-homework-helper-be/pkg/tutor/transcript"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- in-memory fakes ----

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.ChatSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.ChatSession)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.Id] = &copied
	return nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *entity.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.Id] = &copied
	return nil
}

func (r *fakeSessionRepo) Touch(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if matchSession(s, specs) {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.ChatSession, 0)
	for _, s := range r.sessions {
		if matchSession(s, specs) {
			copied := *s
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	found, err := r.FindAll(ctx, specs...)
	return int64(len(found)), err
}

func matchSession(s *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if s.Id != v.ID {
				return false
			}
		case specification.OwnedByUser:
			if s.UserId != v.UserID {
				return false
			}
		case specification.ActiveOnly:
			if !s.IsActive {
				return false
			}
		case specification.Classified:
			if s.Subject == "" {
				return false
			}
		}
	}
	return true
}

type fakeMessageRepo struct {
	mu         sync.Mutex
	messages   []*entity.ChatMessage
	failCreate bool
}

func (r *fakeMessageRepo) Create(_ context.Context, message *entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("insert failed")
	}
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) DeleteBySessionId(_ context.Context, sessionId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.SessionId != sessionId {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	found, err := r.FindAll(ctx, specs...)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}

func (r *fakeMessageRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.ChatMessage, 0)
	for _, m := range r.messages {
		keep := true
		for _, spec := range specs {
			if v, ok := spec.(specification.BySessionID); ok && m.SessionId != v.SessionID {
				keep = false
			}
		}
		if keep {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	found, err := r.FindAll(ctx, specs...)
	return int64(len(found)), err
}

type fakeProgressRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.UserProgress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{rows: make(map[string]*entity.UserProgress)}
}

func (r *fakeProgressRepo) Increment(_ context.Context, userId uuid.UUID, subject constant.Subject, action constant.ProgressAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := userId.String() + "/" + string(subject)
	row, ok := r.rows[key]
	if !ok {
		row = &entity.UserProgress{Id: uuid.New(), UserId: userId, Subject: subject}
		r.rows[key] = row
	}
	row.Bump(action, row.LastActivity)
	return nil
}

func (r *fakeProgressRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.UserProgress, error) {
	return nil, nil
}

func (r *fakeProgressRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.UserProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.UserProgress, 0)
	for _, row := range r.rows {
		keep := true
		for _, spec := range specs {
			if v, ok := spec.(specification.OwnedByUser); ok && row.UserId != v.UserID {
				keep = false
			}
		}
		if keep {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeUnitOfWork struct {
	sessions *fakeSessionRepo
	messages *fakeMessageRepo
	progress *fakeProgressRepo
}

func (u *fakeUnitOfWork) Begin(_ context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                 { return nil }
func (u *fakeUnitOfWork) Rollback() error               { return nil }

func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return u.sessions
}

func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return u.messages
}

func (u *fakeUnitOfWork) UserProgressRepository() contract.UserProgressRepository {
	return u.progress
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork { return f.uow }

type stubLLM struct {
	mu       sync.Mutex
	reply    string
	err      error
	calls    int
	lastOpts llm.Options
}

func (s *stubLLM) Chat(_ context.Context, _ []llm.Message, options ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastOpts = llm.Options{}
	for _, apply := range options {
		apply(&s.lastOpts)
	}
	return s.reply, s.err
}

func (s *stubLLM) ChatStream(ctx context.Context, history []llm.Message, options ...llm.Option) (<-chan string, <-chan error) {
	fragments := make(chan string, 1)
	errs := make(chan error, 1)
	reply, err := s.Chat(ctx, history, options...)
	if err != nil {
		errs <- err
	} else {
		fragments <- reply
	}
	close(fragments)
	close(errs)
	return fragments, errs
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type stubStreams struct {
	mu     sync.Mutex
	states []dto.StreamStateResponse
}

func (s *stubStreams) PublishStreamState(_ string, state dto.StreamStateResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = append(s.states, state)
}

type stubProgressPublisher struct {
	mu     sync.Mutex
	events []dto.ProgressEventMessage
}

func (p *stubProgressPublisher) Publish(_ context.Context, payload []byte) error {
	var msg dto.ProgressEventMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, msg)
	return nil
}

func (p *stubProgressPublisher) Events() []dto.ProgressEventMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]dto.ProgressEventMessage, len(p.events))
	copy(out, p.events)
	return out
}

type homeworkFixture struct {
	service   IHomeworkService
	uow       *fakeUnitOfWork
	llm       *stubLLM
	flowRepo  *memory.FlowRepository
	publisher *stubProgressPublisher
}

func newHomeworkFixture(t *testing.T) *homeworkFixture {
	t.Helper()

	uow := &fakeUnitOfWork{
		sessions: newFakeSessionRepo(),
		messages: &fakeMessageRepo{},
		progress: newFakeProgressRepo(),
	}
	model := &stubLLM{reply: "math"}
	log := nopLogger{}
	flowRepo := memory.NewFlowRepository()
	publisher := &stubProgressPublisher{}

	svc := NewHomeworkService(
		&fakeFactory{uow: uow},
		model,
		classify.NewClassifier(model, log),
		ocr.NewMockExtractor(),
		flowRepo,
		transcript.NewReconciler(),
		nil,
		publisher,
		&stubStreams{},
		log,
	)
	return &homeworkFixture{
		service:   svc,
		uow:       uow,
		llm:       model,
		flowRepo:  flowRepo,
		publisher: publisher,
	}
}

// startSession walks a new session through the full setup dialogue so it
// shows up as active and classified.
func startSession(t *testing.T, f *homeworkFixture, userId uuid.UUID, title string) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	created, err := f.service.CreateSession(ctx, userId, &dto.CreateSessionRequest{Title: title})
	require.NoError(t, err)
	_, err = f.service.ChooseInputMethod(ctx, userId, created.Id, &dto.ChooseInputMethodRequest{InputMethod: "text"})
	require.NoError(t, err)
	_, err = f.service.SubmitInput(ctx, userId, created.Id, &dto.SubmitInputRequest{Text: "Solve: 2x + 3 = 7"})
	require.NoError(t, err)
	return created.Id
}

func fiberStatus(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

// ---- tests ----

func TestCreateSessionEntersInputMethodStep(t *testing.T) {
	f := newHomeworkFixture(t)
	userId := uuid.New()

	res, err := f.service.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{Title: "Algebra homework"})
	require.NoError(t, err)
	assert.Equal(t, "Algebra homework", res.Title)
	assert.False(t, res.IsActive)

	flow, ok := f.flowRepo.Get(userId.String())
	require.True(t, ok)
	assert.Equal(t, store.StateAwaitingInputMethod, flow.State)
	assert.Equal(t, res.Id.String(), flow.SessionID)
}

func TestSubmitInputActivatesSessionWithSubject(t *testing.T) {
	f := newHomeworkFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	created, err := f.service.CreateSession(ctx, userId, &dto.CreateSessionRequest{Title: "Equations"})
	require.NoError(t, err)

	_, err = f.service.ChooseInputMethod(ctx, userId, created.Id, &dto.ChooseInputMethodRequest{InputMethod: "text"})
	require.NoError(t, err)

	res, err := f.service.SubmitInput(ctx, userId, created.Id, &dto.SubmitInputRequest{Text: "Solve: 2x + 3 = 7"})
	require.NoError(t, err)
	assert.Equal(t, "math", res.Subject)
	assert.True(t, res.Session.IsActive)

	flow, ok := f.flowRepo.Get(userId.String())
	require.True(t, ok)
	assert.Equal(t, store.StateActive, flow.State)

	// The submitted homework is the first transcript turn.
	transcriptRes, err := f.service.GetTranscript(ctx, userId, created.Id)
	require.NoError(t, err)
	require.Len(t, transcriptRes.Messages, 1)
	assert.Equal(t, string(constant.MessageTypeUser), transcriptRes.Messages[0].Type)
	assert.Equal(t, "Solve: 2x + 3 = 7", transcriptRes.Messages[0].Content)

	events := f.publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, string(constant.ProgressActionTask), events[0].Action)
	assert.Equal(t, "math", events[0].Subject)
}

func TestSubmitInputBeforeInputMethodConflicts(t *testing.T) {
	f := newHomeworkFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	created, err := f.service.CreateSession(ctx, userId, &dto.CreateSessionRequest{Title: "Essay"})
	require.NoError(t, err)

	_, err = f.service.SubmitInput(ctx, userId, created.Id, &dto.SubmitInputRequest{Text: "Write an essay about climate change"})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberStatus(t, err))
}

func TestSubmitInputEmptyPhotoTextRejected(t *testing.T) {
	f := newHomeworkFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	created, err := f.service.CreateSession(ctx, userId, &dto.CreateSessionRequest{Title: "Photo task"})
	require.NoError(t, err)
	_, err = f.service.ChooseInputMethod(ctx, userId, created.Id, &dto.ChooseInputMethodRequest{InputMethod: "photo"})
	require.NoError(t, err)

	// A photo session reads the extracted text, not the raw text field.
	_, err = f.service.SubmitInput(ctx, userId, created.Id, &dto.SubmitInputRequest{Text: "ignored"})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))
}

func TestAskTutorAppendsBothTurns(t *testing.T) {
	f := newHomeworkFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	created, err := f.service.CreateSession(ctx, userId, &dto.CreateSessionRequest{Title: "Algebra"})
	require.NoError(t, err)
	_, err = f.service.ChooseInputMethod(ctx, userId, created.Id, &dto.ChooseInputMethodRequest{InputMethod: "text"})
	require.NoError(t, err)
	_, err = f.service.SubmitInput(ctx, userId, created.Id, &dto.SubmitInputRequest{Text: "Solve: 2x + 3 = 7"})
	require.NoError(t, err)

	f.llm.reply = "Try moving the constant to the other side first."
	res, err := f.service.AskTutor(ctx, userId, created.Id, &dto.AskTutorRequest{Mode: "hint", Question: "Where do I start?"})
	require.NoError(t, err)
	assert.Equal(t, "Where do I start?", res.Sent.Content)
	assert.Equal(t, "Try moving the constant to the other side first.", res.Reply.Content)
	assert.Equal(t, "hint", res.Reply.Mode)

	transcriptRes, err := f.service.GetTranscript(ctx, userId, created.Id)
	require.NoError(t, err)
	require.Len(t, transcriptRes.Messages, 3)
	assert.Equal(t, string(constant.MessageTypeAssistant), transcriptRes.Messages[2].Type)
}

func TestAskTutorSelectsProfilePerMode(t *testing.T) {
	f := newHomeworkFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	sessionId := startSession(t, f, userId, "Algebra")
	f.llm.reply = "Here are three practice problems."

	_, err := f.service.AskTutor(ctx, userId, sessionId, &dto.AskTutorRequest{Mode: "practice", Question: "More like this?"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, f.llm.lastOpts.Temperature)
	assert.Equal(t, 2000, f.llm.lastOpts.MaxTokens)

	_, err = f.service.AskTutor(ctx, userId, sessionId, &dto.AskTutorRequest{Mode: "quiz", Question: "Quiz me"})
	require.NoError(t, err)
	assert.Equal(t, 0.1, f.llm.lastOpts.Temperature)
	assert.Equal(t, 1500, f.llm.lastOpts.MaxTokens)
}

func TestAskTutorGenerationFailureSurfacesAndRollsBack(t *testing.T) {
	f := newHomeworkFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	created, err := f.service.CreateSession(ctx, userId, &dto.CreateSessionRequest{Title: "Algebra"})
	require.NoError(t, err)
	_, err = f.service.ChooseInputMethod(ctx, userId, created.Id, &dto.ChooseInputMethodRequest{InputMethod: "text"})
	require.NoError(t, err)
	_, err = f.service.SubmitInput(ctx, userId, created.Id, &dto.SubmitInputRequest{Text: "Solve: 2x + 3 = 7"})
	require.NoError(t, err)

	f.llm.err = llm.GenerationError(errors.New("upstream timeout"))
	_, err = f.service.AskTutor(ctx, userId, created.Id, &dto.AskTutorRequest{Mode: "hint", Question: "Help?"})
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrGeneration)

	// The question was persisted before generation; only the missing reply
	// is absent from the transcript.
	transcriptRes, err := f.service.GetTranscript(ctx, userId, created.Id)
	require.NoError(t, err)
	require.Len(t, transcriptRes.Messages, 2)
	assert.Equal(t, "Help?", transcriptRes.Messages[1].Content)
}

func TestAskTutorUserMessagePersistFailureRollsBackOptimisticEntry(t *testing.T) {
	f := newHomeworkFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	created, err := f.service.CreateSession(ctx, userId, &dto.CreateSessionRequest{Title: "Algebra"})
	require.NoError(t, err)
	_, err = f.service.ChooseInputMethod(ctx, userId, created.Id, &dto.ChooseInputMethodRequest{InputMethod: "text"})
	require.NoError(t, err)
	_, err = f.service.SubmitInput(ctx, userId, created.Id, &dto.SubmitInputRequest{Text: "Solve: 2x + 3 = 7"})
	require.NoError(t, err)

	f.uow.messages.failCreate = true
	_, err = f.service.AskTutor(ctx, userId, created.Id, &dto.AskTutorRequest{Mode: "hint", Question: "Help?"})
	require.Error(t, err)
	f.uow.messages.failCreate = false

	// The rolled-back question must not linger in the cached transcript.
	transcriptRes, err := f.service.GetTranscript(ctx, userId, created.Id)
	require.NoError(t, err)
	require.Len(t, transcriptRes.Messages, 1)
}

func TestAskTutorOnEndedSessionConflicts(t *testing.T) {
	f := newHomeworkFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	created, err := f.service.CreateSession(ctx, userId, &dto.CreateSessionRequest{Title: "Algebra"})
	require.NoError(t, err)
	_, err = f.service.ChooseInputMethod(ctx, userId, created.Id, &dto.ChooseInputMethodRequest{InputMethod: "text"})
	require.NoError(t, err)
	_, err = f.service.SubmitInput(ctx, userId, created.Id, &dto.SubmitInputRequest{Text: "Solve: 2x + 3 = 7"})
	require.NoError(t, err)
	require.NoError(t, f.service.EndSession(ctx, userId, created.Id))

	_, err = f.service.AskTutor(ctx, userId, created.Id, &dto.AskTutorRequest{Mode: "chat", Question: "Still there?"})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberStatus(t, err))
}

func TestEndSessionTwiceConflicts(t *testing.T) {
	f := newHomeworkFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	created, err := f.service.CreateSession(ctx, userId, &dto.CreateSessionRequest{Title: "Algebra"})
	require.NoError(t, err)
	_, err = f.service.ChooseInputMethod(ctx, userId, created.Id, &dto.ChooseInputMethodRequest{InputMethod: "text"})
	require.NoError(t, err)
	_, err = f.service.SubmitInput(ctx, userId, created.Id, &dto.SubmitInputRequest{Text: "Solve: 2x + 3 = 7"})
	require.NoError(t, err)

	require.NoError(t, f.service.EndSession(ctx, userId, created.Id))
	err = f.service.EndSession(ctx, userId, created.Id)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberStatus(t, err))
}

func TestSessionAccessIsOwnerScoped(t *testing.T) {
	f := newHomeworkFixture(t)
	owner := uuid.New()
	intruder := uuid.New()
	ctx := context.Background()

	created, err := f.service.CreateSession(ctx, owner, &dto.CreateSessionRequest{Title: "Private"})
	require.NoError(t, err)

	_, err = f.service.GetTranscript(ctx, intruder, created.Id)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberStatus(t, err))
}

func TestDeleteSessionClearsStateAndTranscript(t *testing.T) {
	f := newHomeworkFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	created, err := f.service.CreateSession(ctx, userId, &dto.CreateSessionRequest{Title: "Algebra"})
	require.NoError(t, err)
	_, err = f.service.ChooseInputMethod(ctx, userId, created.Id, &dto.ChooseInputMethodRequest{InputMethod: "text"})
	require.NoError(t, err)
	_, err = f.service.SubmitInput(ctx, userId, created.Id, &dto.SubmitInputRequest{Text: "Solve: 2x + 3 = 7"})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteSession(ctx, userId, created.Id))

	_, err = f.service.GetTranscript(ctx, userId, created.Id)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberStatus(t, err))
	_, ok := f.flowRepo.Get(userId.String())
	assert.False(t, ok)
}

func TestGetAllSessionsReturnsOnlyOwn(t *testing.T) {
	f := newHomeworkFixture(t)
	alice := uuid.New()
	bob := uuid.New()
	ctx := context.Background()

	startSession(t, f, alice, "First")
	startSession(t, f, bob, "Other")

	sessions, err := f.service.GetAllSessions(ctx, alice)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "First", sessions[0].Title)
}

func TestDraftSessionsAreHiddenFromList(t *testing.T) {
	f := newHomeworkFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	created, err := f.service.CreateSession(ctx, userId, &dto.CreateSessionRequest{Title: "Draft"})
	require.NoError(t, err)

	// Until homework is submitted and classified, the session is only a
	// dialogue draft and is not listed.
	sessions, err := f.service.GetAllSessions(ctx, userId)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	_, err = f.service.ChooseInputMethod(ctx, userId, created.Id, &dto.ChooseInputMethodRequest{InputMethod: "text"})
	require.NoError(t, err)
	_, err = f.service.SubmitInput(ctx, userId, created.Id, &dto.SubmitInputRequest{Text: "Solve: 2x + 3 = 7"})
	require.NoError(t, err)

	sessions, err = f.service.GetAllSessions(ctx, userId)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Draft", sessions[0].Title)
}

func TestDeleteLeavesMostRecentlyUpdatedFirst(t *testing.T) {
	f := newHomeworkFixture(t)
	userId := uuid.New()
	ctx := context.Background()

	first := startSession(t, f, userId, "First")
	startSession(t, f, userId, "Second")
	third := startSession(t, f, userId, "Third")

	// Renaming bumps updated_at, so First becomes the freshest session.
	_, err := f.service.RenameSession(ctx, userId, first, &dto.RenameSessionRequest{Title: "First renamed"})
	require.NoError(t, err)
	require.NoError(t, f.service.DeleteSession(ctx, userId, third))

	sessions, err := f.service.GetAllSessions(ctx, userId)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "First renamed", sessions[0].Title)
}

func TestDetectSubjectFallsBackWhenModelFails(t *testing.T) {
	f := newHomeworkFixture(t)
	f.llm.err = llm.GenerationError(errors.New("down"))

	res, err := f.service.DetectSubject(context.Background(), &dto.DetectSubjectRequest{Text: "Summarize the main idea of this chapter"})
	require.NoError(t, err)
	assert.Equal(t, string(constant.SubjectSummary), res.Subject)
}

package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"ai-homework-helper-be/internal/constant"
	"ai-homework-helper-be/internal/dto"
	"ai-homework-helper-be/internal/entity"
	"ai-homework-helper-be/internal/pkg/logger"
	"ai-homework-helper-be/internal/repository/memory"
	"ai-homework-helper-be/internal/repository/specification"
	"ai-homework-helper-be/internal/repository/unitofwork"
	"ai-homework-helper-be/pkg/events"
	"ai-homework-helper-be/pkg/llm"
	pktNats "ai-homework-helper-be/pkg/nats"
	"ai-homework-helper-be/pkg/ocr"
	"ai-homework-helper-be/pkg/store"
	"ai-homework-helper-be/pkg/tutor/classify"
	"ai-homework-helper-be/pkg/tutor/prompt"
	"ai-homework-helper-be/pkg/tutor/stream"
	"ai-homework-helper-be/pkg/tutor/transcript"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// classifyTimeout bounds the subject detection call so a slow model cannot
// stall session setup; on expiry the keyword fallback decides.
const classifyTimeout = 10 * time.Second

// StreamPublisher pushes presenter drafts to whoever is watching a session.
type StreamPublisher interface {
	PublishStreamState(sessionId string, state dto.StreamStateResponse)
}

// IHomeworkService drives the tutoring session lifecycle from first title to
// transcript deletion.
type IHomeworkService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	ChooseInputMethod(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.ChooseInputMethodRequest) (*dto.SessionResponse, error)
	SubmitInput(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.SubmitInputRequest) (*dto.SubmitInputResponse, error)
	AskTutor(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.AskTutorRequest) (*dto.AskTutorResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	GetTranscript(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.TranscriptResponse, error)
	RenameSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.RenameSessionRequest) (*dto.SessionResponse, error)
	EndSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
	ExtractText(ctx context.Context, image []byte) (*dto.ExtractTextResponse, error)
	DetectSubject(ctx context.Context, req *dto.DetectSubjectRequest) (*dto.DetectSubjectResponse, error)
	StreamSnapshot(sessionId uuid.UUID) dto.StreamStateResponse
}

type homeworkService struct {
	uowFactory       unitofwork.RepositoryFactory
	llmProvider      llm.LLMProvider
	classifier       *classify.Classifier
	extractor        ocr.Extractor
	flowRepo         *memory.FlowRepository
	reconciler       *transcript.Reconciler
	eventPublisher   *pktNats.Publisher
	publisherService IPublisherService
	streams          StreamPublisher
	log              logger.ILogger

	mu         sync.Mutex
	presenters map[uuid.UUID]*stream.Presenter
}

func NewHomeworkService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	classifier *classify.Classifier,
	extractor ocr.Extractor,
	flowRepo *memory.FlowRepository,
	reconciler *transcript.Reconciler,
	eventPublisher *pktNats.Publisher,
	publisherService IPublisherService,
	streams StreamPublisher,
	log logger.ILogger,
) IHomeworkService {
	return &homeworkService{
		uowFactory:       uowFactory,
		llmProvider:      llmProvider,
		classifier:       classifier,
		extractor:        extractor,
		flowRepo:         flowRepo,
		reconciler:       reconciler,
		eventPublisher:   eventPublisher,
		publisherService: publisherService,
		streams:          streams,
		log:              log,
		presenters:       make(map[uuid.UUID]*stream.Presenter),
	}
}

func (s *homeworkService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     req.Title,
		IsActive:  false,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	// The title arrives with the create call, so the naming step of the
	// dialogue is entered and left in one transition.
	flow := &store.Flow{
		Identity:  userId.String(),
		SessionID: session.Id.String(),
		State:     store.StateNamingPending,
		Title:     req.Title,
	}
	if err := flow.Transition(store.StateAwaitingInputMethod); err != nil {
		return nil, err
	}
	s.flowRepo.Save(flow)

	s.log.Info("homework", "session created", map[string]interface{}{
		"session_id": session.Id.String(),
		"user_id":    userId.String(),
	})

	res := sessionToDTO(&session)
	return &res, nil
}

func (s *homeworkService) ChooseInputMethod(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.ChooseInputMethodRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	flow := s.resolveFlow(userId.String(), session)
	if err := flow.Transition(store.StateAwaitingInput); err != nil {
		return nil, fiber.NewError(fiber.StatusConflict, "Session is not waiting for an input method")
	}

	session.InputMethod = constant.InputMethod(req.InputMethod)
	session.UpdatedAt = time.Now()
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	flow.InputMethod = session.InputMethod
	s.flowRepo.Save(flow)

	res := sessionToDTO(session)
	return &res, nil
}

func (s *homeworkService) SubmitInput(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.SubmitInputRequest) (*dto.SubmitInputResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	flow := s.resolveFlow(userId.String(), session)
	if flow.State != store.StateAwaitingInput {
		return nil, fiber.NewError(fiber.StatusConflict, "Session is not waiting for homework input")
	}

	input := req.Text
	if session.InputMethod == constant.InputMethodPhoto {
		input = req.ExtractedText
	}
	if input == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Homework input is empty")
	}

	classifyCtx, cancel := context.WithTimeout(ctx, classifyTimeout)
	subject := s.classifier.Classify(classifyCtx, input)
	cancel()

	session.Subject = subject
	session.OriginalInput = req.Text
	if session.InputMethod == constant.InputMethodPhoto {
		session.ExtractedText = &req.ExtractedText
	}
	session.IsActive = true
	session.UpdatedAt = time.Now()
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	if err := flow.Transition(store.StateActive); err != nil {
		return nil, err
	}
	flow.Subject = subject
	s.flowRepo.Save(flow)

	// The submitted homework becomes the first transcript turn.
	if _, err := s.appendMessage(ctx, uow, sessionId, constant.MessageTypeUser, input, nil); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NewSessionStarted(
		sessionId.String(), userId.String(), string(subject), string(session.InputMethod),
	))
	s.publishProgress(userId, subject, constant.ProgressActionTask)

	return &dto.SubmitInputResponse{
		Session: sessionToDTO(session),
		Subject: string(subject),
	}, nil
}

func (s *homeworkService) AskTutor(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.AskTutorRequest) (*dto.AskTutorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if !session.IsActive {
		return nil, fiber.NewError(fiber.StatusConflict, "Session has ended")
	}
	mode := constant.Mode(req.Mode)

	history, err := s.history(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}

	sent, err := s.appendMessage(ctx, uow, sessionId, constant.MessageTypeUser, req.Question, &mode)
	if err != nil {
		return nil, err
	}

	messages := prompt.Compose(mode, session.Subject, history, req.Question, "")
	reply, err := s.llmProvider.Chat(ctx, messages, llm.ProfileOptions(prompt.ProfileFor(mode))...)
	if err != nil {
		s.log.Error("homework", "tutor generation failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"mode":       req.Mode,
			"error":      err.Error(),
		})
		return nil, err
	}

	// A failed reply write must not lose the answer the user already paid a
	// generation for; the transcript self-heals on the next full load.
	replyMsg, err := s.appendMessage(ctx, uow, sessionId, constant.MessageTypeAssistant, reply, &mode)
	if err != nil {
		s.log.Warn("homework", "assistant message not persisted", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		replyMsg = &entity.ChatMessage{
			Id:        uuid.New(),
			SessionId: sessionId,
			Type:      constant.MessageTypeAssistant,
			Content:   reply,
			Mode:      &mode,
			CreatedAt: time.Now(),
		}
	}

	if err := uow.ChatSessionRepository().Touch(ctx, sessionId); err != nil {
		s.log.Warn("homework", "failed to touch session", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}

	s.presenter(sessionId).Start(reply, mode)
	s.publishProgress(userId, session.Subject, constant.ProgressActionForMode(mode))

	sentDTO := messageToDTO(sent)
	replyDTO := messageToDTO(replyMsg)
	return &dto.AskTutorResponse{
		SessionId: sessionId,
		Sent:      &sentDTO,
		Reply:     &replyDTO,
	}, nil
}

func (s *homeworkService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Drafts that never got past the setup dialogue have no subject yet and
	// are not listed.
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.Classified{},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		res := sessionToDTO(session)
		out = append(out, &res)
	}
	return out, nil
}

func (s *homeworkService) GetTranscript(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.TranscriptResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	messages, err := s.loadMessages(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, messageToDTO(m))
	}
	return &dto.TranscriptResponse{
		Session:  sessionToDTO(session),
		Messages: out,
	}, nil
}

func (s *homeworkService) RenameSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.RenameSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	session.Title = req.Title
	session.UpdatedAt = time.Now()
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NewSessionRenamed(sessionId.String(), userId.String(), req.Title))

	res := sessionToDTO(session)
	return &res, nil
}

func (s *homeworkService) EndSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return err
	}
	if !session.IsActive {
		return fiber.NewError(fiber.StatusConflict, "Session has already ended")
	}

	session.IsActive = false
	session.UpdatedAt = time.Now()
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return err
	}

	if flow, ok := s.flowRepo.Get(userId.String()); ok && flow.SessionID == sessionId.String() {
		if err := flow.Transition(store.StateEnded); err == nil {
			s.flowRepo.Save(flow)
		}
	}

	s.dropPresenter(sessionId)
	s.publishEvent(ctx, events.NewSessionEnded(sessionId.String(), userId.String()))
	return nil
}

func (s *homeworkService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return err
	}

	// Messages cascade with the session row.
	if err := uow.ChatSessionRepository().Delete(ctx, session.Id); err != nil {
		return err
	}

	s.reconciler.Invalidate(sessionId.String())
	s.dropPresenter(sessionId)
	if flow, ok := s.flowRepo.Get(userId.String()); ok && flow.SessionID == sessionId.String() {
		s.flowRepo.Delete(userId.String())
	}

	s.log.Info("homework", "session deleted", map[string]interface{}{
		"session_id": sessionId.String(),
		"user_id":    userId.String(),
	})
	return nil
}

func (s *homeworkService) ExtractText(ctx context.Context, image []byte) (*dto.ExtractTextResponse, error) {
	text, err := s.extractor.Extract(ctx, image)
	if err != nil {
		return nil, err
	}
	return &dto.ExtractTextResponse{ExtractedText: text}, nil
}

func (s *homeworkService) DetectSubject(ctx context.Context, req *dto.DetectSubjectRequest) (*dto.DetectSubjectResponse, error) {
	classifyCtx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()
	subject := s.classifier.Classify(classifyCtx, req.Text)
	return &dto.DetectSubjectResponse{Subject: string(subject)}, nil
}

func (s *homeworkService) StreamSnapshot(sessionId uuid.UUID) dto.StreamStateResponse {
	draft := s.presenter(sessionId).Snapshot()
	return draftToDTO(sessionId.String(), draft)
}

// ownedSession loads the session and checks ownership in one query.
func (s *homeworkService) ownedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	return session, nil
}

// resolveFlow returns the cached dialogue state for the session, deriving it
// from the persisted row after a cache miss or restart.
func (s *homeworkService) resolveFlow(identity string, session *entity.ChatSession) *store.Flow {
	if flow, ok := s.flowRepo.Get(identity); ok && flow.SessionID == session.Id.String() {
		return flow
	}

	flow := &store.Flow{
		Identity:    identity,
		SessionID:   session.Id.String(),
		Title:       session.Title,
		Subject:     session.Subject,
		InputMethod: session.InputMethod,
	}
	switch {
	case session.IsActive:
		flow.State = store.StateActive
	case session.Subject != "":
		flow.State = store.StateEnded
	case session.InputMethod == "":
		flow.State = store.StateAwaitingInputMethod
	default:
		flow.State = store.StateAwaitingInput
	}
	s.flowRepo.Save(flow)
	return flow
}

// history returns the transcript as prompt turns, priming the cache from the
// database when needed.
func (s *homeworkService) history(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) ([]prompt.Turn, error) {
	messages, found := s.reconciler.Transcript(sessionId.String())
	if !found {
		var err error
		messages, err = s.loadMessages(ctx, uow, sessionId)
		if err != nil {
			return nil, err
		}
	}

	turns := make([]prompt.Turn, 0, len(messages))
	for _, m := range messages {
		turns = append(turns, prompt.Turn{Type: m.Type, Content: m.Content})
	}
	return turns, nil
}

func (s *homeworkService) loadMessages(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	s.reconciler.Prime(sessionId.String(), messages)
	return messages, nil
}

// appendMessage runs the optimistic append protocol: cache first, then the
// durable write, then confirm or roll back under the provisional id.
func (s *homeworkService) appendMessage(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, msgType constant.MessageType, content string, mode *constant.Mode) (*entity.ChatMessage, error) {
	optimistic := &entity.ChatMessage{
		SessionId: sessionId,
		Type:      msgType,
		Content:   content,
		Mode:      mode,
		CreatedAt: time.Now(),
	}
	provisional := s.reconciler.AppendOptimistic(sessionId.String(), optimistic)

	persisted := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: sessionId,
		Type:      msgType,
		Content:   content,
		Mode:      mode,
		CreatedAt: optimistic.CreatedAt,
	}
	if err := uow.ChatMessageRepository().Create(ctx, persisted); err != nil {
		s.reconciler.Rollback(provisional)
		return nil, err
	}
	s.reconciler.Confirm(provisional, persisted)
	return persisted, nil
}

// presenter returns the per-session reveal presenter, creating it with a
// sink that forwards drafts to the stream hub.
func (s *homeworkService) presenter(sessionId uuid.UUID) *stream.Presenter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.presenters[sessionId]; ok {
		return p
	}
	sid := sessionId.String()
	p := stream.NewPresenter(func(draft stream.Draft) {
		s.streams.PublishStreamState(sid, draftToDTO(sid, draft))
	})
	s.presenters[sessionId] = p
	return p
}

func (s *homeworkService) dropPresenter(sessionId uuid.UUID) {
	s.mu.Lock()
	p, ok := s.presenters[sessionId]
	if ok {
		delete(s.presenters, sessionId)
	}
	s.mu.Unlock()
	if ok {
		p.Reset()
	}
}

func (s *homeworkService) publishEvent(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.log.Warn("homework", "failed to publish lifecycle event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

func (s *homeworkService) publishProgress(userId uuid.UUID, subject constant.Subject, action constant.ProgressAction) {
	payload, err := json.Marshal(dto.ProgressEventMessage{
		UserId:  userId.String(),
		Subject: string(subject),
		Action:  string(action),
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(context.Background(), payload); err != nil {
		s.log.Warn("homework", "failed to publish progress event", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}
}

func sessionToDTO(session *entity.ChatSession) dto.SessionResponse {
	return dto.SessionResponse{
		Id:            session.Id,
		Title:         session.Title,
		Subject:       string(session.Subject),
		InputMethod:   string(session.InputMethod),
		OriginalInput: session.OriginalInput,
		ExtractedText: session.ExtractedText,
		IsActive:      session.IsActive,
		CreatedAt:     session.CreatedAt,
		UpdatedAt:     session.UpdatedAt,
	}
}

func messageToDTO(m *entity.ChatMessage) dto.MessageResponse {
	res := dto.MessageResponse{
		Id:        m.Id,
		Type:      string(m.Type),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
	if m.Mode != nil {
		res.Mode = string(*m.Mode)
	}
	return res
}

func draftToDTO(sessionId string, draft stream.Draft) dto.StreamStateResponse {
	return dto.StreamStateResponse{
		SessionId:  sessionId,
		Content:    draft.Content,
		Mode:       string(draft.Mode),
		IsComplete: draft.IsComplete,
	}
}

package service

import (
	"context"
	"sync"
	"time"

	"ai-homework-helper-be/internal/constant"
	"ai-homework-helper-be/internal/dto"
	"ai-homework-helper-be/internal/entity"
	"ai-homework-helper-be/internal/pkg/logger"
	"ai-homework-helper-be/internal/repository/memory"
	"ai-homework-helper-be/pkg/llm"
	"ai-homework-helper-be/pkg/ocr"
	"ai-homework-helper-be/pkg/store"
	"ai-homework-helper-be/pkg/tutor/classify"
	"ai-homework-helper-be/pkg/tutor/prompt"
	"ai-homework-helper-be/pkg/tutor/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IGuestService mirrors the session lifecycle for anonymous users. Guests
// hold at most one session and nothing they do is persisted; everything here
// lives in the in-memory guest repository.
type IGuestService interface {
	CreateSession(ctx context.Context, guestID string, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	ChooseInputMethod(ctx context.Context, guestID string, req *dto.ChooseInputMethodRequest) (*dto.SessionResponse, error)
	SubmitInput(ctx context.Context, guestID string, req *dto.SubmitInputRequest) (*dto.SubmitInputResponse, error)
	AskTutor(ctx context.Context, guestID string, req *dto.AskTutorRequest) (*dto.AskTutorResponse, error)
	GetTranscript(ctx context.Context, guestID string) (*dto.TranscriptResponse, error)
	DeleteSession(ctx context.Context, guestID string) error
	ExtractText(ctx context.Context, image []byte) (*dto.ExtractTextResponse, error)
	GetProgress(ctx context.Context, guestID string) (*dto.ProgressSummaryResponse, error)
}

type guestService struct {
	guestRepo   *memory.GuestRepository
	flowRepo    *memory.FlowRepository
	llmProvider llm.LLMProvider
	classifier  *classify.Classifier
	extractor   ocr.Extractor
	streams     StreamPublisher
	log         logger.ILogger

	mu         sync.Mutex
	presenters map[string]*stream.Presenter
}

func NewGuestService(
	guestRepo *memory.GuestRepository,
	flowRepo *memory.FlowRepository,
	llmProvider llm.LLMProvider,
	classifier *classify.Classifier,
	extractor ocr.Extractor,
	streams StreamPublisher,
	log logger.ILogger,
) IGuestService {
	return &guestService{
		guestRepo:   guestRepo,
		flowRepo:    flowRepo,
		llmProvider: llmProvider,
		classifier:  classifier,
		extractor:   extractor,
		streams:     streams,
		log:         log,
		presenters:  make(map[string]*stream.Presenter),
	}
}

func (s *guestService) CreateSession(ctx context.Context, guestID string, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	session := &entity.ChatSession{
		Id:        uuid.New(),
		Title:     req.Title,
		IsActive:  false,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if uid, err := uuid.Parse(guestID); err == nil {
		session.UserId = uid
	}

	if err := s.guestRepo.CreateSession(guestID, session); err != nil {
		return nil, err
	}

	flow := &store.Flow{
		Identity:  guestID,
		SessionID: session.Id.String(),
		State:     store.StateNamingPending,
		Title:     req.Title,
		IsGuest:   true,
	}
	if err := flow.Transition(store.StateAwaitingInputMethod); err != nil {
		return nil, err
	}
	s.flowRepo.Save(flow)

	res := sessionToDTO(session)
	return &res, nil
}

func (s *guestService) ChooseInputMethod(ctx context.Context, guestID string, req *dto.ChooseInputMethodRequest) (*dto.SessionResponse, error) {
	session, flow, err := s.currentSession(guestID)
	if err != nil {
		return nil, err
	}

	if err := flow.Transition(store.StateAwaitingInput); err != nil {
		return nil, fiber.NewError(fiber.StatusConflict, "Session is not waiting for an input method")
	}

	session.InputMethod = constant.InputMethod(req.InputMethod)
	session.UpdatedAt = time.Now()
	s.guestRepo.UpdateSession(guestID, session)
	flow.InputMethod = session.InputMethod
	s.flowRepo.Save(flow)

	res := sessionToDTO(session)
	return &res, nil
}

func (s *guestService) SubmitInput(ctx context.Context, guestID string, req *dto.SubmitInputRequest) (*dto.SubmitInputResponse, error) {
	session, flow, err := s.currentSession(guestID)
	if err != nil {
		return nil, err
	}
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
	s.guestRepo.UpdateSession(guestID, session)

	if err := flow.Transition(store.StateActive); err != nil {
		return nil, err
	}
	flow.Subject = subject
	s.flowRepo.Save(flow)

	s.guestRepo.AppendMessage(guestID, &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Type:      constant.MessageTypeUser,
		Content:   input,
		CreatedAt: time.Now(),
	})
	s.guestRepo.BumpProgress(guestID, subject, constant.ProgressActionTask)

	return &dto.SubmitInputResponse{
		Session: sessionToDTO(session),
		Subject: string(subject),
	}, nil
}

func (s *guestService) AskTutor(ctx context.Context, guestID string, req *dto.AskTutorRequest) (*dto.AskTutorResponse, error) {
	session, _, err := s.currentSession(guestID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive {
		return nil, fiber.NewError(fiber.StatusConflict, "Session has ended")
	}
	mode := constant.Mode(req.Mode)

	history := make([]prompt.Turn, 0)
	for _, m := range s.guestRepo.Messages(guestID) {
		history = append(history, prompt.Turn{Type: m.Type, Content: m.Content})
	}

	sent := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Type:      constant.MessageTypeUser,
		Content:   req.Question,
		Mode:      &mode,
		CreatedAt: time.Now(),
	}
	s.guestRepo.AppendMessage(guestID, sent)

	messages := prompt.Compose(mode, session.Subject, history, req.Question, "")
	reply, err := s.llmProvider.Chat(ctx, messages, llm.ProfileOptions(prompt.ProfileFor(mode))...)
	if err != nil {
		// The failed turn comes back out so a retry does not duplicate it.
		s.guestRepo.RemoveMessage(guestID, sent.Id.String())
		s.log.Error("guest", "tutor generation failed", map[string]interface{}{
			"guest_id": guestID,
			"error":    err.Error(),
		})
		return nil, err
	}

	replyMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Type:      constant.MessageTypeAssistant,
		Content:   reply,
		Mode:      &mode,
		CreatedAt: time.Now(),
	}
	s.guestRepo.AppendMessage(guestID, replyMsg)
	session.UpdatedAt = time.Now()
	s.guestRepo.UpdateSession(guestID, session)

	s.presenter(guestID, session.Id.String()).Start(reply, mode)
	s.guestRepo.BumpProgress(guestID, session.Subject, constant.ProgressActionForMode(mode))

	sentDTO := messageToDTO(sent)
	replyDTO := messageToDTO(replyMsg)
	return &dto.AskTutorResponse{
		SessionId: session.Id,
		Sent:      &sentDTO,
		Reply:     &replyDTO,
	}, nil
}

func (s *guestService) GetTranscript(ctx context.Context, guestID string) (*dto.TranscriptResponse, error) {
	session, _, err := s.currentSession(guestID)
	if err != nil {
		return nil, err
	}

	messages := s.guestRepo.Messages(guestID)
	out := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, messageToDTO(m))
	}
	return &dto.TranscriptResponse{
		Session:  sessionToDTO(session),
		Messages: out,
	}, nil
}

func (s *guestService) DeleteSession(ctx context.Context, guestID string) error {
	if _, found := s.guestRepo.GetSession(guestID); !found {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	s.guestRepo.DeleteSession(guestID)
	s.flowRepo.Delete(guestID)
	s.dropPresenter(guestID)
	return nil
}

func (s *guestService) ExtractText(ctx context.Context, image []byte) (*dto.ExtractTextResponse, error) {
	text, err := s.extractor.Extract(ctx, image)
	if err != nil {
		return nil, err
	}
	return &dto.ExtractTextResponse{ExtractedText: text}, nil
}

func (s *guestService) GetProgress(ctx context.Context, guestID string) (*dto.ProgressSummaryResponse, error) {
	return progressSummary(s.guestRepo.Progress(guestID)), nil
}

func (s *guestService) currentSession(guestID string) (*entity.ChatSession, *store.Flow, error) {
	session, found := s.guestRepo.GetSession(guestID)
	if !found {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	flow, ok := s.flowRepo.Get(guestID)
	if !ok || flow.SessionID != session.Id.String() {
		flow = &store.Flow{
			Identity:    guestID,
			SessionID:   session.Id.String(),
			Title:       session.Title,
			Subject:     session.Subject,
			InputMethod: session.InputMethod,
			IsGuest:     true,
		}
		switch {
		case session.IsActive:
			flow.State = store.StateActive
		case session.InputMethod == "":
			flow.State = store.StateAwaitingInputMethod
		default:
			flow.State = store.StateAwaitingInput
		}
		s.flowRepo.Save(flow)
	}
	return session, flow, nil
}

func (s *guestService) presenter(guestID, sessionID string) *stream.Presenter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.presenters[guestID]; ok {
		return p
	}
	p := stream.NewPresenter(func(draft stream.Draft) {
		s.streams.PublishStreamState(sessionID, draftToDTO(sessionID, draft))
	})
	s.presenters[guestID] = p
	return p
}

func (s *guestService) dropPresenter(guestID string) {
	s.mu.Lock()
	p, ok := s.presenters[guestID]
	if ok {
		delete(s.presenters, guestID)
	}
	s.mu.Unlock()
	if ok {
		p.Reset()
	}
}

package mapper

import (
	"ai-homework-helper-be/internal/constant"
	"ai-homework-helper-be/internal/entity"
	"ai-homework-helper-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	return &entity.ChatSession{
		Id:            s.Id,
		UserId:        s.UserId,
		Title:         s.Title,
		Subject:       constant.Subject(s.Subject),
		InputMethod:   constant.InputMethod(s.InputMethod),
		OriginalInput: s.OriginalInput,
		ExtractedText: s.ExtractedText,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	return &model.ChatSession{
		Id:            s.Id,
		UserId:        s.UserId,
		Title:         s.Title,
		Subject:       string(s.Subject),
		InputMethod:   string(s.InputMethod),
		OriginalInput: s.OriginalInput,
		ExtractedText: s.ExtractedText,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var mode *constant.Mode
	if msg.Mode != nil {
		v := constant.Mode(*msg.Mode)
		mode = &v
	}

	var metadata map[string]interface{}
	if msg.Metadata != nil {
		metadata = map[string]interface{}(msg.Metadata)
	}

	return &entity.ChatMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Type:      constant.MessageType(msg.Type),
		Content:   msg.Content,
		Mode:      mode,
		Metadata:  metadata,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	var mode *string
	if msg.Mode != nil {
		v := string(*msg.Mode)
		mode = &v
	}

	var metadata datatypes.JSONMap
	if msg.Metadata != nil {
		metadata = datatypes.JSONMap(msg.Metadata)
	}

	return &model.ChatMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Type:      string(msg.Type),
		Content:   msg.Content,
		Mode:      mode,
		Metadata:  metadata,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessagesToEntities(models []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(models))
	for i, msg := range models {
		entities[i] = m.ChatMessageToEntity(msg)
	}
	return entities
}

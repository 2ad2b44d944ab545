package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-homework-helper-be/internal/constant"
	"ai-homework-helper-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the progress topic and applies the counter bumps
// off the request path, so a slow progress write never delays a tutor reply.
type consumerService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	progressService IProgressService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	progressService IProgressService,
) IConsumerService {
	return &consumerService{
		pubSub:          pubSub,
		topicName:       topicName,
		progressService: progressService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ProgressEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal progress event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	userId, err := uuid.Parse(payload.UserId)
	if err != nil {
		log.Printf("[ERROR] Progress event has invalid user id %q: %v", payload.UserId, err)
		msg.Ack()
		return
	}

	subject, ok := constant.ParseSubject(payload.Subject)
	if !ok {
		log.Printf("[ERROR] Progress event has unknown subject %q", payload.Subject)
		msg.Ack()
		return
	}

	err = cs.progressService.Record(ctx, userId, subject, constant.ProgressAction(payload.Action))
	if err != nil {
		log.Printf("[ERROR] Failed to record progress for user %s: %v", payload.UserId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}

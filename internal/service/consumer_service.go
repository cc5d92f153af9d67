package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"lit-mashup-be/internal/dto"
	"lit-mashup-be/internal/repository/contract"
	"lit-mashup-be/pkg/events"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// EventPublisher sends domain events to the external bus
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	mashupRepo     contract.MashupRepository
	eventPublisher EventPublisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	mashupRepo contract.MashupRepository,
	eventPublisher EventPublisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		mashupRepo:     mashupRepo,
		eventPublisher: eventPublisher,
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
	var payload dto.MashupGeneratedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal mashup event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	result := payload.Result
	log.Printf("[INFO] Persisting mashup record for session %s", result.SessionID)

	if cs.mashupRepo != nil {
		if err := cs.mashupRepo.Create(ctx, &result); err != nil {
			log.Printf("[ERROR] Failed to persist mashup record for session %s: %v", result.SessionID, err)
			msg.Nack()
			return
		}
	}

	if cs.eventPublisher != nil {
		emit := []events.Event{
			events.NewMashupGenerated(result.SessionID, result.Title, result.QualityScore, result.FallbackUsed),
			events.NewSessionCompleted(result.SessionID),
		}
		for _, event := range emit {
			if err := cs.eventPublisher.Publish(ctx, event); err != nil {
				// Downstream bus failures must not block local persistence
				log.Printf("[WARN] Failed to publish %s event for session %s: %v", event.EventType(), result.SessionID, err)
			}
		}
	}

	msg.Ack()
}

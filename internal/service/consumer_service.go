package service

import (
	"context"
	"encoding/json"

	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const eventsLogModule = "EVENTS"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService writes every routed turn to the audit log. It keeps no state.
type consumerService struct {
	bus         *events.Bus
	auditLogger logger.ILogger
	logger      logger.ILogger
}

func NewConsumerService(bus *events.Bus, auditLogger logger.ILogger, logger logger.ILogger) IConsumerService {
	return &consumerService{
		bus:         bus,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.bus.Subscribe(ctx, events.TypeTurnRouted)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	// Ack in every branch: a bad payload will not get better on redelivery
	defer msg.Ack()

	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Warn(eventsLogModule, "Dropping undecodable event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	payload["occurred_at"] = msg.Metadata.Get("occurred_at")
	cs.auditLogger.Info(eventsLogModule, msg.Metadata.Get("event_type"), payload)
}

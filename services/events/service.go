package events

import (
	"context"

	"github.com/customeros/mailbroker/interfaces"
	"github.com/customeros/mailbroker/internal/enum"
	"github.com/customeros/mailbroker/internal/logger"
)

type EventsService struct {
	Publisher interfaces.EventPublisher
}

// NewEventsService connects a publisher when rabbitmqURL is set. Without a URL
// events are dropped and logged at debug level.
func NewEventsService(rabbitmqURL string, log logger.Logger, publisherConfig *PublisherConfig) (*EventsService, error) {
	if rabbitmqURL == "" {
		log.Info("RABBITMQ_URL not set, events will not be published")
		return &EventsService{Publisher: &noopPublisher{log: log}}, nil
	}

	publisher, err := NewRabbitMQPublisher(rabbitmqURL, log, publisherConfig)
	if err != nil {
		return nil, err
	}

	return &EventsService{
		Publisher: publisher,
	}, nil
}

func (s *EventsService) Close() error {
	if s.Publisher == nil {
		return nil
	}
	return s.Publisher.Close()
}

type noopPublisher struct {
	log logger.Logger
}

func (p *noopPublisher) PublishFanoutEvent(_ context.Context, entityId string, entityType enum.EntityType, _ interface{}) error {
	p.log.Debugf("dropping %s event for %s", entityType, entityId)
	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

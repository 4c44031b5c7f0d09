package events

import (
	"context"
	"testing"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/mailbroker/dto"
	"github.com/customeros/mailbroker/internal/enum"
	"github.com/customeros/mailbroker/internal/logger"
	"github.com/customeros/mailbroker/internal/utils"
)

func TestNewEvent(t *testing.T) {
	// Arrange
	ctx := utils.WithCustomContext(context.Background(), &utils.CustomContext{AppSource: "test", RequestId: "req-1"})
	span := opentracing.NoopTracer{}.StartSpan("test")
	payload := &dto.AttachmentTextExtracted{ThreadId: "t1", AttachmentId: "a1", FileType: "pdf", TextLength: 5}

	// Act
	event := NewEvent(ctx, span, "a1", enum.ATTACHMENT, payload)

	// Assert
	assert.Equal(t, "AttachmentTextExtracted", event.Event.EventType)
	assert.Equal(t, "a1", event.Event.EntityId)
	assert.Equal(t, enum.ATTACHMENT, event.Event.EntityType)
	assert.Contains(t, event.Event.Id, "event_")
	assert.Equal(t, "test", event.Metadata.AppSource)
	assert.Equal(t, "req-1", event.Metadata.RequestId)
	assert.NotEmpty(t, event.Metadata.Timestamp)
	assert.Same(t, payload, event.Event.Data)
}

func TestNewEventsService_WithoutURLDropsEvents(t *testing.T) {
	// Arrange
	log := logger.NewAppLogger(&logger.Config{LogLevel: "error"})
	log.InitLogger()

	// Act
	svc, err := NewEventsService("", log, nil)
	require.NoError(t, err)

	// Assert
	assert.NoError(t, svc.Publisher.PublishFanoutEvent(context.Background(), "a1", enum.ATTACHMENT, dto.AttachmentTextExtracted{}))
	assert.NoError(t, svc.Close())
}

func TestAwaitConfirm_SkipsConfirmOfEarlierPublish(t *testing.T) {
	// Arrange
	confirms := make(chan amqp091.Confirmation, 2)
	confirms <- amqp091.Confirmation{DeliveryTag: 1, Ack: true}
	confirms <- amqp091.Confirmation{DeliveryTag: 2, Ack: false}

	// Act
	err := awaitConfirm(context.Background(), confirms, 2)

	// Assert
	assert.EqualError(t, err, "Message was not confirmed by server")
	assert.Empty(t, confirms)
}

func TestAwaitConfirm_StaleConfirmDoesNotSatisfyPublish(t *testing.T) {
	// Arrange
	confirms := make(chan amqp091.Confirmation, 1)
	confirms <- amqp091.Confirmation{DeliveryTag: 4, Ack: true}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Act
	err := awaitConfirm(ctx, confirms, 5)

	// Assert
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAwaitConfirm_Ack(t *testing.T) {
	// Arrange
	confirms := make(chan amqp091.Confirmation, 1)
	confirms <- amqp091.Confirmation{DeliveryTag: 7, Ack: true}

	// Act
	err := awaitConfirm(context.Background(), confirms, 7)

	// Assert
	assert.NoError(t, err)
}

func TestAwaitConfirm_ClosedChannel(t *testing.T) {
	// Arrange
	confirms := make(chan amqp091.Confirmation)
	close(confirms)

	// Act
	err := awaitConfirm(context.Background(), confirms, 1)

	// Assert
	assert.EqualError(t, err, "Publish channel closed before confirmation")
}

func TestPublishFanoutEvent_WithoutConnectionFailsWithinTimeout(t *testing.T) {
	// Arrange
	log := logger.NewAppLogger(&logger.Config{LogLevel: "error"})
	log.InitLogger()
	cfg := DefaultPublisherConfig()
	cfg.PublishTimeout = 200 * time.Millisecond
	publisher := &RabbitMQPublisher{logger: log, config: *cfg, closed: make(chan struct{})}
	start := time.Now()

	// Act
	err := publisher.PublishFanoutEvent(context.Background(), "a1", enum.ATTACHMENT, dto.AttachmentTextExtracted{})

	// Assert
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.NoError(t, publisher.Close())
}

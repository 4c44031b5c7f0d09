package events

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"

	"github.com/customeros/mailbroker/dto"
	"github.com/customeros/mailbroker/interfaces"
	"github.com/customeros/mailbroker/internal/enum"
	"github.com/customeros/mailbroker/internal/logger"
	"github.com/customeros/mailbroker/internal/tracing"
	"github.com/customeros/mailbroker/internal/utils"
)

const (
	DefaultExchange = "mailbroker"

	DefaultMaxRetries          = 3
	DefaultPublishTimeout      = 5 * time.Second
	DefaultReconnectBackoff    = time.Second
	DefaultMaxReconnectBackoff = 30 * time.Second
)

type PublisherConfig struct {
	Exchange            string
	MaxRetries          int
	PublishTimeout      time.Duration
	ReconnectBackoff    time.Duration
	MaxReconnectBackoff time.Duration
}

func DefaultPublisherConfig() *PublisherConfig {
	return &PublisherConfig{
		Exchange:            DefaultExchange,
		MaxRetries:          DefaultMaxRetries,
		PublishTimeout:      DefaultPublishTimeout,
		ReconnectBackoff:    DefaultReconnectBackoff,
		MaxReconnectBackoff: DefaultMaxReconnectBackoff,
	}
}

// confirmBufferSize keeps the channel from blocking on confirms nobody is waiting for.
const confirmBufferSize = 16

type RabbitMQPublisher struct {
	// mu guards connection, publishChannel, confirms and reconnecting. It is held for a
	// whole publish so confirms arrive in the order messages were sent.
	mu             sync.Mutex
	connection     *amqp091.Connection
	publishChannel *amqp091.Channel
	confirms       chan amqp091.Confirmation
	reconnecting   bool

	url       string
	logger    logger.Logger
	config    PublisherConfig
	closed    chan struct{}
	closeOnce sync.Once
}

func NewRabbitMQPublisher(rabbitmqURL string, logger logger.Logger, config *PublisherConfig) (interfaces.EventPublisher, error) {
	if config == nil {
		config = DefaultPublisherConfig()
	}
	if config.Exchange == "" {
		config.Exchange = DefaultExchange
	}

	publisher := &RabbitMQPublisher{
		url:    rabbitmqURL,
		logger: logger,
		config: *config,
		closed: make(chan struct{}),
	}

	connection, err := publisher.dial()
	if err != nil {
		return nil, err
	}
	publisher.mu.Lock()
	err = publisher.install(connection)
	publisher.mu.Unlock()
	if err != nil {
		connection.Close()
		return nil, err
	}

	return publisher, nil
}

// PublishFanoutEvent wraps message in an event envelope and publishes it on the fanout exchange.
func (r *RabbitMQPublisher) PublishFanoutEvent(ctx context.Context, entityId string, entityType enum.EntityType, message interface{}) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "RabbitMQPublisher.PublishFanoutEvent")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, entityId)

	err := r.publishMessage(ctx, NewEvent(ctx, span, entityId, entityType, message))
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	span.LogKV("result.published", true)
	return nil
}

// NewEvent builds the envelope published for message.
func NewEvent(ctx context.Context, span opentracing.Span, entityId string, entityType enum.EntityType, message interface{}) dto.Event {
	tracingData := tracing.ExtractTextMapCarrier(span.Context())

	eventType := ""
	if messageType := reflect.TypeOf(message); messageType != nil {
		if messageType.Kind() == reflect.Ptr {
			messageType = messageType.Elem()
		}
		eventType = messageType.Name()
	}

	return dto.Event{
		Event: dto.EventDetails{
			Id:         utils.GenerateNanoIDWithPrefix("event", 21),
			EntityId:   entityId,
			EntityType: entityType,
			EventType:  eventType,
			Data:       message,
		},
		Metadata: dto.EventMetadata{
			UberTraceId: tracingData["uber-trace-id"],
			AppSource:   utils.GetAppSourceFromContext(ctx),
			RequestId:   utils.GetRequestIdFromContext(ctx),
			Timestamp:   utils.Now().Format(time.RFC3339),
		},
	}
}

// setupPublishChannel opens a confirming channel on the current connection. Callers hold mu.
func (r *RabbitMQPublisher) setupPublishChannel() error {
	channel, err := r.connection.Channel()
	if err != nil {
		return errors.Wrap(err, "Failed to open publish channel")
	}

	err = channel.Confirm(false)
	if err != nil {
		channel.Close()
		return errors.Wrap(err, "Failed to enable publisher confirms")
	}

	r.confirms = channel.NotifyPublish(make(chan amqp091.Confirmation, confirmBufferSize))
	r.publishChannel = channel
	return nil
}

// dial connects and declares the exchange without touching the publisher state.
func (r *RabbitMQPublisher) dial() (*amqp091.Connection, error) {
	connection, err := amqp091.Dial(r.url)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to connect to RabbitMQ")
	}

	if err = declareExchange(connection, r.config.Exchange); err != nil {
		connection.Close()
		return nil, err
	}
	return connection, nil
}

// install makes connection the current one and starts watching it. Callers hold mu.
func (r *RabbitMQPublisher) install(connection *amqp091.Connection) error {
	r.connection = connection
	r.publishChannel = nil
	r.confirms = nil
	if err := r.setupPublishChannel(); err != nil {
		return errors.Wrap(err, "Failed to setup publish channel")
	}
	go r.watchConnection(connection)
	return nil
}

func (r *RabbitMQPublisher) watchConnection(connection *amqp091.Connection) {
	notifyClose := connection.NotifyClose(make(chan *amqp091.Error, 1))

	select {
	case closeErr := <-notifyClose:
		r.logger.Warnf("RabbitMQ connection closed: %v, attempting to reconnect", closeErr)
	case <-r.closed:
		return
	}

	r.mu.Lock()
	r.startReconnect(connection)
	r.mu.Unlock()
}

// startReconnect launches the reconnect loop unless one is running or connection is
// no longer the current one. Callers hold mu.
func (r *RabbitMQPublisher) startReconnect(connection *amqp091.Connection) {
	if r.reconnecting || r.connection != connection {
		return
	}
	r.reconnecting = true
	go r.reconnect()
}

func (r *RabbitMQPublisher) reconnect() {
	backoff := r.config.ReconnectBackoff
	for {
		select {
		case <-r.closed:
			r.mu.Lock()
			r.reconnecting = false
			r.mu.Unlock()
			return
		default:
		}

		connection, err := r.dial()
		if err == nil {
			r.mu.Lock()
			err = r.install(connection)
			r.reconnecting = err != nil
			r.mu.Unlock()
			if err == nil {
				r.logger.Info("Successfully reconnected to RabbitMQ")
				return
			}
			connection.Close()
		}

		r.logger.Errorf("Failed to reconnect: %v, retrying in %v", err, backoff)
		select {
		case <-time.After(backoff):
		case <-r.closed:
		}

		backoff *= 2
		if backoff > r.config.MaxReconnectBackoff {
			backoff = r.config.MaxReconnectBackoff
		}
	}
}

func declareExchange(connection *amqp091.Connection, exchange string) error {
	channel, err := connection.Channel()
	if err != nil {
		return errors.Wrap(err, "Failed to open channel for exchange setup")
	}
	defer channel.Close()

	err = channel.ExchangeDeclare(
		exchange,
		"fanout",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return errors.Wrapf(err, "Failed to declare %s exchange", exchange)
	}
	return nil
}

// ensureChannel never dials: a lost connection is handed to the reconnect loop and
// the publish attempt fails fast. Callers hold mu.
func (r *RabbitMQPublisher) ensureChannel() error {
	if r.connection == nil || r.connection.IsClosed() {
		if r.connection != nil {
			r.startReconnect(r.connection)
		}
		return errors.New("RabbitMQ connection is not available")
	}

	if r.publishChannel == nil || r.publishChannel.IsClosed() {
		if err := r.setupPublishChannel(); err != nil {
			return errors.Wrap(err, "Failed to establish channel")
		}
	}

	return nil
}

// publishMessage retries within a single PublishTimeout budget.
func (r *RabbitMQPublisher) publishMessage(ctx context.Context, message interface{}) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "RabbitMQPublisher.publishMessage")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	tracing.LogObjectAsJson(span, "message", message)

	jsonBody, err := json.Marshal(message)
	if err != nil {
		return errors.Wrap(err, "Failed to marshal message")
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.PublishTimeout)
	defer cancel()

	for attempt := 0; attempt < r.config.MaxRetries; attempt++ {
		err = r.publishWithConfirm(ctx, jsonBody)
		if err == nil {
			return nil
		}

		r.logger.Warnf("Publish attempt %d failed: %v", attempt+1, err)
		if attempt < r.config.MaxRetries-1 {
			select {
			case <-time.After(time.Millisecond * 100 * time.Duration(attempt+1)):
			case <-ctx.Done():
				return errors.Wrap(ctx.Err(), "Failed to publish message")
			}
		}
	}

	return errors.Wrap(err, "Failed to publish message after all retries")
}

func (r *RabbitMQPublisher) publishWithConfirm(ctx context.Context, body []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := r.ensureChannel(); err != nil {
		return err
	}

	deliveryTag := r.publishChannel.GetNextPublishSeqNo()
	err := r.publishChannel.PublishWithContext(
		ctx,
		r.config.Exchange,
		"",    // fanout ignores the routing key
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			DeliveryMode: amqp091.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return errors.Wrap(err, "Failed to publish message")
	}

	return awaitConfirm(ctx, r.confirms, deliveryTag)
}

// awaitConfirm waits for the confirmation of deliveryTag. Confirmations left over from
// earlier publishes that timed out are skipped.
func awaitConfirm(ctx context.Context, confirms <-chan amqp091.Confirmation, deliveryTag uint64) error {
	for {
		select {
		case confirm, ok := <-confirms:
			if !ok {
				return errors.New("Publish channel closed before confirmation")
			}
			if confirm.DeliveryTag < deliveryTag {
				continue
			}
			if !confirm.Ack {
				return errors.New("Message was not confirmed by server")
			}
			return nil
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "Publish confirmation timeout")
		}
	}
}

// Close gracefully shuts down the publisher
func (r *RabbitMQPublisher) Close() error {
	r.closeOnce.Do(func() { close(r.closed) })

	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.publishChannel != nil && !r.publishChannel.IsClosed() {
		err = r.publishChannel.Close()
		if err != nil {
			r.logger.Errorf("Error closing publish channel: %v", err)
		}
	}

	if r.connection != nil && !r.connection.IsClosed() {
		if closeErr := r.connection.Close(); closeErr != nil {
			r.logger.Errorf("Error closing connection: %v", closeErr)
			if err == nil {
				err = closeErr
			}
		}
	}

	return err
}

package services

import (
	"github.com/pkg/errors"

	"github.com/customeros/mailbroker/config"
	"github.com/customeros/mailbroker/interfaces"
	"github.com/customeros/mailbroker/internal/logger"
	"github.com/customeros/mailbroker/services/agentmail"
	"github.com/customeros/mailbroker/services/attachment"
	"github.com/customeros/mailbroker/services/events"
	"github.com/customeros/mailbroker/services/extraction"
	"github.com/customeros/mailbroker/services/storage"
)

type Services struct {
	MailboxAPI        interfaces.MailboxAPI
	AttachmentService interfaces.AttachmentService
	EventsService     *events.EventsService
}

func InitServices(cfg *config.Config, log logger.Logger) (*Services, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	mailboxAPI := agentmail.NewClient(log, cfg.AgentMailConfig, cfg.AppConfig.MaxAttachmentSize)

	publisherConfig := events.DefaultPublisherConfig()
	publisherConfig.Exchange = cfg.EventsConfig.Exchange
	eventsService, err := events.NewEventsService(cfg.EventsConfig.RabbitMQURL, log, publisherConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init events service")
	}

	fetcher, err := newAttachmentFetcher(cfg, mailboxAPI)
	if err != nil {
		return nil, err
	}
	log.Infof("attachments are read from source %q", cfg.AttachmentSourceConfig.Source)

	attachmentService := attachment.NewAttachmentService(log, fetcher, Extractors(),
		attachment.WithPublisher(eventsService.Publisher),
		attachment.WithMaxSize(cfg.AppConfig.MaxAttachmentSize),
	)

	return &Services{
		MailboxAPI:        mailboxAPI,
		AttachmentService: attachmentService,
		EventsService:     eventsService,
	}, nil
}

// Extractors returns one extractor per supported file type.
func Extractors() []interfaces.TextExtractor {
	return []interfaces.TextExtractor{
		extraction.NewPDFExtractor(),
		extraction.NewDOCXExtractor(),
	}
}

func newAttachmentFetcher(cfg *config.Config, mailboxAPI interfaces.MailboxAPI) (interfaces.AttachmentFetcher, error) {
	maxSize := cfg.AppConfig.MaxAttachmentSize
	keyPrefix := cfg.AttachmentSourceConfig.KeyPrefix

	switch cfg.AttachmentSourceConfig.Source {
	case config.AttachmentSourceAPI:
		return attachment.NewAPIFetcher(mailboxAPI), nil
	case config.AttachmentSourceR2:
		r2 := cfg.R2StorageConfig
		bucket := storage.NewR2StorageService(r2.AccountID, r2.AccessKeyID, r2.AccessKeySecret, r2.EmailAttachmentBucket, maxSize)
		return attachment.NewBucketFetcher(bucket, keyPrefix), nil
	case config.AttachmentSourceS3:
		s3 := cfg.S3StorageConfig
		bucket := storage.NewS3StorageService(s3.Region, s3.AccessKeyID, s3.AccessKeySecret, s3.EmailAttachmentBucket, maxSize)
		return attachment.NewBucketFetcher(bucket, keyPrefix), nil
	default:
		return nil, errors.Errorf("unknown attachment source %q", cfg.AttachmentSourceConfig.Source)
	}
}

func (s *Services) Close() error {
	if s.EventsService == nil {
		return nil
	}
	return s.EventsService.Close()
}

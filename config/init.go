package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/customeros/mailbroker/internal/logger"
	"github.com/customeros/mailbroker/internal/tracing"
)

const (
	AttachmentSourceAPI = "api"
	AttachmentSourceR2  = "r2"
	AttachmentSourceS3  = "s3"
)

type Config struct {
	AppConfig              *AppConfig
	Logger                 *logger.Config
	Tracing                *tracing.JaegerConfig
	AgentMailConfig        *AgentMailConfig
	AttachmentSourceConfig *AttachmentSourceConfig
	R2StorageConfig        *R2StorageConfig
	S3StorageConfig        *S3StorageConfig
	EventsConfig           *EventsConfig
}

func newConfig() *Config {
	return &Config{
		AppConfig:              &AppConfig{},
		Logger:                 &logger.Config{},
		Tracing:                &tracing.JaegerConfig{},
		AgentMailConfig:        &AgentMailConfig{},
		AttachmentSourceConfig: &AttachmentSourceConfig{},
		R2StorageConfig:        &R2StorageConfig{},
		S3StorageConfig:        &S3StorageConfig{},
		EventsConfig:           &EventsConfig{},
	}
}

func InitConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	return ParseConfig()
}

// ParseConfig reads the configuration from the process environment only.
func ParseConfig() (*Config, error) {
	config := newConfig()

	if err := env.Parse(config); err != nil {
		return nil, errors.Wrap(err, "error loading mailbroker config")
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.AgentMailConfig.ApiKey == "" {
		return errors.New("AGENTMAIL_API_KEY must not be empty")
	}

	switch c.AttachmentSourceConfig.Source {
	case AttachmentSourceAPI:
	case AttachmentSourceR2:
		if c.R2StorageConfig.AccountID == "" || c.R2StorageConfig.AccessKeyID == "" || c.R2StorageConfig.AccessKeySecret == "" {
			return errors.New("r2 attachment source requires CLOUDFLARE_R2_ACCOUNT_ID, CLOUDFLARE_R2_ACCESS_KEY_ID and CLOUDFLARE_R2_ACCESS_KEY_SECRET")
		}
	case AttachmentSourceS3:
		if c.S3StorageConfig.AccessKeyID == "" || c.S3StorageConfig.AccessKeySecret == "" {
			return errors.New("s3 attachment source requires AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
		}
	default:
		return errors.Errorf("unknown ATTACHMENT_SOURCE %q", c.AttachmentSourceConfig.Source)
	}

	if c.AppConfig.MaxAttachmentSize <= 0 {
		return errors.New("MAX_ATTACHMENT_SIZE must be positive")
	}

	return nil
}

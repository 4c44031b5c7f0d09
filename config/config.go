package config

import "time"

type AppConfig struct {
	APIPort           string `env:"PORT,required" envDefault:"12222"`
	APIKey            string `env:"API_KEY,required"`
	MaxAttachmentSize int64  `env:"MAX_ATTACHMENT_SIZE" envDefault:"26214400"`
}

type AgentMailConfig struct {
	Url     string        `env:"AGENTMAIL_API_URL" envDefault:"https://api.agentmail.to/v0"`
	ApiKey  string        `env:"AGENTMAIL_API_KEY,required"`
	Timeout time.Duration `env:"AGENTMAIL_TIMEOUT" envDefault:"60s"`
}

// AttachmentSourceConfig selects where attachment bytes are read from: "api", "r2" or "s3".
type AttachmentSourceConfig struct {
	Source    string `env:"ATTACHMENT_SOURCE" envDefault:"api"`
	KeyPrefix string `env:"ATTACHMENT_KEY_PREFIX" envDefault:"threads"`
}

type R2StorageConfig struct {
	AccountID             string `env:"CLOUDFLARE_R2_ACCOUNT_ID"`
	AccessKeyID           string `env:"CLOUDFLARE_R2_ACCESS_KEY_ID"`
	AccessKeySecret       string `env:"CLOUDFLARE_R2_ACCESS_KEY_SECRET"`
	EmailAttachmentBucket string `env:"BUCKET_NAME_EMAIL_ATTACHMENT" envDefault:"attachments"`
}

type S3StorageConfig struct {
	Region                string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID           string `env:"AWS_ACCESS_KEY_ID"`
	AccessKeySecret       string `env:"AWS_SECRET_ACCESS_KEY"`
	EmailAttachmentBucket string `env:"S3_BUCKET_EMAIL_ATTACHMENT" envDefault:"attachments"`
}

type EventsConfig struct {
	RabbitMQURL string `env:"RABBITMQ_URL"`
	Exchange    string `env:"RABBITMQ_EXCHANGE" envDefault:"mailbroker"`
}

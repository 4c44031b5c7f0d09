package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("API_KEY", "secret")
	t.Setenv("AGENTMAIL_API_KEY", "am_key")
}

func TestParseConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := ParseConfig()
	require.NoError(t, err)

	assert.Equal(t, "12222", cfg.AppConfig.APIPort)
	assert.Equal(t, int64(26214400), cfg.AppConfig.MaxAttachmentSize)
	assert.Equal(t, "https://api.agentmail.to/v0", cfg.AgentMailConfig.Url)
	assert.Equal(t, 60*time.Second, cfg.AgentMailConfig.Timeout)
	assert.Equal(t, AttachmentSourceAPI, cfg.AttachmentSourceConfig.Source)
	assert.Empty(t, cfg.EventsConfig.RabbitMQURL)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
}

func TestParseConfig_MissingAgentMailKey(t *testing.T) {
	t.Setenv("API_KEY", "secret")
	t.Setenv("AGENTMAIL_API_KEY", "")

	_, err := ParseConfig()
	assert.Error(t, err)
}

func TestParseConfig_R2SourceRequiresCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ATTACHMENT_SOURCE", "r2")

	_, err := ParseConfig()
	assert.ErrorContains(t, err, "CLOUDFLARE_R2_ACCOUNT_ID")

	t.Setenv("CLOUDFLARE_R2_ACCOUNT_ID", "acc")
	t.Setenv("CLOUDFLARE_R2_ACCESS_KEY_ID", "id")
	t.Setenv("CLOUDFLARE_R2_ACCESS_KEY_SECRET", "secret")

	cfg, err := ParseConfig()
	require.NoError(t, err)
	assert.Equal(t, "attachments", cfg.R2StorageConfig.EmailAttachmentBucket)
}

func TestParseConfig_UnknownSource(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ATTACHMENT_SOURCE", "ftp")

	_, err := ParseConfig()
	assert.ErrorContains(t, err, "ftp")
}

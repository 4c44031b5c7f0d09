package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestAppLogger_LevelFallsBackToInfo(t *testing.T) {
	l := &appLogger{level: "verbose"}
	assert.Equal(t, zapcore.InfoLevel, l.getLoggerLevel())

	l.level = "debug"
	assert.Equal(t, zapcore.DebugLevel, l.getLoggerLevel())
}

func TestAppLogger_InitLogger(t *testing.T) {
	log := NewAppLogger(&Config{LogLevel: "debug", DevMode: true, Encoder: "console"})
	log.InitLogger()

	assert.NotNil(t, log.Logger())
	assert.True(t, log.Logger().Core().Enabled(zapcore.DebugLevel))

	child := log.With()
	assert.NotNil(t, child.Logger())
}

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New. create production zap logger used by every cmd and service.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log, nil
}

package gamelog

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-style JSON zap logger. Development builds can
// swap in zap.NewDevelopmentConfig(); the server always logs as JSON
// since every consumer of these records is a log aggregator, not a
// terminal.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// RequestReceived logs the fixed "request received" record §6 specifies.
func RequestReceived(logger *zap.Logger, ip, uri, method string) {
	logger.Info("request received",
		zap.String("ip", ip),
		zap.String("URI", uri),
		zap.String("method", method),
	)
}

// ResponseSent logs the fixed "response sent" record §6 specifies.
func ResponseSent(logger *zap.Logger, start time.Time, code int, contentType string) {
	logger.Info("response sent",
		zap.Duration("response_time", time.Since(start)),
		zap.Int("code", code),
		zap.String("content_type", contentType),
	)
}

// ServerStarted logs process startup.
func ServerStarted(logger *zap.Logger, address string, port int) {
	logger.Info("server started",
		zap.String("address", address),
		zap.Int("port", port),
	)
}

// ServerExited logs process shutdown. err is nil on a clean exit.
func ServerExited(logger *zap.Logger, code int, err error) {
	if err != nil {
		logger.Info("server exited", zap.Int("code", code), zap.Error(err))
		return
	}
	logger.Info("server exited", zap.Int("code", code))
}

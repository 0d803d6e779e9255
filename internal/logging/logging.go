// Package logging builds the concrete loggers behind calculation.Logger.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/rental-proforma/internal/calculation"
	"github.com/rpgo/rental-proforma/internal/config"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the logger selected by cfg.Backend, writing to w. The returned
// function flushes buffered entries and should be called before exit.
func New(cfg config.LogSettings, w io.Writer) (calculation.Logger, func() error, error) {
	switch strings.ToLower(cfg.Backend) {
	case config.LogBackendZap:
		l, err := NewZap(cfg, w)
		if err != nil {
			return nil, nil, err
		}
		return l, l.Sync, nil
	case config.LogBackendLogrus, "":
		l, err := NewLogrus(cfg, w)
		if err != nil {
			return nil, nil, err
		}
		return l, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown log backend %q", cfg.Backend)
	}
}

// NewLogrus returns a logrus logger. An unparseable level falls back to info.
func NewLogrus(cfg config.LogSettings, w io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)
	if strings.EqualFold(cfg.Format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger, nil
}

// NewZap returns a sugared zap logger with the production encoder settings.
func NewZap(cfg config.LogSettings, w io.Writer) (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		level = parsed
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if strings.EqualFold(cfg.Format, "text") {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core).Sugar(), nil
}

// With returns l annotated with key/value pairs when the backend supports
// structured fields, and l unchanged otherwise.
func With(l calculation.Logger, keysAndValues ...any) calculation.Logger {
	switch t := l.(type) {
	case *zap.SugaredLogger:
		return t.With(keysAndValues...)
	case *logrus.Logger:
		return t.WithFields(fields(keysAndValues))
	case *logrus.Entry:
		return t.WithFields(fields(keysAndValues))
	default:
		return calculation.OrNop(l)
	}
}

func fields(kv []any) logrus.Fields {
	f := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		f[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return f
}

package logger_adapter

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
)

// FluentPoster - часть *fluent.Fluent, которая нужна адаптеру.
type FluentPoster interface {
	Post(tag string, message interface{}) error
}

type FluentLoggerAdapter struct {
	client   FluentPoster
	fields   port.Fields
	minLevel slog.Level
}

func NewFluentLoggerAdapter(client FluentPoster, minLevel slog.Leveler) (*FluentLoggerAdapter, error) {
	if client == nil {
		return nil, fmt.Errorf("fluent client cannot be nil")
	}

	level := slog.LevelInfo
	if minLevel != nil {
		level = minLevel.Level()
	}

	return &FluentLoggerAdapter{
		client:   client,
		fields:   make(port.Fields),
		minLevel: level,
	}, nil
}

func (a *FluentLoggerAdapter) mergeFields(fields port.Fields) port.Fields {
	merged := make(port.Fields, len(a.fields)+len(fields))
	for k, v := range a.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

// post отправляет запись с тегом-уровнем; ошибки отправки логировать некуда, они отбрасываются
func (a *FluentLoggerAdapter) post(level slog.Level, msg string, fields port.Fields) {
	if level < a.minLevel {
		return
	}
	data := a.mergeFields(fields)
	data["level"] = level.String()
	data["message"] = msg
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)

	_ = a.client.Post(levelTag(level), data)
}

func levelTag(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "debug"
	case slog.LevelWarn:
		return "warn"
	case slog.LevelError:
		return "error"
	default:
		return "info"
	}
}

func (a *FluentLoggerAdapter) Info(msg string, fields port.Fields) {
	a.post(slog.LevelInfo, msg, fields)
}

func (a *FluentLoggerAdapter) Warn(msg string, fields port.Fields) {
	a.post(slog.LevelWarn, msg, fields)
}

func (a *FluentLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	if err != nil {
		withErr := make(port.Fields, len(fields)+1)
		for k, v := range fields {
			withErr[k] = v
		}
		withErr["error"] = err.Error()
		fields = withErr
	}
	a.post(slog.LevelError, msg, fields)
}

func (a *FluentLoggerAdapter) Debug(msg string, fields port.Fields) {
	a.post(slog.LevelDebug, msg, fields)
}

func (a *FluentLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	return &FluentLoggerAdapter{
		client:   a.client,
		fields:   a.mergeFields(fields),
		minLevel: a.minLevel,
	}
}

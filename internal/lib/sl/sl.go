// Package sl содержит вспомогательные функции для логгера slog.
package sl

import (
	"io"
	"log/slog"
)

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
//
//	log.Error("failed to save clients", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op возвращает атрибут с именем операции.
func Op(op string) slog.Attr {
	return slog.String("op", op)
}

// SetupLogger выбирает формат и уровень логов по окружению.
func SetupLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "dev":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

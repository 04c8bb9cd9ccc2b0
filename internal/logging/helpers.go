package logging

import (
	"maps"

	"github.com/goliatone/go-docmark/pkg/interfaces"
)

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Callers can pass nil or an
// empty map to skip allocation safely.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// DocumentLogger enriches a logger with the output path of the document a
// pipeline stage is currently working on.
func DocumentLogger(logger interfaces.Logger, path string) interfaces.Logger {
	if path == "" {
		return logger
	}
	return WithFields(logger, map[string]any{
		"document_path": path,
	})
}

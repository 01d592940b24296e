package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldResumeID = "resume_id"
	FieldModel    = "gateway_model"
	FieldFileType = "file_type"
)

// ResumeFields describes one résumé in log entries. Blank values are left out.
func ResumeFields(id, fileType string) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if id = strings.TrimSpace(id); id != "" {
		fields = append(fields, zap.String(FieldResumeID, id))
	}
	if fileType = strings.TrimSpace(fileType); fileType != "" {
		fields = append(fields, zap.String(FieldFileType, fileType))
	}
	return fields
}

// WithFields attaches fields to log. A nil log becomes a no-op logger.
func WithFields(log *zap.Logger, fields ...zap.Field) *zap.Logger {
	log = OrNop(log)
	if len(fields) == 0 {
		return log
	}
	return log.With(fields...)
}

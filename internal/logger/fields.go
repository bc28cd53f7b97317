package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared by every package, so log queries can rely on them.
const (
	FieldProvider    = "ai_provider"
	FieldModel       = "ai_model"
	FieldCandidate   = "candidate"
	FieldCandidateID = "candidate_id"
	FieldResume      = "resume"
)

// nonEmpty turns key/value pairs into string fields, dropping pairs whose
// trimmed value is empty. Keys are always constants from this package.
func nonEmpty(pairs ...string) []zap.Field {
	fields := make([]zap.Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if v := strings.TrimSpace(pairs[i+1]); v != "" {
			fields = append(fields, zap.String(pairs[i], v))
		}
	}
	return fields
}

func with(log *zap.Logger, fields []zap.Field) *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}
	if len(fields) == 0 {
		return log
	}
	return log.With(fields...)
}

// AIFields describes the capability backend answering a call.
func AIFields(provider, model string) []zap.Field {
	return nonEmpty(FieldProvider, provider, FieldModel, model)
}

// WithAI returns log tagged with provider and model. A nil log yields a no-op logger.
func WithAI(log *zap.Logger, provider, model string) *zap.Logger {
	return with(log, AIFields(provider, model))
}

// CandidateFields identifies the screened candidate. The name is unknown
// until the profile is extracted, in which case only the id is emitted.
func CandidateFields(name, id string) []zap.Field {
	return nonEmpty(FieldCandidate, name, FieldCandidateID, id)
}

// WithRun returns log tagged with the résumé path and candidate id of one run.
func WithRun(log *zap.Logger, resume, candidateID string) *zap.Logger {
	return with(log, nonEmpty(FieldResume, resume, FieldCandidateID, candidateID))
}

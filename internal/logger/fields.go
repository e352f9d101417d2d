package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldTokenizer is the structured log field key for the tokenizer kind.
	FieldTokenizer = "tokenizer"
	// FieldVocabularySize is the number of entries in the reference vocabulary.
	FieldVocabularySize = "vocabulary_size"
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	logger = OrNop(logger)
	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ScreeningFields describes the screening setup: tokenizer kind and vocabulary size.
func ScreeningFields(tokenizer string, vocabularySize int) []zap.Field {
	fields := StringFields(StringField{Key: FieldTokenizer, Value: tokenizer})
	return append(fields, zap.Int(FieldVocabularySize, vocabularySize))
}

// AIFields returns fields for the AI provider and model. Empty values are skipped.
func AIFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithAIFields attaches the AI provider and model to the logger.
func WithAIFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, AIFields(provider, model)...)
}

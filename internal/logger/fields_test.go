package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  tokenizer  ", Value: "  analyzer  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "tokenizer" || fields[0].String != "analyzer" {
		t.Fatalf("unexpected field: %+v", fields[0])
	}

	if empty := StringFields(); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithFields(logger, zap.String("foo", "bar"))
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	if ctx := entries[0].ContextMap(); ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched = WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	enriched.Info("another log")
}

func TestScreeningFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	zap.New(core).Info("screening", ScreeningFields("simple", 13)...)

	ctx := observed.All()[0].ContextMap()
	if ctx[FieldTokenizer] != "simple" {
		t.Fatalf("expected tokenizer field, got %v", ctx[FieldTokenizer])
	}
	if ctx[FieldVocabularySize] != int64(13) {
		t.Fatalf("expected vocabulary size 13, got %v", ctx[FieldVocabularySize])
	}
}

func TestWithAIFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithAIFields(zap.New(core), "gemini", "model-x").Info("test log")

	ctx := observed.All()[0].ContextMap()
	if ctx[FieldProvider] != "gemini" || ctx[FieldModel] != "model-x" {
		t.Fatalf("unexpected fields: %v", ctx)
	}

	if empty := AIFields("", ""); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}

	WithAIFields(nil, "gemini", "model-x").Info("does not panic")
}

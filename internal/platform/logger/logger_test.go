package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"paymind/internal/platform/logger"
)

func TestNewWithWriterTagsServiceAndFiltersLevel(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	log := logger.NewWithWriter(buf, "paymind", "warn", false)
	log.Info().Msg("hidden")
	log.Warn().Str("k", "v").Msg("shown")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected exactly one json line, got %q: %v", buf.String(), err)
	}
	if line["service"] != "paymind" || line["message"] != "shown" || line["k"] != "v" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	log := logger.NewWithWriter(buf, "paymind", "chatty", false)
	log.Debug().Msg("dropped")
	log.Info().Msg("kept")
	if bytes.Contains(buf.Bytes(), []byte("dropped")) || !bytes.Contains(buf.Bytes(), []byte("kept")) {
		t.Fatalf("expected info level filtering, got %q", buf.String())
	}
}

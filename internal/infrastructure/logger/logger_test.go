package logger

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewLoggerFormatsOutput(t *testing.T) {
	output := captureStdout(t, func() {
		log := New(Config{Format: "json", Level: "info", Service: "gotransfers"})
		log.Info().Msg("hello")
	})

	if !strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Fatalf("expected json output to start with '{', got %q", output)
	}
	if !strings.Contains(output, `"service":"gotransfers"`) {
		t.Fatalf("expected service tag in output, got %q", output)
	}
	if !strings.Contains(output, `"message":"hello"`) {
		t.Fatalf("expected message in output, got %q", output)
	}
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	output := captureStdout(t, func() {
		log := New(Config{Format: "json", Level: "error"})
		log.Info().Msg("suppressed")
	})

	if strings.TrimSpace(output) != "" {
		t.Fatalf("expected info entry to be suppressed at error level, got %q", output)
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}

	return buf.String()
}

package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestTruncateHandler_CapsLongValues tests that long string attributes are cut.
func TestTruncateHandler_CapsLongValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		maxLen   int
		wantMark bool
	}{
		{
			name:     "value over the cap is truncated",
			key:      "body",
			value:    strings.Repeat("a", 100),
			maxLen:   10,
			wantMark: true,
		},
		{
			name:     "value at the cap is untouched",
			key:      "body",
			value:    strings.Repeat("a", 10),
			maxLen:   10,
			wantMark: false,
		},
		{
			name:     "short value is untouched",
			key:      "url",
			value:    "https://github.com/acme/alpha",
			maxLen:   100,
			wantMark: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			handler := NewTruncateHandler(slog.NewTextHandler(&buf, nil), tt.maxLen)
			logger := slog.New(handler)

			logger.Info("test", tt.key, tt.value)

			output := buf.String()
			if got := strings.Contains(output, TruncationMark); got != tt.wantMark {
				t.Errorf("truncation mark present = %v, want %v (output: %s)", got, tt.wantMark, output)
			}
			if tt.wantMark && strings.Contains(output, tt.value) {
				t.Error("expected the full value to be absent from output")
			}
			if !tt.wantMark && !strings.Contains(output, tt.value) {
				t.Error("expected the full value to be present in output")
			}
		})
	}
}

// TestTruncateHandler_NonStringValues tests that non-string attributes pass through.
func TestTruncateHandler_NonStringValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewTruncateHandler(slog.NewTextHandler(&buf, nil), 4)
	logger := slog.New(handler)

	logger.Info("test", "count", 1234567890)

	if !strings.Contains(buf.String(), "1234567890") {
		t.Errorf("expected integer attribute to pass through untouched, got: %s", buf.String())
	}
}

// TestTruncateHandler_Groups tests that grouped attributes are capped too.
func TestTruncateHandler_Groups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewTruncateHandler(slog.NewTextHandler(&buf, nil), 8)
	logger := slog.New(handler)

	logger.Info("test", slog.Group("page",
		slog.String("body", strings.Repeat("b", 64)),
		slog.String("status", "200"),
	))

	output := buf.String()
	if !strings.Contains(output, TruncationMark) {
		t.Errorf("expected grouped long value to be truncated, got: %s", output)
	}
	if !strings.Contains(output, "200") {
		t.Errorf("expected grouped short value to survive, got: %s", output)
	}
}

// TestTruncateHandler_WithAttrs tests that attrs added up front are capped.
func TestTruncateHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewTruncateHandler(slog.NewTextHandler(&buf, nil), 8)
	logger := slog.New(handler).With("body", strings.Repeat("c", 64))

	logger.Info("test")

	if !strings.Contains(buf.String(), TruncationMark) {
		t.Errorf("expected preset attribute to be truncated, got: %s", buf.String())
	}
}

// TestNewCrawlLogger tests level selection by verbose mode.
func TestNewCrawlLogger(t *testing.T) {
	t.Parallel()

	t.Run("verbose logger emits debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewCrawlLogger(&buf, true)
		logger.Debug("debug message")

		if !strings.Contains(buf.String(), "debug message") {
			t.Error("expected debug output in verbose mode")
		}
	})

	t.Run("quiet logger suppresses debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewCrawlLogger(&buf, false)
		logger.Debug("debug message")
		logger.Info("info message")

		output := buf.String()
		if strings.Contains(output, "debug message") {
			t.Error("expected debug output to be suppressed")
		}
		if !strings.Contains(output, "info message") {
			t.Error("expected info output at default level")
		}
	})
}

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{9, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.verbosity); got != tt.want {
			t.Errorf("LevelFor(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestSetup(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	prevLogger := log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevLevel)
		log.Logger = prevLogger
	})

	var buf bytes.Buffer
	Setup(0, &buf, true)
	logger := GetLogger("prepare")
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at verbosity 0: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "component=prepare") {
		t.Errorf("expected warn message with component field, got %q", out)
	}

	buf.Reset()
	Setup(2, &buf, true)
	done := LogOperationStart(GetLogger("verify"), "verify")
	done()
	if !strings.Contains(buf.String(), "Operation completed") {
		t.Errorf("expected debug output at verbosity 2, got %q", buf.String())
	}
}

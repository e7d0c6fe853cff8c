package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestConfigureJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	lgr := Configure(Config{Level: WarnLevel, Output: &buf})
	defer Configure(Config{Level: InfoLevel, Pretty: true})

	lgr.Info().Msg("dropped")
	Info().Msg("dropped too")
	courses := Component("courses")
	courses.Warn().Str("titulo", "Go").Msg("kept")

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "kept" || entry["component"] != "courses" || entry["titulo"] != "Go" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
}

func TestPackageHelpersUseConfiguredLogger(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: InfoLevel, Output: &buf})
	defer Configure(Config{Level: InfoLevel, Pretty: true})

	Warn().Msg("warned")
	Error().Str("op", "insert").Msg("failed")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected two JSON lines, got %q", buf.String())
	}
	var entry map[string]interface{}
	if err := json.Unmarshal(lines[1], &entry); err != nil {
		t.Fatalf("decode %q: %v", lines[1], err)
	}
	if entry["level"] != "error" || entry["op"] != "insert" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
}

func TestLevelMapping(t *testing.T) {
	cases := map[LogLevel]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARN":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"bogus":   zerolog.InfoLevel,
		InfoLevel: zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := toZerologLevel(in); got != want {
			t.Errorf("toZerologLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if !ParseFormat(" Text ") {
		t.Fatalf("expected text format to enable console output")
	}
	if ParseFormat("json") {
		t.Fatalf("expected json format to disable console output")
	}
}

package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("systolic")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "systolic" {
		t.Errorf("expected service 'systolic', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:  "invalid-level",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "systolic", &buf)
	l.WithComponent("container").Debug("step completed", Fields(FieldStep, 3, FieldOutputs, 1))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "step completed" {
		t.Errorf("expected message 'step completed', got %v", entry["message"])
	}
	if entry[FieldComponent] != "container" {
		t.Errorf("expected component=container, got %v", entry[FieldComponent])
	}
	if entry[FieldStep] != float64(3) {
		t.Errorf("expected step=3, got %v", entry[FieldStep])
	}
	if entry["service"] != "systolic" {
		t.Errorf("expected service=systolic, got %v", entry["service"])
	}
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "warn", Format: "json"}, "systolic", &buf)
	l.Debug("hidden")
	l.Info("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn message, got %q", buf.String())
	}
}

func TestNewWithWriter_ConsoleNoColor(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "systolic", &buf)
	l.Info("ready")
	out := buf.String()
	if !strings.Contains(out, "[SYS][INF]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("expected no ANSI escapes with NoColor, got %q", out)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("dropped", Fields("k", "v"))
	if l.WithComponent("x") == nil {
		t.Fatal("expected non-nil derived logger")
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "", &buf)
	l.WithFields(Fields(FieldRunID, "abc")).WithError(errors.New("boom")).Info("tagged")
	out := buf.String()
	if !strings.Contains(out, `"run_id":"abc"`) {
		t.Errorf("expected run_id field, got %q", out)
	}
	if !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("expected error field, got %q", out)
	}
}

func TestNewFromEnv(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_LEVEL")
	defer os.Unsetenv("LOG_FORMAT")

	l := NewFromEnv("env-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestInitAndGlobal(t *testing.T) {
	prev := globalLogger
	defer SetGlobalLogger(prev)

	cfg := &Config{Format: "json", Output: "discard"}
	Init(cfg)
	if cfg.Level != "warn" {
		t.Errorf("expected Init to apply defaults, got level %q", cfg.Level)
	}
	if GetGlobalLogger() == nil {
		t.Fatal("expected global logger after Init")
	}

	SetGlobalLogger(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected a default global logger to be created")
	}
	SetGlobalLogger(Nop())
	Debug("d")
	Info("i")
	Warn("w")
	Error("e")
	if WithComponent("c") == nil {
		t.Fatal("expected component logger")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "warn" {
		t.Errorf("expected level 'warn', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp to be enabled")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"disabled level", Config{Level: "disabled", Format: "console"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields: %v", m)
	}
	if len(m) != 2 {
		t.Errorf("expected 2 fields, got %d: %v", len(m), m)
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("compute", errors.New("empty chain"))
	if ef[FieldOperation] != "compute" || ef[FieldError] != "empty chain" {
		t.Errorf("unexpected error fields: %v", ef)
	}
	df := DurationFields("compute", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", df[FieldDuration])
	}
}

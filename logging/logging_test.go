package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"INFO", InfoLevel, false},
		{"", InfoLevel, false},
		{"warning", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"fatal", FatalLevel, false},
		{"verbose", InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultLoggerLevelsAndFields(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewDefaultLoggerWithWriters(&out, &errOut)

	l.Debug("hidden")
	if out.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", out.String())
	}

	l.WithFields(Fields{"component": "test", "b": 2}).Info("hello", Fields{"a": 1})
	line := out.String()
	if !strings.Contains(line, "[INFO] hello a=1 b=2 component=test") {
		t.Fatalf("unexpected info line: %q", line)
	}

	l.Error(errors.New("boom"), "failed")
	if !strings.Contains(errOut.String(), "[ERROR] failed: boom") {
		t.Fatalf("unexpected error line: %q", errOut.String())
	}
}

func TestDefaultLoggerFatalExits(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewDefaultLoggerWithWriters(&out, &errOut)
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatal(errors.New("bad"), "stop")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestWithContextFields(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewDefaultLoggerWithWriters(&out, &errOut)

	ctx := ContextWithFields(context.Background(), Fields{"session": "abc"})
	ctx = ContextWithFields(ctx, Fields{"graph": 1})
	l.WithContext(ctx).Info("frame")

	if !strings.Contains(out.String(), "graph=1 session=abc") {
		t.Fatalf("context fields missing: %q", out.String())
	}

	out.Reset()
	override := ContextWithFields(ctx, Fields{"graph": 2})
	l.WithContext(override).Info("frame")
	if !strings.Contains(out.String(), "graph=2 session=abc") {
		t.Fatalf("later fields should override earlier ones: %q", out.String())
	}

	if fields, _ := FieldsFromContext(ctx); fields["graph"] != 1 {
		t.Fatalf("parent context modified: %v", fields)
	}
}

func TestLogrusLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	l := NewLogrusLogger(base)
	l.SetLevel(DebugLevel)
	l.WithFields(Fields{"component": "contour_filter"}).Debug("drop outlier", Fields{"t": 0.5})

	line := buf.String()
	for _, want := range []string{"level=debug", `msg="drop outlier"`, "component=contour_filter", "t=0.5"} {
		if !strings.Contains(line, want) {
			t.Errorf("logrus line %q missing %q", line, want)
		}
	}
}

func TestSetGlobalLoggerNil(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	SetGlobalLogger(nil)
	if _, ok := GetGlobalLogger().(*NoOpLogger); !ok {
		t.Fatalf("nil global logger should install NoOpLogger, got %T", GetGlobalLogger())
	}
}

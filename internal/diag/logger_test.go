// internal/diag/logger_test.go
package diag

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/weather-node/internal/config"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	if l.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level=%v", l.GetLevel())
	}

	l.WithField("step", "radio").Info("boot step ok")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("not json: %q", buf.String())
	}
	if line["step"] != "radio" || line["msg"] != "boot step ok" {
		t.Fatalf("line=%v", line)
	}
}

func TestNewLogger_Defaults(t *testing.T) {
	l, err := newLogger(config.LogConfig{}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	if l.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level=%v", l.GetLevel())
	}
	if _, ok := l.Formatter.(*logrus.TextFormatter); !ok {
		t.Fatalf("formatter=%T", l.Formatter)
	}
}

func TestNewLogger_Rejects(t *testing.T) {
	if _, err := newLogger(config.LogConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected level error")
	}
	if _, err := newLogger(config.LogConfig{Format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected format error")
	}
}

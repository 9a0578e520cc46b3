package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Output: &buf})
	defer Init(Options{Level: "info", Output: &bytes.Buffer{}})

	WithComponent("Session").Debug("[Session] started")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "Session" {
		t.Errorf("component: got %v, want Session", entry["component"])
	}
	if entry["level"] != "debug" {
		t.Errorf("level: got %v, want debug", entry["level"])
	}
}

func TestInitInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "loud", Format: "text", Output: &buf})

	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("Level: got %v, want info", Log.GetLevel())
	}

	Log.Debug("hidden")
	Log.Info("visible")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "visible") {
		t.Errorf("Unexpected output: %q", buf.String())
	}
}

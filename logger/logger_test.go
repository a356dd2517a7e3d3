package logger

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestWithComponent(t *testing.T) {
	log := Logger()
	entry := log.WithComponent("solver")
	if v, ok := entry.Entry.Data["component"]; !ok || v != "solver" {
		t.Fatalf("component field missing: %v", entry.Entry.Data)
	}
}

func TestWithFieldsAndError(t *testing.T) {
	log := Logger()
	entry := log.WithFields(Fields{"isin": "CI0000012345"}).WithError(errors.New("boom"))
	if v, ok := entry.Entry.Data["isin"]; !ok || v != "CI0000012345" {
		t.Fatalf("isin field missing: %v", entry.Entry.Data)
	}
	if _, ok := entry.Entry.Data[logrus.ErrorKey]; !ok {
		t.Fatalf("error field missing: %v", entry.Entry.Data)
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	log := Logger()
	if log.Logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("unexpected level: %v", log.Logger.GetLevel())
	}
}

func TestSetLevelIgnoresUnknown(t *testing.T) {
	log := Logger()
	before := log.Logger.GetLevel()
	log.SetLevel("not-a-level")
	if log.Logger.GetLevel() != before {
		t.Fatalf("unknown level must not change the logger: %v", log.Logger.GetLevel())
	}
	log.SetLevel("warn")
	if log.Logger.GetLevel() != logrus.WarnLevel {
		t.Fatalf("level not applied: %v", log.Logger.GetLevel())
	}
}

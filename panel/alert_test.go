package panel_test

import (
	"testing"

	"github.com/AtlasAudioDesigns/Luna/panel"
)

func TestAlertsAddNamedReplaces(t *testing.T) {
	m, _ := newTestModel(t)
	m.Alerts().AddNamed("midi", "device lost", panel.Warning)
	m.Alerts().Add("preset saved", panel.Info)
	m.Alerts().AddNamed("midi", "device back", panel.Info)
	alerts := m.Alerts().Drain()
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, expected 2", len(alerts))
	}
	if alerts[0].Name != "midi" || alerts[0].Message != "device back" || alerts[0].Severity != panel.Info {
		t.Fatalf("named alert got %+v, expected the replacement in place", alerts[0])
	}
	if alerts[1].Message != "preset saved" {
		t.Fatalf("anonymous alert got %+v", alerts[1])
	}
	if left := m.Alerts().Drain(); len(left) != 0 {
		t.Fatalf("queue not empty after drain: %v", left)
	}
}

func TestAlertsIterateStops(t *testing.T) {
	m, _ := newTestModel(t)
	m.Alerts().Add("one", panel.Info)
	m.Alerts().Add("two", panel.Info)
	count := 0
	m.Alerts().Iterate(func(a panel.Alert) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("iteration visited %d alerts after an early stop", count)
	}
}

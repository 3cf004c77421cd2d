package panel_test

import (
	"os"
	"path/filepath"
	"testing"

	luna "github.com/AtlasAudioDesigns/Luna"
	"github.com/AtlasAudioDesigns/Luna/panel"
)

func newTestModel(t *testing.T) (*panel.Model, *panel.Broker) {
	t.Helper()
	broker := panel.NewBroker()
	return panel.NewModel(broker, panel.NullMIDIContext{}, t.TempDir()), broker
}

func TestModelSaveLoadPresetRoundTrip(t *testing.T) {
	m, _ := newTestModel(t)
	m.Bindings().Propagate("DECAY", 72, panel.KindNone)
	m.Unit(luna.UnitMod).Bindings().Propagate("SPEED", 33, panel.KindNone)
	if err := m.SavePreset("warm hall"); err != nil {
		t.Fatalf("SavePreset failed: %v", err)
	}
	if name, slot := m.CurrentPreset(); name != "warm hall" || slot != "1A" {
		t.Fatalf("current preset got (%q, %q), expected (warm hall, 1A)", name, slot)
	}
	m.Bindings().Propagate("DECAY", 10, panel.KindNone)
	m.Unit(luna.UnitMod).Bindings().Propagate("SPEED", 0, panel.KindNone)
	if err := m.LoadPreset("warm hall"); err != nil {
		t.Fatalf("LoadPreset failed: %v", err)
	}
	if got := m.Bindings().Canonical("DECAY"); got != 72 {
		t.Fatalf("DECAY after load got %v, expected 72", got)
	}
	if got := m.Unit(luna.UnitMod).Bindings().Canonical("SPEED"); got != 33 {
		t.Fatalf("mod SPEED after load got %v, expected 33", got)
	}
}

func TestModelSavePresetRequiresName(t *testing.T) {
	m, _ := newTestModel(t)
	if err := m.SavePreset(""); err == nil {
		t.Fatal("empty name save succeeded")
	}
	alerts := m.Alerts().Drain()
	if len(alerts) != 1 || alerts[0].Severity != panel.Warning {
		t.Fatalf("expected one warning alert, got %v", alerts)
	}
	if len(m.PresetNames()) != 0 {
		t.Fatal("a preset was stored despite the empty name")
	}
}

func TestModelDeleteClearsSelection(t *testing.T) {
	m, _ := newTestModel(t)
	if err := m.SavePreset("gone soon"); err != nil {
		t.Fatalf("SavePreset failed: %v", err)
	}
	if err := m.DeletePreset("gone soon"); err != nil {
		t.Fatalf("DeletePreset failed: %v", err)
	}
	if name, slot := m.CurrentPreset(); name != "" || slot != "" {
		t.Fatalf("selection survived delete: (%q, %q)", name, slot)
	}
}

func TestModelPresetNameView(t *testing.T) {
	m, _ := newTestModel(t)
	if got := m.PresetName().Value(); got != "" {
		t.Fatalf("preset name before any save got %q", got)
	}
	if m.PresetName().SetValue("anything") {
		t.Fatal("rename with no selection succeeded")
	}
	m.SavePreset("first")
	m.SavePreset("second")
	m.LoadPreset("first")
	if got := m.PresetName().Value(); got != "first" {
		t.Fatalf("preset name got %q, expected first", got)
	}
	if !m.PresetName().SetValue("renamed") {
		t.Fatal("rename through the name view failed")
	}
	if got := m.PresetName().Value(); got != "renamed" {
		t.Fatalf("preset name after rename got %q", got)
	}
	if slot, err := m.PresetSlot("renamed"); err != nil || slot != "1A" {
		t.Fatalf("renamed preset slot got (%q, %v), expected 1A", slot, err)
	}
	if m.PresetName().SetValue("second") {
		t.Fatal("rename onto an existing name succeeded")
	}
	if m.PresetName().SetValue("") {
		t.Fatal("rename to an empty name succeeded")
	}
}

func TestModelSavePresetSelectionSurvivesWriteFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory in the document's place makes every write fail.
	if err := os.Mkdir(filepath.Join(dir, panel.RigStoreFile), 0755); err != nil {
		t.Fatalf("creating obstruction failed: %v", err)
	}
	m := panel.NewModel(panel.NewBroker(), panel.NullMIDIContext{}, dir)
	m.Alerts().Drain()
	if err := m.SavePreset("stays"); err == nil {
		t.Fatal("save over an unwritable document reported success")
	}
	if name, slot := m.CurrentPreset(); name != "stays" || slot != "1A" {
		t.Fatalf("selection got (%q, %q), expected (stays, 1A)", name, slot)
	}
	if len(m.PresetNames()) != 1 {
		t.Fatal("in-memory save rolled back")
	}
	alerts := m.Alerts().Drain()
	if len(alerts) != 1 || alerts[0].Severity != panel.Error {
		t.Fatalf("expected one error alert, got %v", alerts)
	}
}

func TestModelRenameFollowsSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m.SavePreset("old name")
	if err := m.RenamePreset("old name", "new name"); err != nil {
		t.Fatalf("RenamePreset failed: %v", err)
	}
	if name, _ := m.CurrentPreset(); name != "new name" {
		t.Fatalf("current preset got %q, expected new name", name)
	}
}

func TestModelBlendedValues(t *testing.T) {
	m, _ := newTestModel(t)
	m.Bindings().Propagate("DECAY", 20, panel.KindNone)
	m.SavePreset("dark")
	m.Bindings().Propagate("DECAY", 80, panel.KindNone)
	m.SavePreset("bright")
	m.Surface().AssignCorner(panel.TopLeft, "dark")
	m.Surface().AssignCorner(panel.BottomLeft, "dark")
	m.Surface().AssignCorner(panel.TopRight, "bright")
	m.Surface().AssignCorner(panel.BottomRight, "bright")
	m.Surface().MoveCursor(panel.PrimaryCursor, panel.Point{
		X: panel.DefaultSurfaceWidth / 2, Y: panel.DefaultSurfaceHeight / 2,
	})
	if got := m.BlendedValues()["DECAY"]; got != 50 {
		t.Fatalf("blended DECAY got %v, expected 50", got)
	}
}

func TestModelBlendedValuesFallBackToLive(t *testing.T) {
	m, _ := newTestModel(t)
	m.Bindings().Propagate("DECAY", 64, panel.KindNone)
	// No corners assigned, so every corner contributes the live state.
	if got := m.BlendedValues()["DECAY"]; got != 64 {
		t.Fatalf("blended DECAY got %v, expected live 64", got)
	}
}

func TestModelApplyBlend(t *testing.T) {
	m, _ := newTestModel(t)
	if m.ApplyBlend().Enabled() {
		t.Fatal("blend enabled with an empty store")
	}
	m.Bindings().Propagate("DECAY", 20, panel.KindNone)
	m.SavePreset("dark")
	if !m.ApplyBlend().Enabled() {
		t.Fatal("blend disabled with a stored preset")
	}
	m.Surface().AssignCorner(panel.TopLeft, "dark")
	m.Bindings().Propagate("DECAY", 100, panel.KindNone)
	m.ApplyBlend().Do()
	got := m.Bindings().Canonical("DECAY")
	if got >= 100 || got <= 20 {
		t.Fatalf("applied blend DECAY got %v, expected strictly between 20 and 100", got)
	}
}

func TestModelRestoreDefaults(t *testing.T) {
	m, _ := newTestModel(t)
	m.Bindings().Propagate("DAMPING", 99, panel.KindNone)
	m.RestoreDefaults().Do()
	if got := m.Bindings().Canonical("DAMPING"); got != 25.4 {
		t.Fatalf("DAMPING after restore got %v, expected 25.4", got)
	}
}

func TestModelRemoteEventThroughBroker(t *testing.T) {
	m, broker := newTestModel(t)
	broker.ToModel <- panel.MsgToModel{Data: panel.RemoteEvent{Controller: 20, Value: 127}}
	broker.ToModel <- panel.MsgToModel{Data: func() {
		broker.CloseModel <- struct{}{}
	}}
	m.ProcessMessages()
	<-broker.FinishedModel
	if got := m.Bindings().Canonical(luna.RigParams[0].Name); got != 100 {
		t.Fatalf("remote CC 20 at 127 left %s at %v, expected 100", luna.RigParams[0].Name, got)
	}
}

func TestModelFactoryPresets(t *testing.T) {
	m, _ := newTestModel(t)
	names := m.FactoryPresetNames()
	if len(names) == 0 {
		t.Fatal("no factory presets loaded")
	}
	if err := m.LoadFactoryPreset("Great Hall"); err != nil {
		t.Fatalf("LoadFactoryPreset failed: %v", err)
	}
	if got := m.Bindings().Canonical("DECAY"); got != 78.5 {
		t.Fatalf("DECAY after factory load got %v, expected 78.5", got)
	}
	if got := m.Unit(luna.UnitMod).Bindings().Canonical("SPREAD"); got != 40 {
		t.Fatalf("mod SPREAD after factory load got %v, expected 40", got)
	}
	if err := m.LoadFactoryPreset("no such"); err == nil {
		t.Fatal("unknown factory preset loaded")
	}
}

func TestModUnitPresets(t *testing.T) {
	m, _ := newTestModel(t)
	u := m.Unit(luna.UnitEch)
	u.Bindings().Propagate("TIME", 42, panel.KindNone)
	if err := u.SavePreset("dotted eighth"); err != nil {
		t.Fatalf("SavePreset failed: %v", err)
	}
	u.Bindings().Propagate("TIME", 0, panel.KindNone)
	if err := u.LoadPreset("dotted eighth"); err != nil {
		t.Fatalf("LoadPreset failed: %v", err)
	}
	if got := u.Bindings().Canonical("TIME"); got != 42 {
		t.Fatalf("TIME after load got %v, expected 42", got)
	}
	if u.CurrentPreset() != "dotted eighth" {
		t.Fatalf("current preset got %q", u.CurrentPreset())
	}
	if err := u.SavePreset("dotted eighth"); err == nil {
		t.Fatal("duplicate unit preset save succeeded")
	}
}

package panel_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	luna "github.com/AtlasAudioDesigns/Luna"
	"github.com/AtlasAudioDesigns/Luna/panel"
)

type nopWriteCloser struct {
	*bytes.Buffer
}

func (nopWriteCloser) Close() error { return nil }

func TestExportImportPresetYAML(t *testing.T) {
	src, _ := newTestModel(t)
	src.Bindings().Propagate("DECAY", 61.5, panel.KindNone)
	src.Unit(luna.UnitBic).Bindings().Propagate("DEPTH", 30, panel.KindNone)
	if err := src.SavePreset("road rig"); err != nil {
		t.Fatalf("SavePreset failed: %v", err)
	}
	var buf bytes.Buffer
	if err := src.ExportPreset(nopWriteCloser{&buf}, "road rig.yml", "road rig"); err != nil {
		t.Fatalf("ExportPreset failed: %v", err)
	}
	if strings.Contains(buf.String(), "slot") {
		t.Fatalf("exported document carries a slot:\n%s", buf.String())
	}

	dst, _ := newTestModel(t)
	if err := dst.ImportPreset(io.NopCloser(&buf)); err != nil {
		t.Fatalf("ImportPreset failed: %v", err)
	}
	if err := dst.LoadPreset("road rig"); err != nil {
		t.Fatalf("LoadPreset failed: %v", err)
	}
	if got := dst.Bindings().Canonical("DECAY"); got != 61.5 {
		t.Fatalf("imported DECAY got %v, expected 61.5", got)
	}
	if got := dst.Unit(luna.UnitBic).Bindings().Canonical("DEPTH"); got != 30 {
		t.Fatalf("imported bic DEPTH got %v, expected 30", got)
	}
	if slot, err := dst.PresetSlot("road rig"); err != nil || slot != "1A" {
		t.Fatalf("imported preset slot got (%q, %v), expected fresh 1A", slot, err)
	}
}

func TestExportPresetJSON(t *testing.T) {
	m, _ := newTestModel(t)
	m.SavePreset("json one")
	var buf bytes.Buffer
	if err := m.ExportPreset(nopWriteCloser{&buf}, "out.json", "json one"); err != nil {
		t.Fatalf("ExportPreset failed: %v", err)
	}
	pf, err := panel.ReadPresetFile(&buf)
	if err != nil {
		t.Fatalf("ReadPresetFile failed: %v", err)
	}
	if pf.Name != "json one" {
		t.Fatalf("name got %q, expected json one", pf.Name)
	}
}

func TestReadPresetFileRejectsNameless(t *testing.T) {
	_, err := panel.ReadPresetFile(strings.NewReader(`{"preset": {"values": {"DECAY": 1}}}`))
	if err == nil {
		t.Fatal("nameless preset file accepted")
	}
}

func TestReadPresetFileRejectsGarbage(t *testing.T) {
	_, err := panel.ReadPresetFile(strings.NewReader("][ not a document"))
	if err == nil {
		t.Fatal("garbage accepted as a preset file")
	}
}

func TestImportPresetDuplicateName(t *testing.T) {
	m, _ := newTestModel(t)
	m.SavePreset("taken")
	doc := `{"name": "taken", "preset": {"values": {"DECAY": 5}}}`
	if err := m.ImportPreset(io.NopCloser(strings.NewReader(doc))); err == nil {
		t.Fatal("import over an existing name succeeded")
	}
}

package panel

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	luna "github.com/AtlasAudioDesigns/Luna"
	"gopkg.in/yaml.v3"
)

// PresetFile is the single-preset exchange document, for moving one
// preset between rigs. JSON and YAML forms are accepted; the slot is
// never carried over (the receiving store assigns its own).
type PresetFile struct {
	Name   string      `json:"name" yaml:"name"`
	Preset luna.Preset `json:"preset" yaml:"preset"`
}

// ReadPresetFile parses a preset exchange document, trying JSON first
// and YAML second.
func ReadPresetFile(r io.Reader) (PresetFile, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return PresetFile{}, err
	}
	var pf PresetFile
	if errJSON := json.Unmarshal(b, &pf); errJSON != nil {
		if errYaml := yaml.Unmarshal(b, &pf); errYaml != nil {
			return PresetFile{}, fmt.Errorf("unmarshaling preset file: %v / %v", errYaml, errJSON)
		}
	}
	if pf.Name == "" {
		return PresetFile{}, fmt.Errorf("preset file has no name")
	}
	return pf, nil
}

// ImportPreset reads a preset exchange document into the rig store
// under its own name, with a freshly assigned slot.
func (m *Model) ImportPreset(r io.ReadCloser) error {
	pf, err := ReadPresetFile(r)
	if closeErr := r.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		m.Alerts().Add(fmt.Sprintf("Importing preset: %v", err), Error)
		return err
	}
	pf.Preset.Slot = ""
	if _, err := m.rig.Save(pf.Name, pf.Preset); err != nil {
		m.reportStoreError(err)
		return err
	}
	return nil
}

// ExportPreset writes one stored rig preset as an exchange document.
// The format follows path's extension: ".json" writes JSON, anything
// else YAML.
func (m *Model) ExportPreset(w io.WriteCloser, path, name string) error {
	p, err := m.rig.Load(name)
	if err != nil {
		m.reportStoreError(err)
		return err
	}
	p.Slot = ""
	pf := PresetFile{Name: name, Preset: p}
	var contents []byte
	if filepath.Ext(path) == ".json" {
		contents, err = json.MarshalIndent(pf, "", "  ")
	} else {
		contents, err = yaml.Marshal(pf)
	}
	if err != nil {
		m.Alerts().Add(fmt.Sprintf("Marshaling preset file: %v", err), Error)
		return err
	}
	if _, err := w.Write(contents); err != nil {
		m.Alerts().Add(fmt.Sprintf("Writing preset file: %v", err), Error)
		return err
	}
	if err := w.Close(); err != nil {
		m.Alerts().Add(fmt.Sprintf("Writing preset file: %v", err), Error)
		return err
	}
	return nil
}

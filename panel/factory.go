package panel

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	luna "github.com/AtlasAudioDesigns/Luna"
	"gopkg.in/yaml.v2"
)

//go:embed presets/*
var factoryPresetFS embed.FS

// FactoryPreset is one built-in, read-only preset shipped with the
// firmware. Factory presets live outside the user stores: loading one
// pushes its values into the live state without touching any store.
type FactoryPreset struct {
	Name   string
	Preset luna.Preset
}

func loadFactoryPresets(alerts *Alerts) []FactoryPreset {
	var ret []FactoryPreset
	fs.WalkDir(factoryPresetFS, "presets", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(factoryPresetFS, path)
		if err != nil {
			return nil
		}
		var pf PresetFile
		if err := yaml.UnmarshalStrict(data, &pf); err != nil {
			alerts.Add(fmt.Sprintf("Factory preset %s: %v", path, err), Warning)
			return nil
		}
		if pf.Name == "" {
			base := filepath.Base(path)
			pf.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		ret = append(ret, FactoryPreset{Name: pf.Name, Preset: pf.Preset})
		return nil
	})
	return ret
}

// FactoryPresetNames lists the built-in presets.
func (m *Model) FactoryPresetNames() []string {
	ret := make([]string, len(m.factory))
	for i, p := range m.factory {
		ret[i] = p.Name
	}
	return ret
}

// LoadFactoryPreset pushes a built-in preset into the live state.
func (m *Model) LoadFactoryPreset(name string) error {
	for _, p := range m.factory {
		if p.Name != name {
			continue
		}
		m.bindings.SetValues(p.Preset.Values)
		if p.Preset.Modulation != nil {
			for _, key := range luna.UnitKeys {
				if values := p.Preset.Modulation.Unit(key); values != nil {
					m.units[key].bindings.SetValues(values)
				}
			}
		}
		m.currentName, m.currentSlot = "", ""
		return nil
	}
	return NotFoundError{Name: name}
}

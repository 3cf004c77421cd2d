package panel

import (
	"fmt"

	luna "github.com/AtlasAudioDesigns/Luna"
)

// ModUnit is one of the three modulation units: its own binding
// registry (one knob per parameter), its own name-keyed preset store,
// a bypass switch, and the transient "currently selected preset" label.
type ModUnit struct {
	m        *Model
	key      string
	bindings *Registry
	store    *Store
	current  string
	bypassed bool
}

// Unit returns the modulation unit with the given key (luna.UnitMod,
// luna.UnitBic or luna.UnitEch), or nil for an unknown key.
func (m *Model) Unit(key string) *ModUnit { return m.units[key] }

// Units yields the modulation units in panel order.
func (m *Model) Units(yield func(u *ModUnit) bool) {
	for _, key := range luna.UnitKeys {
		if !yield(m.units[key]) {
			return
		}
	}
}

func (u *ModUnit) Key() string           { return u.key }
func (u *ModUnit) Bindings() *Registry   { return u.bindings }
func (u *ModUnit) PresetNames() []string { return u.store.Names() }

// CurrentPreset is the transient selection label; empty until a preset
// is loaded or saved this session.
func (u *ModUnit) CurrentPreset() string { return u.current }

// SavePreset stores the unit's current values under a new name.
func (u *ModUnit) SavePreset(name string) error {
	_, err := u.store.Save(name, luna.Preset{Values: u.bindings.Values()})
	if err != nil {
		u.m.reportStoreError(err)
		if !persistFailed(err) {
			return err
		}
	}
	u.current = name
	return err
}

// UpdatePreset overwrites an existing preset with the current values.
func (u *ModUnit) UpdatePreset(name string) error {
	err := u.store.Update(name, luna.Preset{Values: u.bindings.Values()})
	if err != nil {
		u.m.reportStoreError(err)
		if !persistFailed(err) {
			return err
		}
	}
	u.current = name
	return err
}

// LoadPreset pushes a stored preset's values to the unit's knobs.
func (u *ModUnit) LoadPreset(name string) error {
	p, err := u.store.Load(name)
	if err != nil {
		u.m.reportStoreError(err)
		return err
	}
	u.bindings.SetValues(p.Values)
	u.current = name
	return nil
}

func (u *ModUnit) RenamePreset(old, new string) error {
	err := u.store.Rename(old, new)
	if err != nil {
		u.m.reportStoreError(err)
		if !persistFailed(err) {
			return err
		}
	}
	if u.current == old {
		u.current = new
	}
	return err
}

func (u *ModUnit) DeletePreset(name string) error {
	err := u.store.Delete(name)
	if err != nil {
		u.m.reportStoreError(err)
		if !persistFailed(err) {
			return err
		}
	}
	if u.current == name {
		u.current = ""
	}
	return err
}

// Param returns the unit parameter view for name.
func (u *ModUnit) Param(name string) (Parameter, bool) {
	name = luna.NormalizeName(name)
	for _, n := range luna.UnitParams[u.key] {
		if n == name {
			return Parameter{m: u.m, unit: u, name: n}, true
		}
	}
	return Parameter{}, false
}

// Params yields the unit's parameter views in panel order.
func (u *ModUnit) Params(yield func(p Parameter) bool) {
	for _, n := range luna.UnitParams[u.key] {
		if !yield(Parameter{m: u.m, unit: u, name: n}) {
			return
		}
	}
}

// Bypassed is the unit's bypass switch.
func (u *ModUnit) Bypassed() Bool { return MakeBoolFromPtr(&u.bypassed) }

func newModUnit(m *Model, key, dir string) *ModUnit {
	u := &ModUnit{
		m:        m,
		key:      key,
		bindings: NewRegistry(luna.UnitDefaults(key)),
	}
	var err error
	u.store, err = NewStore(storePath(dir, fmt.Sprintf("presets_%s.json", key)), false)
	if err != nil {
		m.reportStoreError(err)
	}
	return u
}

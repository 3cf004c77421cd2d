package panel

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	luna "github.com/AtlasAudioDesigns/Luna"
)

type (
	// Model is the mutable state behind the control surface: the binding
	// registry of the main rig, the three modulation units, the four
	// preset stores, the corner-blend surface, tap tempo and the alert
	// queue. It is owned by a single goroutine; other goroutines reach it
	// through the Broker.
	Model struct {
		broker   *Broker
		bindings *Registry
		rig      *Store
		units    map[string]*ModUnit
		surface  *Surface
		tap      TapTempo
		midi     midiState
		alerts   []Alert
		factory  []FactoryPreset
		bypassed bool

		// transient selection; never persisted, empty on process start
		currentName string
		currentSlot string
	}
)

// Preset document file names, relative to the store directory.
const RigStoreFile = "presets.json"

func storePath(dir, file string) string {
	if dir == "" {
		return file
	}
	return filepath.Join(dir, file)
}

// NewModel loads the four preset stores from dir (malformed documents
// degrade to empty stores and queue one alert each) and starts with
// every parameter at its default value. midiContext may be a
// NullMIDIContext when the build has no MIDI driver.
func NewModel(broker *Broker, midiContext MIDIContext, dir string) *Model {
	m := &Model{
		broker:   broker,
		bindings: NewRegistry(luna.RigDefaults()),
		surface:  NewSurface(DefaultSurfaceWidth, DefaultSurfaceHeight, DefaultSurfaceRadius),
		units:    make(map[string]*ModUnit, len(luna.UnitKeys)),
	}
	var err error
	m.rig, err = NewStore(storePath(dir, RigStoreFile), true)
	if err != nil {
		m.reportStoreError(err)
	}
	for _, key := range luna.UnitKeys {
		m.units[key] = newModUnit(m, key, dir)
	}
	m.factory = loadFactoryPresets(m.Alerts())
	m.initMIDI(midiContext)
	return m
}

func (m *Model) Bindings() *Registry { return m.bindings }
func (m *Model) Surface() *Surface   { return m.surface }
func (m *Model) Tap() *TapTempo      { return &m.tap }

// PresetNames lists the rig store's presets in insertion order.
func (m *Model) PresetNames() []string { return m.rig.Names() }

// PresetSlot returns the slot of a stored rig preset.
func (m *Model) PresetSlot(name string) (string, error) {
	p, err := m.rig.Load(name)
	if err != nil {
		return "", err
	}
	return p.Slot, nil
}

// CurrentPreset is the transient selection: the rig preset last saved
// or loaded this session, with its slot. Empty until then.
func (m *Model) CurrentPreset() (name, slot string) {
	return m.currentName, m.currentSlot
}

// Snapshot captures the live state as a preset: the rig values plus the
// three modulation units.
func (m *Model) Snapshot() luna.Preset {
	mod := luna.Modulation{
		Mod: m.units[luna.UnitMod].bindings.Values(),
		Bic: m.units[luna.UnitBic].bindings.Values(),
		Ech: m.units[luna.UnitEch].bindings.Values(),
	}
	return luna.Preset{Values: m.bindings.Values(), Modulation: &mod}
}

// persistFailed reports whether err is only a failed disk write, in
// which case the in-memory mutation stands and the selection must
// follow it.
func persistFailed(err error) bool {
	var persistErr PersistenceError
	return errors.As(err, &persistErr)
}

// SavePreset stores the live state under a new name, with the slot
// auto-assigned. The name must be non-empty and unused.
func (m *Model) SavePreset(name string) error {
	if name == "" {
		err := errors.New("preset name must be entered")
		m.Alerts().Add(err.Error(), Warning)
		return err
	}
	slot, err := m.rig.Save(name, m.Snapshot())
	if err != nil {
		m.reportStoreError(err)
		if !persistFailed(err) {
			return err
		}
	}
	m.currentName, m.currentSlot = name, slot
	return err
}

// UpdatePreset overwrites an existing rig preset with the live state,
// keeping its name and slot.
func (m *Model) UpdatePreset(name string) error {
	err := m.rig.Update(name, m.Snapshot())
	if err != nil {
		m.reportStoreError(err)
		if !persistFailed(err) {
			return err
		}
	}
	m.currentName = name
	if p, loadErr := m.rig.Load(name); loadErr == nil {
		m.currentSlot = p.Slot
	}
	return err
}

// LoadPreset pushes a stored rig preset into the live state: the main
// values through the sync engine, and the modulation maps into each
// unit when the snapshot includes them.
func (m *Model) LoadPreset(name string) error {
	p, err := m.rig.Load(name)
	if err != nil {
		m.reportStoreError(err)
		return err
	}
	m.bindings.SetValues(p.Values)
	if p.Modulation != nil {
		for _, key := range luna.UnitKeys {
			if values := p.Modulation.Unit(key); values != nil {
				m.units[key].bindings.SetValues(values)
			}
		}
	}
	m.currentName, m.currentSlot = name, p.Slot
	return nil
}

func (m *Model) RenamePreset(old, new string) error {
	err := m.rig.Rename(old, new)
	if err != nil {
		m.reportStoreError(err)
		if !persistFailed(err) {
			return err
		}
	}
	if m.currentName == old {
		m.currentName = new
	}
	return err
}

func (m *Model) DeletePreset(name string) error {
	err := m.rig.Delete(name)
	if err != nil {
		m.reportStoreError(err)
		if !persistFailed(err) {
			return err
		}
	}
	if m.currentName == name {
		m.currentName, m.currentSlot = "", ""
	}
	return err
}

// CycleCorner advances a blend-surface corner through the rig store's
// presets, wrapping.
func (m *Model) CycleCorner(c Corner) {
	m.surface.CycleCorner(c, m.rig.Names())
}

// BlendedValues morphs the four corner presets by the surface's current
// blend weights. A corner with no (or an unknown) assigned preset
// contributes the live values.
func (m *Model) BlendedValues() map[string]float64 {
	live := m.bindings.Values()
	var sets [4]map[string]float64
	for c := TopLeft; c <= BottomRight; c++ {
		sets[c] = live
		if name := m.surface.CornerPreset(c); name != "" {
			if p, err := m.rig.Load(name); err == nil {
				sets[c] = p.Values
			}
		}
	}
	names := make([]string, len(luna.RigParams))
	for i, def := range luna.RigParams {
		names[i] = def.Name
	}
	return Morph(m.surface.Blend(), names, sets)
}

// PresetName is the transient selection's name as an editable text
// value: setting it renames the selected rig preset. It is empty, and
// rejects writes, while nothing is selected.
func (m *Model) PresetName() String { return MakeString((*presetName)(m)) }

type presetName Model

func (v *presetName) Value() string { return v.currentName }

func (v *presetName) SetValue(value string) bool {
	m := (*Model)(v)
	if m.currentName == "" || value == "" {
		return false
	}
	return m.RenamePreset(m.currentName, value) == nil
}

// Bypassed is the master bypass switch.
func (m *Model) Bypassed() Bool { return MakeBoolFromPtr(&m.bypassed) }

// ApplyBlend pushes the current blend morph into the live values.
func (m *Model) ApplyBlend() Action { return MakeAction((*applyBlend)(m)) }

type applyBlend Model

func (m *applyBlend) Enabled() bool { return (*Model)(m).rig.Len() > 0 }
func (m *applyBlend) Do() {
	model := (*Model)(m)
	model.bindings.SetValues(model.BlendedValues())
}

// ResetSurface recenters both blend cursors.
func (m *Model) ResetSurface() Action { return MakeAction((*resetSurface)(m)) }

type resetSurface Model

func (m *resetSurface) Do() { m.surface.Reset() }

// RestoreDefaults returns every rig parameter to its default value.
func (m *Model) RestoreDefaults() Action { return MakeAction((*restoreDefaults)(m)) }

type restoreDefaults Model

func (m *restoreDefaults) Do() { m.bindings.SetValues(luna.RigDefaults()) }

// TapTempo records a tap at the current time.
func (m *Model) TapTempo() Action { return MakeAction((*tapAction)(m)) }

type tapAction Model

func (m *tapAction) Do() { m.tap.Tap(time.Now()) }

// ProcessMessages runs on the model goroutine, handling broker traffic
// until closure is requested; it then flushes the stores and closes
// FinishedModel.
func (m *Model) ProcessMessages() {
	for {
		select {
		case msg := <-m.broker.ToModel:
			m.processMsg(msg)
		case <-m.broker.CloseModel:
			m.Close()
			close(m.broker.FinishedModel)
			return
		}
	}
}

func (m *Model) processMsg(msg MsgToModel) {
	switch data := msg.Data.(type) {
	case RemoteEvent:
		m.handleRemoteEvent(data)
	case func():
		data()
	}
}

// Close flushes every store; any write that failed earlier gets one
// more chance before teardown.
func (m *Model) Close() error {
	err := m.rig.Flush()
	for _, key := range luna.UnitKeys {
		err = errors.Join(err, m.units[key].store.Flush())
	}
	m.midi.close()
	if err != nil {
		m.Alerts().Add(fmt.Sprintf("Flushing preset stores: %v", err), Error)
	}
	return err
}

func (m *Model) reportStoreError(err error) {
	severity := Warning
	var persistErr PersistenceError
	var malformedErr MalformedStoreError
	if errors.As(err, &persistErr) || errors.As(err, &malformedErr) {
		severity = Error
	}
	m.Alerts().Add(err.Error(), severity)
}

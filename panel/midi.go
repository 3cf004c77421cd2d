package panel

import (
	"fmt"
	"strings"

	luna "github.com/AtlasAudioDesigns/Luna"
)

type (
	// MIDIContext abstracts the MIDI driver, so the model never depends
	// on cgo. The gomidi subpackage provides the rtmidi-backed
	// implementation; builds without cgo use NullMIDIContext.
	MIDIContext interface {
		InputDevices(yield func(device MIDIDevice) bool)
		Close()
	}

	MIDIDevice interface {
		Open() error
		Close() error
		IsOpen() bool
		String() string
	}

	// RemoteEvent is one control-change message from the remote
	// controller, posted to the broker by the driver goroutine.
	RemoteEvent struct {
		Controller uint8
		Value      uint8
	}

	NullMIDIContext struct{}

	midiState struct {
		context MIDIContext
		inputs  []MIDIDevice
		ccParam map[uint8]string
	}

	// MIDIModel is the Model view for MIDI device handling.
	MIDIModel Model
)

func (NullMIDIContext) InputDevices(yield func(device MIDIDevice) bool) {}
func (NullMIDIContext) Close()                                         {}

// Remote control-change numbers start here; controller firstController+i
// drives the i-th rig parameter.
const firstController uint8 = 20

func (m *Model) MIDI() *MIDIModel { return (*MIDIModel)(m) }

func (m *Model) initMIDI(context MIDIContext) {
	if context == nil {
		context = NullMIDIContext{}
	}
	m.midi.context = context
	m.midi.ccParam = make(map[uint8]string, len(luna.RigParams))
	for i, def := range luna.RigParams {
		m.midi.ccParam[firstController+uint8(i)] = def.Name
	}
	m.MIDI().Refresh()
}

func (s *midiState) close() {
	if s.context != nil {
		s.context.Close()
	}
}

// Refresh re-enumerates the input devices.
func (m *MIDIModel) Refresh() {
	m.midi.inputs = m.midi.inputs[:0]
	for device := range m.midi.context.InputDevices {
		m.midi.inputs = append(m.midi.inputs, device)
	}
}

// InputNames lists the available MIDI input device names.
func (m *MIDIModel) InputNames() []string {
	ret := make([]string, len(m.midi.inputs))
	for i, device := range m.midi.inputs {
		ret[i] = device.String()
	}
	return ret
}

// Open opens the input device at the given index into InputNames.
func (m *MIDIModel) Open(index int) error {
	if index < 0 || index >= len(m.midi.inputs) {
		return fmt.Errorf("no MIDI input device at index %d", index)
	}
	if err := m.midi.inputs[index].Open(); err != nil {
		(*Model)(m).Alerts().Add(fmt.Sprintf("Failed to open MIDI input port: %v", err), Error)
		return err
	}
	return nil
}

// OpenByPrefix opens the first input device whose name starts with
// prefix.
func (m *MIDIModel) OpenByPrefix(prefix string) error {
	for i, device := range m.midi.inputs {
		if strings.HasPrefix(device.String(), prefix) {
			return m.Open(i)
		}
	}
	return fmt.Errorf("no MIDI input device found with prefix %q", prefix)
}

// MapController binds a control-change number to a rig parameter.
func (m *MIDIModel) MapController(controller uint8, param string) {
	m.midi.ccParam[controller] = luna.NormalizeName(param)
}

// ControllerFor returns the parameter a control-change number drives.
func (m *MIDIModel) ControllerFor(controller uint8) (string, bool) {
	name, ok := m.midi.ccParam[controller]
	return name, ok
}

// handleRemoteEvent maps a CC message to its parameter and propagates
// the value, scaled from the 0..127 MIDI domain to canonical 0..100.
func (m *Model) handleRemoteEvent(e RemoteEvent) {
	name, ok := m.midi.ccParam[e.Controller]
	if !ok {
		return
	}
	canonical := float64(e.Value) * luna.CanonicalMax / 127
	m.bindings.Propagate(name, canonical, KindRemote)
}

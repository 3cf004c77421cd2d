//go:build cgo

package gomidi

import (
	"errors"
	"fmt"

	"github.com/AtlasAudioDesigns/Luna/panel"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

type (
	// RTMIDIContext is the rtmidi-backed panel.MIDIContext. Incoming
	// control-change messages are posted to the broker from the driver's
	// listener goroutine; the model goroutine consumes them.
	RTMIDIContext struct {
		driver             *rtmididrv.Driver
		currentIn          drivers.In
		inputDevices       []RTMIDIDevice
		devicesInitialized bool
		broker             *panel.Broker
	}

	RTMIDIDevice struct {
		context *RTMIDIContext
		in      drivers.In
	}
)

// NewContext opens the rtmidi driver. A failure to open leaves the
// context usable but deviceless, like a machine with no MIDI ports.
func NewContext(broker *panel.Broker) *RTMIDIContext {
	m := RTMIDIContext{broker: broker}
	m.driver, _ = rtmididrv.New()
	return &m
}

func (m *RTMIDIContext) InputDevices(yield func(device panel.MIDIDevice) bool) {
	if m.devicesInitialized {
		for _, device := range m.inputDevices {
			if !yield(device) {
				return
			}
		}
		return
	}
	if m.driver == nil {
		return
	}
	ins, err := m.driver.Ins()
	if err != nil {
		return
	}
	for _, in := range ins {
		device := RTMIDIDevice{context: m, in: in}
		m.inputDevices = append(m.inputDevices, device)
		if !yield(device) {
			break
		}
	}
	m.devicesInitialized = true
}

// Open an input device, closing the currently open one if necessary.
func (d RTMIDIDevice) Open() error {
	if d.context.currentIn == d.in {
		return nil
	}
	if d.context.driver == nil {
		return errors.New("no MIDI driver available")
	}
	if d.context.HasDeviceOpen() {
		d.context.currentIn.Close()
	}
	d.context.currentIn = d.in
	if err := d.in.Open(); err != nil {
		d.context.currentIn = nil
		return fmt.Errorf("opening MIDI input failed: %w", err)
	}
	if _, err := midi.ListenTo(d.in, d.context.HandleMessage); err != nil {
		d.in.Close()
		d.context.currentIn = nil
		return fmt.Errorf("listening to MIDI input failed: %w", err)
	}
	return nil
}

func (d RTMIDIDevice) Close() error {
	if d.context.currentIn != d.in {
		return nil
	}
	d.context.currentIn = nil
	return d.in.Close()
}

func (d RTMIDIDevice) IsOpen() bool {
	return d.context.currentIn == d.in && d.in.IsOpen()
}

func (d RTMIDIDevice) String() string { return d.in.String() }

// HandleMessage runs on the driver's listener goroutine: control-change
// messages cross to the model through the broker, everything else is
// dropped.
func (m *RTMIDIContext) HandleMessage(msg midi.Message, timestampms int32) {
	var channel, controller, value uint8
	if !msg.GetControlChange(&channel, &controller, &value) {
		return
	}
	panel.TrySend(m.broker.ToModel, panel.MsgToModel{
		Data: panel.RemoteEvent{Controller: controller, Value: value},
	})
}

func (m *RTMIDIContext) HasDeviceOpen() bool {
	return m.currentIn != nil && m.currentIn.IsOpen()
}

func (m *RTMIDIContext) Close() {
	if m.driver == nil {
		return
	}
	if m.currentIn != nil && m.currentIn.IsOpen() {
		m.currentIn.Close()
	}
	m.driver.Close()
	m.driver = nil
}

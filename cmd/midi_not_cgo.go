//go:build !cgo

package cmd

import (
	"github.com/AtlasAudioDesigns/Luna/panel"
)

func NewMIDIContext(broker *panel.Broker) panel.MIDIContext {
	// with no cgo, we cannot use MIDI, so return a null context
	return panel.NullMIDIContext{}
}

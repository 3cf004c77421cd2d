//go:build cgo

package cmd

import (
	"github.com/AtlasAudioDesigns/Luna/panel"
	"github.com/AtlasAudioDesigns/Luna/panel/gomidi"
)

func NewMIDIContext(broker *panel.Broker) panel.MIDIContext {
	return gomidi.NewContext(broker)
}

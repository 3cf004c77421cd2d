package panel

import (
	"fmt"
	"math"
	"strings"

	luna "github.com/AtlasAudioDesigns/Luna"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	// Parameter is a host-facing view of one parameter, rig or
	// modulation-unit. The Knob and Fader views are the input event
	// paths: setting one propagates through the sync engine to every
	// other live representation of the parameter.
	Parameter struct {
		m    *Model
		unit *ModUnit // nil for rig parameters
		name string
	}

	// Params is a Model view yielding the rig parameter list.
	Params Model

	knobValue  Parameter
	faderValue Parameter
)

// Representation raw domains: the knob moves in whole canonical units,
// the fader in tenths.
const (
	KnobScale  = 1
	FaderScale = 10
)

var titleCaser = cases.Title(language.English)

func (m *Model) Params() *Params { return (*Params)(m) }

func (pl *Params) Count() int { return len(luna.RigParams) }

// Iterate yields the rig parameters in panel order.
func (pl *Params) Iterate(yield func(p Parameter) bool) {
	for _, def := range luna.RigParams {
		if !yield(Parameter{m: (*Model)(pl), name: def.Name}) {
			return
		}
	}
}

// Get returns the rig parameter view for name.
func (pl *Params) Get(name string) (Parameter, bool) {
	name = luna.NormalizeName(name)
	for _, def := range luna.RigParams {
		if def.Name == name {
			return Parameter{m: (*Model)(pl), name: name}, true
		}
	}
	return Parameter{}, false
}

func (p Parameter) registry() *Registry {
	if p.unit != nil {
		return p.unit.bindings
	}
	return p.m.bindings
}

func (p Parameter) Name() string { return p.name }

// DisplayName is the panel label form of the name, e.g. "PRE-DELAY"
// becomes "Pre-Delay".
func (p Parameter) DisplayName() string {
	return titleCaser.String(strings.ToLower(p.name))
}

// Value returns the canonical value.
func (p Parameter) Value() float64 { return p.registry().Canonical(p.name) }

// Hint is the readout string for the parameter, one decimal.
func (p Parameter) Hint() string {
	return fmt.Sprintf("%s %.1f", p.name, p.Value())
}

func (p Parameter) defaultValue() float64 {
	if p.unit != nil {
		return 0
	}
	for _, def := range luna.RigParams {
		if def.Name == p.name {
			return def.Default
		}
	}
	return 0
}

// Reset restores the parameter's default canonical value, pushing it to
// all representations.
func (p Parameter) Reset() {
	p.registry().Propagate(p.name, p.defaultValue(), KindNone)
}

// Knob is the coarse (0..100) integer view.
func (p Parameter) Knob() Int { return MakeInt(knobValue(p)) }

// Fader is the fine (0..1000) integer view, displayed with one decimal.
func (p Parameter) Fader() Int { return MakeInt(faderValue(p)) }

func (v knobValue) Value() int {
	return int(math.Round(Parameter(v).Value() * KnobScale))
}

func (v knobValue) SetValue(value int) bool {
	Parameter(v).registry().Propagate(v.name, float64(value)/KnobScale, KindKnob)
	return true
}

func (v knobValue) Range() RangeInclusive {
	return RangeInclusive{Min: 0, Max: int(luna.CanonicalMax) * KnobScale}
}

func (v faderValue) Value() int {
	return int(math.Round(Parameter(v).Value() * FaderScale))
}

func (v faderValue) SetValue(value int) bool {
	Parameter(v).registry().Propagate(v.name, float64(value)/FaderScale, KindFader)
	return true
}

func (v faderValue) Range() RangeInclusive {
	return RangeInclusive{Min: 0, Max: int(luna.CanonicalMax) * FaderScale}
}

func (v faderValue) StringOf(value int) string {
	return fmt.Sprintf("%.1f", float64(value)/FaderScale)
}

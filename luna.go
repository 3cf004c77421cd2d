package luna

import "strings"

type (
	// ParamDef describes one rig parameter: its canonical name and the
	// default canonical value. The canonical domain is 0..100, with one
	// decimal of resolution (the fine fader domain is 0..1000 raw steps).
	// Parameter names are case-normalized to upper case; use
	// NormalizeName before any map lookup keyed by parameter name.
	ParamDef struct {
		Name    string
		Default float64
	}
)

// Canonical domain bounds for every parameter, rig and modulation-unit
// alike.
const (
	CanonicalMin = 0.0
	CanonicalMax = 100.0
)

// RigParams lists every parameter of the main rig, in the order they are
// laid out on the panel. The same order is used when parameter sets are
// flattened to vectors (see panel.Morph), so do not reorder casually.
var RigParams = []ParamDef{
	{Name: "DECAY", Default: 50},
	{Name: "PRE-DELAY", Default: 50},
	{Name: "SIZE", Default: 50},
	{Name: "DAMPING", Default: 25.4},
	{Name: "DIFFUSION", Default: 50},
	{Name: "WIDTH", Default: 50},
	{Name: "MOD RATE", Default: 50},
	{Name: "MOD DEPTH", Default: 50},
	{Name: "WET/DRY", Default: 26.5},
	{Name: "LEVEL", Default: 50.4},
	{Name: "LOW-CUT", Default: 50},
	{Name: "HIGH-CUT", Default: 50},
	{Name: "WEIGHT", Default: 80.6},
}

// NormalizeName returns the canonical spelling of a parameter name. All
// value maps and the binding registry key on the normalized form.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// RigDefaults returns a fresh value map with every rig parameter at its
// default canonical value.
func RigDefaults() map[string]float64 {
	ret := make(map[string]float64, len(RigParams))
	for _, d := range RigParams {
		ret[d.Name] = d.Default
	}
	return ret
}

// Clamp limits a canonical value to the canonical domain.
func Clamp(value float64) float64 {
	if value < CanonicalMin {
		return CanonicalMin
	}
	if value > CanonicalMax {
		return CanonicalMax
	}
	return value
}

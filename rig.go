package luna

type (
	// Modulation holds the value maps of the three modulation units, keyed
	// by parameter name. The three units are serialized under the fixed
	// keys "mod", "bic" and "ech" both in preset documents and inside a
	// rig preset snapshot.
	Modulation struct {
		Mod map[string]float64 `json:"mod" yaml:"mod"`
		Bic map[string]float64 `json:"bic" yaml:"bic"`
		Ech map[string]float64 `json:"ech" yaml:"ech"`
	}

	// Rig is a full snapshot of the control surface state: the main
	// parameter values plus the three modulation units. It is what a main
	// store preset captures on save and pushes back on load.
	Rig struct {
		Values     map[string]float64 `json:"values" yaml:"values"`
		Modulation Modulation         `json:"modulation" yaml:"modulation"`
	}
)

// Modulation unit keys, in panel order.
const (
	UnitMod = "mod"
	UnitBic = "bic"
	UnitEch = "ech"
)

// UnitParams lists the parameters of each modulation unit, in panel
// order.
var UnitParams = map[string][]string{
	UnitMod: {"SPEED", "SHAPE", "PHASE", "SPREAD"},
	UnitBic: {"RATE", "DEPTH", "TONE", "MIX"},
	UnitEch: {"TIME", "FB", "TONE", "MOD", "MIX", "LEVEL"},
}

// UnitKeys is the fixed order of the modulation units.
var UnitKeys = []string{UnitMod, UnitBic, UnitEch}

// UnitDefaults returns a fresh value map for one modulation unit, all
// parameters at zero as on a cold start.
func UnitDefaults(key string) map[string]float64 {
	names := UnitParams[key]
	ret := make(map[string]float64, len(names))
	for _, n := range names {
		ret[n] = 0
	}
	return ret
}

func copyValues(values map[string]float64) map[string]float64 {
	if values == nil {
		return nil
	}
	ret := make(map[string]float64, len(values))
	for k, v := range values {
		ret[k] = v
	}
	return ret
}

// Copy makes a deep copy of the modulation state.
func (m *Modulation) Copy() Modulation {
	return Modulation{
		Mod: copyValues(m.Mod),
		Bic: copyValues(m.Bic),
		Ech: copyValues(m.Ech),
	}
}

// Unit returns the value map of the named unit, or nil for an unknown
// key.
func (m *Modulation) Unit(key string) map[string]float64 {
	switch key {
	case UnitMod:
		return m.Mod
	case UnitBic:
		return m.Bic
	case UnitEch:
		return m.Ech
	}
	return nil
}

// SetUnit replaces the value map of the named unit.
func (m *Modulation) SetUnit(key string, values map[string]float64) {
	switch key {
	case UnitMod:
		m.Mod = values
	case UnitBic:
		m.Bic = values
	case UnitEch:
		m.Ech = values
	}
}

// Copy makes a deep copy of a rig snapshot.
func (r *Rig) Copy() Rig {
	return Rig{Values: copyValues(r.Values), Modulation: r.Modulation.Copy()}
}

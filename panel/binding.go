package panel

import (
	"math"

	luna "github.com/AtlasAudioDesigns/Luna"
)

type (
	// Kind identifies which face of a parameter an event came from: the
	// coarse knob, the fine fader, the numeric readout, or a remote (MIDI)
	// controller. KindNone marks engine-originated pushes such as a preset
	// load, which no live representation should be exempt from.
	Kind int

	// Representation is one live control bound to a parameter. Raw reports
	// the control's current raw value and Apply writes a raw value without
	// re-entering the registry: Apply is the sync-driven write path,
	// distinct from whatever input event path the control uses to call
	// Registry.Input. Scale declares how many raw steps make up one
	// canonical unit (knob 1, fader 10).
	Representation interface {
		Kind() Kind
		Scale() float64
		Raw() int
		Apply(raw int)
	}

	// Registry owns the parameter-name-to-representation bindings of one
	// page family and the last-known canonical value of each parameter. It
	// is not safe for concurrent use; the owning model goroutine is the
	// only caller (see Broker).
	Registry struct {
		reps      map[string][]Representation
		values    map[string]float64
		listeners []func(name string, canonical float64)
	}
)

const (
	KindNone Kind = iota
	KindKnob
	KindFader
	KindReadout
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindKnob:
		return "knob"
	case KindFader:
		return "fader"
	case KindReadout:
		return "readout"
	case KindRemote:
		return "remote"
	}
	return "none"
}

// NewRegistry returns a registry seeded with the given canonical values.
// The map is copied; the registry owns its own state from here on.
func NewRegistry(values map[string]float64) *Registry {
	ret := &Registry{
		reps:   make(map[string][]Representation),
		values: make(map[string]float64, len(values)),
	}
	for k, v := range values {
		ret.values[luna.NormalizeName(k)] = v
	}
	return ret
}

// Register binds a representation to a parameter. Representations come
// and go with the pages that create them; a parameter with no live
// representation is normal.
func (r *Registry) Register(name string, rep Representation) {
	name = luna.NormalizeName(name)
	r.reps[name] = append(r.reps[name], rep)
}

// Unregister removes a representation wherever it is bound. It is a
// no-op if the representation is not registered.
func (r *Registry) Unregister(rep Representation) {
	for name, list := range r.reps {
		for i, got := range list {
			if got == rep {
				r.reps[name] = append(list[:i], list[i+1:]...)
				if len(r.reps[name]) == 0 {
					delete(r.reps, name)
				}
				return
			}
		}
	}
}

// AddListener subscribes to value-changed notifications. Listeners fire
// after the representations have been synced.
func (r *Registry) AddListener(fn func(name string, canonical float64)) {
	r.listeners = append(r.listeners, fn)
}

// Canonical returns the last-known canonical value of a parameter.
func (r *Registry) Canonical(name string) float64 {
	return r.values[luna.NormalizeName(name)]
}

// Values returns a copy of the full canonical value map.
func (r *Registry) Values() map[string]float64 {
	ret := make(map[string]float64, len(r.values))
	for k, v := range r.values {
		ret[k] = v
	}
	return ret
}

// SetValues propagates a whole value set at once, as a preset load does.
// Parameters absent from the map are left alone.
func (r *Registry) SetValues(values map[string]float64) {
	for name, v := range values {
		r.Propagate(name, v, KindNone)
	}
}

// Input handles a user input event from a representation of the given
// kind: the raw value is converted to canonical via the scale the
// origin representation declared, then propagated to all others. Events
// from kinds with no registered representation (e.g. remote) are taken
// at canonical scale.
func (r *Registry) Input(name string, raw int, origin Kind) {
	scale := 1.0
	for _, rep := range r.reps[luna.NormalizeName(name)] {
		if rep.Kind() == origin {
			if s := rep.Scale(); s > 0 {
				scale = s
			}
			break
		}
	}
	r.Propagate(name, float64(raw)/scale, origin)
}

// Propagate writes canonical as the parameter's last-known value and
// pushes it to every representation except those of the origin kind.
// Representations already displaying the target raw value are never
// touched; that strict-inequality guard is what breaks the propagation
// cycle between two controls bound to the same parameter. Readouts are
// refreshed unconditionally since they never feed back.
func (r *Registry) Propagate(name string, canonical float64, origin Kind) {
	name = luna.NormalizeName(name)
	canonical = luna.Clamp(canonical)
	r.values[name] = canonical
	for _, rep := range r.reps[name] {
		if rep.Kind() == origin {
			continue
		}
		scale := rep.Scale()
		if scale <= 0 {
			scale = 1
		}
		target := int(math.Round(canonical * scale))
		if rep.Kind() == KindReadout || rep.Raw() != target {
			rep.Apply(target)
		}
	}
	for _, fn := range r.listeners {
		fn(name, canonical)
	}
}

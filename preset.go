package luna

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type (
	// Preset is one stored snapshot. Slot is only set by grid stores (the
	// main rig store); modulation-unit bank presets carry values only.
	// Modulation is only present when a rig snapshot included the
	// modulation units at save time.
	Preset struct {
		Slot       string             `json:"slot,omitempty" yaml:"slot,omitempty"`
		Values     map[string]float64 `json:"values" yaml:"values"`
		Modulation *Modulation        `json:"modulation,omitempty" yaml:"modulation,omitempty"`
	}

	// Bank is an insertion-ordered mapping of preset name to Preset. It is
	// the in-memory form of one on-disk preset document: a single JSON
	// object keyed by preset name, whose key order is the insertion order.
	// The zero value is an empty bank ready for use.
	Bank struct {
		names   []string
		presets map[string]Preset
	}
)

// Copy makes a deep copy of a preset.
func (p *Preset) Copy() Preset {
	ret := Preset{Slot: p.Slot, Values: copyValues(p.Values)}
	if p.Modulation != nil {
		m := p.Modulation.Copy()
		ret.Modulation = &m
	}
	return ret
}

func (b *Bank) Len() int { return len(b.names) }

// Names returns the preset names in insertion order. The returned slice
// is a copy and safe to hold.
func (b *Bank) Names() []string {
	ret := make([]string, len(b.names))
	copy(ret, b.names)
	return ret
}

func (b *Bank) Has(name string) bool {
	_, ok := b.presets[name]
	return ok
}

func (b *Bank) Get(name string) (Preset, bool) {
	p, ok := b.presets[name]
	return p, ok
}

// Put stores a preset under name, appending to the order when the name
// is new and keeping its position when it is not.
func (b *Bank) Put(name string, p Preset) {
	if b.presets == nil {
		b.presets = make(map[string]Preset)
	}
	if _, ok := b.presets[name]; !ok {
		b.names = append(b.names, name)
	}
	b.presets[name] = p
}

// Delete removes a preset; reports whether it was present.
func (b *Bank) Delete(name string) bool {
	if _, ok := b.presets[name]; !ok {
		return false
	}
	delete(b.presets, name)
	for i, n := range b.names {
		if n == name {
			b.names = append(b.names[:i], b.names[i+1:]...)
			break
		}
	}
	return true
}

// Rename moves the entry under a new key, keeping its position in the
// order and its contents untouched. The caller checks for duplicates.
func (b *Bank) Rename(old, new string) bool {
	p, ok := b.presets[old]
	if !ok {
		return false
	}
	delete(b.presets, old)
	b.presets[new] = p
	for i, n := range b.names {
		if n == old {
			b.names[i] = new
			break
		}
	}
	return true
}

// MarshalJSON writes the bank as a single JSON object whose keys appear
// in insertion order.
func (b Bank) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range b.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(b.presets[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a preset document, recording the key order of the
// object as the insertion order.
func (b *Bank) UnmarshalJSON(data []byte) error {
	*b = Bank{}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("preset document: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("preset document: expected string key, got %v", keyTok)
		}
		var p Preset
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("preset document: entry %q: %w", name, err)
		}
		b.Put(name, p)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

package panel

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	luna "github.com/AtlasAudioDesigns/Luna"
)

// Slot grid of the main rig store: rows 1..4 by columns A..F.
const (
	slotRows = "1234"
	slotCols = "ABCDEF"
)

// NumSlots is the capacity of a grid store.
const NumSlots = len(slotRows) * len(slotCols)

// Store is one preset document: an insertion-ordered set of named
// presets backed by a single JSON file. A grid store additionally
// assigns each preset a slot coordinate on save. Every mutating
// operation persists immediately; Flush exists for the host's teardown
// signal, when nothing may have changed but the disk copy could be
// stale after an earlier write failure.
type Store struct {
	path  string
	grid  bool
	bank  luna.Bank
	stale bool
}

// NewStore loads the document at path, or starts empty when the file
// does not exist. A malformed file also yields an empty store, plus a
// MalformedStoreError the caller reports once; the file itself is not
// touched until the next successful save.
func NewStore(path string, grid bool) (*Store, error) {
	s := &Store{path: path, grid: grid}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, MalformedStoreError{Path: path, Err: err}
	}
	if err := json.Unmarshal(data, &s.bank); err != nil {
		s.bank = luna.Bank{}
		return s, MalformedStoreError{Path: path, Err: err}
	}
	return s, nil
}

func (s *Store) Path() string { return s.path }
func (s *Store) Grid() bool   { return s.grid }
func (s *Store) Len() int     { return s.bank.Len() }

// Names returns the current preset names in insertion order.
func (s *Store) Names() []string { return s.bank.Names() }

func (s *Store) Has(name string) bool { return s.bank.Has(name) }

// Load returns a copy of the named preset. It does not touch any
// selection state.
func (s *Store) Load(name string) (luna.Preset, error) {
	p, ok := s.bank.Get(name)
	if !ok {
		return luna.Preset{}, NotFoundError{Name: name}
	}
	return p.Copy(), nil
}

// Save stores a new preset under name, assigning the first free slot
// when this is a grid store. The assigned slot is returned. Saving over
// an existing name fails; use Update for that.
func (s *Store) Save(name string, p luna.Preset) (slot string, err error) {
	if s.bank.Has(name) {
		return "", DuplicateNameError{Name: name}
	}
	p = p.Copy()
	if s.grid {
		slot, err = s.freeSlot()
		if err != nil {
			return "", err
		}
	}
	p.Slot = slot
	s.bank.Put(name, p)
	return slot, s.persist()
}

// Update overwrites the values of an existing preset in place, keeping
// its name and slot.
func (s *Store) Update(name string, p luna.Preset) error {
	old, ok := s.bank.Get(name)
	if !ok {
		return NotFoundError{Name: name}
	}
	p = p.Copy()
	p.Slot = old.Slot
	s.bank.Put(name, p)
	return s.persist()
}

// Rename moves a preset under a new name, keeping slot and values.
// Renaming to the same name is a no-op success.
func (s *Store) Rename(old, new string) error {
	if !s.bank.Has(old) {
		return NotFoundError{Name: old}
	}
	if new == old {
		return nil
	}
	if s.bank.Has(new) {
		return DuplicateNameError{Name: new}
	}
	s.bank.Rename(old, new)
	return s.persist()
}

// Delete removes a preset, freeing its slot for the next save.
func (s *Store) Delete(name string) error {
	if !s.bank.Delete(name) {
		return NotFoundError{Name: name}
	}
	return s.persist()
}

// Flush writes the document out if a previous write failed and left the
// disk copy stale. Called on teardown.
func (s *Store) Flush() error {
	if !s.stale {
		return nil
	}
	return s.persist()
}

// freeSlot scans the current occupancy row-major and returns the first
// slot no preset holds. It deliberately re-scans rather than counting
// up, so a deleted preset's slot is immediately reusable.
func (s *Store) freeSlot() (string, error) {
	used := make(map[string]bool, s.bank.Len())
	for _, name := range s.bank.Names() {
		if p, ok := s.bank.Get(name); ok {
			used[p.Slot] = true
		}
	}
	for _, r := range slotRows {
		for _, c := range slotCols {
			slot := fmt.Sprintf("%c%c", r, c)
			if !used[slot] {
				return slot, nil
			}
		}
	}
	return "", SlotExhaustedError{}
}

func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.bank, "", "  ")
	if err != nil {
		s.stale = true
		return PersistenceError{Path: s.path, Err: err}
	}
	if dir := filepath.Dir(s.path); dir != "." {
		os.MkdirAll(dir, 0755)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.stale = true
		return PersistenceError{Path: s.path, Err: err}
	}
	s.stale = false
	return nil
}

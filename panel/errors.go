package panel

import "fmt"

// The store operations never panic; they return exactly one of these
// error types and leave it to the host to phrase a user-visible message.

type (
	// DuplicateNameError is returned by Save and Rename when the target
	// name is already taken.
	DuplicateNameError struct{ Name string }

	// NotFoundError is returned by Update, Rename, Delete and Load when
	// the named preset is absent.
	NotFoundError struct{ Name string }

	// SlotExhaustedError is returned by Save on a grid store whose 24
	// slots are all occupied. It is a capacity condition, not a fault.
	SlotExhaustedError struct{}

	// PersistenceError reports a failed disk write. The in-memory
	// mutation that triggered the write stands; only the disk copy is
	// stale.
	PersistenceError struct {
		Path string
		Err  error
	}

	// MalformedStoreError reports an unparseable store document at load
	// time. The store starts empty for the session; the on-disk content
	// is left untouched until the next successful save.
	MalformedStoreError struct {
		Path string
		Err  error
	}
)

func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("a preset named %q already exists", e.Name)
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no preset named %q", e.Name)
}

func (e SlotExhaustedError) Error() string {
	return "all preset slots are occupied"
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e PersistenceError) Unwrap() error { return e.Err }

func (e MalformedStoreError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e MalformedStoreError) Unwrap() error { return e.Err }

package sdk

import (
	"fmt"
	"path/filepath"
	"sort"
)

// State is the key/value view every component reads and writes through.
type State interface {
	Get(key string) (*string, error)
	Set(key, value string)
	Delete(key string)
}

// Change is one buffered write. A nil Value deletes the key.
type Change struct {
	Key   string
	Value *string
}

// Store is a State that can apply a batch of changes atomically.
type Store interface {
	State
	Apply(changes []Change) error
	Close() error
}

// StateFileName is the JSON snapshot the file backend keeps under its directory.
const StateFileName = "state.json"

// OpenStore opens the backend by name. dir is ignored for the memory backend.
func OpenStore(backend string, dir string) (Store, error) {
	switch backend {
	case "", "memory":
		return NewMockState(), nil
	case "file":
		return NewFileMockState(filepath.Join(dir, StateFileName))
	case "pebble":
		return NewPebbleState(dir, false)
	default:
		return nil, fmt.Errorf("unknown state backend %q", backend)
	}
}

// Tx buffers writes on top of a Store so a whole operation commits or vanishes as one unit.
// Reads see the buffered writes first.
type Tx struct {
	base    Store
	pending map[string]*string
}

// NewTx starts an empty overlay over base.
func NewTx(base Store) *Tx {
	return &Tx{base: base, pending: map[string]*string{}}
}

// Get implements State.
func (tx *Tx) Get(key string) (*string, error) {
	if v, ok := tx.pending[key]; ok {
		if v == nil {
			return nil, nil
		}
		cp := *v
		return &cp, nil
	}
	return tx.base.Get(key)
}

// Set implements State.
func (tx *Tx) Set(key, value string) {
	v := value
	tx.pending[key] = &v
}

// Delete implements State.
func (tx *Tx) Delete(key string) {
	tx.pending[key] = nil
}

// Dirty reports whether anything was written.
func (tx *Tx) Dirty() bool {
	return len(tx.pending) > 0
}

// Commit hands the buffered writes to the store as one batch, in key order.
func (tx *Tx) Commit() error {
	if len(tx.pending) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tx.pending))
	for k := range tx.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	changes := make([]Change, 0, len(keys))
	for _, k := range keys {
		changes = append(changes, Change{Key: k, Value: tx.pending[k]})
	}
	if err := tx.base.Apply(changes); err != nil {
		return err
	}
	tx.pending = map[string]*string{}
	return nil
}

// Discard drops the buffered writes.
func (tx *Tx) Discard() {
	tx.pending = map[string]*string{}
}

// prefixed scopes a State under a key prefix so independent components can share one store.
type prefixed struct {
	st     State
	prefix string
}

// Prefixed returns a view of st where every key is stored as prefix+key.
// Example payload: sdk.Prefixed(tx, "tok:")
func Prefixed(st State, prefix string) State {
	return &prefixed{st: st, prefix: prefix}
}

func (p *prefixed) Get(key string) (*string, error) {
	return p.st.Get(p.prefix + key)
}

func (p *prefixed) Set(key, value string) {
	p.st.Set(p.prefix+key, value)
}

func (p *prefixed) Delete(key string) {
	p.st.Delete(p.prefix + key)
}

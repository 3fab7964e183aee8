package sdk

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/cockroachdb/pebble/vfs"
)

// PebbleState keeps contract state in a pebble database.
type PebbleState struct {
	db *pebble.DB
	wo *pebble.WriteOptions
}

// NewPebbleState opens (or creates) the database under dir. inMem keeps it in memory only.
func NewPebbleState(dir string, inMem bool) (*PebbleState, error) {
	cache := pebble.NewCache(64 << 20)
	defer cache.Unref()
	opts := &pebble.Options{
		Cache:                       cache,
		L0CompactionThreshold:       2,
		L0StopWritesThreshold:       1000,
		LBaseMaxBytes:               64 << 20,
		Levels:                      make([]pebble.LevelOptions, 7),
		MaxConcurrentCompactions:    func() int { return 2 },
		MemTableSize:                16 << 20,
		MemTableStopWritesThreshold: 4,
	}
	for i := 0; i < len(opts.Levels); i++ {
		l := &opts.Levels[i]
		l.BlockSize = 32 << 10
		l.IndexBlockSize = 256 << 10
		l.FilterPolicy = bloom.FilterPolicy(10)
		l.FilterType = pebble.TableFilter
		if i > 0 {
			l.TargetFileSize = opts.Levels[i-1].TargetFileSize * 2
		}
		l.EnsureDefaults()
	}
	opts.Levels[6].FilterPolicy = nil
	if inMem {
		opts.FS = vfs.NewMem()
	}
	db, err := pebble.Open(filepath.Join(dir, "state.pebbledb"), opts)
	if err != nil {
		return nil, fmt.Errorf("open pebble state: %w", err)
	}
	return &PebbleState{db: db, wo: &pebble.WriteOptions{Sync: true}}, nil
}

func (p *PebbleState) Get(key string) (*string, error) {
	val, closer, err := p.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	s := string(val)
	closer.Close()
	return &s, nil
}

// Set writes straight through. Engine code goes through Tx and Apply instead.
func (p *PebbleState) Set(key, value string) {
	_ = p.db.Set([]byte(key), []byte(value), p.wo)
}

func (p *PebbleState) Delete(key string) {
	_ = p.db.Delete([]byte(key), p.wo)
}

// Apply commits the changes in a single pebble batch.
func (p *PebbleState) Apply(changes []Change) error {
	b := p.db.NewBatch()
	defer b.Close()
	for _, c := range changes {
		var err error
		if c.Value == nil {
			err = b.Delete([]byte(c.Key), nil)
		} else {
			err = b.Set([]byte(c.Key), []byte(*c.Value), nil)
		}
		if err != nil {
			return err
		}
	}
	return b.Commit(p.wo)
}

func (p *PebbleState) Close() error {
	return p.db.Close()
}

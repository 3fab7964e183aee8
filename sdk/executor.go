package sdk

import (
	"github.com/algorand/go-deadlock"
)

// Executor is the single writer over a store and the ledger kept in it. Every
// component sharing the store must mutate through the same Executor, otherwise two
// overlays can read the same balance and one commit overwrites the other.
type Executor struct {
	mu     deadlock.Mutex
	store  Store
	ledger Ledger
}

// NewExecutor returns an executor over store. A nil ledger defaults to a StateLedger
// on store.
func NewExecutor(store Store, ledger Ledger) *Executor {
	if ledger == nil {
		ledger = NewStateLedger(store)
	}
	return &Executor{store: store, ledger: ledger}
}

// Store is the committed state, for reads.
func (x *Executor) Store() Store {
	return x.store
}

// Ledger reads committed balances.
func (x *Executor) Ledger() Ledger {
	return x.ledger
}

// Run serializes fn against every other Run and commits its writes as one batch, or none.
func (x *Executor) Run(fn func(st State, l Ledger) error) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return RunTx(x.store, x.ledger, fn)
}

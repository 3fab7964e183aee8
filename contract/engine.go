// Package contract is the governed charity treasury: a membership registry of
// contributors and stakeholders, an append-only proposal store, one-account-one-vote
// voting and time-gated payouts out of the pooled treasury.
//
// Every state-mutating call takes the acting account explicitly, runs under a single
// writer lock and commits all of its writes (ledger included) as one batch, or none.
// Reads go straight to committed state.
package contract

import (
	"errors"
	"fmt"
	"time"

	"charity_dao/contract/dao"
	"charity_dao/logging"
	"charity_dao/sdk"

	"github.com/algorand/go-deadlock"
)

// Params are the governance knobs fixed for the lifetime of an Engine.
type Params struct {
	VotingPeriod time.Duration
	MinStake     dao.Amount
}

// DefaultParams returns the fallback parameters.
func DefaultParams() Params {
	return Params{
		VotingPeriod: FallbackVotingPeriod,
		MinStake:     FallbackMinStake,
	}
}

func (p Params) validate() error {
	if p.VotingPeriod <= 0 {
		return fmt.Errorf("voting period must be positive, got %s", p.VotingPeriod)
	}
	if p.MinStake <= 0 {
		return fmt.Errorf("minimum stake must be positive, got %s", p.MinStake)
	}
	return nil
}

// Engine composes the registry, the proposal store and the ledger.
type Engine struct {
	mu      deadlock.Mutex
	exec    *sdk.Executor
	store   sdk.Store
	ledger  sdk.Ledger
	clock   sdk.Clock
	params  Params
	log     logging.Logger
	metrics *Metrics
	sink    EventSink
}

// NewEngine wires an engine onto exec, the writer it shares with every other component
// of the same store. The executor's ledger should keep its balances in the store (see
// sdk.StateLedger) so payouts commit with the proposal update; any other Ledger is
// called directly.
func NewEngine(exec *sdk.Executor, clock sdk.Clock, params Params, log logging.Logger) (*Engine, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Base()
	}
	return &Engine{
		exec:    exec,
		store:   exec.Store(),
		ledger:  exec.Ledger(),
		clock:   clock,
		params:  params,
		log:     log,
		metrics: NewMetrics(nil),
	}, nil
}

// SetEventSink routes committed events to sink in addition to the log.
func (e *Engine) SetEventSink(sink EventSink) {
	e.mu.Lock()
	e.sink = sink
	e.mu.Unlock()
}

// SetMetrics replaces the engine's collectors, typically with ones registered on a registry.
func (e *Engine) SetMetrics(m *Metrics) {
	e.mu.Lock()
	e.metrics = m
	e.mu.Unlock()
}

// Params returns the governance parameters.
func (e *Engine) Params() Params {
	return e.params
}

// call is the scope of one mutating operation.
type call struct {
	env    sdk.Env
	params Params
	st     sdk.State
	ledger sdk.Ledger
	events []Event
	hooks  []func(m *Metrics)
}

// onCommit defers a metrics update until the call has committed.
func (c *call) onCommit(fn func(m *Metrics)) {
	c.hooks = append(c.hooks, fn)
}

// mutate serializes fn against every other mutation of the store and commits its
// writes atomically.
func (e *Engine) mutate(op string, caller sdk.Address, fn func(c *call) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := &call{
		env:    sdk.NewEnv(caller, e.clock),
		params: e.params,
	}
	err := e.exec.Run(func(st sdk.State, l sdk.Ledger) error {
		c.st = st
		c.ledger = l
		return fn(c)
	})
	e.metrics.observe(op, err)

	log := e.log.WithFields(logging.Fields{"op": op, "caller": caller, "tx": c.env.TxID})
	if err != nil {
		var rv *sdk.Revert
		if errors.As(err, &rv) {
			log.With("symbol", rv.Symbol).Debugf("rejected: %v", err)
		} else {
			log.Errorf("failed: %v", err)
		}
		return err
	}
	for _, hook := range c.hooks {
		hook(e.metrics)
	}
	for _, ev := range c.events {
		log.Info(ev.Line)
		if e.sink != nil {
			if serr := e.sink.Record(ev); serr != nil {
				log.Warnf("event sink: %v", serr)
			}
		}
	}
	return nil
}

// TreasuryBalance is the pooled balance available for payouts.
func (e *Engine) TreasuryBalance() (dao.Amount, error) {
	return getTreasuryBalance(e.ledger)
}

// BalanceOf reads any account's ledger balance.
func (e *Engine) BalanceOf(addr sdk.Address) (dao.Amount, error) {
	bal, err := e.ledger.BalanceOf(addr)
	return dao.Amount(bal), err
}

// Deposit credits an account from outside the treasury (the service's funding entry point).
func (e *Engine) Deposit(to sdk.Address, amount dao.Amount) error {
	return e.mutate("deposit", to, func(c *call) error {
		if amount <= 0 {
			return ErrInvalidAmount
		}
		if !to.IsValid() || to.Domain() == sdk.AddressDomainSystem {
			return ErrInvalidCaller
		}
		return c.ledger.Credit(to, int64(amount))
	})
}

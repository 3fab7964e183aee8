package contract_test

import (
	"testing"
	"time"

	"charity_dao/contract"
	"charity_dao/contract/dao"
	"charity_dao/logging"
	"charity_dao/sdk"

	"github.com/algorand/go-deadlock"
	"github.com/stretchr/testify/require"
)

const (
	ownerAddress sdk.Address = "owner"
	charity      sdk.Address = "charity"
	outsider     sdk.Address = "outsider"
)

var (
	defaultStart = time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)
	accounts     = []sdk.Address{"account1", "account2", "account3", "account4"}
)

type testEnv struct {
	engine *contract.Engine
	exec   *sdk.Executor
	store  *sdk.MockState
	ledger sdk.Ledger
	clock  *sdk.ManualClock
	sink   *recordingSink
}

type recordingSink struct {
	mu     deadlock.Mutex
	events []contract.Event
}

func (s *recordingSink) Record(ev contract.Event) error {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
	return nil
}

func (s *recordingSink) kinds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Kind)
	}
	return out
}

// setupEngine builds an engine over fresh in-memory state and funds every test account
// with 100 units, the way a test chain would pre-deposit balances.
func setupEngine(t *testing.T) *testEnv {
	t.Helper()
	store := sdk.NewMockState()
	return setupEngineWith(t, store, sdk.NewStateLedger(store))
}

func setupEngineWith(t *testing.T, store *sdk.MockState, ledger sdk.Ledger) *testEnv {
	t.Helper()
	clock := sdk.MakeManualClock(defaultStart)
	exec := sdk.NewExecutor(store, ledger)
	engine, err := contract.NewEngine(exec, clock, contract.DefaultParams(), logging.TestingLog())
	require.NoError(t, err)
	sink := &recordingSink{}
	engine.SetEventSink(sink)

	te := &testEnv{engine: engine, exec: exec, store: store, ledger: ledger, clock: clock, sink: sink}
	for _, acct := range append([]sdk.Address{ownerAddress, outsider}, accounts...) {
		require.NoError(t, engine.Deposit(acct, dao.MustAmount("100")))
	}
	return te
}

// setupStakedDAO mirrors the usual fixture: four accounts each stake one unit.
func setupStakedDAO(t *testing.T) *testEnv {
	t.Helper()
	te := setupEngine(t)
	for _, acct := range accounts {
		stake(t, te, acct, "1")
	}
	return te
}

func stake(t *testing.T, te *testEnv, who sdk.Address, amount string) {
	t.Helper()
	require.NoError(t, te.engine.MakeStakeholder(who, dao.MustAmount(amount)))
}

func createProposal(t *testing.T, te *testEnv, who sdk.Address, amount string, recipient sdk.Address, desc string) uint64 {
	t.Helper()
	id, err := te.engine.CreateProposal(who, dao.MustAmount(amount), recipient, desc)
	require.NoError(t, err)
	return id
}

func castVotes(t *testing.T, te *testEnv, id uint64, votes map[sdk.Address]bool) {
	t.Helper()
	for who, support := range votes {
		require.NoError(t, te.engine.Vote(who, id, support))
	}
}

func balance(t *testing.T, te *testEnv, who sdk.Address) dao.Amount {
	t.Helper()
	bal, err := te.engine.BalanceOf(who)
	require.NoError(t, err)
	return bal
}

func treasury(t *testing.T, te *testEnv) dao.Amount {
	t.Helper()
	bal, err := te.engine.TreasuryBalance()
	require.NoError(t, err)
	return bal
}

func proposal(t *testing.T, te *testEnv, id uint64) *dao.Proposal {
	t.Helper()
	p, err := te.engine.GetProposal(id)
	require.NoError(t, err)
	return p
}

// closeVoting moves the clock to the end of the voting window.
func closeVoting(te *testEnv) {
	te.clock.Advance(te.engine.Params().VotingPeriod)
}

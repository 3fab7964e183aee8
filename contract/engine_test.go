package contract_test

import (
	"errors"
	"sync"
	"testing"

	"charity_dao/contract"
	"charity_dao/contract/dao"
	"charity_dao/contract/faucet"
	"charity_dao/logging"
	"charity_dao/sdk"

	"github.com/stretchr/testify/require"
)

// flakyLedger moves the funds and then reports failure, so any commit would leak them.
type flakyLedger struct {
	*sdk.StateLedger
	fail *bool
}

var errLedgerDown = errors.New("ledger unavailable")

func (l *flakyLedger) Bind(st sdk.State) sdk.Ledger {
	return &flakyLedger{StateLedger: sdk.NewStateLedger(st), fail: l.fail}
}

func (l *flakyLedger) Transfer(from, to sdk.Address, amount int64) error {
	if err := l.StateLedger.Transfer(from, to, amount); err != nil {
		return err
	}
	if *l.fail {
		return errLedgerDown
	}
	return nil
}

func TestNewEngineRejectsBadParams(t *testing.T) {
	store := sdk.NewMockState()
	clock := sdk.MakeManualClock(defaultStart)

	_, err := contract.NewEngine(sdk.NewExecutor(store, nil), clock, contract.Params{VotingPeriod: 0, MinStake: 1}, logging.TestingLog())
	require.Error(t, err)
	_, err = contract.NewEngine(sdk.NewExecutor(store, nil), clock, contract.Params{VotingPeriod: contract.FallbackVotingPeriod}, logging.TestingLog())
	require.Error(t, err)
}

// TestFailedOperationLeavesNoTrace checks ledger writes are discarded with the rest of the call.
func TestFailedOperationLeavesNoTrace(t *testing.T) {
	store := sdk.NewMockState()
	fail := false
	te := setupEngineWith(t, store, &flakyLedger{StateLedger: sdk.NewStateLedger(store), fail: &fail})
	keys := store.Len()

	fail = true
	err := te.engine.MakeStakeholder(accounts[0], dao.MustAmount("1"))
	require.ErrorIs(t, err, errLedgerDown)

	require.Equal(t, keys, store.Len())
	require.Equal(t, dao.MustAmount("100"), balance(t, te, accounts[0]))
	require.Zero(t, treasury(t, te))
	m, err := te.engine.Member(accounts[0])
	require.NoError(t, err)
	require.Nil(t, m)
	require.Empty(t, te.sink.kinds())

	fail = false
	stake(t, te, accounts[0], "1")
	require.Equal(t, dao.MustAmount("1"), treasury(t, te))
}

// TestEventsFollowCommittedOperations checks rejected calls emit nothing.
func TestEventsFollowCommittedOperations(t *testing.T) {
	te := setupEngine(t)
	stake(t, te, accounts[0], "1")
	stake(t, te, accounts[1], "1")
	id := createProposal(t, te, accounts[0], "0.5", charity, "events")
	require.NoError(t, te.engine.Vote(accounts[1], id, true))
	require.Error(t, te.engine.Vote(accounts[1], id, true))
	require.Error(t, te.engine.PayCharity(accounts[0], id))
	closeVoting(te)
	require.NoError(t, te.engine.PayCharity(accounts[0], id))

	require.Equal(t, []string{"st", "st", "pc", "v", "rf", "ps"}, te.sink.kinds())

	te.sink.mu.Lock()
	defer te.sink.mu.Unlock()
	require.Equal(t, "pc|id:0|by:account1|to:charity|am:0.5|end:1757462400", te.sink.events[2].Line)
	require.Equal(t, "ps|id:0|s:paid", te.sink.events[5].Line)
	require.Equal(t, te.sink.events[4].TxID, te.sink.events[5].TxID)
	require.NotEqual(t, te.sink.events[3].TxID, te.sink.events[4].TxID)
}

func TestDepositValidation(t *testing.T) {
	te := setupEngine(t)
	require.ErrorIs(t, te.engine.Deposit(charity, 0), contract.ErrInvalidAmount)
	require.ErrorIs(t, te.engine.Deposit(sdk.TreasuryAddress, 1), contract.ErrInvalidCaller)
	require.ErrorIs(t, te.engine.Deposit("has space", 1), contract.ErrInvalidCaller)
	require.NoError(t, te.engine.Deposit(charity, 1))
	require.Equal(t, dao.Amount(1), balance(t, te, charity))
}

func TestDepositRejectsOverflow(t *testing.T) {
	te := setupEngine(t)
	half := dao.Amount(1 << 62)
	require.NoError(t, te.engine.Deposit(charity, half))
	err := te.engine.Deposit(charity, half)
	require.ErrorIs(t, err, sdk.ErrBalanceOverflow)
	require.Equal(t, half, balance(t, te, charity))
}

// TestSharedExecutorKeepsTotalSupply races stakes against faucet withdrawals on the
// same account. Both write the account's balance, so the total across every account
// only holds when the two components share one writer.
func TestSharedExecutorKeepsTotalSupply(t *testing.T) {
	te := setupEngine(t)
	f, err := faucet.New(te.exec, faucet.FallbackMaxWithdraw, logging.TestingLog())
	require.NoError(t, err)
	require.NoError(t, f.Fund(ownerAddress, dao.MustAmount("50")))

	holders := append([]sdk.Address{ownerAddress, outsider, sdk.TreasuryAddress, faucet.Address}, accounts...)
	total := func() dao.Amount {
		var sum dao.Amount
		for _, h := range holders {
			sum += balance(t, te, h)
		}
		return sum
	}
	before := total()

	const rounds = 300
	unit := dao.MustAmount("0.001")
	who := accounts[0]
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_ = te.engine.MakeStakeholder(who, unit)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_ = f.Withdraw(who, unit)
		}
	}()
	wg.Wait()

	require.Equal(t, before, total())
	require.Equal(t, dao.MustAmount("100"), balance(t, te, who))
	require.Equal(t, unit*rounds, treasury(t, te))
	pool, err := f.Balance()
	require.NoError(t, err)
	require.Equal(t, dao.MustAmount("50")-unit*rounds, pool)
}

// TestPebbleBackendPersists runs a flow against pebble and reopens the directory.
func TestPebbleBackendPersists(t *testing.T) {
	dir := t.TempDir()
	clock := sdk.MakeManualClock(defaultStart)

	store, err := sdk.OpenStore("pebble", dir)
	require.NoError(t, err)
	engine, err := contract.NewEngine(sdk.NewExecutor(store, nil), clock, contract.DefaultParams(), logging.TestingLog())
	require.NoError(t, err)

	require.NoError(t, engine.Deposit(accounts[0], dao.MustAmount("10")))
	require.NoError(t, engine.MakeStakeholder(accounts[0], dao.MustAmount("2")))
	id, err := engine.CreateProposal(accounts[0], dao.MustAmount("1.5"), charity, "persisted")
	require.NoError(t, err)
	require.NoError(t, engine.Vote(accounts[0], id, true))
	require.NoError(t, store.Close())

	store, err = sdk.OpenStore("pebble", dir)
	require.NoError(t, err)
	defer store.Close()
	engine, err = contract.NewEngine(sdk.NewExecutor(store, nil), clock, contract.DefaultParams(), logging.TestingLog())
	require.NoError(t, err)

	p, err := engine.GetProposal(id)
	require.NoError(t, err)
	require.Equal(t, "persisted", p.Description)
	require.Equal(t, uint64(1), p.VotesFor)

	bal, err := engine.TreasuryBalance()
	require.NoError(t, err)
	require.Equal(t, dao.MustAmount("2"), bal)

	clock.Advance(contract.FallbackVotingPeriod)
	require.NoError(t, engine.PayCharity(accounts[0], id))
	got, err := engine.BalanceOf(charity)
	require.NoError(t, err)
	require.Equal(t, dao.MustAmount("1.5"), got)
}

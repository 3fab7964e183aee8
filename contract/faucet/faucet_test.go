package faucet

import (
	"testing"

	"charity_dao/contract/dao"
	"charity_dao/logging"
	"charity_dao/sdk"

	"github.com/stretchr/testify/require"
)

func setupFaucet(t *testing.T) (*Faucet, sdk.Ledger) {
	t.Helper()
	store := sdk.NewMockState()
	ledger := sdk.NewStateLedger(store)
	require.NoError(t, ledger.Credit("owner", int64(dao.MustAmount("10"))))

	f, err := New(sdk.NewExecutor(store, ledger), FallbackMaxWithdraw, logging.TestingLog())
	require.NoError(t, err)
	require.NoError(t, f.Fund("owner", dao.MustAmount("1")))
	return f, ledger
}

func TestDeposit(t *testing.T) {
	f, _ := setupFaucet(t)
	bal, err := f.Balance()
	require.NoError(t, err)
	require.Equal(t, dao.MustAmount("1"), bal)
}

func TestWithdrawAboveLimit(t *testing.T) {
	f, ledger := setupFaucet(t)
	err := f.Withdraw("owner", dao.MustAmount("0.2"))
	require.ErrorIs(t, err, ErrWithdrawLimit(f.MaxWithdraw()))
	require.EqualError(t, err, "only allowed withdraw up to 0.1")

	bal, _ := f.Balance()
	require.Equal(t, dao.MustAmount("1"), bal)
	own, _ := ledger.BalanceOf("owner")
	require.Equal(t, int64(dao.MustAmount("9")), own)
}

func TestWithdrawNormally(t *testing.T) {
	f, ledger := setupFaucet(t)
	require.NoError(t, f.Withdraw("owner", dao.MustAmount("0.1")))

	bal, _ := f.Balance()
	require.Equal(t, dao.MustAmount("0.9"), bal)
	own, _ := ledger.BalanceOf("owner")
	require.Equal(t, int64(dao.MustAmount("9.1")), own)
}

func TestWithdrawDrainsPool(t *testing.T) {
	store := sdk.NewMockState()
	ledger := sdk.NewStateLedger(store)
	require.NoError(t, ledger.Credit("owner", int64(dao.MustAmount("0.15"))))
	f, err := New(sdk.NewExecutor(store, ledger), FallbackMaxWithdraw, logging.TestingLog())
	require.NoError(t, err)
	require.NoError(t, f.Fund("owner", dao.MustAmount("0.15")))

	require.NoError(t, f.Withdraw("alice", dao.MustAmount("0.1")))
	require.ErrorIs(t, f.Withdraw("alice", dao.MustAmount("0.1")), ErrInsufficientFunds)
	require.NoError(t, f.Withdraw("alice", dao.MustAmount("0.05")))
}

func TestFaucetRejectsBadInput(t *testing.T) {
	f, _ := setupFaucet(t)
	require.ErrorIs(t, f.Withdraw("owner", 0), ErrInvalidAmount)
	require.ErrorIs(t, f.Fund("owner", -1), ErrInvalidAmount)
	require.ErrorIs(t, f.Withdraw(sdk.TreasuryAddress, 1), ErrInvalidCaller)
	require.ErrorIs(t, f.Fund("nobody", 1), ErrInsufficientFunds)

	_, err := New(sdk.NewExecutor(sdk.NewMockState(), nil), 0, nil)
	require.Error(t, err)
}

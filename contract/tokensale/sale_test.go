package tokensale

import (
	"testing"

	"charity_dao/contract/dao"
	"charity_dao/logging"
	"charity_dao/sdk"

	"github.com/stretchr/testify/require"
)

const owner sdk.Address = "owner"

func setupSale(t *testing.T) (*Sale, sdk.Ledger) {
	t.Helper()
	store := sdk.NewMockState()
	ledger := sdk.NewStateLedger(store)
	for _, acct := range []sdk.Address{owner, "alice"} {
		require.NoError(t, ledger.Credit(acct, int64(dao.MustAmount("2000"))))
	}
	s, err := New(sdk.NewExecutor(store, ledger), Config{Owner: owner, Rate: FallbackRate, Cap: FallbackCap}, logging.TestingLog())
	require.NoError(t, err)
	return s, ledger
}

func TestInvestFail(t *testing.T) {
	s, ledger := setupSale(t)
	_, err := s.Invest(owner, dao.MustAmount("1000"))
	require.ErrorIs(t, err, ErrExceedsCap)
	require.EqualError(t, err, "Exceed maximum value of investment")

	bal, _ := ledger.BalanceOf(owner)
	require.Equal(t, int64(dao.MustAmount("2000")), bal)
}

func TestInvest(t *testing.T) {
	s, ledger := setupSale(t)
	minted, err := s.Invest(owner, dao.MustAmount("1"))
	require.NoError(t, err)
	require.Equal(t, dao.MustAmount("1000"), minted)

	tokens, err := s.TokenBalance(owner)
	require.NoError(t, err)
	require.Equal(t, dao.MustAmount("1000"), tokens)

	raised, _ := ledger.BalanceOf(Address)
	require.Equal(t, int64(dao.MustAmount("1")), raised)
	supply, err := s.Supply()
	require.NoError(t, err)
	require.Equal(t, dao.MustAmount("1000"), supply)
}

// TestCapIsPerInvestorTotal checks repeat investments count toward the cap.
func TestCapIsPerInvestorTotal(t *testing.T) {
	s, _ := setupSale(t)
	_, err := s.Invest("alice", dao.MustAmount("60"))
	require.NoError(t, err)
	_, err = s.Invest("alice", dao.MustAmount("41"))
	require.ErrorIs(t, err, ErrExceedsCap)
	_, err = s.Invest("alice", dao.MustAmount("40"))
	require.NoError(t, err)

	invested, err := s.Invested("alice")
	require.NoError(t, err)
	require.Equal(t, FallbackCap, invested)

	// other investors have their own allowance
	_, err = s.Invest(owner, dao.MustAmount("1"))
	require.NoError(t, err)
}

func TestTransferWhenNotTradeable(t *testing.T) {
	s, _ := setupSale(t)
	_, err := s.Invest(owner, dao.MustAmount("1"))
	require.NoError(t, err)

	err = s.Transfer(owner, "carol", dao.MustAmount("300"))
	require.ErrorIs(t, err, ErrNotTradeable)
	require.EqualError(t, err, "token not tradeable yet")
}

func TestTransferAfterTradeable(t *testing.T) {
	s, _ := setupSale(t)
	_, err := s.Invest(owner, dao.MustAmount("1"))
	require.NoError(t, err)

	require.ErrorIs(t, s.SetTradeable("alice"), ErrNotOwner)
	require.NoError(t, s.SetTradeable(owner))
	ok, err := s.Tradeable()
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, s.Transfer(owner, "carol", dao.MustAmount("300")))
	carol, _ := s.TokenBalance("carol")
	require.Equal(t, dao.MustAmount("300"), carol)
	mine, _ := s.TokenBalance(owner)
	require.Equal(t, dao.MustAmount("700"), mine)

	require.ErrorIs(t, s.Transfer("carol", owner, dao.MustAmount("301")), ErrInsufficientFunds)
}

func TestInvestWithoutFunds(t *testing.T) {
	s, _ := setupSale(t)
	_, err := s.Invest("broke", dao.MustAmount("1"))
	require.ErrorIs(t, err, ErrInsufficientFunds)
	tokens, _ := s.TokenBalance("broke")
	require.Zero(t, tokens)
}

package lottery

import (
	"math/rand"
	"testing"

	"charity_dao/contract/dao"
	"charity_dao/logging"
	"charity_dao/sdk"

	"github.com/stretchr/testify/require"
)

const owner sdk.Address = "owner"

// fixedRand always draws the same ticket.
type fixedRand int64

func (f fixedRand) Int63n(n int64) int64 {
	return int64(f) % n
}

func setupLottery(t *testing.T, rnd Rand) (*Lottery, sdk.Ledger) {
	t.Helper()
	store := sdk.NewMockState()
	ledger := sdk.NewStateLedger(store)
	for _, acct := range []sdk.Address{owner, "alice", "bob"} {
		require.NoError(t, ledger.Credit(acct, int64(dao.MustAmount("2000"))))
	}
	l, err := New(sdk.NewExecutor(store, ledger), owner, rnd, logging.TestingLog())
	require.NoError(t, err)
	return l, ledger
}

func TestParticipate(t *testing.T) {
	l, _ := setupLottery(t, fixedRand(0))
	require.NoError(t, l.Participate(owner, dao.MustAmount("0.1")))
	require.NoError(t, l.Participate("alice", dao.MustAmount("0.5")))

	pot, err := l.Pot()
	require.NoError(t, err)
	require.Equal(t, dao.MustAmount("0.6"), pot)

	players, err := l.Participants()
	require.NoError(t, err)
	require.Equal(t, []sdk.Address{owner, "alice"}, players)
}

func TestParticipateTwiceKeepsOneSeat(t *testing.T) {
	l, _ := setupLottery(t, fixedRand(0))
	require.NoError(t, l.Participate("alice", dao.MustAmount("1")))
	require.NoError(t, l.Participate("alice", dao.MustAmount("2")))

	players, _ := l.Participants()
	require.Len(t, players, 1)
	stake, err := l.StakeOf("alice")
	require.NoError(t, err)
	require.Equal(t, dao.MustAmount("3"), stake)
}

// TestExecuteWeightsByStake checks the ticket lands inside the owning player's range.
func TestExecuteWeightsByStake(t *testing.T) {
	// owner holds tickets [0, 1000), alice [1000, 4000)
	for ticket, want := range map[int64]sdk.Address{0: owner, 999: owner, 1000: "alice", 3999: "alice"} {
		l, ledger := setupLottery(t, fixedRand(ticket))
		require.NoError(t, l.Participate(owner, dao.MustAmount("1")))
		require.NoError(t, l.Participate("alice", dao.MustAmount("3")))
		before, _ := ledger.BalanceOf(want)

		res, err := l.Execute(owner)
		require.NoError(t, err)
		require.Equal(t, want, res.Winner)
		require.Equal(t, dao.MustAmount("4"), res.Pot)
		require.Zero(t, res.Round)

		after, _ := ledger.BalanceOf(want)
		require.Equal(t, before+int64(dao.MustAmount("4")), after)
	}
}

func TestExecuteStartsNewRound(t *testing.T) {
	l, _ := setupLottery(t, rand.New(rand.NewSource(7)))
	require.NoError(t, l.Participate(owner, dao.MustAmount("1000")))
	require.NoError(t, l.Participate("alice", dao.MustAmount("1000")))

	res, err := l.Execute(owner)
	require.NoError(t, err)
	require.Contains(t, []sdk.Address{owner, "alice"}, res.Winner)

	pot, _ := l.Pot()
	require.Zero(t, pot)
	players, _ := l.Participants()
	require.Empty(t, players)
	stake, _ := l.StakeOf("alice")
	require.Zero(t, stake)
	round, err := l.Round()
	require.NoError(t, err)
	require.Equal(t, uint64(1), round)

	_, err = l.Execute(owner)
	require.ErrorIs(t, err, ErrNoParticipants)
}

func TestExecuteOwnerOnly(t *testing.T) {
	l, _ := setupLottery(t, fixedRand(0))
	require.NoError(t, l.Participate("bob", dao.MustAmount("1")))
	_, err := l.Execute("bob")
	require.ErrorIs(t, err, ErrNotOwner)

	pot, _ := l.Pot()
	require.Equal(t, dao.MustAmount("1"), pot)
}

func TestParticipateRejects(t *testing.T) {
	l, _ := setupLottery(t, fixedRand(0))
	require.ErrorIs(t, l.Participate("alice", 0), ErrInvalidAmount)
	require.ErrorIs(t, l.Participate("broke", 1), ErrInsufficientFunds)
	players, _ := l.Participants()
	require.Empty(t, players)
}

package contract_test

import (
	"testing"

	"charity_dao/contract"
	"charity_dao/contract/dao"

	"github.com/stretchr/testify/require"
)

// TestCallRunsFullFlow drives the engine purely through string payloads.
func TestCallRunsFullFlow(t *testing.T) {
	te := setupEngine(t)

	_, err := te.engine.Call(accounts[0], contract.ActionStake, "1")
	require.NoError(t, err)
	_, err = te.engine.Call(accounts[1], contract.ActionStake, `"2.5"`)
	require.NoError(t, err)

	res, err := te.engine.Call(accounts[0], contract.ActionPropose, "0.3|charity|coats | and boots")
	require.NoError(t, err)
	require.Equal(t, "0", res)
	p := proposal(t, te, 0)
	require.Equal(t, "coats | and boots", p.Description)
	require.Equal(t, dao.MustAmount("0.3"), p.Amount)

	_, err = te.engine.Call(accounts[0], contract.ActionVote, "0|for")
	require.NoError(t, err)
	_, err = te.engine.Call(accounts[1], contract.ActionVote, "0|no")
	require.NoError(t, err)
	_, err = te.engine.Call(accounts[2], contract.ActionStake, "1")
	require.NoError(t, err)
	_, err = te.engine.Call(accounts[2], contract.ActionVote, "0|yes")
	require.NoError(t, err)

	closeVoting(te)
	_, err = te.engine.Call(outsider, contract.ActionPay, "0")
	require.NoError(t, err)
	require.Equal(t, dao.MustAmount("0.3"), balance(t, te, charity))
}

func TestCallRejectsBadPayloads(t *testing.T) {
	te := setupStakedDAO(t)
	cases := []struct {
		action  string
		payload string
	}{
		{contract.ActionStake, ""},
		{contract.ActionStake, "  ''  "},
		{contract.ActionStake, "one"},
		{contract.ActionStake, "0.0001"},
		{contract.ActionPropose, "0.3"},
		{contract.ActionPropose, "x|charity|desc"},
		{contract.ActionVote, "0"},
		{contract.ActionVote, "0|maybe"},
		{contract.ActionVote, "-1|true"},
		{contract.ActionPay, "first"},
		{"proposal_burn", "0"},
	}
	for _, tc := range cases {
		_, err := te.engine.Call(accounts[0], tc.action, tc.payload)
		require.ErrorIs(t, err, contract.ErrInvalidPayload, "%s %q", tc.action, tc.payload)
	}
}

func TestCallSurfacesEngineErrors(t *testing.T) {
	te := setupStakedDAO(t)
	_, err := te.engine.Call(accounts[0], contract.ActionPay, "7")
	require.ErrorIs(t, err, contract.ErrProposalNotFound)
	_, err = te.engine.Call(outsider, contract.ActionPropose, "0.1|charity|")
	require.ErrorIs(t, err, contract.ErrNotAStakeholder)
}

package contract

import (
	"charity_dao/contract/dao"
	"charity_dao/sdk"
)

// Vote records one unweighted vote for or against the proposal. Each stakeholder votes
// at most once per proposal and only while the voting window is open.
// Example payload: e.Vote("bob", 0, true)
func (e *Engine) Vote(caller sdk.Address, index uint64, support bool) error {
	return e.mutate("vote", caller, func(c *call) error {
		prpsl, err := loadProposal(c.st, index)
		if err != nil {
			return err
		}
		if _, err := c.requireStakeholder(); err != nil {
			return err
		}
		prev, err := loadVoteReceipt(c.st, index, caller)
		if err != nil {
			return err
		}
		if prev != nil {
			return ErrDuplicateVote
		}
		if prpsl.Paid || c.env.Unix() >= prpsl.VotingEndsAt {
			return ErrVotingClosed
		}

		if support {
			prpsl.VotesFor++
		} else {
			prpsl.VotesAgainst++
		}
		saveProposal(c.st, prpsl)
		if err := saveVote(c.st, index, caller, &dao.VoteReceipt{Support: support, VotedAt: c.env.Unix()}); err != nil {
			return err
		}
		c.emitVoteCasted(index, support)
		return nil
	})
}

// HasVoted reports whether the account is in the proposal's voted set.
func (e *Engine) HasVoted(index uint64, account sdk.Address) (bool, error) {
	rec, err := loadVoteReceipt(e.store, index, account)
	return rec != nil, err
}

// VoteOf returns the account's vote on the proposal, or nil if it did not vote.
func (e *Engine) VoteOf(index uint64, account sdk.Address) (*dao.VoteReceipt, error) {
	return loadVoteReceipt(e.store, index, account)
}

// VotedProposals lists the proposal indexes the account voted on, oldest first.
func (e *Engine) VotedProposals(account sdk.Address) ([]uint64, error) {
	return loadVoterHistory(e.store, account)
}

package contract

import (
	"fmt"
	"strconv"

	"charity_dao/contract/dao"
	"charity_dao/sdk"
)

func saveProposal(st sdk.State, prpsl *dao.Proposal) {
	st.Set(proposalKey(prpsl.ID), string(dao.EncodeProposal(prpsl)))
}

// loadProposal fails with ErrProposalNotFound for indexes that were never created.
func loadProposal(st sdk.State, id uint64) (*dao.Proposal, error) {
	ptr, err := st.Get(proposalKey(id))
	if err != nil {
		return nil, err
	}
	if ptr == nil || *ptr == "" {
		return nil, fmt.Errorf("proposal %d: %w", id, ErrProposalNotFound)
	}
	prpsl, err := dao.DecodeProposal([]byte(*ptr))
	if err != nil {
		return nil, fmt.Errorf("failed to decode proposal %d: %w", id, err)
	}
	return prpsl, nil
}

// saveVote stores the receipt and appends the proposal to the voter's history.
func saveVote(st sdk.State, id uint64, voter sdk.Address, receipt *dao.VoteReceipt) error {
	st.Set(proposalVoteKey(id, voter), string(dao.EncodeVoteReceipt(receipt)))
	n, err := nextCount(st, voterCountKey(voter))
	if err != nil {
		return err
	}
	st.Set(voterIndexKey(voter, n), strconv.FormatUint(id, 10))
	return nil
}

// loadVoteReceipt returns nil when the voter has not voted on the proposal.
func loadVoteReceipt(st sdk.State, id uint64, voter sdk.Address) (*dao.VoteReceipt, error) {
	ptr, err := st.Get(proposalVoteKey(id, voter))
	if err != nil {
		return nil, err
	}
	if ptr == nil || *ptr == "" {
		return nil, nil
	}
	rec, err := dao.DecodeVoteReceipt([]byte(*ptr))
	if err != nil {
		return nil, fmt.Errorf("failed to decode vote of %s on %d: %w", voter, id, err)
	}
	return rec, nil
}

// loadVoterHistory lists proposal ids in the order the voter voted on them.
func loadVoterHistory(st sdk.State, voter sdk.Address) ([]uint64, error) {
	count, err := getCount(st, voterCountKey(voter))
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, count)
	for i := uint64(0); i < count; i++ {
		ptr, err := st.Get(voterIndexKey(voter, i))
		if err != nil {
			return nil, err
		}
		if ptr == nil {
			continue
		}
		id, err := strconv.ParseUint(*ptr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt vote index for %s: %w", voter, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

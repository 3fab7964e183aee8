package contract

import (
	"fmt"
	"sort"

	"charity_dao/contract/dao"
	"charity_dao/sdk"
)

// CreateProposal appends a payout request and returns its index. The caller must be a
// stakeholder and the amount must be covered by the treasury right now; the amount is
// checked again when the proposal is paid.
// Example payload: e.CreateProposal("owner", dao.MustAmount("0.3"), "charity", "for test")
func (e *Engine) CreateProposal(caller sdk.Address, amount dao.Amount, recipient sdk.Address, description string) (uint64, error) {
	var id uint64
	err := e.mutate("propose", caller, func(c *call) error {
		if _, err := c.requireStakeholder(); err != nil {
			return err
		}
		if amount <= 0 {
			return ErrInvalidAmount
		}
		if !recipient.IsValid() || recipient.Domain() == sdk.AddressDomainSystem {
			return ErrInvalidRecipient
		}
		if len(description) > MaxDescriptionLength {
			return ErrInvalidDescription
		}
		balance, err := getTreasuryBalance(c.ledger)
		if err != nil {
			return err
		}
		if amount > balance {
			return fmt.Errorf("requested %s, treasury holds %s: %w", amount, balance, ErrInsufficientTreasuryFunds)
		}

		id, err = nextCount(c.st, ProposalsCount)
		if err != nil {
			return err
		}
		now := c.env.Timestamp
		prpsl := &dao.Proposal{
			ID:           id,
			Amount:       amount,
			Recipient:    recipient,
			Description:  description,
			Proposer:     caller,
			CreatedAt:    now.Unix(),
			VotingEndsAt: now.Add(c.params.VotingPeriod).Unix(),
			Tx:           c.env.TxID,
		}
		saveProposal(c.st, prpsl)
		if err := addIDToIndex(c.st, idxProposalsOpen, id); err != nil {
			return err
		}
		c.emitProposalCreatedEvent(prpsl)
		c.onCommit(func(m *Metrics) { m.proposals.Set(float64(id + 1)) })
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetProposal returns a snapshot of the proposal at index.
func (e *Engine) GetProposal(index uint64) (*dao.Proposal, error) {
	return loadProposal(e.store, index)
}

// ProposalCount is the number of proposals ever created; valid indexes are [0, count).
func (e *Engine) ProposalCount() (uint64, error) {
	return getCount(e.store, ProposalsCount)
}

// ListProposals returns every proposal in index order.
func (e *Engine) ListProposals() ([]*dao.Proposal, error) {
	count, err := e.ProposalCount()
	if err != nil {
		return nil, err
	}
	out := make([]*dao.Proposal, 0, count)
	for i := uint64(0); i < count; i++ {
		prpsl, err := loadProposal(e.store, i)
		if err != nil {
			return nil, err
		}
		out = append(out, prpsl)
	}
	return out, nil
}

// ProposalsByState returns the open (unpaid) or paid proposals in index order.
func (e *Engine) ProposalsByState(state dao.ProposalState) ([]*dao.Proposal, error) {
	var base string
	switch state {
	case dao.ProposalOpen:
		base = idxProposalsOpen
	case dao.ProposalPaid:
		base = idxProposalsPaid
	default:
		return nil, fmt.Errorf("no index for proposal state %s", state)
	}
	ids, err := getIDsFromIndex(e.store, base)
	if err != nil {
		return nil, err
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*dao.Proposal, 0, len(ids))
	for _, id := range ids {
		prpsl, err := loadProposal(e.store, id)
		if err != nil {
			return nil, err
		}
		out = append(out, prpsl)
	}
	return out, nil
}

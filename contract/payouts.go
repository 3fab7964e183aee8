package contract

import (
	"errors"
	"fmt"

	"charity_dao/contract/dao"
	"charity_dao/sdk"
)

// PayCharity releases a proposal's amount to its recipient. Anyone may trigger it once
// the voting window has ended with more votes for than against. The checks run in order:
// already paid, window still open, majority, treasury balance.
// Example payload: e.PayCharity("anyone", 0)
func (e *Engine) PayCharity(caller sdk.Address, index uint64) error {
	return e.mutate("pay", caller, func(c *call) error {
		prpsl, err := loadProposal(c.st, index)
		if err != nil {
			return err
		}
		if prpsl.Paid {
			return ErrAlreadyPaid
		}
		if c.env.Unix() < prpsl.VotingEndsAt {
			return ErrVotingStillOpen
		}
		if prpsl.VotesFor <= prpsl.VotesAgainst {
			return fmt.Errorf("%d for, %d against: %w", prpsl.VotesFor, prpsl.VotesAgainst, ErrProposalRejected)
		}
		balance, err := getTreasuryBalance(c.ledger)
		if err != nil {
			return err
		}
		if balance < prpsl.Amount {
			return fmt.Errorf("requested %s, treasury holds %s: %w", prpsl.Amount, balance, ErrInsufficientTreasuryFunds)
		}

		if err := removeTreasuryFunds(c.ledger, prpsl.Recipient, prpsl.Amount); err != nil {
			if errors.Is(err, sdk.ErrInsufficientFunds) {
				return ErrInsufficientTreasuryFunds
			}
			return err
		}
		prpsl.Paid = true
		prpsl.PaidAt = c.env.Unix()
		saveProposal(c.st, prpsl)
		if err := moveIDBetweenIndexes(c.st, idxProposalsOpen, idxProposalsPaid, prpsl.ID); err != nil {
			return err
		}

		c.emitFundsRemoved(prpsl.ID, prpsl.Recipient.String(), prpsl.Amount)
		c.emitProposalStateChangedEvent(prpsl.ID, dao.ProposalPaid)
		paid := prpsl.Amount
		c.onCommit(func(m *Metrics) { m.paidOut.Add(float64(paid)) })
		return nil
	})
}

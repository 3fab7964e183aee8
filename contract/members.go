package contract

import (
	"fmt"
	"time"

	"charity_dao/contract/dao"
	"charity_dao/sdk"
)

// MakeStakeholder moves amount from the caller's balance into the treasury and adds it
// to both the caller's contributed and staked totals. The record is created on first use.
// Example payload: e.MakeStakeholder("alice", dao.MustAmount("1"))
func (e *Engine) MakeStakeholder(caller sdk.Address, amount dao.Amount) error {
	return e.mutate("stake", caller, func(c *call) error {
		if amount <= 0 {
			return ErrInvalidAmount
		}
		if !caller.IsValid() || caller.Domain() == sdk.AddressDomainSystem {
			return ErrInvalidCaller
		}
		member, ok, err := loadMember(c.st, caller)
		if err != nil {
			return err
		}
		now := c.env.Unix()
		if !ok {
			member = &dao.Member{Address: caller, JoinedAt: now}
		}
		if err := addTreasuryFunds(c.ledger, caller, amount); err != nil {
			return fmt.Errorf("stake %s from %s: %w", amount, caller, err)
		}
		member.Contributed += amount
		member.Staked += amount
		member.UpdatedAt = now
		saveMember(c.st, member)
		if err := saveStakeHistory(c.st, caller, member.Staked, now); err != nil {
			return err
		}
		c.emitStakeAdded(amount, member.Staked)
		return nil
	})
}

// Member returns a copy of the registry record, or nil for unknown accounts.
func (e *Engine) Member(account sdk.Address) (*dao.Member, error) {
	member, _, err := loadMember(e.store, account)
	return member, err
}

// IsContributor reports whether the account ever contributed a positive amount.
func (e *Engine) IsContributor(account sdk.Address) (bool, error) {
	member, err := e.Member(account)
	if err != nil {
		return false, err
	}
	return member.IsContributor(), nil
}

// IsStakeholder reports whether the account's cumulative stake reached the minimum.
func (e *Engine) IsStakeholder(account sdk.Address) (bool, error) {
	member, err := e.Member(account)
	if err != nil {
		return false, err
	}
	return member.IsStakeholder(e.params.MinStake), nil
}

// GetContributorBalance is the cumulative contributed amount (zero for unknown accounts).
func (e *Engine) GetContributorBalance(account sdk.Address) (dao.Amount, error) {
	member, err := e.Member(account)
	if err != nil || member == nil {
		return 0, err
	}
	return member.Contributed, nil
}

// GetStakeholderBalance is the cumulative staked amount (zero for unknown accounts).
func (e *Engine) GetStakeholderBalance(account sdk.Address) (dao.Amount, error) {
	member, err := e.Member(account)
	if err != nil || member == nil {
		return 0, err
	}
	return member.Staked, nil
}

// requireStakeholder loads the caller inside a mutation and fails with ErrNotAStakeholder.
func (c *call) requireStakeholder() (*dao.Member, error) {
	member, _, err := loadMember(c.st, c.env.Sender)
	if err != nil {
		return nil, err
	}
	if !member.IsStakeholder(c.params.MinStake) {
		return nil, ErrNotAStakeholder
	}
	return member, nil
}

// StakeHistory lists the account's staked total after each stake call, oldest first.
func (e *Engine) StakeHistory(account sdk.Address) ([]StakeHistoryEntry, error) {
	return loadAllStakeHistory(e.store, account)
}

// StakeAt is the account's staked total as of t.
func (e *Engine) StakeAt(account sdk.Address, t time.Time) (dao.Amount, error) {
	return getStakeAtTime(e.store, account, t.Unix())
}

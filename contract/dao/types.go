package dao

import (
	"fmt"

	"charity_dao/sdk"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of smallest units in one base currency unit.
const AmountScale = 1000

// Amount is a quantity of the native currency in smallest units.
type Amount int64

var (
	scale     = decimal.New(AmountScale, 0)
	maxAmount = decimal.NewFromInt(1 << 62)
)

// ParseAmount reads a decimal string of base units ("0.3") into smallest units.
// More precision than AmountScale allows is rejected rather than rounded.
// Example payload: dao.ParseAmount("1.234")
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	scaled := d.Mul(scale)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than 3 decimals", s)
	}
	if scaled.Abs().Cmp(maxAmount) > 0 {
		return 0, fmt.Errorf("amount %q out of range", s)
	}
	return Amount(scaled.IntPart()), nil
}

// MustAmount is ParseAmount for constants and tests.
func MustAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String renders the amount in base units with trailing zeros trimmed.
// Example payload: dao.Amount(300).String() == "0.3"
func (a Amount) String() string {
	return decimal.New(int64(a), 0).Div(scale).String()
}

// ProposalState captures a proposal's lifecycle.
type ProposalState uint8

const (
	ProposalStateUnspecified ProposalState = 0
	ProposalOpen             ProposalState = 1
	ProposalPaid             ProposalState = 2
)

// String prints the proposal state as lower-case text for events and logs.
// Example payload: dao.ProposalPaid.String()
func (ps ProposalState) String() string {
	switch ps {
	case ProposalOpen:
		return "open"
	case ProposalPaid:
		return "paid"
	default:
		return "unspecified"
	}
}

// Member is the registry record of one account. Both counters only grow.
type Member struct {
	Address     sdk.Address
	Contributed Amount
	Staked      Amount
	JoinedAt    int64
	UpdatedAt   int64
}

// IsContributor is true once anything was contributed.
func (m *Member) IsContributor() bool {
	return m != nil && m.Contributed > 0
}

// IsStakeholder is true once the cumulative stake reaches minStake.
func (m *Member) IsStakeholder(minStake Amount) bool {
	return m != nil && m.Staked >= minStake
}

type Proposal struct {
	ID           uint64
	Amount       Amount
	Recipient    sdk.Address
	Description  string
	Proposer     sdk.Address
	CreatedAt    int64
	VotingEndsAt int64
	VotesFor     uint64
	VotesAgainst uint64
	Paid         bool
	PaidAt       int64
	Tx           string
}

// State derives the lifecycle state from the paid flag.
func (p *Proposal) State() ProposalState {
	if p.Paid {
		return ProposalPaid
	}
	return ProposalOpen
}

// VoteReceipt records how an account voted on a proposal.
type VoteReceipt struct {
	Support bool
	VotedAt int64
}

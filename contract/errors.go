package contract

import "charity_dao/sdk"

var (
	ErrInvalidAmount             = sdk.NewRevert("amount must be positive", "invalid_amount")
	ErrNotAStakeholder           = sdk.NewRevert("only stakeholders are allowed", "not_stakeholder")
	ErrInsufficientTreasuryFunds = sdk.NewRevert("treasury balance too low", "treasury_funds")
	ErrDuplicateVote             = sdk.NewRevert("already voted on this proposal", "duplicate_vote")
	ErrVotingStillOpen           = sdk.NewRevert("Proposal still in the voting period", "voting_open")
	ErrVotingClosed              = sdk.NewRevert("Voting period has passed on this proposal", "voting_closed")
	ErrProposalRejected          = sdk.NewRevert("proposal did not get a majority", "rejected")
	ErrAlreadyPaid               = sdk.NewRevert("proposal already paid", "already_paid")
	ErrProposalNotFound          = sdk.NewRevert("proposal not found", "not_found")
	ErrInvalidRecipient          = sdk.NewRevert("invalid recipient", "invalid_recipient")
	ErrInvalidCaller             = sdk.NewRevert("invalid caller", "invalid_caller")
	ErrInvalidDescription        = sdk.NewRevert("description too long", "invalid_description")

	// ErrInsufficientFunds is re-exported so callers only need this package for matching.
	ErrInsufficientFunds = sdk.ErrInsufficientFunds
)

// ErrInvalidPayload is returned by Call for payloads that cannot be decoded.
var ErrInvalidPayload = sdk.NewRevert("invalid payload", "invalid_payload")

package contract

import (
	"time"

	"charity_dao/contract/dao"
)

// -----------------------------------------------------------------------------
// Default/Fallback Values
// -----------------------------------------------------------------------------

const (
	// FallbackVotingPeriod is how long a proposal collects votes before it can be paid.
	FallbackVotingPeriod = 7 * 24 * time.Hour
	// FallbackMinStake is the cumulative stake (in base units) that makes an account a stakeholder.
	FallbackMinStake dao.Amount = 1 * dao.AmountScale
)

// -----------------------------------------------------------------------------
// Validation Limits
// -----------------------------------------------------------------------------

const (
	// MaxDescriptionLength limits the size of proposal descriptions.
	MaxDescriptionLength = 2000
)

// -----------------------------------------------------------------------------
// Counter Keys
// -----------------------------------------------------------------------------

const (
	// ProposalsCount holds the number of proposals ever created, which is also the next index.
	ProposalsCount = "count:props"
)

// -----------------------------------------------------------------------------
// Index Keys
// -----------------------------------------------------------------------------

const (
	maxChunkSize     = 2500             // index chunks hold at most this many ids
	idxProposalsOpen = "idx:props:open" // proposals that were not paid yet
	idxProposalsPaid = "idx:props:paid" // proposals whose funds were released
)

// -----------------------------------------------------------------------------
// Storage Key Prefixes
// -----------------------------------------------------------------------------

const (
	// kMember houses encoded dao.Member records.
	kMember byte = 0x04
	// kStakeHistory keeps one snapshot per stake call: kStakeHistory|address|n.
	kStakeHistory byte = 0x05
	// kProposalMeta contains encoded dao.Proposal records.
	kProposalMeta byte = 0x10
	// kVoteReceipt stores one receipt per proposal+voter; its presence is the voted-set membership.
	kVoteReceipt byte = 0x20
	// kVoterIndex lists proposals per voter: kVoterIndex|address|proposalID.
	kVoterIndex byte = 0x21
)

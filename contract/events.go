package contract

import (
	"fmt"
	"strconv"
	"time"

	"charity_dao/contract/dao"
)

// Event is one compact, pipe-delimited log line produced by a committed operation.
type Event struct {
	Kind string
	TxID string
	At   time.Time
	Line string
}

// EventSink receives events after the operation that produced them has committed.
type EventSink interface {
	Record(ev Event) error
}

// emitStakeAdded tells indexers that the caller moved funds into the treasury.
func (c *call) emitStakeAdded(amount dao.Amount, staked dao.Amount) {
	c.emit("st", fmt.Sprintf(
		"st|by:%s|am:%s|tot:%s",
		c.env.Sender,
		amount,
		staked,
	))
}

// emitProposalCreatedEvent keeps observers updated with a short pc line for every new request.
func (c *call) emitProposalCreatedEvent(prpsl *dao.Proposal) {
	c.emit("pc", fmt.Sprintf(
		"pc|id:%d|by:%s|to:%s|am:%s|end:%d",
		prpsl.ID,
		prpsl.Proposer,
		prpsl.Recipient,
		prpsl.Amount,
		prpsl.VotingEndsAt,
	))
}

// emitVoteCasted includes the side taken so tallies can be replayed from logs only.
func (c *call) emitVoteCasted(proposalID uint64, support bool) {
	c.emit("v", fmt.Sprintf(
		"v|id:%d|by:%s|s:%s",
		proposalID,
		c.env.Sender,
		strconv.FormatBool(support),
	))
}

// emitProposalStateChangedEvent logs any lifecycle flip.
func (c *call) emitProposalStateChangedEvent(proposalID uint64, state dao.ProposalState) {
	c.emit("ps", fmt.Sprintf(
		"ps|id:%d|s:%s",
		proposalID,
		state.String(),
	))
}

// emitFundsRemoved traces payouts out of the treasury.
func (c *call) emitFundsRemoved(proposalID uint64, to string, amount dao.Amount) {
	c.emit("rf", fmt.Sprintf(
		"rf|id:%d|to:%s|am:%s|by:%s",
		proposalID,
		to,
		amount,
		c.env.Sender,
	))
}

func (c *call) emit(kind, line string) {
	c.events = append(c.events, Event{
		Kind: kind,
		TxID: c.env.TxID,
		At:   c.env.Timestamp,
		Line: line,
	})
}

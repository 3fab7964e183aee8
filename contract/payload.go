package contract

import (
	"fmt"
	"strconv"
	"strings"

	"charity_dao/contract/dao"
	"charity_dao/sdk"
)

// Actions accepted by Call.
const (
	ActionDeposit = "deposit"
	ActionStake   = "stake"
	ActionPropose = "proposal_create"
	ActionVote    = "proposal_vote"
	ActionPay     = "proposal_pay"
)

// CreateProposalArgs is the decoded `amount|recipient|description` payload.
type CreateProposalArgs struct {
	Amount      dao.Amount
	Recipient   sdk.Address
	Description string
}

// VoteArgs is the decoded `proposalId|support` payload.
type VoteArgs struct {
	ProposalID uint64
	Support    bool
}

// Call runs one mutating action from its string payload and returns the textual result
// (the new proposal index for proposal_create, empty otherwise).
// Example payload: e.Call("alice", "proposal_create", "0.3|charity|winter coats")
func (e *Engine) Call(caller sdk.Address, action string, payload string) (string, error) {
	switch action {
	case ActionDeposit:
		amount, err := decodeAmountArg(payload)
		if err != nil {
			return "", err
		}
		return "", e.Deposit(caller, amount)
	case ActionStake:
		amount, err := decodeAmountArg(payload)
		if err != nil {
			return "", err
		}
		return "", e.MakeStakeholder(caller, amount)
	case ActionPropose:
		args, err := decodeCreateProposalArgs(payload)
		if err != nil {
			return "", err
		}
		id, err := e.CreateProposal(caller, args.Amount, args.Recipient, args.Description)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(id, 10), nil
	case ActionVote:
		args, err := decodeVoteArgs(payload)
		if err != nil {
			return "", err
		}
		return "", e.Vote(caller, args.ProposalID, args.Support)
	case ActionPay:
		raw, err := unwrapPayload(payload, "proposal id missing")
		if err != nil {
			return "", err
		}
		id, err := parseUintField(raw, "proposal id")
		if err != nil {
			return "", err
		}
		return "", e.PayCharity(caller, id)
	default:
		return "", fmt.Errorf("unknown action %q: %w", action, ErrInvalidPayload)
	}
}

// decodeAmountArg reads a single decimal amount such as "0.3".
func decodeAmountArg(payload string) (dao.Amount, error) {
	raw, err := unwrapPayload(payload, "amount missing")
	if err != nil {
		return 0, err
	}
	return parseAmountField(raw, "amount")
}

// decodeCreateProposalArgs splits on the first two pipes; the description keeps any further ones.
func decodeCreateProposalArgs(payload string) (*CreateProposalArgs, error) {
	raw, err := unwrapPayload(payload, "proposal payload missing")
	if err != nil {
		return nil, err
	}
	parts := strings.SplitN(raw, "|", 3)
	if len(parts) < 2 {
		return nil, fmt.Errorf("proposal payload requires amount|recipient|description: %w", ErrInvalidPayload)
	}
	amount, err := parseAmountField(parts[0], "amount")
	if err != nil {
		return nil, err
	}
	args := &CreateProposalArgs{
		Amount:    amount,
		Recipient: sdk.Address(strings.TrimSpace(parts[1])),
	}
	if len(parts) == 3 {
		args.Description = strings.TrimSpace(parts[2])
	}
	return args, nil
}

// decodeVoteArgs expects `proposalId|support`.
func decodeVoteArgs(payload string) (*VoteArgs, error) {
	raw, err := unwrapPayload(payload, "vote payload missing")
	if err != nil {
		return nil, err
	}
	parts := strings.Split(raw, "|")
	if len(parts) != 2 {
		return nil, fmt.Errorf("vote payload requires proposalId|support: %w", ErrInvalidPayload)
	}
	id, err := parseUintField(parts[0], "proposal id")
	if err != nil {
		return nil, err
	}
	support, err := parseBoolField(parts[1], "support")
	if err != nil {
		return nil, err
	}
	return &VoteArgs{ProposalID: id, Support: support}, nil
}

// unwrapPayload trims quotes and whitespace and rejects empty payloads.
func unwrapPayload(payload string, errMsg string) (string, error) {
	raw := strings.TrimSpace(payload)
	if len(raw) >= 2 {
		first := raw[0]
		last := raw[len(raw)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			if unquoted, err := strconv.Unquote(raw); err == nil {
				raw = unquoted
			} else {
				raw = raw[1 : len(raw)-1]
			}
			raw = strings.TrimSpace(raw)
		}
	}
	if raw == "" {
		return "", fmt.Errorf("%s: %w", errMsg, ErrInvalidPayload)
	}
	return raw, nil
}

func parseAmountField(val string, field string) (dao.Amount, error) {
	amt, err := dao.ParseAmount(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("invalid %s (%v): %w", field, err, ErrInvalidPayload)
	}
	return amt, nil
}

// parseUintField is used for proposal ids.
func parseUintField(val string, field string) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(val), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", field, ErrInvalidPayload)
	}
	return n, nil
}

// parseBoolField accepts a couple of keywords per side; anything else is an error.
func parseBoolField(val string, field string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "y", "for":
		return true, nil
	case "0", "false", "no", "n", "against":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s: %w", field, ErrInvalidPayload)
	}
}

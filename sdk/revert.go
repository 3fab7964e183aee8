package sdk

// Revert is a rejected operation: a readable message plus a short symbol callers can
// switch on. Two Reverts match under errors.Is when their symbols match.
type Revert struct {
	Msg    string
	Symbol string
}

// NewRevert builds a Revert.
// Example payload: sdk.NewRevert("bad input", "input_error")
func NewRevert(msg string, symbol string) *Revert {
	return &Revert{Msg: msg, Symbol: symbol}
}

func (r *Revert) Error() string {
	return r.Msg
}

// Is makes sentinel Reverts comparable by symbol.
func (r *Revert) Is(target error) bool {
	t, ok := target.(*Revert)
	if !ok {
		return false
	}
	return r.Symbol == t.Symbol
}

// ErrInsufficientFunds is the ledger-level failure for a debit larger than the balance.
var ErrInsufficientFunds = NewRevert("insufficient funds", "insufficient_funds")

// ErrBalanceOverflow rejects a credit that would push a balance past the int64 range.
var ErrBalanceOverflow = NewRevert("balance overflow", "balance_overflow")

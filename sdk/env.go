package sdk

import (
	"time"

	"github.com/google/uuid"
)

// Env is the call context of a single state-mutating operation. It replaces an
// ambient "current sender" and "current block time": every mutation receives
// the acting account explicitly and reads time once per call.
type Env struct {
	Sender    Address
	Timestamp time.Time
	TxID      string
}

// NewEnv stamps a call made by sender with the clock's current time and a fresh tx id.
func NewEnv(sender Address, clock Clock) Env {
	return Env{
		Sender:    sender,
		Timestamp: clock.Now(),
		TxID:      uuid.NewString(),
	}
}

// Unix returns the call timestamp in unix seconds, the unit stored on proposals.
func (e Env) Unix() int64 {
	return e.Timestamp.Unix()
}

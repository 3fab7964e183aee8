// Package faucet hands out small amounts of native currency from a pool anyone can top up.
package faucet

import (
	"fmt"

	"charity_dao/contract/dao"
	"charity_dao/logging"
	"charity_dao/sdk"
)

// Address is the ledger account holding the faucet pool.
const Address sdk.Address = "contract:faucet"

// FallbackMaxWithdraw is the per-call withdrawal cap.
var FallbackMaxWithdraw = dao.MustAmount("0.1")

var (
	ErrInvalidAmount     = sdk.NewRevert("amount must be positive", "invalid_amount")
	ErrInvalidCaller     = sdk.NewRevert("invalid caller", "invalid_caller")
	ErrInsufficientFunds = sdk.ErrInsufficientFunds
)

// Faucet is safe for concurrent use.
type Faucet struct {
	exec        *sdk.Executor
	ledger      sdk.Ledger
	maxWithdraw dao.Amount
	limitErr    *sdk.Revert
	log         logging.Logger
}

// New builds a faucet on exec whose withdrawals are capped at maxWithdraw per call.
func New(exec *sdk.Executor, maxWithdraw dao.Amount, log logging.Logger) (*Faucet, error) {
	if maxWithdraw <= 0 {
		return nil, fmt.Errorf("faucet cap must be positive, got %s", maxWithdraw)
	}
	if log == nil {
		log = logging.Base()
	}
	return &Faucet{
		exec:        exec,
		ledger:      exec.Ledger(),
		maxWithdraw: maxWithdraw,
		limitErr:    ErrWithdrawLimit(maxWithdraw),
		log:         log.With("component", "faucet"),
	}, nil
}

// ErrWithdrawLimit is the revert for a withdrawal above max. Every cap shares the symbol.
func ErrWithdrawLimit(max dao.Amount) *sdk.Revert {
	return sdk.NewRevert(fmt.Sprintf("only allowed withdraw up to %s", max), "withdraw_limit")
}

// MaxWithdraw returns the per-call cap.
func (f *Faucet) MaxWithdraw() dao.Amount {
	return f.maxWithdraw
}

// Fund moves amount from the caller into the pool.
// Example payload: f.Fund("owner", dao.MustAmount("1"))
func (f *Faucet) Fund(caller sdk.Address, amount dao.Amount) error {
	return f.run("fund", caller, func(l sdk.Ledger) (string, error) {
		if amount <= 0 {
			return "", ErrInvalidAmount
		}
		if err := l.Transfer(caller, Address, int64(amount)); err != nil {
			return "", err
		}
		return fmt.Sprintf("ff|by:%s|am:%s", caller, amount), nil
	})
}

// Withdraw pays amount out of the pool to the caller.
// Example payload: f.Withdraw("alice", dao.MustAmount("0.1"))
func (f *Faucet) Withdraw(caller sdk.Address, amount dao.Amount) error {
	return f.run("withdraw", caller, func(l sdk.Ledger) (string, error) {
		if amount <= 0 {
			return "", ErrInvalidAmount
		}
		if amount > f.maxWithdraw {
			return "", f.limitErr
		}
		if err := l.Transfer(Address, caller, int64(amount)); err != nil {
			return "", err
		}
		return fmt.Sprintf("fw|to:%s|am:%s", caller, amount), nil
	})
}

// Balance is what is left in the pool.
func (f *Faucet) Balance() (dao.Amount, error) {
	bal, err := f.ledger.BalanceOf(Address)
	return dao.Amount(bal), err
}

func (f *Faucet) run(op string, caller sdk.Address, fn func(l sdk.Ledger) (string, error)) error {
	if !caller.IsValid() || caller.Domain() == sdk.AddressDomainSystem {
		return ErrInvalidCaller
	}
	var line string
	err := f.exec.Run(func(_ sdk.State, l sdk.Ledger) error {
		var err error
		line, err = fn(l)
		return err
	})
	log := f.log.WithFields(logging.Fields{"op": op, "caller": caller})
	if err != nil {
		log.Debugf("rejected: %v", err)
		return err
	}
	log.Info(line)
	return nil
}

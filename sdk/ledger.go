package sdk

import (
	"fmt"
	"math"
	"strconv"
)

// kLedgerBalance prefixes native balance entries: kLedgerBalance|address.
const kLedgerBalance byte = 0x30

// Ledger holds native-currency balances in smallest units. A failed call leaves
// every balance unchanged.
type Ledger interface {
	Credit(to Address, amount int64) error
	Debit(from Address, amount int64) error
	Transfer(from, to Address, amount int64) error
	BalanceOf(addr Address) (int64, error)
}

// LedgerBinder is implemented by ledgers that can run against a transaction overlay,
// letting balance moves commit together with the caller's other writes.
type LedgerBinder interface {
	Bind(st State) Ledger
}

// StateLedger keeps balances in a State under kLedgerBalance keys.
type StateLedger struct {
	st State
}

// NewStateLedger returns a ledger reading and writing st.
func NewStateLedger(st State) *StateLedger {
	return &StateLedger{st: st}
}

// Bind implements LedgerBinder.
func (l *StateLedger) Bind(st State) Ledger {
	return &StateLedger{st: st}
}

func ledgerBalanceKey(addr Address) string {
	s := addr.String()
	buf := make([]byte, 0, 1+len(s))
	buf = append(buf, kLedgerBalance)
	buf = append(buf, s...)
	return string(buf)
}

// BalanceOf is a pure read; unknown accounts hold zero.
func (l *StateLedger) BalanceOf(addr Address) (int64, error) {
	ptr, err := l.st.Get(ledgerBalanceKey(addr))
	if err != nil {
		return 0, err
	}
	if ptr == nil || *ptr == "" {
		return 0, nil
	}
	bal, err := strconv.ParseInt(*ptr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt balance for %s: %w", addr, err)
	}
	return bal, nil
}

func (l *StateLedger) setBalance(addr Address, bal int64) {
	key := ledgerBalanceKey(addr)
	if bal == 0 {
		l.st.Delete(key)
		return
	}
	l.st.Set(key, strconv.FormatInt(bal, 10))
}

// Credit adds amount to the account.
func (l *StateLedger) Credit(to Address, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("credit %d to %s: non-positive amount", amount, to)
	}
	bal, err := l.BalanceOf(to)
	if err != nil {
		return err
	}
	if bal > math.MaxInt64-amount {
		return ErrBalanceOverflow
	}
	l.setBalance(to, bal+amount)
	return nil
}

// Debit removes amount from the account or fails with ErrInsufficientFunds.
func (l *StateLedger) Debit(from Address, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("debit %d from %s: non-positive amount", amount, from)
	}
	bal, err := l.BalanceOf(from)
	if err != nil {
		return err
	}
	if bal < amount {
		return ErrInsufficientFunds
	}
	l.setBalance(from, bal-amount)
	return nil
}

// Transfer debits from and credits to, or does neither.
func (l *StateLedger) Transfer(from, to Address, amount int64) error {
	if from == to {
		return fmt.Errorf("transfer to self (%s)", from)
	}
	fromBal, err := l.BalanceOf(from)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("transfer %d: non-positive amount", amount)
	}
	if fromBal < amount {
		return ErrInsufficientFunds
	}
	toBal, err := l.BalanceOf(to)
	if err != nil {
		return err
	}
	if toBal > math.MaxInt64-amount {
		return ErrBalanceOverflow
	}
	l.setBalance(from, fromBal-amount)
	l.setBalance(to, toBal+amount)
	return nil
}

// RunTx runs fn against a Tx over store, binding ledger to the overlay when it supports it,
// and commits only when fn succeeds.
func RunTx(store Store, ledger Ledger, fn func(st State, l Ledger) error) error {
	tx := NewTx(store)
	bound := ledger
	if b, ok := ledger.(LedgerBinder); ok {
		bound = b.Bind(tx)
	}
	if err := fn(tx, bound); err != nil {
		tx.Discard()
		return err
	}
	return tx.Commit()
}

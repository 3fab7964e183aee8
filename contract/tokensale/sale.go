// Package tokensale runs a capped token sale: investors pay native currency and are
// minted tokens at a fixed rate. Tokens stay locked until the owner opens trading.
package tokensale

import (
	"fmt"
	"math"

	"charity_dao/contract/dao"
	"charity_dao/logging"
	"charity_dao/sdk"
)

// Address is the ledger account collecting investments.
const Address sdk.Address = "contract:tokensale"

const (
	FallbackRate int64 = 1000
	keyPrefix          = "sale:"
	tradeableKey       = "tradeable"
	supplyKey          = "supply"
)

// FallbackCap is the default most one investor may put in.
var FallbackCap = dao.MustAmount("100")

var (
	ErrInvalidAmount     = sdk.NewRevert("amount must be positive", "invalid_amount")
	ErrExceedsCap        = sdk.NewRevert("Exceed maximum value of investment", "exceeds_cap")
	ErrNotTradeable      = sdk.NewRevert("token not tradeable yet", "not_tradeable")
	ErrNotOwner          = sdk.NewRevert("only the owner can do this", "not_owner")
	ErrInvalidCaller     = sdk.NewRevert("invalid caller", "invalid_caller")
	ErrInsufficientFunds = sdk.ErrInsufficientFunds
)

// Config fixes the sale terms.
type Config struct {
	Owner sdk.Address
	// Rate is tokens minted per currency unit.
	Rate int64
	// Cap bounds each investor's running total.
	Cap dao.Amount
}

func (c Config) validate() error {
	if !c.Owner.IsValid() {
		return fmt.Errorf("invalid sale owner %q", c.Owner)
	}
	if c.Rate <= 0 {
		return fmt.Errorf("sale rate must be positive, got %d", c.Rate)
	}
	if c.Cap <= 0 {
		return fmt.Errorf("sale cap must be positive, got %s", c.Cap)
	}
	return nil
}

// Sale is safe for concurrent use.
type Sale struct {
	exec  *sdk.Executor
	store sdk.Store
	cfg   Config
	log   logging.Logger
}

// New builds a sale that writes through exec.
func New(exec *sdk.Executor, cfg Config, log logging.Logger) (*Sale, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Base()
	}
	return &Sale{exec: exec, store: exec.Store(), cfg: cfg, log: log.With("component", "tokensale")}, nil
}

// Token balances live under tok:, invested totals under inv:.
type books struct {
	st       sdk.State
	tokens   *sdk.StateLedger
	invested *sdk.StateLedger
}

func openBooks(st sdk.State) *books {
	scoped := sdk.Prefixed(st, keyPrefix)
	return &books{
		st:       scoped,
		tokens:   sdk.NewStateLedger(sdk.Prefixed(scoped, "tok:")),
		invested: sdk.NewStateLedger(sdk.Prefixed(scoped, "inv:")),
	}
}

// Invest moves value from the caller into the sale and mints value*Rate tokens.
// Returns the tokens minted.
// Example payload: s.Invest("alice", dao.MustAmount("1"))
func (s *Sale) Invest(caller sdk.Address, value dao.Amount) (dao.Amount, error) {
	var minted dao.Amount
	err := s.run("invest", caller, func(b *books, l sdk.Ledger) (string, error) {
		if value <= 0 {
			return "", ErrInvalidAmount
		}
		prev, err := b.invested.BalanceOf(caller)
		if err != nil {
			return "", err
		}
		if dao.Amount(prev)+value > s.cfg.Cap {
			return "", ErrExceedsCap
		}
		if int64(value) > math.MaxInt64/s.cfg.Rate {
			return "", ErrExceedsCap
		}
		if err := l.Transfer(caller, Address, int64(value)); err != nil {
			return "", err
		}
		minted = value * dao.Amount(s.cfg.Rate)
		if err := b.invested.Credit(caller, int64(value)); err != nil {
			return "", err
		}
		if err := b.tokens.Credit(caller, int64(minted)); err != nil {
			return "", err
		}
		supply, err := b.supply()
		if err != nil {
			return "", err
		}
		if supply > math.MaxInt64-minted {
			return "", sdk.ErrBalanceOverflow
		}
		b.st.Set(supplyKey, (supply + minted).String())
		return fmt.Sprintf("ti|by:%s|am:%s|tk:%s", caller, value, minted), nil
	})
	if err != nil {
		return 0, err
	}
	return minted, nil
}

// Transfer moves tokens between holders once trading is open.
// Example payload: s.Transfer("alice", "bob", dao.MustAmount("300"))
func (s *Sale) Transfer(caller, to sdk.Address, amount dao.Amount) error {
	return s.run("transfer", caller, func(b *books, _ sdk.Ledger) (string, error) {
		tradeable, err := b.tradeable()
		if err != nil {
			return "", err
		}
		if !tradeable {
			return "", ErrNotTradeable
		}
		if amount <= 0 {
			return "", ErrInvalidAmount
		}
		if !to.IsValid() || to == caller {
			return "", ErrInvalidCaller
		}
		if err := b.tokens.Transfer(caller, to, int64(amount)); err != nil {
			return "", err
		}
		return fmt.Sprintf("tt|by:%s|to:%s|am:%s", caller, to, amount), nil
	})
}

// SetTradeable opens token trading. Only the owner may call it.
func (s *Sale) SetTradeable(caller sdk.Address) error {
	return s.run("tradeable", caller, func(b *books, _ sdk.Ledger) (string, error) {
		if caller != s.cfg.Owner {
			return "", ErrNotOwner
		}
		b.st.Set(tradeableKey, "1")
		return fmt.Sprintf("tr|by:%s", caller), nil
	})
}

// TokenBalance reads a holder's tokens.
func (s *Sale) TokenBalance(holder sdk.Address) (dao.Amount, error) {
	bal, err := openBooks(s.store).tokens.BalanceOf(holder)
	return dao.Amount(bal), err
}

// Invested reads how much currency the account has put in.
func (s *Sale) Invested(holder sdk.Address) (dao.Amount, error) {
	bal, err := openBooks(s.store).invested.BalanceOf(holder)
	return dao.Amount(bal), err
}

// Tradeable reports whether token transfers are open.
func (s *Sale) Tradeable() (bool, error) {
	return openBooks(s.store).tradeable()
}

// Supply is the total number of tokens minted.
func (s *Sale) Supply() (dao.Amount, error) {
	return openBooks(s.store).supply()
}

func (b *books) tradeable() (bool, error) {
	ptr, err := b.st.Get(tradeableKey)
	if err != nil {
		return false, err
	}
	return ptr != nil && *ptr == "1", nil
}

func (b *books) supply() (dao.Amount, error) {
	ptr, err := b.st.Get(supplyKey)
	if err != nil || ptr == nil {
		return 0, err
	}
	return dao.ParseAmount(*ptr)
}

func (s *Sale) run(op string, caller sdk.Address, fn func(b *books, l sdk.Ledger) (string, error)) error {
	if !caller.IsValid() || caller.Domain() == sdk.AddressDomainSystem {
		return ErrInvalidCaller
	}
	var line string
	err := s.exec.Run(func(st sdk.State, l sdk.Ledger) error {
		var err error
		line, err = fn(openBooks(st), l)
		return err
	})
	log := s.log.WithFields(logging.Fields{"op": op, "caller": caller})
	if err != nil {
		log.Debugf("rejected: %v", err)
		return err
	}
	log.Info(line)
	return nil
}

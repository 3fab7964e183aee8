// Package lottery pools stakes into a pot that the owner periodically draws. A
// participant's chance of winning is proportional to what they put into the round.
package lottery

import (
	"fmt"
	"strconv"

	"charity_dao/contract/dao"
	"charity_dao/logging"
	"charity_dao/sdk"
)

// Address is the ledger account holding the pot.
const Address sdk.Address = "contract:lottery"

const (
	keyPrefix  = "lot:"
	roundKey   = "round"
	playersKey = "players"
)

var (
	ErrInvalidAmount     = sdk.NewRevert("amount must be positive", "invalid_amount")
	ErrNotOwner          = sdk.NewRevert("only the owner can execute the lottery", "not_owner")
	ErrNoParticipants    = sdk.NewRevert("no participants in this round", "no_participants")
	ErrInvalidCaller     = sdk.NewRevert("invalid caller", "invalid_caller")
	ErrInsufficientFunds = sdk.ErrInsufficientFunds
)

// Rand is the random source used to draw winners. *math/rand.Rand satisfies it.
type Rand interface {
	Int63n(n int64) int64
}

// Result describes a finished round.
type Result struct {
	Round  uint64
	Winner sdk.Address
	Pot    dao.Amount
}

// Lottery is safe for concurrent use.
type Lottery struct {
	exec   *sdk.Executor
	store  sdk.Store
	ledger sdk.Ledger
	owner  sdk.Address
	rnd    Rand
	log    logging.Logger
}

// New builds a lottery on exec, drawn by owner using rnd.
func New(exec *sdk.Executor, owner sdk.Address, rnd Rand, log logging.Logger) (*Lottery, error) {
	if !owner.IsValid() {
		return nil, fmt.Errorf("invalid lottery owner %q", owner)
	}
	if rnd == nil {
		return nil, fmt.Errorf("lottery needs a random source")
	}
	if log == nil {
		log = logging.Base()
	}
	return &Lottery{exec: exec, store: exec.Store(), ledger: exec.Ledger(), owner: owner, rnd: rnd, log: log.With("component", "lottery")}, nil
}

// round keeps the participant list (players|i) and the per-player stakes (s:addr).
type round struct {
	st     sdk.State
	stakes *sdk.StateLedger
}

func openRound(st sdk.State) *round {
	scoped := sdk.Prefixed(st, keyPrefix)
	return &round{st: scoped, stakes: sdk.NewStateLedger(sdk.Prefixed(scoped, "s:"))}
}

func (r *round) readUint(key string) (uint64, error) {
	ptr, err := r.st.Get(key)
	if err != nil || ptr == nil {
		return 0, err
	}
	return strconv.ParseUint(*ptr, 10, 64)
}

func playerKey(i uint64) string {
	return playersKey + "|" + strconv.FormatUint(i, 10)
}

func (r *round) players() ([]sdk.Address, error) {
	n, err := r.readUint(playersKey)
	if err != nil {
		return nil, err
	}
	out := make([]sdk.Address, 0, n)
	for i := uint64(0); i < n; i++ {
		ptr, err := r.st.Get(playerKey(i))
		if err != nil {
			return nil, err
		}
		if ptr == nil {
			return nil, fmt.Errorf("player %d missing", i)
		}
		out = append(out, sdk.Address(*ptr))
	}
	return out, nil
}

// Participate moves value from the caller into the pot.
// Example payload: l.Participate("alice", dao.MustAmount("0.1"))
func (l *Lottery) Participate(caller sdk.Address, value dao.Amount) error {
	return l.run("participate", caller, func(r *round, ledger sdk.Ledger) (string, error) {
		if value <= 0 {
			return "", ErrInvalidAmount
		}
		if err := ledger.Transfer(caller, Address, int64(value)); err != nil {
			return "", err
		}
		prev, err := r.stakes.BalanceOf(caller)
		if err != nil {
			return "", err
		}
		if prev == 0 {
			n, err := r.readUint(playersKey)
			if err != nil {
				return "", err
			}
			r.st.Set(playerKey(n), caller.String())
			r.st.Set(playersKey, strconv.FormatUint(n+1, 10))
		}
		if err := r.stakes.Credit(caller, int64(value)); err != nil {
			return "", err
		}
		return fmt.Sprintf("lp|by:%s|am:%s", caller, value), nil
	})
}

// Execute draws a winner, pays out the whole pot and starts the next round.
// Only the owner may call it.
func (l *Lottery) Execute(caller sdk.Address) (*Result, error) {
	var res *Result
	err := l.run("execute", caller, func(r *round, ledger sdk.Ledger) (string, error) {
		if caller != l.owner {
			return "", ErrNotOwner
		}
		players, err := r.players()
		if err != nil {
			return "", err
		}
		if len(players) == 0 {
			return "", ErrNoParticipants
		}
		stakes := make([]int64, len(players))
		var total int64
		for i, p := range players {
			if stakes[i], err = r.stakes.BalanceOf(p); err != nil {
				return "", err
			}
			total += stakes[i]
		}
		ticket := l.rnd.Int63n(total)
		winner := players[len(players)-1]
		for i, p := range players {
			if ticket < stakes[i] {
				winner = p
				break
			}
			ticket -= stakes[i]
		}

		pot, err := ledger.BalanceOf(Address)
		if err != nil {
			return "", err
		}
		if err := ledger.Transfer(Address, winner, pot); err != nil {
			return "", err
		}
		for i, p := range players {
			if err := r.stakes.Debit(p, stakes[i]); err != nil {
				return "", err
			}
			r.st.Delete(playerKey(uint64(i)))
		}
		r.st.Delete(playersKey)
		n, err := r.readUint(roundKey)
		if err != nil {
			return "", err
		}
		r.st.Set(roundKey, strconv.FormatUint(n+1, 10))

		res = &Result{Round: n, Winner: winner, Pot: dao.Amount(pot)}
		return fmt.Sprintf("lx|rd:%d|to:%s|am:%s", n, winner, res.Pot), nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Pot is the amount the next draw pays out.
func (l *Lottery) Pot() (dao.Amount, error) {
	bal, err := l.ledger.BalanceOf(Address)
	return dao.Amount(bal), err
}

// Participants lists the current round's players in joining order.
func (l *Lottery) Participants() ([]sdk.Address, error) {
	return openRound(l.store).players()
}

// StakeOf is what the account put into the current round.
func (l *Lottery) StakeOf(player sdk.Address) (dao.Amount, error) {
	bal, err := openRound(l.store).stakes.BalanceOf(player)
	return dao.Amount(bal), err
}

// Round is the number of the round currently taking stakes, starting at 0.
func (l *Lottery) Round() (uint64, error) {
	return openRound(l.store).readUint(roundKey)
}

func (l *Lottery) run(op string, caller sdk.Address, fn func(r *round, ledger sdk.Ledger) (string, error)) error {
	if !caller.IsValid() || caller.Domain() == sdk.AddressDomainSystem {
		return ErrInvalidCaller
	}
	var line string
	err := l.exec.Run(func(st sdk.State, ledger sdk.Ledger) error {
		var err error
		line, err = fn(openRound(st), ledger)
		return err
	})
	log := l.log.WithFields(logging.Fields{"op": op, "caller": caller})
	if err != nil {
		log.Debugf("rejected: %v", err)
		return err
	}
	log.Info(line)
	return nil
}

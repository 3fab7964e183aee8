package main

import (
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"charity_dao/api"
	"charity_dao/config"
	"charity_dao/contract"
	"charity_dao/contract/faucet"
	"charity_dao/contract/lottery"
	"charity_dao/contract/tokensale"
	"charity_dao/journal"
	"charity_dao/logging"
	"charity_dao/sdk"
)

// node is everything one treasury process runs.
type node struct {
	cfg      config.Local
	log      logging.Logger
	store    sdk.Store
	journal  *journal.SQLite
	engine   *contract.Engine
	faucet   *faucet.Faucet
	sale     *tokensale.Sale
	lottery  *lottery.Lottery
	registry *prometheus.Registry
}

func setupLogger(cfg config.Local) (logging.Logger, error) {
	log := logging.Base()
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(lvl)
	if cfg.LogJSON {
		log.SetJSONFormatter()
	}
	return log, nil
}

// openNode opens the store and journal and wires the engine and siblings over them.
// All of them write through one executor.
func openNode(cfg config.Local) (*node, error) {
	log, err := setupLogger(cfg)
	if err != nil {
		return nil, err
	}
	n := &node{cfg: cfg, log: log, registry: prometheus.NewRegistry()}

	n.store, err = sdk.OpenStore(cfg.StateBackend, cfg.DataDir)
	if err != nil {
		return nil, err
	}
	exec := sdk.NewExecutor(n.store, nil)
	clock := sdk.SystemClock{}

	params := contract.Params{VotingPeriod: cfg.VotingPeriod, MinStake: cfg.MinStakeAmount()}
	n.engine, err = contract.NewEngine(exec, clock, params, log)
	if err != nil {
		n.Close()
		return nil, err
	}
	n.engine.SetMetrics(contract.NewMetrics(n.registry))

	if cfg.JournalPath != "" {
		n.journal, err = journal.Open(cfg.JournalPath)
		if err != nil {
			n.Close()
			return nil, err
		}
		n.engine.SetEventSink(n.journal)
	}

	owner := sdk.Address(cfg.Owner)
	if n.faucet, err = faucet.New(exec, cfg.FaucetMaxAmount(), log); err != nil {
		n.Close()
		return nil, err
	}
	n.sale, err = tokensale.New(exec, tokensale.Config{Owner: owner, Rate: cfg.SaleRate, Cap: cfg.SaleCapAmount()}, log)
	if err != nil {
		n.Close()
		return nil, err
	}
	n.lottery, err = lottery.New(exec, owner, rand.New(rand.NewSource(time.Now().UnixNano())), log)
	if err != nil {
		n.Close()
		return nil, err
	}
	return n, nil
}

func (n *node) handler() *api.Server {
	return api.NewServer(n.engine, api.Options{
		Faucet:   n.faucet,
		Sale:     n.sale,
		Lottery:  n.lottery,
		Journal:  n.journal,
		Gatherer: n.registry,
		Log:      n.log,
	})
}

// Close releases the journal and the store.
func (n *node) Close() {
	if n.journal != nil {
		if err := n.journal.Close(); err != nil {
			n.log.Warnf("close journal: %v", err)
		}
	}
	if n.store != nil {
		if err := n.store.Close(); err != nil {
			n.log.Warnf("close store: %v", err)
		}
	}
}

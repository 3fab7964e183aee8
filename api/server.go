// Package api exposes the treasury and its sibling contracts over HTTP. The acting
// account of every mutating request is taken from the X-Account header.
package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"charity_dao/contract"
	"charity_dao/contract/dao"
	"charity_dao/contract/faucet"
	"charity_dao/contract/lottery"
	"charity_dao/contract/tokensale"
	"charity_dao/journal"
	"charity_dao/logging"
	"charity_dao/sdk"

	"github.com/CosmWasm/tinyjson"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AccountHeader carries the caller's address.
const AccountHeader = "X-Account"

const maxBodyBytes = 1 << 16

const (
	defaultEventPage = 100
	maxEventPage     = 1000
)

var (
	errMissingAccount = sdk.NewRevert("missing "+AccountHeader+" header", "unauthenticated")
	errBadRequest     = sdk.NewRevert("malformed request body", "bad_request")
	errBadIndex       = sdk.NewRevert("invalid proposal index", "bad_request")
	errBadAccount     = sdk.NewRevert("invalid account", "bad_request")
	errBadQuery       = sdk.NewRevert("invalid query parameter", "bad_request")
)

// Options carries the optional collaborators. Sibling routes are only mounted for
// the contracts that are set.
type Options struct {
	Faucet   *faucet.Faucet
	Sale     *tokensale.Sale
	Lottery  *lottery.Lottery
	Journal  *journal.SQLite
	Gatherer prometheus.Gatherer
	Log      logging.Logger
}

// Server is an http.Handler.
type Server struct {
	engine  *contract.Engine
	faucet  *faucet.Faucet
	sale    *tokensale.Sale
	lottery *lottery.Lottery
	journal *journal.SQLite
	log     logging.Logger
	router  chi.Router
}

// NewServer builds the router.
func NewServer(engine *contract.Engine, opts Options) *Server {
	s := &Server{
		engine:  engine,
		faucet:  opts.Faucet,
		sale:    opts.Sale,
		lottery: opts.Lottery,
		journal: opts.Journal,
		log:     opts.Log,
	}
	if s.log == nil {
		s.log = logging.Base()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/treasury", s.getTreasury)
	r.Get("/balances/{account}", s.getBalance)
	r.Get("/members/{account}", s.getMember)
	r.Get("/proposals", s.listProposals)
	r.Get("/proposals/{index}", s.getProposal)
	if s.journal != nil {
		r.Get("/events", s.listEvents)
	}
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(requireAccount)
		r.Post("/deposit", s.deposit)
		r.Post("/stake", s.stake)
		r.Post("/proposals", s.createProposal)
		r.Post("/proposals/{index}/votes", s.vote)
		r.Post("/proposals/{index}/pay", s.pay)

		if s.faucet != nil {
			r.Post("/faucet/withdraw", s.faucetWithdraw)
		}
		if s.sale != nil {
			r.Post("/sale/invest", s.saleInvest)
			r.Post("/sale/transfer", s.saleTransfer)
		}
		if s.lottery != nil {
			r.Post("/lottery/participate", s.lotteryParticipate)
			r.Post("/lottery/execute", s.lotteryExecute)
		}
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(logging.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"status":  ww.Status(),
			"account": r.Header.Get(AccountHeader),
			"reqid":   chimiddleware.GetReqID(r.Context()),
			"took":    time.Since(start).String(),
		}).Debug("http request")
	})
}

func requireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(AccountHeader) == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: errMissingAccount.Msg, Symbol: errMissingAccount.Symbol})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func caller(r *http.Request) sdk.Address {
	return sdk.Address(r.Header.Get(AccountHeader))
}

func writeJSON(w http.ResponseWriter, status int, v tinyjson.Marshaler) {
	data, err := tinyjson.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func readJSON(r *http.Request, v tinyjson.Unmarshaler) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errBadRequest
	}
	if err := tinyjson.Unmarshal(data, v); err != nil {
		return errBadRequest
	}
	return nil
}

// statusFor maps revert symbols onto HTTP statuses. Unknown reverts are plain bad requests.
func statusFor(symbol string) int {
	switch symbol {
	case "not_found":
		return http.StatusNotFound
	case "not_stakeholder", "not_owner":
		return http.StatusForbidden
	case "unauthenticated":
		return http.StatusUnauthorized
	case "duplicate_vote", "already_paid", "voting_open", "voting_closed", "rejected", "not_tradeable":
		return http.StatusConflict
	case "insufficient_funds", "treasury_funds", "no_participants", "balance_overflow":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var rv *sdk.Revert
	if errors.As(err, &rv) {
		writeJSON(w, statusFor(rv.Symbol), errorResponse{Error: err.Error(), Symbol: rv.Symbol})
		return
	}
	s.log.With("path", r.URL.Path).Errorf("internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Symbol: "internal"})
}

func parseAmount(s string) (dao.Amount, error) {
	amt, err := dao.ParseAmount(s)
	if err != nil {
		return 0, contract.ErrInvalidAmount
	}
	return amt, nil
}

func indexParam(r *http.Request) (uint64, error) {
	n, err := strconv.ParseUint(chi.URLParam(r, "index"), 10, 64)
	if err != nil {
		return 0, errBadIndex
	}
	return n, nil
}

// uintQuery reads an optional non-negative integer query parameter.
func uintQuery(r *http.Request, name string, fallback int64) (int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, errBadQuery
	}
	return n, nil
}

func accountParam(r *http.Request) (sdk.Address, error) {
	addr := sdk.Address(chi.URLParam(r, "account"))
	if !addr.IsValid() {
		return "", errBadAccount
	}
	return addr, nil
}

func toProposalResponse(p *dao.Proposal) proposalResponse {
	return proposalResponse{
		Index:        p.ID,
		Amount:       p.Amount.String(),
		Recipient:    p.Recipient.String(),
		Description:  p.Description,
		Proposer:     p.Proposer.String(),
		VotesFor:     p.VotesFor,
		VotesAgainst: p.VotesAgainst,
		Paid:         p.Paid,
		State:        p.State().String(),
		CreatedAt:    p.CreatedAt,
		VotingEndsAt: p.VotingEndsAt,
	}
}

func toEventResponse(e journal.Entry) eventResponse {
	return eventResponse{Seq: e.Seq, Kind: e.Kind, Tx: e.Tx, At: e.At, Line: e.Line}
}

package api

import (
	"net/http"

	"charity_dao/journal"
	"charity_dao/sdk"
)

func (s *Server) getTreasury(w http.ResponseWriter, r *http.Request) {
	bal, err := s.engine.TreasuryBalance()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Account: sdk.TreasuryAddress.String(), Balance: bal.String()})
}

func (s *Server) getBalance(w http.ResponseWriter, r *http.Request) {
	addr, err := accountParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	bal, err := s.engine.BalanceOf(addr)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Account: addr.String(), Balance: bal.String()})
}

func (s *Server) getMember(w http.ResponseWriter, r *http.Request) {
	addr, err := accountParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.engine.Member(addr)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := memberResponse{Account: addr.String(), Contributed: "0", Staked: "0"}
	if m != nil {
		resp.Contributor = m.IsContributor()
		resp.Stakeholder = m.IsStakeholder(s.engine.Params().MinStake)
		resp.Contributed = m.Contributed.String()
		resp.Staked = m.Staked.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listProposals(w http.ResponseWriter, r *http.Request) {
	all, err := s.engine.ListProposals()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := proposalListResponse{Proposals: make([]proposalResponse, 0, len(all))}
	for _, p := range all {
		resp.Proposals = append(resp.Proposals, toProposalResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getProposal(w http.ResponseWriter, r *http.Request) {
	idx, err := indexParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.engine.GetProposal(idx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProposalResponse(p))
}

func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	amt, err := parseAmount(req.Amount)
	if err == nil {
		err = s.engine.Deposit(caller(r), amt)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) stake(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	amt, err := parseAmount(req.Amount)
	if err == nil {
		err = s.engine.MakeStakeholder(caller(r), amt)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) createProposal(w http.ResponseWriter, r *http.Request) {
	var req proposalRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	amt, err := parseAmount(req.Amount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.engine.CreateProposal(caller(r), amt, sdk.Address(req.Recipient), req.Description)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, indexResponse{Index: id})
}

func (s *Server) vote(w http.ResponseWriter, r *http.Request) {
	idx, err := indexParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req voteRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Support == nil {
		s.writeError(w, r, errBadRequest)
		return
	}
	if err := s.engine.Vote(caller(r), idx, *req.Support); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) pay(w http.ResponseWriter, r *http.Request) {
	idx, err := indexParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.engine.PayCharity(caller(r), idx); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) faucetWithdraw(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	amt, err := parseAmount(req.Amount)
	if err == nil {
		err = s.faucet.Withdraw(caller(r), amt)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) saleInvest(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	amt, err := parseAmount(req.Amount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	minted, err := s.sale.Invest(caller(r), amt)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, investResponse{Minted: minted.String()})
}

func (s *Server) saleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	amt, err := parseAmount(req.Amount)
	if err == nil {
		err = s.sale.Transfer(caller(r), sdk.Address(req.To), amt)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lotteryParticipate(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	amt, err := parseAmount(req.Amount)
	if err == nil {
		err = s.lottery.Participate(caller(r), amt)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lotteryExecute(w http.ResponseWriter, r *http.Request) {
	res, err := s.lottery.Execute(caller(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lotteryResponse{Round: res.Round, Winner: res.Winner.String(), Pot: res.Pot.String()})
}

// listEvents pages through the journal. kind or tx narrow it to one event kind or one
// operation; otherwise after and limit page by sequence number.
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		entries []journal.Entry
		err     error
	)
	switch {
	case q.Get("tx") != "":
		entries, err = s.journal.ByTx(q.Get("tx"))
	case q.Get("kind") != "":
		entries, err = s.journal.ByKind(q.Get("kind"))
	default:
		var after, limit int64
		if after, err = uintQuery(r, "after", 0); err != nil {
			break
		}
		if limit, err = uintQuery(r, "limit", defaultEventPage); err != nil {
			break
		}
		if limit == 0 || limit > maxEventPage {
			limit = maxEventPage
		}
		entries, err = s.journal.Since(after, int(limit))
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := eventListResponse{Events: make([]eventResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Events = append(resp.Events, toEventResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

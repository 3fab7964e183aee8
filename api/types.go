package api

import (
	"github.com/CosmWasm/tinyjson/jlexer"
	"github.com/CosmWasm/tinyjson/jwriter"
)

type amountRequest struct {
	Amount string
}

type proposalRequest struct {
	Amount      string
	Recipient   string
	Description string
}

type voteRequest struct {
	Support *bool
}

type transferRequest struct {
	To     string
	Amount string
}

type errorResponse struct {
	Error  string
	Symbol string
}

type memberResponse struct {
	Account     string
	Contributor bool
	Stakeholder bool
	Contributed string
	Staked      string
}

type proposalResponse struct {
	Index        uint64
	Amount       string
	Recipient    string
	Description  string
	Proposer     string
	VotesFor     uint64
	VotesAgainst uint64
	Paid         bool
	State        string
	CreatedAt    int64
	VotingEndsAt int64
}

type proposalListResponse struct {
	Proposals []proposalResponse
}

type indexResponse struct {
	Index uint64
}

type balanceResponse struct {
	Account string
	Balance string
}

type investResponse struct {
	Minted string
}

type eventResponse struct {
	Seq  int64
	Kind string
	Tx   string
	At   int64
	Line string
}

type eventListResponse struct {
	Events []eventResponse
}

type lotteryResponse struct {
	Round  uint64
	Winner string
	Pot    string
}

// object writes one JSON object field by field.
type object struct {
	w     *jwriter.Writer
	first bool
}

func beginObject(w *jwriter.Writer) *object {
	w.RawByte('{')
	return &object{w: w, first: true}
}

func (o *object) key(name string) *jwriter.Writer {
	if !o.first {
		o.w.RawByte(',')
	}
	o.first = false
	o.w.String(name)
	o.w.RawByte(':')
	return o.w
}

func (o *object) end() {
	o.w.RawByte('}')
}

// decodeObject walks the fields of one JSON object, handing every non-null value to field.
// Unknown keys must be skipped by field via in.SkipRecursive.
func decodeObject(in *jlexer.Lexer, field func(key string)) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeString()
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		field(key)
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func (v *amountRequest) UnmarshalTinyJSON(in *jlexer.Lexer) {
	decodeObject(in, func(key string) {
		switch key {
		case "amount":
			v.Amount = in.String()
		default:
			in.SkipRecursive()
		}
	})
}

func (v *proposalRequest) UnmarshalTinyJSON(in *jlexer.Lexer) {
	decodeObject(in, func(key string) {
		switch key {
		case "amount":
			v.Amount = in.String()
		case "recipient":
			v.Recipient = in.String()
		case "description":
			v.Description = in.String()
		default:
			in.SkipRecursive()
		}
	})
}

func (v *voteRequest) UnmarshalTinyJSON(in *jlexer.Lexer) {
	decodeObject(in, func(key string) {
		switch key {
		case "support":
			b := in.Bool()
			v.Support = &b
		default:
			in.SkipRecursive()
		}
	})
}

func (v *transferRequest) UnmarshalTinyJSON(in *jlexer.Lexer) {
	decodeObject(in, func(key string) {
		switch key {
		case "to":
			v.To = in.String()
		case "amount":
			v.Amount = in.String()
		default:
			in.SkipRecursive()
		}
	})
}

func (v errorResponse) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.key("error").String(v.Error)
	o.key("symbol").String(v.Symbol)
	o.end()
}

func (v memberResponse) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.key("account").String(v.Account)
	o.key("contributor").Bool(v.Contributor)
	o.key("stakeholder").Bool(v.Stakeholder)
	o.key("contributed").String(v.Contributed)
	o.key("staked").String(v.Staked)
	o.end()
}

func (v proposalResponse) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.key("index").Uint64(v.Index)
	o.key("amount").String(v.Amount)
	o.key("recipient").String(v.Recipient)
	o.key("description").String(v.Description)
	o.key("proposer").String(v.Proposer)
	o.key("votesFor").Uint64(v.VotesFor)
	o.key("votesAgainst").Uint64(v.VotesAgainst)
	o.key("paid").Bool(v.Paid)
	o.key("state").String(v.State)
	o.key("createdAt").Int64(v.CreatedAt)
	o.key("votingEndsAt").Int64(v.VotingEndsAt)
	o.end()
}

func (v proposalListResponse) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.key("proposals").RawByte('[')
	for i, p := range v.Proposals {
		if i > 0 {
			w.RawByte(',')
		}
		p.MarshalTinyJSON(w)
	}
	w.RawByte(']')
	o.end()
}

func (v indexResponse) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.key("index").Uint64(v.Index)
	o.end()
}

func (v balanceResponse) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.key("account").String(v.Account)
	o.key("balance").String(v.Balance)
	o.end()
}

func (v investResponse) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.key("minted").String(v.Minted)
	o.end()
}

func (v lotteryResponse) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.key("round").Uint64(v.Round)
	o.key("winner").String(v.Winner)
	o.key("pot").String(v.Pot)
	o.end()
}

func (v eventResponse) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.key("seq").Int64(v.Seq)
	o.key("kind").String(v.Kind)
	o.key("tx").String(v.Tx)
	o.key("at").Int64(v.At)
	o.key("line").String(v.Line)
	o.end()
}

func (v eventListResponse) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.key("events").RawByte('[')
	for i, e := range v.Events {
		if i > 0 {
			w.RawByte(',')
		}
		e.MarshalTinyJSON(w)
	}
	w.RawByte(']')
	o.end()
}

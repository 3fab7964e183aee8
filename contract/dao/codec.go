package dao

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"charity_dao/sdk"
)

// codecVersion leads every encoded record so the layout can evolve.
const codecVersion byte = 1

var errUnexpectedEOF = errors.New("unexpected EOF")

type binWriter struct {
	buf bytes.Buffer
}

func newWriter() *binWriter { return &binWriter{} }

func (w *binWriter) bytes() []byte { return w.buf.Bytes() }

func (w *binWriter) writeBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *binWriter) writeUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *binWriter) writeInt64(v int64) {
	w.writeUint64(uint64(v))
}

func (w *binWriter) writeVarUint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf.Write(tmp[:n])
}

func (w *binWriter) writeAmount(v Amount) {
	w.writeInt64(int64(v))
}

func (w *binWriter) writeString(s string) {
	w.writeVarUint(uint64(len(s)))
	w.buf.WriteString(s)
}

func (w *binWriter) writeAddress(a sdk.Address) {
	w.writeString(a.String())
}

func encodeMember(w *binWriter, m *Member) {
	w.buf.WriteByte(codecVersion)
	w.writeAddress(m.Address)
	w.writeAmount(m.Contributed)
	w.writeAmount(m.Staked)
	w.writeInt64(m.JoinedAt)
	w.writeInt64(m.UpdatedAt)
}

// EncodeMember serializes a registry record.
func EncodeMember(m *Member) []byte {
	w := newWriter()
	encodeMember(w, m)
	return w.bytes()
}

func encodeProposal(w *binWriter, p *Proposal) {
	w.buf.WriteByte(codecVersion)
	w.writeVarUint(p.ID)
	w.writeAmount(p.Amount)
	w.writeAddress(p.Recipient)
	w.writeString(p.Description)
	w.writeAddress(p.Proposer)
	w.writeInt64(p.CreatedAt)
	w.writeInt64(p.VotingEndsAt)
	w.writeVarUint(p.VotesFor)
	w.writeVarUint(p.VotesAgainst)
	w.writeBool(p.Paid)
	w.writeInt64(p.PaidAt)
	w.writeString(p.Tx)
}

// EncodeProposal serializes a proposal including its tally.
func EncodeProposal(p *Proposal) []byte {
	w := newWriter()
	encodeProposal(w, p)
	return w.bytes()
}

// EncodeVoteReceipt serializes a single vote.
func EncodeVoteReceipt(v *VoteReceipt) []byte {
	w := newWriter()
	w.writeBool(v.Support)
	w.writeInt64(v.VotedAt)
	return w.bytes()
}

// ------------------------------------------------------------------
// Decoder helpers
// ------------------------------------------------------------------

type binReader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *binReader {
	return &binReader{data: data}
}

func (r *binReader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errUnexpectedEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *binReader) readBool() (bool, error) {
	b, err := r.readByte()
	if err != nil {
		return false, err
	}
	return b == 1, nil
}

func (r *binReader) readUint64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, errUnexpectedEOF
	}
	val := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return val, nil
}

func (r *binReader) readInt64() (int64, error) {
	v, err := r.readUint64()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

func (r *binReader) readVarUint() (uint64, error) {
	val, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, errors.New("invalid varuint")
	}
	r.pos += n
	return val, nil
}

func (r *binReader) readAmount() (Amount, error) {
	val, err := r.readInt64()
	if err != nil {
		return 0, err
	}
	return Amount(val), nil
}

func (r *binReader) readString() (string, error) {
	l, err := r.readVarUint()
	if err != nil {
		return "", err
	}
	if l > uint64(len(r.data)-r.pos) {
		return "", errUnexpectedEOF
	}
	s := string(r.data[r.pos : r.pos+int(l)])
	r.pos += int(l)
	return s, nil
}

func (r *binReader) readAddress() (sdk.Address, error) {
	s, err := r.readString()
	if err != nil {
		return "", err
	}
	return sdk.Address(s), nil
}

func (r *binReader) readVersion() error {
	v, err := r.readByte()
	if err != nil {
		return err
	}
	if v != codecVersion {
		return fmt.Errorf("unsupported record version %d", v)
	}
	return nil
}

func (r *binReader) done() error {
	if r.pos != len(r.data) {
		return fmt.Errorf("%d trailing bytes", len(r.data)-r.pos)
	}
	return nil
}

// DecodeMember is the inverse of EncodeMember.
func DecodeMember(data []byte) (*Member, error) {
	r := newReader(data)
	if err := r.readVersion(); err != nil {
		return nil, err
	}
	var m Member
	var err error
	if m.Address, err = r.readAddress(); err != nil {
		return nil, err
	}
	if m.Contributed, err = r.readAmount(); err != nil {
		return nil, err
	}
	if m.Staked, err = r.readAmount(); err != nil {
		return nil, err
	}
	if m.JoinedAt, err = r.readInt64(); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = r.readInt64(); err != nil {
		return nil, err
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return &m, nil
}

// DecodeProposal is the inverse of EncodeProposal.
func DecodeProposal(data []byte) (*Proposal, error) {
	r := newReader(data)
	if err := r.readVersion(); err != nil {
		return nil, err
	}
	var p Proposal
	var err error
	if p.ID, err = r.readVarUint(); err != nil {
		return nil, err
	}
	if p.Amount, err = r.readAmount(); err != nil {
		return nil, err
	}
	if p.Recipient, err = r.readAddress(); err != nil {
		return nil, err
	}
	if p.Description, err = r.readString(); err != nil {
		return nil, err
	}
	if p.Proposer, err = r.readAddress(); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = r.readInt64(); err != nil {
		return nil, err
	}
	if p.VotingEndsAt, err = r.readInt64(); err != nil {
		return nil, err
	}
	if p.VotesFor, err = r.readVarUint(); err != nil {
		return nil, err
	}
	if p.VotesAgainst, err = r.readVarUint(); err != nil {
		return nil, err
	}
	if p.Paid, err = r.readBool(); err != nil {
		return nil, err
	}
	if p.PaidAt, err = r.readInt64(); err != nil {
		return nil, err
	}
	if p.Tx, err = r.readString(); err != nil {
		return nil, err
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeVoteReceipt is the inverse of EncodeVoteReceipt.
func DecodeVoteReceipt(data []byte) (*VoteReceipt, error) {
	r := newReader(data)
	var v VoteReceipt
	var err error
	if v.Support, err = r.readBool(); err != nil {
		return nil, err
	}
	if v.VotedAt, err = r.readInt64(); err != nil {
		return nil, err
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return &v, nil
}

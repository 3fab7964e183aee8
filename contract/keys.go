package contract

import "charity_dao/sdk"

// packU64LEInline sprinkles a uint64 into dst in little-endian order so our keys stay compact.
func packU64LEInline(x uint64, dst []byte) {
	dst[0] = byte(x)
	dst[1] = byte(x >> 8)
	dst[2] = byte(x >> 16)
	dst[3] = byte(x >> 24)
	dst[4] = byte(x >> 32)
	dst[5] = byte(x >> 40)
	dst[6] = byte(x >> 48)
	dst[7] = byte(x >> 56)
}

// packU64LE appends the encoded number to dst and returns the new slice.
func packU64LE(x uint64, dst []byte) []byte {
	return append(dst,
		byte(x),
		byte(x>>8),
		byte(x>>16),
		byte(x>>24),
		byte(x>>32),
		byte(x>>40),
		byte(x>>48),
		byte(x>>56),
	)
}

// memberKey is the prefix byte plus the raw address bytes.
func memberKey(addr sdk.Address) string {
	addrStr := addr.String()
	buf := make([]byte, 0, 1+len(addrStr))
	buf = append(buf, kMember)
	buf = append(buf, addrStr...)
	return string(buf)
}

// proposalKey encodes id under 0x10 prefix keeping proposals contiguous.
func proposalKey(id uint64) string {
	var buf [9]byte
	buf[0] = kProposalMeta
	packU64LEInline(id, buf[1:])
	return string(buf[:])
}

// proposalVoteKey generates a unique storage key for a vote
// based on the proposal ID and the voter's address.
func proposalVoteKey(id uint64, voter sdk.Address) string {
	addr := voter.String()
	buf := make([]byte, 0, 1+8+len(addr))
	buf = append(buf, kVoteReceipt)
	buf = packU64LE(id, buf)
	buf = append(buf, addr...)
	return string(buf)
}

// voterIndexKey points from a voter to the n-th proposal they voted on.
func voterIndexKey(voter sdk.Address, n uint64) string {
	addr := voter.String()
	buf := make([]byte, 0, 1+len(addr)+1+8)
	buf = append(buf, kVoterIndex)
	buf = append(buf, addr...)
	buf = append(buf, '|')
	buf = packU64LE(n, buf)
	return string(buf)
}

// voterCountKey counts how many proposals a voter voted on.
func voterCountKey(voter sdk.Address) string {
	return "count:v:" + voter.String()
}

// memberStakeHistoryKey addresses the n-th stake snapshot of a member.
func memberStakeHistoryKey(addr sdk.Address, n uint64) string {
	addrStr := addr.String()
	buf := make([]byte, 0, 1+len(addrStr)+1+8)
	buf = append(buf, kStakeHistory)
	buf = append(buf, addrStr...)
	buf = append(buf, '|')
	buf = packU64LE(n, buf)
	return string(buf)
}

func stakeHistoryCountKey(addr sdk.Address) string {
	return "count:sh:" + addr.String()
}

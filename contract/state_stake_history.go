package contract

import (
	"fmt"
	"strconv"
	"strings"

	"charity_dao/contract/dao"
	"charity_dao/sdk"
)

// StakeHistoryEntry is a member's staked total right after one stake call.
type StakeHistoryEntry struct {
	Stake     dao.Amount
	Timestamp int64
}

// saveStakeHistory appends a snapshot for addr.
func saveStakeHistory(st sdk.State, addr sdk.Address, stake dao.Amount, timestamp int64) error {
	n, err := nextCount(st, stakeHistoryCountKey(addr))
	if err != nil {
		return err
	}
	st.Set(memberStakeHistoryKey(addr, n), fmt.Sprintf("%d_%d", stake, timestamp))
	return nil
}

// loadStakeHistory reads the n-th snapshot, nil if absent.
func loadStakeHistory(st sdk.State, addr sdk.Address, n uint64) (*StakeHistoryEntry, error) {
	key := memberStakeHistoryKey(addr, n)
	dataPtr, err := st.Get(key)
	if err != nil || dataPtr == nil {
		return nil, err
	}

	// Parse format: {stake}_{timestamp}
	parts := strings.Split(*dataPtr, "_")
	if len(parts) != 2 {
		return nil, fmt.Errorf("corrupt stake history %s#%d", addr, n)
	}
	stake, err1 := strconv.ParseInt(parts[0], 10, 64)
	timestamp, err2 := strconv.ParseInt(parts[1], 10, 64)
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("corrupt stake history %s#%d", addr, n)
	}
	return &StakeHistoryEntry{
		Stake:     dao.Amount(stake),
		Timestamp: timestamp,
	}, nil
}

// loadAllStakeHistory returns every snapshot, oldest first.
func loadAllStakeHistory(st sdk.State, addr sdk.Address) ([]StakeHistoryEntry, error) {
	count, err := getCount(st, stakeHistoryCountKey(addr))
	if err != nil {
		return nil, err
	}
	out := make([]StakeHistoryEntry, 0, count)
	for i := uint64(0); i < count; i++ {
		entry, err := loadStakeHistory(st, addr, i)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			out = append(out, *entry)
		}
	}
	return out, nil
}

// getStakeAtTime finds the member's stake at targetTime by searching backwards
// from the newest snapshot. Before the first stake it is zero.
func getStakeAtTime(st sdk.State, addr sdk.Address, targetTime int64) (dao.Amount, error) {
	count, err := getCount(st, stakeHistoryCountKey(addr))
	if err != nil {
		return 0, err
	}
	for i := count; i > 0; i-- {
		entry, err := loadStakeHistory(st, addr, i-1)
		if err != nil {
			return 0, err
		}
		if entry != nil && entry.Timestamp <= targetTime {
			return entry.Stake, nil
		}
	}
	return 0, nil
}

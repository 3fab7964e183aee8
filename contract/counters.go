package contract

import (
	"fmt"
	"strconv"

	"charity_dao/sdk"
)

// getCount reads the string counter under the key and defaults to zero.
func getCount(st sdk.State, key string) (uint64, error) {
	ptr, err := st.Get(key)
	if err != nil {
		return 0, err
	}
	if ptr == nil || *ptr == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(*ptr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt counter %q: %w", key, err)
	}
	return n, nil
}

// setCount stores uint64 counters back as decimal strings.
func setCount(st sdk.State, key string, n uint64) {
	st.Set(key, strconv.FormatUint(n, 10))
}

// nextCount bumps the counter and returns the value it had before, which is the new id.
func nextCount(st sdk.State, key string) (uint64, error) {
	n, err := getCount(st, key)
	if err != nil {
		return 0, err
	}
	setCount(st, key, n+1)
	return n, nil
}

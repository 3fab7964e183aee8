package contract

import (
	"testing"

	"charity_dao/sdk"

	"github.com/stretchr/testify/require"
)

func TestIndexAddRemove(t *testing.T) {
	st := sdk.NewMockState()
	const base = "idx:test"

	for _, id := range []uint64{3, 1, 3, 2} {
		require.NoError(t, addIDToIndex(st, base, id))
	}
	ids, err := getIDsFromIndex(st, base)
	require.NoError(t, err)
	require.Equal(t, []uint64{3, 1, 2}, ids)

	require.NoError(t, removeIDFromIndex(st, base, 1))
	require.NoError(t, removeIDFromIndex(st, base, 42))
	ids, err = getIDsFromIndex(st, base)
	require.NoError(t, err)
	require.Equal(t, []uint64{3, 2}, ids)

	require.NoError(t, moveIDBetweenIndexes(st, base, "idx:other", 3))
	ids, _ = getIDsFromIndex(st, base)
	require.Equal(t, []uint64{2}, ids)
	ids, _ = getIDsFromIndex(st, "idx:other")
	require.Equal(t, []uint64{3}, ids)
}

func TestIndexStartsNewChunkWhenFull(t *testing.T) {
	st := sdk.NewMockState()
	const base = "idx:big"
	full := make([]uint64, maxChunkSize)
	for i := range full {
		full[i] = uint64(i)
	}
	require.NoError(t, saveChunk(st, chunkKey(base, 0), full))
	setChunkCount(st, base, 1)

	require.NoError(t, addIDToIndex(st, base, maxChunkSize))
	chunks, err := getChunkCount(st, base)
	require.NoError(t, err)
	require.Equal(t, 2, chunks)

	// a freed slot in the first chunk is reused
	require.NoError(t, removeIDFromIndex(st, base, 7))
	require.NoError(t, addIDToIndex(st, base, maxChunkSize+1))
	first, err := loadChunk(st, chunkKey(base, 0))
	require.NoError(t, err)
	require.Len(t, first, maxChunkSize)
	chunks, _ = getChunkCount(st, base)
	require.Equal(t, 2, chunks)

	all, err := getIDsFromIndex(st, base)
	require.NoError(t, err)
	require.Len(t, all, maxChunkSize+1)
}

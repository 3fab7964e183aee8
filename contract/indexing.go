package contract

// maintaining index keys for querying proposals by state

import (
	"encoding/json"
	"fmt"
	"strconv"

	"charity_dao/sdk"
)

// chunkCounterKey stores the number of chunks for a base index.
func chunkCounterKey(base string) string {
	return base + ":chunks"
}

func chunkKey(base string, chunk int) string {
	return base + ":" + strconv.Itoa(chunk)
}

// getChunkCount reads the number of chunks of an index.
func getChunkCount(st sdk.State, baseKey string) (int, error) {
	ptr, err := st.Get(chunkCounterKey(baseKey))
	if err != nil || ptr == nil || *ptr == "" {
		return 0, err
	}
	return strconv.Atoi(*ptr)
}

func setChunkCount(st sdk.State, baseKey string, n int) {
	st.Set(chunkCounterKey(baseKey), strconv.Itoa(n))
}

func loadChunk(st sdk.State, key string) ([]uint64, error) {
	ptr, err := st.Get(key)
	if err != nil || ptr == nil || *ptr == "" {
		return nil, err
	}
	var ids []uint64
	if err := json.Unmarshal([]byte(*ptr), &ids); err != nil {
		return nil, fmt.Errorf("unmarshal index %s: %w", key, err)
	}
	return ids, nil
}

func saveChunk(st sdk.State, key string, ids []uint64) error {
	b, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal index %s: %w", key, err)
	}
	st.Set(key, string(b))
	return nil
}

// addIDToIndex ensures id exists across all chunks (no duplicates).
func addIDToIndex(st sdk.State, baseKey string, id uint64) error {
	chunks, err := getChunkCount(st, baseKey)
	if err != nil {
		return err
	}
	free := -1
	for i := 0; i < chunks; i++ {
		ids, err := loadChunk(st, chunkKey(baseKey, i))
		if err != nil {
			return err
		}
		for _, e := range ids {
			if e == id {
				return nil
			}
		}
		if free < 0 && len(ids) < maxChunkSize {
			free = i
		}
	}
	if free >= 0 {
		key := chunkKey(baseKey, free)
		ids, err := loadChunk(st, key)
		if err != nil {
			return err
		}
		return saveChunk(st, key, append(ids, id))
	}
	// no space -> create new chunk
	if err := saveChunk(st, chunkKey(baseKey, chunks), []uint64{id}); err != nil {
		return err
	}
	setChunkCount(st, baseKey, chunks+1)
	return nil
}

// removeIDFromIndex removes id from whichever chunk it is in.
func removeIDFromIndex(st sdk.State, baseKey string, id uint64) error {
	chunks, err := getChunkCount(st, baseKey)
	if err != nil {
		return err
	}
	for i := 0; i < chunks; i++ {
		key := chunkKey(baseKey, i)
		ids, err := loadChunk(st, key)
		if err != nil {
			return err
		}
		kept := ids[:0]
		found := false
		for _, e := range ids {
			if e == id {
				found = true
				continue
			}
			kept = append(kept, e)
		}
		if found {
			return saveChunk(st, key, kept)
		}
	}
	return nil
}

// getIDsFromIndex collects all ids across all chunks.
func getIDsFromIndex(st sdk.State, baseKey string) ([]uint64, error) {
	all := []uint64{}
	chunks, err := getChunkCount(st, baseKey)
	if err != nil {
		return nil, err
	}
	for i := 0; i < chunks; i++ {
		ids, err := loadChunk(st, chunkKey(baseKey, i))
		if err != nil {
			return nil, err
		}
		all = append(all, ids...)
	}
	return all, nil
}

// moveIDBetweenIndexes takes id out of one index and into another.
func moveIDBetweenIndexes(st sdk.State, from, to string, id uint64) error {
	if err := removeIDFromIndex(st, from, id); err != nil {
		return err
	}
	return addIDToIndex(st, to, id)
}

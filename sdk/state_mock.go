package sdk

import (
	"encoding/json"
	"os"

	"github.com/algorand/go-deadlock"
)

// MockState keeps everything in a map. With a filename set it also mirrors the map
// to a JSON file after every batch, handy for poking at state during local runs.
type MockState struct {
	mu       deadlock.RWMutex
	db       map[string]string
	filename string
}

func NewMockState() *MockState {
	return &MockState{
		db: make(map[string]string),
	}
}

// NewFileMockState loads filename if it exists and keeps it in sync afterwards.
func NewFileMockState(filename string) (*MockState, error) {
	m := &MockState{db: make(map[string]string), filename: filename}
	if err := m.loadFromFile(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MockState) Get(key string) (*string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.db[key]
	if !ok {
		return nil, nil
	}
	return &val, nil
}

func (m *MockState) Set(key, value string) {
	m.mu.Lock()
	m.db[key] = value
	m.mu.Unlock()
}

func (m *MockState) Delete(key string) {
	m.mu.Lock()
	delete(m.db, key)
	m.mu.Unlock()
}

// Apply writes the whole batch under one lock.
func (m *MockState) Apply(changes []Change) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range changes {
		if c.Value == nil {
			delete(m.db, c.Key)
			continue
		}
		m.db[c.Key] = *c.Value
	}
	return m.saveToFile()
}

func (m *MockState) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveToFile()
}

// Len returns the number of stored keys.
func (m *MockState) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.db)
}

// saveToFile writes the full map to the JSON file, if one is configured.
func (m *MockState) saveToFile() error {
	if m.filename == "" {
		return nil
	}
	data, err := json.MarshalIndent(m.db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.filename, data, 0644)
}

func (m *MockState) loadFromFile() error {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &m.db)
}

package sdk

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestTxReadsItsOwnWrites(t *testing.T) {
	base := NewMockState()
	base.Set("a", "1")
	base.Set("b", "2")

	tx := NewTx(base)
	require.False(t, tx.Dirty())
	tx.Set("a", "10")
	tx.Delete("b")
	tx.Set("c", "3")
	require.True(t, tx.Dirty())

	v, err := tx.Get("a")
	require.NoError(t, err)
	require.Equal(t, "10", *v)
	v, err = tx.Get("b")
	require.NoError(t, err)
	require.Nil(t, v)

	// base is untouched until commit
	v, _ = base.Get("a")
	require.Equal(t, "1", *v)
	v, _ = base.Get("c")
	require.Nil(t, v)

	require.NoError(t, tx.Commit())
	require.False(t, tx.Dirty())
	v, _ = base.Get("a")
	require.Equal(t, "10", *v)
	v, _ = base.Get("b")
	require.Nil(t, v)
	require.Equal(t, 2, base.Len())
}

func TestTxDiscard(t *testing.T) {
	base := NewMockState()
	tx := NewTx(base)
	tx.Set("a", "1")
	tx.Discard()
	require.NoError(t, tx.Commit())
	require.Zero(t, base.Len())
}

func TestTxGetReturnsCopy(t *testing.T) {
	tx := NewTx(NewMockState())
	tx.Set("a", "1")
	v, _ := tx.Get("a")
	*v = "mutated"
	v, _ = tx.Get("a")
	require.Equal(t, "1", *v)
}

func TestFileMockStateRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "state.json")
	st, err := NewFileMockState(file)
	require.NoError(t, err)
	require.NoError(t, st.Apply([]Change{
		{Key: "keep", Value: strPtr("yes")},
		{Key: "gone", Value: strPtr("soon")},
	}))
	require.NoError(t, st.Apply([]Change{{Key: "gone"}}))
	require.NoError(t, st.Close())

	reopened, err := NewFileMockState(file)
	require.NoError(t, err)
	require.Equal(t, 1, reopened.Len())
	v, err := reopened.Get("keep")
	require.NoError(t, err)
	require.Equal(t, "yes", *v)
}

func TestOpenStoreBackends(t *testing.T) {
	st, err := OpenStore("", "")
	require.NoError(t, err)
	require.IsType(t, &MockState{}, st)

	_, err = OpenStore("bolt", t.TempDir())
	require.Error(t, err)
}

func TestOpenStoreFileBackendPersists(t *testing.T) {
	dir := t.TempDir()
	st, err := OpenStore("file", dir)
	require.NoError(t, err)
	require.NoError(t, st.Apply([]Change{{Key: "k", Value: strPtr("v")}}))
	require.NoError(t, st.Close())
	require.FileExists(t, filepath.Join(dir, StateFileName))

	st, err = OpenStore("file", dir)
	require.NoError(t, err)
	defer st.Close()
	v, err := st.Get("k")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, "v", *v)
}

func TestPebbleStateApply(t *testing.T) {
	st, err := NewPebbleState(t.TempDir(), true)
	require.NoError(t, err)
	defer st.Close()

	v, err := st.Get("missing")
	require.NoError(t, err)
	require.Nil(t, v)

	st.Set("direct", "x")
	require.NoError(t, st.Apply([]Change{
		{Key: "a", Value: strPtr("1")},
		{Key: "direct"},
	}))
	v, err = st.Get("a")
	require.NoError(t, err)
	require.Equal(t, "1", *v)
	v, err = st.Get("direct")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestPrefixedStateIsolation(t *testing.T) {
	base := NewMockState()
	a := Prefixed(base, "a:")
	b := Prefixed(base, "b:")
	a.Set("k", "1")
	b.Set("k", "2")

	v, _ := a.Get("k")
	require.Equal(t, "1", *v)
	v, _ = base.Get("b:k")
	require.Equal(t, "2", *v)

	a.Delete("k")
	v, _ = a.Get("k")
	require.Nil(t, v)
	require.Equal(t, 1, base.Len())
}

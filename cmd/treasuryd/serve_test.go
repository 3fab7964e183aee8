package main

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"charity_dao/config"
	"charity_dao/contract/dao"
	"charity_dao/sdk"
)

func testConfig(t *testing.T) config.Local {
	cfg := config.GetDefaultLocal()
	cfg.StateBackend = "pebble"
	cfg.DataDir = t.TempDir()
	cfg.JournalPath = filepath.Join(cfg.DataDir, "journal.sqlite")
	cfg.LogLevel = "warn"
	require.NoError(t, cfg.Validate())
	return cfg
}

func freeAddr(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestServeShutsDownOnCancel(t *testing.T) {
	cfg := testConfig(t)
	n, err := openNode(cfg)
	require.NoError(t, err)
	defer n.Close()

	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, n, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/treasury")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestNodeJournalsEngineEvents(t *testing.T) {
	cfg := testConfig(t)
	n, err := openNode(cfg)
	require.NoError(t, err)

	require.NoError(t, n.engine.Deposit("alice", dao.MustAmount("3")))
	_, err = n.engine.Call("alice", "stake", "2")
	require.NoError(t, err)
	res, err := n.engine.Call("alice", "proposal_create", "1|charity|blankets")
	require.NoError(t, err)
	require.Equal(t, "0", res)

	count, err := n.journal.Count()
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
	n.Close()

	// state survives a restart of the node
	n, err = openNode(cfg)
	require.NoError(t, err)
	defer n.Close()
	p, err := n.engine.GetProposal(0)
	require.NoError(t, err)
	require.Equal(t, sdk.Address("charity"), p.Recipient)
}

package worker_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/toychain/foundation/blockchain/database"
	"github.com/ardanlabs/toychain/foundation/blockchain/peer"
	"github.com/ardanlabs/toychain/foundation/blockchain/state"
	"github.com/ardanlabs/toychain/foundation/blockchain/worker"
)

func ev(v string, args ...any) {}

func newState(t *testing.T) *state.State {
	st, err := state.New(state.Config{
		KnownPeers:  peer.NewPeerSet(),
		PeerTimeout: time.Second,
		EvHandler:   ev,
	})
	if err != nil {
		t.Fatalf("Should be able to construct the state: %s", err)
	}
	return st
}

func Test_RegisterSignalsResolve(t *testing.T) {
	remote := newState(t)
	defer remote.Shutdown()

	for i := 0; i < 3; i++ {
		tx := database.Tx{From: "A", To: "B", Amount: 100, Kind: database.KindDomestic}
		if _, err := remote.MineNewBlock(context.Background(), []database.Tx{tx}); err != nil {
			t.Fatalf("Should be able to mine on the remote node: %s", err)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/node/blockchain", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(database.ChainData{Blocks: remote.RetrieveChain()})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	local := newState(t)
	worker.Run(local, time.Hour, ev)
	defer local.Shutdown()

	if _, err := local.RegisterPeer(peer.New(strings.TrimPrefix(srv.URL, "http://"))); err != nil {
		t.Fatalf("Should be able to register the peer: %s", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if len(local.RetrieveChain()) == 4 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}

	t.Fatalf("Should adopt the remote chain in the background, got %d blocks", len(local.RetrieveChain()))
}

func Test_Shutdown(t *testing.T) {
	st := newState(t)
	worker.Run(st, 10*time.Millisecond, ev)

	done := make(chan struct{})
	go func() {
		st.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Should be able to shut the worker down")
	}
}

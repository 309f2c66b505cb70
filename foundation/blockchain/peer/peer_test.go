package peer_test

import (
	"testing"

	"github.com/ardanlabs/toychain/foundation/blockchain/peer"
)

func Test_CRUD(t *testing.T) {
	type table struct {
		name  string
		peers []peer.Peer
		exp   []string
	}

	tt := []table{
		{
			name:  "basic",
			peers: []peer.Peer{{Host: "host3"}, {Host: "host1"}, {Host: "host2"}},
			exp:   []string{"host1", "host2", "host3"},
		},
		{
			name:  "duplicates",
			peers: []peer.Peer{{Host: "node2:8080"}, {Host: "node2:8080"}},
			exp:   []string{"node2:8080"},
		},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			ps := peer.NewPeerSet()

			for _, peer := range tst.peers {
				ps.Add(peer)
			}

			peers := ps.Copy("")
			if len(peers) != len(tst.exp) {
				t.Logf("Test %s:\tgot: %d", tst.name, len(peers))
				t.Logf("Test %s:\texp: %d", tst.name, len(tst.exp))
				t.Fatalf("Test %s:\tShould get back the right peers.", tst.name)
			}

			for i, host := range tst.exp {
				if peers[i].Host != host {
					t.Logf("Test %s:\tgot: %s", tst.name, peers[i].Host)
					t.Logf("Test %s:\texp: %s", tst.name, host)
					t.Fatalf("Test %s:\tShould get back the peers in order.", tst.name)
				}
			}

			peers = ps.Copy(tst.exp[0])
			if len(peers) != len(tst.exp)-1 {
				t.Logf("Test %s:\tgot: %d", tst.name, len(peers))
				t.Logf("Test %s:\texp: %d", tst.name, len(tst.exp)-1)
				t.Fatalf("Test %s:\tShould exclude the specified host.", tst.name)
			}

			ps.Remove(peer.New(tst.exp[0]))
			if len(ps.Copy("")) != len(tst.exp)-1 {
				t.Fatalf("Test %s:\tShould be able to remove a peer.", tst.name)
			}
		}

		t.Run(tst.name, f)
	}
}

func TestAddReportsNew(t *testing.T) {
	ps := peer.NewPeerSet()

	if !ps.Add(peer.New("node2:8080")) {
		t.Fatal("Should report the first add as new")
	}

	if ps.Add(peer.New("node2:8080")) {
		t.Fatal("Should report the second add as known")
	}
}

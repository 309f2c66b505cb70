package state

import (
	"context"
	"sync"

	"github.com/ardanlabs/toychain/foundation/blockchain/database"
	"github.com/ardanlabs/toychain/foundation/blockchain/peer"
)

// candidate is a chain received from a peer that passed validation.
type candidate struct {
	peer   peer.Peer
	blocks []database.Block
}

// Resolve asks every known peer for its chain and adopts the longest valid
// chain if it is longer than the local chain. Peers that can't be reached or
// that return an invalid chain are skipped. The chain held by the node once
// the reconciliation is complete is returned.
func (s *State) Resolve(ctx context.Context) []database.Block {
	s.evHandler("state: Resolve: started")
	defer s.evHandler("state: Resolve: completed")

	// CORE NOTE: The peers are asked in parallel and the decision is only
	// made once every peer has answered or timed out. That way the outcome
	// doesn't depend on which peer answers first. Among equally long chains
	// the peer with the lowest address wins since the peer list is sorted.

	peers := s.RetrieveKnownPeers()
	candidates := make([]*candidate, len(peers))

	var wg sync.WaitGroup
	wg.Add(len(peers))

	for i, pr := range peers {
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, s.peerTimeout)
			defer cancel()

			blocks, err := s.NetRequestPeerChain(ctx, pr)
			if err != nil {
				s.evHandler("state: Resolve: peer[%s]: skipped: ERROR: %s", pr, err)
				return
			}

			if err := database.ValidateChain(blocks, s.evHandler); err != nil {
				s.evHandler("state: Resolve: peer[%s]: skipped: invalid chain: %s", pr, err)
				return
			}

			candidates[i] = &candidate{peer: pr, blocks: blocks}
		}()
	}

	wg.Wait()

	var best *candidate
	for _, c := range candidates {
		if c == nil {
			continue
		}

		if best == nil || len(c.blocks) > len(best.blocks) {
			best = c
		}
	}

	// The length check has to happen under the lock since a block could
	// have been mined while the peers were asked.
	s.mu.Lock()
	defer s.mu.Unlock()

	if best == nil {
		s.evHandler("state: Resolve: no peer chains available")
		return s.db.Copy()
	}

	local := s.db.Count()
	if local >= len(best.blocks) {
		s.evHandler("state: Resolve: keep local chain: local[%d] peer[%s][%d]", local, best.peer, len(best.blocks))
		return s.db.Copy()
	}

	s.evHandler("state: Resolve: adopt peer chain: local[%d] peer[%s][%d]", local, best.peer, len(best.blocks))

	// A validated chain always has blocks so this can't fail.
	if err := s.db.Replace(best.blocks); err != nil {
		s.evHandler("state: Resolve: replace: ERROR: %s", err)
	}

	return s.db.Copy()
}

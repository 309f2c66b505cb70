package state

import (
	"errors"

	"github.com/ardanlabs/toychain/foundation/blockchain/peer"
)

// Set of errors reported when a peer can't be registered.
var (
	ErrPeerIsSelf       = errors.New("peer is this node")
	ErrPeerHostRequired = errors.New("peer address is required")
)

// =============================================================================

// RegisterPeer adds the peer to the set of known peers. It reports false if
// the peer was already known. A new peer triggers a background resolve.
func (s *State) RegisterPeer(pr peer.Peer) (bool, error) {
	if pr.Host == "" {
		return false, ErrPeerHostRequired
	}

	if s.host != "" && pr.Match(s.host) {
		return false, ErrPeerIsSelf
	}

	if !s.knownPeers.Add(pr) {
		s.evHandler("state: RegisterPeer: peer[%s]: already known", pr)
		return false, nil
	}

	s.evHandler("state: RegisterPeer: peer[%s]: added", pr)
	s.signalResolve()

	return true, nil
}

// RemoveKnownPeer provides the ability to remove a peer.
func (s *State) RemoveKnownPeer(pr peer.Peer) {
	s.knownPeers.Remove(pr)
}

// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"context"
	"sync"
	"time"

	"github.com/ardanlabs/toychain/foundation/blockchain/database"
	"github.com/ardanlabs/toychain/foundation/blockchain/peer"
)

// defaultPeerTimeout is used when the configuration doesn't provide a
// timeout for requests made to peers.
const defaultPeerTimeout = 5 * time.Second

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the blockchain.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background chain reconciliation.
type Worker interface {
	Shutdown()
	SignalResolve()
}

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	Host        string
	KnownPeers  *peer.PeerSet
	PeerTimeout time.Duration
	EvHandler   EventHandler
}

// State manages the blockchain database.
type State struct {
	host        string
	peerTimeout time.Duration
	evHandler   EventHandler

	// mu serializes every mutation of the chain. Reads are served from
	// the database snapshots and don't take this lock.
	mu sync.Mutex

	knownPeers *peer.PeerSet
	db         *database.Database

	// quit is cancelled on shutdown so long running mining stops.
	quit       context.Context
	cancelQuit context.CancelFunc

	Worker Worker
}

// New constructs a new blockchain for data management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	peerTimeout := cfg.PeerTimeout
	if peerTimeout <= 0 {
		peerTimeout = defaultPeerTimeout
	}

	// Construct the in memory chain which mines the genesis block. The
	// genesis difficulty is tiny so this doesn't need to be cancelled.
	db, err := database.New(context.Background(), ev)
	if err != nil {
		return nil, err
	}

	quit, cancelQuit := context.WithCancel(context.Background())

	// Create the State to provide support for managing the blockchain.
	state := State{
		host:        cfg.Host,
		peerTimeout: peerTimeout,
		evHandler:   ev,

		knownPeers: knownPeers,
		db:         db,

		quit:       quit,
		cancelQuit: cancelQuit,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop any mining that is in flight.
	s.cancelQuit()

	// Stop all background reconciliation activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// signalResolve asks the worker, if one is registered, to reconcile the
// chain with the known peers.
func (s *State) signalResolve() {
	if s.Worker != nil {
		s.Worker.SignalResolve()
	}
}

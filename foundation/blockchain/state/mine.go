package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/ardanlabs/toychain/foundation/blockchain/database"
	"github.com/ardanlabs/toychain/foundation/blockchain/fees"
)

// ErrNoTransactions is returned when a block is requested to be created
// and there are no transactions.
var ErrNoTransactions = errors.New("no transactions to mine")

// =============================================================================

// MineNewBlock applies the fee policy to the transactions, mines the block
// that follows the latest block, and appends it to the chain. Mining stops
// when the context is cancelled or the node shuts down.
func (s *State) MineNewBlock(ctx context.Context, trans []database.Tx) (database.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: started: txs[%d]", len(trans))
	defer s.evHandler("state: MineNewBlock: MINING: completed")

	if len(trans) == 0 {
		return database.Block{}, ErrNoTransactions
	}

	s.evHandler("state: MineNewBlock: MINING: apply fee policy")

	final := make([]database.Tx, len(trans))
	for i, tx := range trans {
		if err := tx.Validate(); err != nil {
			return database.Block{}, fmt.Errorf("tx[%d]: %w", i, err)
		}

		ftx, err := fees.Apply(tx)
		if err != nil {
			return database.Block{}, fmt.Errorf("tx[%d]: %w", i, err)
		}
		final[i] = ftx
	}

	// Mining must stop if the node is shutting down.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.quit, cancel)
	defer stop()

	// The read of the latest block, the POW and the write must happen as
	// one mutation or the block could be built on a stale tail.
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: MineNewBlock: MINING: perform POW")

	block, err := s.db.NextBlock(ctx, final, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	s.evHandler("state: MineNewBlock: MINING: update local state: blk[%d]: hash[%s]", block.Index, block.Hash)

	s.db.Write(block)

	return block, nil
}

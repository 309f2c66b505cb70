// Package database handles all the lower level support for maintaining the
// in memory chain of blocks.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ardanlabs/toychain/foundation/blockchain/signature"
)

// ChainData is the wire form of a chain. Known peers are not included.
type ChainData struct {
	Blocks []Block `json:"blocks"`
}

// =============================================================================

// Database manages the ordered set of blocks for a node. Writers are expected
// to serialize their compute-then-append sequences. The internal lock only
// protects readers from torn reads.
type Database struct {
	mu     sync.RWMutex
	blocks []Block
}

// New constructs a new database with a mined genesis block.
func New(ctx context.Context, evHandler func(v string, args ...any)) (*Database, error) {
	genesis, err := POW(ctx, 0, signature.ZeroHash, nil, evHandler)
	if err != nil {
		return nil, fmt.Errorf("mining genesis block: %w", err)
	}

	db := Database{
		blocks: []Block{genesis},
	}

	return &db, nil
}

// Write appends the block to the chain. No validation takes place here since
// the block is expected to come from NextBlock.
func (db *Database) Write(block Block) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.blocks = append(db.blocks, block)
}

// NextBlock mines the block that follows the current latest block with the
// specified transactions. The block is not written to the chain.
func (db *Database) NextBlock(ctx context.Context, trans []Tx, evHandler func(v string, args ...any)) (Block, error) {
	latest := db.LatestBlock()
	return POW(ctx, latest.Index+1, latest.Hash, trans, evHandler)
}

// Replace swaps the entire chain for the specified blocks.
func (db *Database) Replace(blocks []Block) error {
	if len(blocks) == 0 {
		return errors.New("can't replace chain with no blocks")
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	db.blocks = copyBlocks(blocks)
	return nil
}

// LatestBlock returns the tail of the chain.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.blocks[len(db.blocks)-1]
}

// Count returns the number of blocks in the chain, genesis included.
func (db *Database) Count() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.blocks)
}

// Copy returns a snapshot of the chain that can be used freely.
func (db *Database) Copy() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return copyBlocks(db.blocks)
}

// =============================================================================

// ValidateChain checks a complete chain from genesis to tip. This is what
// a chain received from a peer must pass before it can be adopted.
func ValidateChain(blocks []Block, evHandler func(v string, args ...any)) error {
	if len(blocks) == 0 {
		return errors.New("chain has no blocks")
	}

	genesis := blocks[0]

	evHandler("database: ValidateChain: validate: genesis: hash[%s]", genesis.Hash)

	if genesis.Index != 0 {
		return fmt.Errorf("genesis block index is %d", genesis.Index)
	}

	if genesis.PrevBlockHash != signature.ZeroHash {
		return fmt.Errorf("genesis block previous hash is %q", genesis.PrevBlockHash)
	}

	if !isHashSolved(genesis.Hash) || genesis.ComputeHash() != genesis.Hash {
		return fmt.Errorf("%s invalid genesis block hash", genesis.Hash)
	}

	for i := 1; i < len(blocks); i++ {
		if err := blocks[i].ValidateBlock(blocks[i-1], evHandler); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}

	return nil
}

// copyBlocks performs a deep copy so the transactions can't be shared.
func copyBlocks(blocks []Block) []Block {
	cpy := make([]Block, len(blocks))
	for i, block := range blocks {
		trans := make([]Tx, len(block.Trans))
		copy(trans, block.Trans)

		block.Trans = trans
		cpy[i] = block
	}

	return cpy
}

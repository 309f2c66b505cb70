package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ardanlabs/toychain/foundation/blockchain/signature"
)

// ErrBlockSealed is returned when a transaction is added to a block that
// has already been mined.
var ErrBlockSealed = errors.New("block is sealed")

// hashPrefix is what a block hash must start with to solve the POW puzzle.
const hashPrefix = "00"

// =============================================================================

// Block represents a group of transactions batched together.
type Block struct {
	Index         uint64 `json:"index"`        // Position of the block in the chain.
	PrevBlockHash string `json:"previousHash"` // Hash of the previous block in the chain.
	Hash          string `json:"hash"`         // Hash that solved the POW puzzle.
	Nonce         uint64 `json:"nonce"`        // Value identified to solve the hash solution.
	Trans         []Tx   `json:"transactions"` // Transactions in the order they were added.
}

// NewBlock constructs an unsealed block with no transactions.
func NewBlock() Block {
	return Block{
		Trans: []Tx{},
	}
}

// AddTransaction appends the transaction to the block. This can only
// happen before the block is mined.
func (b *Block) AddTransaction(tx Tx) error {
	if b.Hash != "" {
		return ErrBlockSealed
	}

	b.Trans = append(b.Trans, tx)
	return nil
}

// CanonicalKey returns the string that is hashed for the block. It's the
// index, previous hash, nonce and transactions as JSON with no separators.
func (b Block) CanonicalKey() string {
	trans := b.Trans
	if trans == nil {
		trans = []Tx{}
	}

	// Marshaling a slice of plain structs can't fail.
	data, _ := json.Marshal(trans)

	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(b.Index, 10))
	sb.WriteString(b.PrevBlockHash)
	sb.WriteString(strconv.FormatUint(b.Nonce, 10))
	sb.Write(data)

	return sb.String()
}

// ComputeHash hashes the current state of the block.
func (b Block) ComputeHash() string {
	return signature.Hash(b.CanonicalKey())
}

// POW constructs a new Block and performs the work to find a nonce that
// solves the cryptographic POW puzzle.
func POW(ctx context.Context, index uint64, prevBlockHash string, trans []Tx, evHandler func(v string, args ...any)) (Block, error) {
	nb := NewBlock()
	for _, tx := range trans {
		if err := nb.AddTransaction(tx); err != nil {
			return Block{}, err
		}
	}

	nb.Index = index
	nb.PrevBlockHash = prevBlockHash

	// Peform the proof of work mining operation.
	if err := nb.performPOW(ctx, evHandler); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// performPOW does the work of mining to find a valid hash for a specified
// block. Pointer semantics are being used since a nonce is being discovered.
func (b *Block) performPOW(ctx context.Context, ev func(v string, args ...any)) error {
	ev("database: PerformPOW: MINING: started: blk[%d]", b.Index)
	defer ev("database: PerformPOW: MINING: completed: blk[%d]", b.Index)

	for _, tx := range b.Trans {
		ev("database: PerformPOW: MINING: tx[%s]", tx)
	}

	// The nonce starts at zero so every node searches the same sequence.
	b.Nonce = 0

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: PerformPOW: MINING: attempts[%d]", attempts)
		}

		// Did we get cancelled trying to solve the problem.
		if ctx.Err() != nil {
			ev("database: PerformPOW: MINING: CANCELLED")
			return ctx.Err()
		}

		hash := b.ComputeHash()
		if !isHashSolved(hash) {
			b.Nonce++
			continue
		}

		b.Hash = hash

		ev("database: PerformPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.PrevBlockHash, hash)
		ev("database: PerformPOW: MINING: attempts[%d]", attempts)

		return nil
	}
}

// ValidateBlock takes a block and validates it to be the next block after
// the specified previous block.
func (b Block) ValidateBlock(previousBlock Block, evHandler func(v string, args ...any)) error {
	evHandler("database: ValidateBlock: validate: blk[%d]: check: block hash has been solved", b.Index)

	if !isHashSolved(b.Hash) {
		return fmt.Errorf("%s invalid block hash", b.Hash)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: block hash matches block content", b.Index)

	if hash := b.ComputeHash(); hash != b.Hash {
		return fmt.Errorf("block hash doesn't match content, got %s, exp %s", b.Hash, hash)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: block index is the next index", b.Index)

	if nextIndex := previousBlock.Index + 1; b.Index != nextIndex {
		return fmt.Errorf("this block is not the next index, got %d, exp %d", b.Index, nextIndex)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: previous hash does match previous block", b.Index)

	if b.PrevBlockHash != previousBlock.Hash {
		return fmt.Errorf("previous block hash doesn't match our known previous, got %s, exp %s", b.PrevBlockHash, previousBlock.Hash)
	}

	return nil
}

// isHashSolved checks the hash to make sure it complies with
// the POW rules.
func isHashSolved(hash string) bool {
	return strings.HasPrefix(hash, hashPrefix)
}

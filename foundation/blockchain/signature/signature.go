// Package signature provides helper functions for handling the blockchain
// hashing needs.
package signature

import (
	"crypto/sha1"

	"github.com/ethereum/go-ethereum/common"
)

// ZeroHash represents the previous hash value of the genesis block. It marks
// a block as having no predecessor.
const ZeroHash string = "0000000000000000"

// =============================================================================

// Hash returns the hex encoded SHA-1 digest of the specified string.
func Hash(value string) string {

	// CORE NOTE: SHA-1 is not collision resistant anymore. It's used here since
	// every node must produce the same digest for the same block, and this
	// chain only has to be illustrative, not secure.

	hash := sha1.Sum([]byte(value))
	return common.Bytes2Hex(hash[:])
}

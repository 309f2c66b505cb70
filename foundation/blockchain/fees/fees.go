// Package fees provides the fee policy applied to transactions before they
// are mined into a block.
package fees

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/toychain/foundation/blockchain/database"
)

// Rate is the percentage of the amount taken as fees.
const Rate = 0.05

// ErrFeesSet is returned when a transaction arrives with fees already set.
// Fees are only ever set by the policy.
var ErrFeesSet = errors.New("transaction fees are set by the node")

// Map of transaction kinds with their fee functions. Both kinds currently
// pay the same flat rate.
var strategies = map[database.Kind]Func{
	database.KindDomestic:      flatRate(Rate),
	database.KindInternational: flatRate(Rate),
}

// Func defines a function that takes the original amount of a transaction
// and returns the fees to be taken from it.
type Func func(amount float64) float64

// Retrieve returns the fee function for the specified kind.
func Retrieve(kind database.Kind) (Func, error) {
	fn, exists := strategies[kind]
	if !exists {
		return nil, fmt.Errorf("fee strategy for kind %q does not exist: %w", kind, database.ErrUnknownKind)
	}
	return fn, nil
}

// Apply takes the fees from the amount of the transaction. The transaction
// must arrive with zero fees.
func Apply(tx database.Tx) (database.Tx, error) {
	if tx.Fees != 0 {
		return database.Tx{}, fmt.Errorf("%w: fees[%v]", ErrFeesSet, tx.Fees)
	}

	kind, err := database.ToKind(string(tx.Kind))
	if err != nil {
		return database.Tx{}, err
	}

	fn, err := Retrieve(kind)
	if err != nil {
		return database.Tx{}, err
	}

	tx.Kind = kind

	tx.Fees = fn(tx.Amount)
	tx.Amount -= tx.Fees

	return tx, nil
}

// =============================================================================

// flatRate returns a fee function that takes the same percentage of
// any amount.
func flatRate(rate float64) Func {
	return func(amount float64) float64 {
		return amount * rate
	}
}

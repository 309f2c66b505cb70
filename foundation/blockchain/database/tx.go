package database

import (
	"errors"
	"fmt"
)

// Set of errors reported for transactions that can't be mined.
var (
	ErrInvalidTx   = errors.New("invalid transaction")
	ErrUnknownKind = errors.New("unknown transaction kind")
)

// Set of transaction kinds the blockchain understands.
const (
	KindDomestic      Kind = "domestic"
	KindInternational Kind = "international"
)

// Kind classifies a transaction for the fee policy.
type Kind string

// ToKind validates the specified string is a known kind. An empty string
// maps to KindDomestic.
func ToKind(s string) (Kind, error) {
	switch Kind(s) {
	case "":
		return KindDomestic, nil
	case KindDomestic, KindInternational:
		return Kind(s), nil
	}

	return "", fmt.Errorf("%w %q", ErrUnknownKind, s)
}

// =============================================================================

// Tx is the transactional information between two parties. The field order
// matters since the JSON form of a block's transactions is part of the
// block's hash.
type Tx struct {
	From   string  `json:"from"`            // Party sending the amount.
	To     string  `json:"to"`              // Party receiving the amount.
	Amount float64 `json:"amount"`          // Amount after the fee policy is applied.
	Fees   float64 `json:"fees"`            // Fees taken by the fee policy.
	Kind   Kind    `json:"transactionType"` // Classification used by the fee policy.
}

// NewTx constructs a new transaction.
func NewTx(from string, to string, amount float64, kind Kind) (Tx, error) {
	tx := Tx{
		From:   from,
		To:     to,
		Amount: amount,
		Kind:   kind,
	}

	if err := tx.Validate(); err != nil {
		return Tx{}, err
	}

	return tx, nil
}

// Validate checks the required fields of the transaction are present.
func (tx Tx) Validate() error {
	if tx.From == "" {
		return fmt.Errorf("%w: from is required", ErrInvalidTx)
	}

	if tx.To == "" {
		return fmt.Errorf("%w: to is required", ErrInvalidTx)
	}

	if _, err := ToKind(string(tx.Kind)); err != nil {
		return err
	}

	return nil
}

// String implements the Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%v:%v:%s", tx.From, tx.To, tx.Amount, tx.Fees, tx.Kind)
}

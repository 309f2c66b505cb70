package public

import (
	"github.com/ardanlabs/toychain/foundation/blockchain/database"
)

// newTx is what a client submits to be mined. The kind defaults to domestic.
// Amount is a pointer so a missing amount can be told apart from zero.
type newTx struct {
	From   string   `json:"from" validate:"required"`
	To     string   `json:"to" validate:"required"`
	Amount *float64 `json:"amount" validate:"required,gte=0"`
	Kind   string   `json:"transactionType" validate:"omitempty,oneof=domestic international"`
}

func toDBTx(ntx newTx) (database.Tx, error) {
	kind, err := database.ToKind(ntx.Kind)
	if err != nil {
		return database.Tx{}, err
	}

	return database.NewTx(ntx.From, ntx.To, *ntx.Amount, kind)
}

// newPeer is what a client submits to register a peer.
type newPeer struct {
	Address string `json:"address" validate:"required"`
}

type status struct {
	Status string `json:"status"`
}

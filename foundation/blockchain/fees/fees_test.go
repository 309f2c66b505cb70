package fees_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/toychain/foundation/blockchain/database"
	"github.com/ardanlabs/toychain/foundation/blockchain/fees"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestApply(t *testing.T) {
	type table struct {
		name   string
		tx     database.Tx
		amount float64
		fees   float64
	}

	tt := []table{
		{
			name:   "domestic",
			tx:     database.Tx{From: "A", To: "B", Amount: 100, Kind: database.KindDomestic},
			amount: 95,
			fees:   5,
		},
		{
			name:   "international",
			tx:     database.Tx{From: "A", To: "B", Amount: 100, Kind: database.KindInternational},
			amount: 95,
			fees:   5,
		},
		{
			name:   "default-kind",
			tx:     database.Tx{From: "A", To: "B", Amount: 20},
			amount: 19,
			fees:   1,
		},
		{
			name:   "zero",
			tx:     database.Tx{From: "A", To: "B", Amount: 0, Kind: database.KindDomestic},
			amount: 0,
			fees:   0,
		},
	}

	t.Log("Given the need to take fees from transactions.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a %s transaction.", testID, tst.name)
			{
				f := func(t *testing.T) {
					tx, err := fees.Apply(tst.tx)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to apply fees: %s", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to apply fees.", success, testID)

					if tx.Fees != tst.fees || tx.Amount != tst.amount {
						t.Logf("\t%s\tTest %d:\tgot: %v/%v", failed, testID, tx.Fees, tx.Amount)
						t.Logf("\t%s\tTest %d:\texp: %v/%v", failed, testID, tst.fees, tst.amount)
						t.Fatalf("\t%s\tTest %d:\tShould get the right fees and amount.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the right fees and amount.", success, testID)

					if tx.Fees != 0 {
						if _, err := fees.Apply(tx); !errors.Is(err, fees.ErrFeesSet) {
							t.Fatalf("\t%s\tTest %d:\tShould not apply fees a second time: %v", failed, testID, err)
						}
						t.Logf("\t%s\tTest %d:\tShould not apply fees a second time.", success, testID)
					}
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestUnknownKind(t *testing.T) {
	if _, err := fees.Apply(database.Tx{From: "A", To: "B", Amount: 10, Kind: "galactic"}); err == nil {
		t.Fatal("Should not be able to apply fees for an unknown kind")
	}

	if _, err := fees.Retrieve("galactic"); err == nil {
		t.Fatal("Should not be able to retrieve a strategy for an unknown kind")
	}
}

func TestPresetFees(t *testing.T) {
	tx := database.Tx{From: "A", To: "B", Amount: 100, Fees: 1, Kind: database.KindDomestic}

	if _, err := fees.Apply(tx); !errors.Is(err, fees.ErrFeesSet) {
		t.Fatalf("Should not accept a transaction with fees already set, got %v", err)
	}
}

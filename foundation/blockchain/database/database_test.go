package database_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ardanlabs/toychain/foundation/blockchain/database"
	"github.com/ardanlabs/toychain/foundation/blockchain/signature"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func ev(v string, args ...any) {}

func newTx(t *testing.T, from string, to string, amount float64) database.Tx {
	tx, err := database.NewTx(from, to, amount, database.KindDomestic)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a transaction: %s", failed, err)
	}
	return tx
}

func TestGenesis(t *testing.T) {
	t.Log("Given the need to start a chain with a genesis block.")
	{
		db, err := database.New(context.Background(), ev)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the database: %s", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct the database.", success)

		blocks := db.Copy()
		if len(blocks) != 1 {
			t.Fatalf("\t%s\tShould have a single block, got %d.", failed, len(blocks))
		}
		t.Logf("\t%s\tShould have a single block.", success)

		genesis := blocks[0]
		if genesis.Index != 0 {
			t.Fatalf("\t%s\tShould have index 0, got %d.", failed, genesis.Index)
		}
		t.Logf("\t%s\tShould have index 0.", success)

		if genesis.PrevBlockHash != signature.ZeroHash {
			t.Fatalf("\t%s\tShould have the sentinel previous hash, got %q.", failed, genesis.PrevBlockHash)
		}
		t.Logf("\t%s\tShould have the sentinel previous hash.", success)

		if !strings.HasPrefix(genesis.Hash, "00") || genesis.Hash != genesis.ComputeHash() {
			t.Fatalf("\t%s\tShould have a solved hash, got %q.", failed, genesis.Hash)
		}
		t.Logf("\t%s\tShould have a solved hash.", success)

		if len(genesis.Trans) != 0 {
			t.Fatalf("\t%s\tShould have no transactions, got %d.", failed, len(genesis.Trans))
		}
		t.Logf("\t%s\tShould have no transactions.", success)
	}
}

func TestLinkage(t *testing.T) {
	t.Log("Given the need to append blocks to the chain.")
	{
		db, err := database.New(context.Background(), ev)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the database: %s", failed, err)
		}

		const blocks = 5
		for i := 1; i <= blocks; i++ {
			block, err := db.NextBlock(context.Background(), []database.Tx{newTx(t, "A", "B", float64(i))}, ev)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to mine block %d: %s", failed, i, err)
			}

			if db.Count() != i {
				t.Fatalf("\t%s\tShould not append the block while mining.", failed)
			}

			db.Write(block)
		}
		t.Logf("\t%s\tShould be able to mine and write %d blocks.", success, blocks)

		chain := db.Copy()
		for i := 1; i < len(chain); i++ {
			if chain[i].PrevBlockHash != chain[i-1].Hash {
				t.Fatalf("\t%s\tShould link block %d to its predecessor.", failed, i)
			}
			if chain[i].Index != uint64(i) {
				t.Fatalf("\t%s\tShould have index %d, got %d.", failed, i, chain[i].Index)
			}
			if !strings.HasPrefix(chain[i].Hash, "00") || chain[i].Hash != chain[i].ComputeHash() {
				t.Fatalf("\t%s\tShould have a solved hash for block %d.", failed, i)
			}
		}
		t.Logf("\t%s\tShould have every block linked, indexed and solved.", success)

		if err := database.ValidateChain(chain, ev); err != nil {
			t.Fatalf("\t%s\tShould validate the chain: %s", failed, err)
		}
		t.Logf("\t%s\tShould validate the chain.", success)
	}
}

func TestCopyIsSnapshot(t *testing.T) {
	t.Log("Given the need to hand out chain snapshots.")
	{
		db, err := database.New(context.Background(), ev)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the database: %s", failed, err)
		}

		block, err := db.NextBlock(context.Background(), []database.Tx{newTx(t, "A", "B", 10)}, ev)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %s", failed, err)
		}
		db.Write(block)

		snapshot := db.Copy()
		snapshot[1].Trans[0].Amount = 1_000

		if db.Copy()[1].Trans[0].Amount != 10 {
			t.Fatalf("\t%s\tShould not be able to change the chain through a snapshot.", failed)
		}
		t.Logf("\t%s\tShould not be able to change the chain through a snapshot.", success)
	}
}

func TestReplace(t *testing.T) {
	t.Log("Given the need to replace the chain wholesale.")
	{
		local, err := database.New(context.Background(), ev)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the database: %s", failed, err)
		}

		other, err := database.New(context.Background(), ev)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the database: %s", failed, err)
		}

		for i := 0; i < 3; i++ {
			block, err := other.NextBlock(context.Background(), []database.Tx{newTx(t, "C", "D", 1)}, ev)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to mine a block: %s", failed, err)
			}
			other.Write(block)
		}

		if err := local.Replace(other.Copy()); err != nil {
			t.Fatalf("\t%s\tShould be able to replace the chain: %s", failed, err)
		}

		if local.Count() != 4 || local.LatestBlock().Hash != other.LatestBlock().Hash {
			t.Fatalf("\t%s\tShould have the replaced chain.", failed)
		}
		t.Logf("\t%s\tShould have the replaced chain.", success)

		if err := local.Replace(nil); err == nil {
			t.Fatalf("\t%s\tShould not be able to replace the chain with nothing.", failed)
		}
		t.Logf("\t%s\tShould not be able to replace the chain with nothing.", success)
	}
}

func TestValidateChain(t *testing.T) {
	db, err := database.New(context.Background(), ev)
	if err != nil {
		t.Fatalf("Should be able to construct the database: %s", err)
	}

	for i := 0; i < 3; i++ {
		block, err := db.NextBlock(context.Background(), []database.Tx{newTx(t, "A", "B", 5)}, ev)
		if err != nil {
			t.Fatalf("Should be able to mine a block: %s", err)
		}
		db.Write(block)
	}

	type table struct {
		name   string
		tamper func(blocks []database.Block) []database.Block
	}

	tt := []table{
		{
			name: "empty",
			tamper: func(blocks []database.Block) []database.Block {
				return nil
			},
		},
		{
			name: "genesis-sentinel",
			tamper: func(blocks []database.Block) []database.Block {
				blocks[0].PrevBlockHash = "1111111111111111"
				return blocks
			},
		},
		{
			name: "linkage",
			tamper: func(blocks []database.Block) []database.Block {
				blocks[2].PrevBlockHash = blocks[0].Hash
				return blocks
			},
		},
		{
			name: "content",
			tamper: func(blocks []database.Block) []database.Block {
				blocks[2].Trans[0].Amount = 1_000_000
				return blocks
			},
		},
		{
			name: "index",
			tamper: func(blocks []database.Block) []database.Block {
				return append(blocks[:1], blocks[2:]...)
			},
		},
	}

	t.Log("Given the need to reject broken chains.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				blocks := tst.tamper(db.Copy())
				if err := database.ValidateChain(blocks, ev); err == nil {
					t.Fatalf("\t%s\tTest %d:\tShould reject a chain with a broken %s.", failed, testID, tst.name)
				}
				t.Logf("\t%s\tTest %d:\tShould reject a chain with a broken %s.", success, testID, tst.name)
			}

			t.Run(tst.name, f)
		}
	}
}

func TestNextBlockCancelled(t *testing.T) {
	db, err := database.New(context.Background(), ev)
	if err != nil {
		t.Fatalf("Should be able to construct the database: %s", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := db.NextBlock(ctx, []database.Tx{newTx(t, "A", "B", 1)}, ev); !errors.Is(err, context.Canceled) {
		t.Fatalf("Should get a cancelled error, got %v", err)
	}

	if db.Count() != 1 {
		t.Fatalf("Should not change the chain, got %d blocks", db.Count())
	}
}

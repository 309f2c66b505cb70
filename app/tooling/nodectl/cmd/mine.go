package cmd

import (
	"net/http"

	"github.com/ardanlabs/toychain/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var (
	from   string
	to     string
	amount float64
	kind   string
)

// mineCmd represents the mine command
var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine a block holding a new transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		tx := struct {
			From   string  `json:"from"`
			To     string  `json:"to"`
			Amount float64 `json:"amount"`
			Kind   string  `json:"transactionType,omitempty"`
		}{
			From:   from,
			To:     to,
			Amount: amount,
			Kind:   kind,
		}

		var block database.Block
		if err := call(cmd.Context(), http.MethodPost, "/v1/mine", tx, &block); err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), block)
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().StringVarP(&from, "from", "f", "", "Party sending the amount.")
	mineCmd.Flags().StringVarP(&to, "to", "t", "", "Party receiving the amount.")
	mineCmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Amount to send.")
	mineCmd.Flags().StringVarP(&kind, "kind", "k", "", "Transaction kind: domestic or international.")
	mineCmd.MarkFlagRequired("from")
	mineCmd.MarkFlagRequired("to")
	mineCmd.MarkFlagRequired("amount")
}

package cmd

import (
	"net/http"

	"github.com/ardanlabs/toychain/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

// chainCmd represents the chain command
var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the chain held by the node",
	RunE: func(cmd *cobra.Command, args []string) error {
		var chain database.ChainData
		if err := call(cmd.Context(), http.MethodGet, "/v1/blockchain", nil, &chain); err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), chain)
	},
}

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Reconcile the node's chain with its peers",
	RunE: func(cmd *cobra.Command, args []string) error {
		var chain database.ChainData
		if err := call(cmd.Context(), http.MethodGet, "/v1/nodes/resolve", nil, &chain); err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), chain)
	},
}

func init() {
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(resolveCmd)
}

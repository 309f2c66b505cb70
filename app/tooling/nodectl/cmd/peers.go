package cmd

import (
	"net/http"

	"github.com/ardanlabs/toychain/foundation/blockchain/peer"
	"github.com/spf13/cobra"
)

// peersCmd represents the peers command
var peersCmd = &cobra.Command{
	Use:   "peers",
	Short: "Manage the peers known by the node",
}

var peersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the peers known by the node",
	RunE: func(cmd *cobra.Command, args []string) error {
		var peers []peer.Peer
		if err := call(cmd.Context(), http.MethodGet, "/v1/nodes", nil, &peers); err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), peers)
	},
}

var peersRegisterCmd = &cobra.Command{
	Use:   "register <address>",
	Short: "Register a peer with the node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var status map[string]string
		if err := call(cmd.Context(), http.MethodPost, "/v1/nodes/register", peer.New(args[0]), &status); err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), status)
	},
}

func init() {
	rootCmd.AddCommand(peersCmd)
	peersCmd.AddCommand(peersListCmd)
	peersCmd.AddCommand(peersRegisterCmd)
}

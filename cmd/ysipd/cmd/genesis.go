package cmd

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/ysip-labs/ysip/app"
)

// GenesisCmd returns the genesis editing commands.
func GenesisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genesis",
		Short: "Edit genesis.json before the chain starts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(AddGenesisAccountCmd())
	return cmd
}

// AddGenesisAccountCmd credits native coins to an account in genesis.json.
func AddGenesisAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-account [address_or_key_name] [coins]",
		Short: "Add a native balance to genesis.json",
		Long: `Credit coins to an account in the bank genesis. The supply is adjusted to
match. Only possible before the data directory has been initialized.

Example:
  $ ysipd genesis add-account alice 1000000000uusd,1000000000uluna --keyring-backend test`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}
			if fileExists(DataDir(nc.home)) {
				return fmt.Errorf("chain data already exists in %s; genesis can no longer change", DataDir(nc.home))
			}

			addr, err := nc.node.ResolveAddress(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			coins, err := sdk.ParseCoinsNormalized(args[1])
			if err != nil {
				return fmt.Errorf("failed to parse coins: %w", err)
			}

			doc, err := ReadGenesis(nc.home)
			if err != nil {
				return err
			}
			if err := app.AddGenesisBalance(app.MakeEncodingConfig().Codec, doc.AppState, addr, coins); err != nil {
				return err
			}
			if err := WriteGenesis(nc.home, doc); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", coins, addr)
			return nil
		},
	}
}

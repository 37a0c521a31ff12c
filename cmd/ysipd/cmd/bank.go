package cmd

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	hostclient "github.com/ysip-labs/ysip/x/host/client"
)

// BankSendCmd moves native coins between accounts.
func BankSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send [to_address_or_key] [coins]",
		Short: "Send native coins",
		Long: `Send native coins from --from to another account.

Example:
  $ ysipd tx send bob 1000uusd --from alice`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}
			from, err := hostclient.From(cmd)
			if err != nil {
				return err
			}
			coins, err := sdk.ParseCoinsNormalized(args[1])
			if err != nil {
				return fmt.Errorf("failed to parse coins: %w", err)
			}
			if coins.Empty() {
				return fmt.Errorf("coins must not be empty")
			}
			res, err := nc.node.SendCoins(cmd.Context(), from, args[0], coins)
			if err != nil {
				return err
			}
			return hostclient.PrintJSON(cmd.OutOrStdout(), res)
		},
	}
	hostclient.AddTxFlags(cmd)
	return cmd
}

// BankBalancesCmd prints the native balances of an account.
func BankBalancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances [address_or_key]",
		Short: "Query the native balances of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}
			addr, err := nc.node.ResolveAddress(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			coins, err := nc.node.Balances(addr)
			if err != nil {
				return err
			}
			return hostclient.PrintJSON(cmd.OutOrStdout(), map[string]any{"address": addr, "balances": coins})
		},
	}
}

// ContractInfoCmd prints the stored metadata of a contract.
func ContractInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contract [address]",
		Short: "Query the code id, creator and label of a contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}
			info, err := nc.node.ContractInfo(args[0])
			if err != nil {
				return err
			}
			return hostclient.PrintJSON(cmd.OutOrStdout(), info)
		},
	}
}

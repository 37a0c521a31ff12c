package cli

import (
	"github.com/spf13/cobra"

	hostclient "github.com/ysip-labs/ysip/x/host/client"
	"github.com/ysip-labs/ysip/x/token/types"
)

// GetQueryCmd returns the cli query commands for token contracts
func GetQueryCmd() *cobra.Command {
	tokenQueryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for token contracts",
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	tokenQueryCmd.AddCommand(
		GetCmdQueryTokens(),
		GetCmdQueryBalance(),
		GetCmdQueryTokenInfo(),
		GetCmdQueryMinter(),
		GetCmdQueryAllowance(),
	)

	return tokenQueryCmd
}

// GetCmdQueryTokens returns the command to list token contracts
func GetCmdQueryTokens() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "List every instantiated token contract, liquidity tokens included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := hostclient.GetContractClient(cmd)
			if err != nil {
				return err
			}
			codeID, _ := cmd.Flags().GetUint64(FlagCodeID)
			addrs, err := cc.Contracts(cmd.Context(), codeID)
			if err != nil {
				return err
			}
			return hostclient.PrintJSON(cmd.OutOrStdout(), addrs)
		},
	}
	cmd.Flags().Uint64(FlagCodeID, DefaultCodeID, "Code id of the token contract")
	return cmd
}

// GetCmdQueryBalance returns the command to query an account balance
func GetCmdQueryBalance() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [token] [address]",
		Short: "Query the token balance of an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := hostclient.GetContractClient(cmd)
			if err != nil {
				return err
			}
			addr, err := cc.ResolveAddress(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			return runQuery(cmd, cc, args[0], types.NewBalanceQuery(addr), &types.BalanceResponse{})
		},
	}
}

// GetCmdQueryTokenInfo returns the command to query token metadata
func GetCmdQueryTokenInfo() *cobra.Command {
	return &cobra.Command{
		Use:   "info [token]",
		Short: "Query the name, symbol, decimals and total supply of a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := hostclient.GetContractClient(cmd)
			if err != nil {
				return err
			}
			return runQuery(cmd, cc, args[0], types.NewTokenInfoQuery(), &types.TokenInfoResponse{})
		},
	}
}

// GetCmdQueryMinter returns the command to query the minter of a token
func GetCmdQueryMinter() *cobra.Command {
	return &cobra.Command{
		Use:   "minter [token]",
		Short: "Query the minter and cap of a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := hostclient.GetContractClient(cmd)
			if err != nil {
				return err
			}
			return runQuery(cmd, cc, args[0], types.QueryMsg{Minter: &types.MinterQuery{}}, &types.MinterResponse{})
		},
	}
}

// GetCmdQueryAllowance returns the command to query an allowance
func GetCmdQueryAllowance() *cobra.Command {
	return &cobra.Command{
		Use:   "allowance [token] [owner] [spender]",
		Short: "Query the allowance an owner granted a spender",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := hostclient.GetContractClient(cmd)
			if err != nil {
				return err
			}
			owner, err := cc.ResolveAddress(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			spender, err := cc.ResolveAddress(cmd.Context(), args[2])
			if err != nil {
				return err
			}
			req := types.QueryMsg{Allowance: &types.AllowanceQuery{Owner: owner, Spender: spender}}
			return runQuery(cmd, cc, args[0], req, &types.AllowanceResponse{})
		},
	}
}

func runQuery(cmd *cobra.Command, cc hostclient.ContractClient, token string, req types.QueryMsg, resp any) error {
	if err := cc.Query(cmd.Context(), token, req, resp); err != nil {
		return err
	}
	return hostclient.PrintJSON(cmd.OutOrStdout(), resp)
}

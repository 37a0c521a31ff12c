package cli

import (
	"github.com/spf13/cobra"

	hostclient "github.com/ysip-labs/ysip/x/host/client"
	"github.com/ysip-labs/ysip/x/pair/types"
)

// GetQueryCmd returns the cli query commands for the pair contract
func GetQueryCmd() *cobra.Command {
	pairQueryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for pair contracts",
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	pairQueryCmd.AddCommand(
		GetCmdQueryPairs(),
		GetCmdQueryPair(),
		GetCmdQueryLiquidity(),
		GetCmdQueryFees(),
		GetCmdQueryStatus(),
		GetCmdQuerySimulation(),
		GetCmdQueryShare(),
	)

	return pairQueryCmd
}

// GetCmdQueryPairs returns the command to list pair contracts
func GetCmdQueryPairs() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "List every instantiated pair contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := hostclient.GetContractClient(cmd)
			if err != nil {
				return err
			}
			codeID, _ := cmd.Flags().GetUint64(FlagPairCodeID)
			addrs, err := cc.Contracts(cmd.Context(), codeID)
			if err != nil {
				return err
			}
			pairs := make([]types.PairInfoResponse, 0, len(addrs))
			for _, addr := range addrs {
				var info types.PairInfoResponse
				if err := cc.Query(cmd.Context(), addr, types.NewPairQuery(), &info); err != nil {
					return err
				}
				pairs = append(pairs, info)
			}
			return hostclient.PrintJSON(cmd.OutOrStdout(), pairs)
		},
	}
	cmd.Flags().Uint64(FlagPairCodeID, DefaultPairCodeID, "Code id of the pair contract")
	return cmd
}

// GetCmdQueryPair returns the command to query a pair's assets and liquidity token
func GetCmdQueryPair() *cobra.Command {
	return simpleQueryCmd("pair [pair]", "Query the assets and liquidity token of a pair", types.NewPairQuery(), func() any {
		return &types.PairInfoResponse{}
	})
}

// GetCmdQueryLiquidity returns the command to query a pair's reserves
func GetCmdQueryLiquidity() *cobra.Command {
	return simpleQueryCmd("liquidity [pair]", "Query the reserves of a pair", types.NewLiquidityQuery(), func() any {
		return &types.LiquidityResponse{}
	})
}

// GetCmdQueryFees returns the command to query a pair's fee configuration
func GetCmdQueryFees() *cobra.Command {
	return simpleQueryCmd("fees [pair]", "Query the fee rates and fee recipient of a pair", types.QueryMsg{Fees: &types.FeesQuery{}}, func() any {
		return &types.Fees{}
	})
}

// GetCmdQueryStatus returns the command to query liquidity token provisioning
func GetCmdQueryStatus() *cobra.Command {
	return simpleQueryCmd("status [pair]", "Query the liquidity token provisioning status", types.QueryMsg{Status: &types.StatusQuery{}}, func() any {
		return &types.StatusResponse{}
	})
}

// GetCmdQuerySimulation returns the command to simulate a swap
func GetCmdQuerySimulation() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate [pair] [offer-asset] [amount]",
		Short: "Simulate a swap without executing it",
		Long: `Compute the fees and output of a swap at the current reserves.

Example:
  $ ysipd query pair simulate ysip1...pair uusd 10000000`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			offerInfo, err := ParseAssetInfo(args[1])
			if err != nil {
				return err
			}
			amount, err := ParseAmount("amount", args[2])
			if err != nil {
				return err
			}
			return runQuery(cmd, args[0], types.NewSimulationQuery(types.NewAsset(offerInfo, amount)), &types.SimulationResponse{})
		},
	}
}

// GetCmdQueryShare returns the command to query the redeemable share of LP tokens
func GetCmdQueryShare() *cobra.Command {
	return &cobra.Command{
		Use:   "share [pair] [lp-amount]",
		Short: "Query the assets redeemable for an amount of liquidity tokens",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := ParseAmount("lp-amount", args[1])
			if err != nil {
				return err
			}
			return runQuery(cmd, args[0], types.QueryMsg{Share: &types.ShareQuery{Amount: amount}}, &types.ShareResponse{})
		},
	}
}

func simpleQueryCmd(use, short string, req types.QueryMsg, resp func() any) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], req, resp())
		},
	}
}

func runQuery(cmd *cobra.Command, pair string, req types.QueryMsg, resp any) error {
	cc, err := hostclient.GetContractClient(cmd)
	if err != nil {
		return err
	}
	if err := cc.Query(cmd.Context(), pair, req, resp); err != nil {
		return err
	}
	return hostclient.PrintJSON(cmd.OutOrStdout(), resp)
}

package cli

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	hostclient "github.com/ysip-labs/ysip/x/host/client"
	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/pair/types"
	tokentypes "github.com/ysip-labs/ysip/x/token/types"
)

// GetTxCmd returns the transaction commands for the pair contract
func GetTxCmd() *cobra.Command {
	pairTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Pair transaction subcommands",
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	pairTxCmd.AddCommand(
		CmdCreatePair(),
		CmdProvideLiquidity(),
		CmdSwap(),
		CmdRemoveLiquidity(),
	)

	return pairTxCmd
}

// CmdCreatePair returns a CLI command handler for instantiating a pair
func CmdCreatePair() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pair [asset-a] [asset-b]",
		Short: "Instantiate a pair contract and its liquidity token",
		Long: `Instantiate a pair trading two assets. An asset is either a token contract
address or a native denom. Fee rates are percentages of each swap.

Example:
  $ ysipd tx pair create-pair uusd ysip1...mir --from alice
  $ ysipd tx pair create-pair uusd uluna --protocol-fee-rate 0.25 --lp-fee-rate 0.05 --from alice`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := hostclient.GetContractClient(cmd)
			if err != nil {
				return err
			}
			from, err := hostclient.From(cmd)
			if err != nil {
				return err
			}

			assetA, err := ParseAssetInfo(args[0])
			if err != nil {
				return err
			}
			assetB, err := ParseAssetInfo(args[1])
			if err != nil {
				return err
			}
			if assetA.Equal(assetB) {
				return fmt.Errorf("assets must be different")
			}

			protocolRate, err := parseRate(cmd, FlagProtocolFeeRate)
			if err != nil {
				return err
			}
			lpRate, err := parseRate(cmd, FlagLpFeeRate)
			if err != nil {
				return err
			}

			recipient, _ := cmd.Flags().GetString(FlagProtocolFeeRecipient)
			if recipient == "" {
				recipient = from
			}
			recipient, err = cc.ResolveAddress(cmd.Context(), recipient)
			if err != nil {
				return err
			}

			msg := types.InstantiateMsg{
				AssetInfos:           types.AssetInfos{assetA, assetB},
				ProtocolFeeRecipient: recipient,
				ProtocolFeeRate:      protocolRate,
				LpFeeRate:            lpRate,
			}
			msg.TokenCodeID, _ = cmd.Flags().GetUint64(FlagTokenCodeID)
			if err := msg.Fees().Validate(); err != nil {
				return err
			}

			codeID, _ := cmd.Flags().GetUint64(FlagPairCodeID)
			label, _ := cmd.Flags().GetString(FlagLabel)
			res, err := cc.Instantiate(cmd.Context(), from, codeID, msg, nil, label)
			if err != nil {
				return err
			}
			return hostclient.PrintJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().String(FlagProtocolFeeRate, DefaultProtocolFeeRate, "Protocol fee in percent of the offer")
	cmd.Flags().String(FlagLpFeeRate, DefaultLpFeeRate, "Liquidity provider fee in percent of the output")
	cmd.Flags().String(FlagProtocolFeeRecipient, "", "Receiver of protocol fees (defaults to --from)")
	cmd.Flags().Uint64(FlagTokenCodeID, DefaultTokenCodeID, "Code id of the liquidity token")
	cmd.Flags().Uint64(FlagPairCodeID, DefaultPairCodeID, "Code id of the pair contract")
	cmd.Flags().String(FlagLabel, "pair", "Contract label")
	hostclient.AddTxFlags(cmd)
	return cmd
}

// CmdProvideLiquidity returns a CLI command handler for depositing both assets
func CmdProvideLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provide-liquidity [pair] [amount-a] [amount-b]",
		Short: "Deposit both assets of a pair",
		Long: `Deposit both assets in the pair's asset order. Native amounts are attached as
funds. For token assets an allowance for the pair is granted first unless
--skip-approve is set.

Example:
  $ ysipd tx pair provide-liquidity ysip1...pair 1000000 30000000 --from alice`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := hostclient.GetContractClient(cmd)
			if err != nil {
				return err
			}
			from, err := hostclient.From(cmd)
			if err != nil {
				return err
			}
			pair := args[0]

			amountA, err := ParseAmount("amount-a", args[1])
			if err != nil {
				return err
			}
			amountB, err := ParseAmount("amount-b", args[2])
			if err != nil {
				return err
			}

			var info types.PairInfoResponse
			if err := cc.Query(cmd.Context(), pair, types.NewPairQuery(), &info); err != nil {
				return err
			}
			assets := [2]types.Asset{
				types.NewAsset(info.AssetInfos[0], amountA),
				types.NewAsset(info.AssetInfos[1], amountB),
			}

			skipApprove, _ := cmd.Flags().GetBool(FlagSkipApprove)
			if !skipApprove {
				for _, a := range assets {
					if a.Info.IsNative() {
						continue
					}
					approve := tokentypes.ExecuteMsg{IncreaseAllowance: &tokentypes.AllowanceMsg{Spender: pair, Amount: a.Amount}}
					if _, err := cc.Execute(cmd.Context(), from, a.Info.Token.ContractAddr, approve, nil); err != nil {
						return fmt.Errorf("approve %s: %w", a.Info, err)
					}
				}
			}

			receiver, _ := cmd.Flags().GetString(FlagReceiver)
			if receiver != "" {
				if receiver, err = cc.ResolveAddress(cmd.Context(), receiver); err != nil {
					return err
				}
			}

			msg := types.ExecuteMsg{ProvideLiquidity: &types.ProvideLiquidityMsg{Assets: assets, Receiver: receiver}}
			res, err := cc.Execute(cmd.Context(), from, pair, msg, nativeFunds(assets[:]...))
			if err != nil {
				return err
			}
			return hostclient.PrintJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().String(FlagReceiver, "", "Account credited with the liquidity tokens")
	cmd.Flags().Bool(FlagSkipApprove, false, "Do not grant token allowances before depositing")
	hostclient.AddTxFlags(cmd)
	return cmd
}

// CmdSwap returns a CLI command handler for swapping against a pair
func CmdSwap() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap [pair] [offer-asset] [amount]",
		Short: "Swap an offer asset for the other asset of the pair",
		Long: `Swap an amount of one of the pair's assets. Native offers are attached as
funds. Token offers are sent to the pair with a swap hook in one transaction.

Example:
  $ ysipd tx pair swap ysip1...pair uusd 10000000 --max-spread 0.05 --from alice
  $ ysipd tx pair swap ysip1...pair ysip1...mir 300000000 --min-output 9000000 --from alice`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := hostclient.GetContractClient(cmd)
			if err != nil {
				return err
			}
			from, err := hostclient.From(cmd)
			if err != nil {
				return err
			}
			pair := args[0]

			offerInfo, err := ParseAssetInfo(args[1])
			if err != nil {
				return err
			}
			amount, err := ParseAmount("amount", args[2])
			if err != nil {
				return err
			}
			minOutput, err := optionalUint(cmd, FlagMinOutput)
			if err != nil {
				return err
			}
			maxSpread, err := optionalDec(cmd, FlagMaxSpread)
			if err != nil {
				return err
			}
			to, _ := cmd.Flags().GetString(FlagTo)
			if to != "" {
				if to, err = cc.ResolveAddress(cmd.Context(), to); err != nil {
					return err
				}
			}

			var res hostclient.Result
			if offerInfo.IsNative() {
				offer := types.NewAsset(offerInfo, amount)
				msg := types.ExecuteMsg{Swap: &types.SwapMsg{OfferAsset: offer, MinOutputAmount: minOutput, MaxSpread: maxSpread, To: to}}
				res, err = cc.Execute(cmd.Context(), from, pair, msg, nativeFunds(offer))
			} else {
				hook := types.HookMsg{Swap: &types.SwapHook{MinOutputAmount: minOutput, MaxSpread: maxSpread, To: to}}
				res, err = sendToPair(cmd, cc, from, offerInfo.Token.ContractAddr, pair, amount, hook)
			}
			if err != nil {
				return err
			}
			return hostclient.PrintJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().String(FlagMinOutput, "", "Fail unless at least this amount is received")
	cmd.Flags().String(FlagMaxSpread, "", "Maximum spread as a fraction, e.g. 0.05")
	cmd.Flags().String(FlagTo, "", "Receiver of the output (defaults to the sender)")
	hostclient.AddTxFlags(cmd)
	return cmd
}

// CmdRemoveLiquidity returns a CLI command handler for withdrawing liquidity
func CmdRemoveLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-liquidity [pair] [lp-amount]",
		Short: "Burn liquidity tokens for a share of both reserves",
		Long: `Send liquidity tokens to the pair with a withdraw hook. The pair burns them and
returns the pro-rata share of both reserves.

Example:
  $ ysipd tx pair remove-liquidity ysip1...pair 50000000 --from alice`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := hostclient.GetContractClient(cmd)
			if err != nil {
				return err
			}
			from, err := hostclient.From(cmd)
			if err != nil {
				return err
			}
			pair := args[0]

			amount, err := ParseAmount("lp-amount", args[1])
			if err != nil {
				return err
			}

			var info types.PairInfoResponse
			if err := cc.Query(cmd.Context(), pair, types.NewPairQuery(), &info); err != nil {
				return err
			}
			if info.LiquidityTokenAddress == "" {
				return types.ErrLiquidityTokenNotReady
			}

			hook := types.HookMsg{WithdrawLiquidity: &types.WithdrawLiquidityHook{}}
			res, err := sendToPair(cmd, cc, from, info.LiquidityTokenAddress, pair, amount, hook)
			if err != nil {
				return err
			}
			return hostclient.PrintJSON(cmd.OutOrStdout(), res)
		},
	}

	hostclient.AddTxFlags(cmd)
	return cmd
}

func sendToPair(cmd *cobra.Command, cc hostclient.ContractClient, from, token, pair string, amount math.Uint, hook types.HookMsg) (hostclient.Result, error) {
	bz, err := hosttypes.JSON.Marshal(hook)
	if err != nil {
		return hostclient.Result{}, err
	}
	msg := tokentypes.ExecuteMsg{Send: &tokentypes.SendMsg{Contract: pair, Amount: amount, Msg: bz}}
	return cc.Execute(cmd.Context(), from, token, msg, sdk.Coins(nil))
}

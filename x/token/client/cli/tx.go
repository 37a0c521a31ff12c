package cli

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	hostclient "github.com/ysip-labs/ysip/x/host/client"
	"github.com/ysip-labs/ysip/x/token/types"
)

// GetTxCmd returns the transaction commands for token contracts
func GetTxCmd() *cobra.Command {
	tokenTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Token transaction subcommands",
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	tokenTxCmd.AddCommand(
		CmdCreate(),
		CmdTransfer(),
		CmdTransferFrom(),
		CmdSend(),
		CmdBurn(),
		CmdBurnFrom(),
		CmdMint(),
		CmdIncreaseAllowance(),
		CmdDecreaseAllowance(),
	)

	return tokenTxCmd
}

// CmdCreate returns a CLI command handler for instantiating a token
func CmdCreate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name] [symbol] [decimals]",
		Short: "Instantiate a token contract",
		Long: `Instantiate a token with optional initial balances and minter.

Example:
  $ ysipd tx token create "Mirror Token" MIR 6 --initial-balance alice=1000000 --minter alice --from alice`,
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

			decimals, err := cast.ToUint8E(args[2])
			if err != nil {
				return fmt.Errorf("invalid decimals %q: %w", args[2], err)
			}
			msg := types.InstantiateMsg{Name: args[0], Symbol: args[1], Decimals: decimals}
			if err := msg.Validate(); err != nil {
				return err
			}

			entries, _ := cmd.Flags().GetStringArray(FlagInitialBalance)
			for _, entry := range entries {
				holder, amountStr, ok := strings.Cut(entry, "=")
				if !ok {
					return fmt.Errorf("initial balance %q must be address=amount", entry)
				}
				amount, err := parseAmount(amountStr)
				if err != nil {
					return err
				}
				addr, err := cc.ResolveAddress(cmd.Context(), holder)
				if err != nil {
					return err
				}
				msg.InitialBalances = append(msg.InitialBalances, types.Coin{Address: addr, Amount: amount})
			}

			if minter, _ := cmd.Flags().GetString(FlagMinter); minter != "" {
				addr, err := cc.ResolveAddress(cmd.Context(), minter)
				if err != nil {
					return err
				}
				msg.Mint = &types.MinterResponse{Minter: addr}
				if capStr, _ := cmd.Flags().GetString(FlagCap); capStr != "" {
					limit, err := parseAmount(capStr)
					if err != nil {
						return err
					}
					msg.Mint.Cap = &limit
				}
			}

			codeID, _ := cmd.Flags().GetUint64(FlagCodeID)
			label, _ := cmd.Flags().GetString(FlagLabel)
			res, err := cc.Instantiate(cmd.Context(), from, codeID, msg, nil, label)
			if err != nil {
				return err
			}
			return hostclient.PrintJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringArray(FlagInitialBalance, nil, "Initial balance as address=amount (repeatable)")
	cmd.Flags().String(FlagMinter, "", "Account allowed to mint")
	cmd.Flags().String(FlagCap, "", "Maximum total supply reachable by minting")
	cmd.Flags().Uint64(FlagCodeID, DefaultCodeID, "Code id of the token contract")
	cmd.Flags().String(FlagLabel, "token", "Contract label")
	hostclient.AddTxFlags(cmd)
	return cmd
}

// CmdTransfer returns a CLI command handler for a token transfer
func CmdTransfer() *cobra.Command {
	return executeCmd("transfer [token] [recipient] [amount]", "Transfer tokens to an account", 3,
		func(r resolver, args []string) (types.ExecuteMsg, error) {
			recipient, err := r(args[1])
			if err != nil {
				return types.ExecuteMsg{}, err
			}
			amount, err := parseAmount(args[2])
			return types.ExecuteMsg{Transfer: &types.TransferMsg{Recipient: recipient, Amount: amount}}, err
		})
}

// CmdTransferFrom returns a CLI command handler for spending an allowance
func CmdTransferFrom() *cobra.Command {
	return executeCmd("transfer-from [token] [owner] [recipient] [amount]", "Transfer tokens out of an allowance", 4,
		func(r resolver, args []string) (types.ExecuteMsg, error) {
			owner, err := r(args[1])
			if err != nil {
				return types.ExecuteMsg{}, err
			}
			recipient, err := r(args[2])
			if err != nil {
				return types.ExecuteMsg{}, err
			}
			amount, err := parseAmount(args[3])
			return types.ExecuteMsg{TransferFrom: &types.TransferFromMsg{Owner: owner, Recipient: recipient, Amount: amount}}, err
		})
}

// CmdSend returns a CLI command handler for sending tokens to a contract with a hook
func CmdSend() *cobra.Command {
	return executeCmd("send [token] [contract] [amount] [hook-json]", "Send tokens to a contract and invoke its receive hook", 4,
		func(r resolver, args []string) (types.ExecuteMsg, error) {
			amount, err := parseAmount(args[2])
			if err != nil {
				return types.ExecuteMsg{}, err
			}
			return types.ExecuteMsg{Send: &types.SendMsg{Contract: args[1], Amount: amount, Msg: []byte(args[3])}}, nil
		})
}

// CmdBurn returns a CLI command handler for burning own tokens
func CmdBurn() *cobra.Command {
	return executeCmd("burn [token] [amount]", "Burn tokens from the sender's balance", 2,
		func(_ resolver, args []string) (types.ExecuteMsg, error) {
			amount, err := parseAmount(args[1])
			return types.ExecuteMsg{Burn: &types.BurnMsg{Amount: amount}}, err
		})
}

// CmdBurnFrom returns a CLI command handler for burning out of an allowance
func CmdBurnFrom() *cobra.Command {
	return executeCmd("burn-from [token] [owner] [amount]", "Burn tokens out of an allowance", 3,
		func(r resolver, args []string) (types.ExecuteMsg, error) {
			owner, err := r(args[1])
			if err != nil {
				return types.ExecuteMsg{}, err
			}
			amount, err := parseAmount(args[2])
			return types.ExecuteMsg{BurnFrom: &types.BurnFromMsg{Owner: owner, Amount: amount}}, err
		})
}

// CmdMint returns a CLI command handler for minting tokens
func CmdMint() *cobra.Command {
	return executeCmd("mint [token] [recipient] [amount]", "Mint tokens as the token minter", 3,
		func(r resolver, args []string) (types.ExecuteMsg, error) {
			recipient, err := r(args[1])
			if err != nil {
				return types.ExecuteMsg{}, err
			}
			amount, err := parseAmount(args[2])
			return types.ExecuteMsg{Mint: &types.MintMsg{Recipient: recipient, Amount: amount}}, err
		})
}

// CmdIncreaseAllowance returns a CLI command handler for raising an allowance
func CmdIncreaseAllowance() *cobra.Command {
	return executeCmd("increase-allowance [token] [spender] [amount]", "Increase the allowance of a spender", 3,
		func(r resolver, args []string) (types.ExecuteMsg, error) {
			msg, err := allowanceMsg(r, args)
			return types.ExecuteMsg{IncreaseAllowance: msg}, err
		})
}

// CmdDecreaseAllowance returns a CLI command handler for lowering an allowance
func CmdDecreaseAllowance() *cobra.Command {
	return executeCmd("decrease-allowance [token] [spender] [amount]", "Decrease the allowance of a spender", 3,
		func(r resolver, args []string) (types.ExecuteMsg, error) {
			msg, err := allowanceMsg(r, args)
			return types.ExecuteMsg{DecreaseAllowance: msg}, err
		})
}

type resolver func(nameOrAddr string) (string, error)

// executeCmd builds a command whose first argument is the token contract.
func executeCmd(use, short string, nargs int, build func(resolver, []string) (types.ExecuteMsg, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := hostclient.GetContractClient(cmd)
			if err != nil {
				return err
			}
			from, err := hostclient.From(cmd)
			if err != nil {
				return err
			}
			resolve := func(s string) (string, error) {
				return cc.ResolveAddress(cmd.Context(), s)
			}
			msg, err := build(resolve, args)
			if err != nil {
				return err
			}
			res, err := cc.Execute(cmd.Context(), from, args[0], msg, nil)
			if err != nil {
				return err
			}
			return hostclient.PrintJSON(cmd.OutOrStdout(), res)
		},
	}
	hostclient.AddTxFlags(cmd)
	return cmd
}

func allowanceMsg(r resolver, args []string) (*types.AllowanceMsg, error) {
	spender, err := r(args[1])
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(args[2])
	if err != nil {
		return nil, err
	}
	return &types.AllowanceMsg{Spender: spender, Amount: amount}, nil
}

func parseAmount(s string) (math.Uint, error) {
	amount, err := math.ParseUint(s)
	if err != nil {
		return math.Uint{}, types.ErrInvalidRequest.Wrapf("invalid amount %q", s)
	}
	return amount, nil
}

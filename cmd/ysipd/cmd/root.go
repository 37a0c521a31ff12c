// Package cmd implements the ysipd command tree.
package cmd

import (
	"context"
	"fmt"
	"io"

	"cosmossdk.io/log"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ysip-labs/ysip/app"
	hostclient "github.com/ysip-labs/ysip/x/host/client"
	paircli "github.com/ysip-labs/ysip/x/pair/client/cli"
	tokencli "github.com/ysip-labs/ysip/x/token/client/cli"
)

// Flags shared by the command tree
const (
	FlagHome           = flags.FlagHome
	FlagChainID        = flags.FlagChainID
	FlagKeyringBackend = flags.FlagKeyringBackend
	FlagLogLevel       = "log-level"
	FlagLogFormat      = "log-format"
	FlagAPIAddress     = "api-address"
)

type nodeContextKey struct{}

// nodeContext is the per-invocation state built before a command runs.
type nodeContext struct {
	home   string
	config Config
	logger log.Logger
	node   *localNode
}

// NewRootCmd creates the ysipd root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ysipd",
		Short: "ysip constant-product pair node",
		Long: `ysipd runs a local ysip application: it initializes a home directory,
manages keys, funds genesis accounts, executes pair and token contracts, and
serves a read-only REST API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupNodeContext(cmd)
		},
	}

	rootCmd.PersistentFlags().String(FlagHome, app.DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(FlagChainID, "", "chain id (overrides app.toml)")
	rootCmd.PersistentFlags().String(FlagKeyringBackend, flags.DefaultKeyringBackend, "Select keyring backend (os|file|test|memory)")
	rootCmd.PersistentFlags().String(FlagLogLevel, "", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String(FlagLogFormat, "", "log format (plain|json)")

	initRootCmd(rootCmd)
	return rootCmd
}

func initRootCmd(rootCmd *cobra.Command) {
	rootCmd.AddCommand(
		InitCmd(),
		KeysCmd(),
		GenesisCmd(),
		TxCmd(),
		QueryCmd(),
		ServeCmd(),
	)
}

// TxCmd returns the contract transaction commands.
func TxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "tx",
		Short:                      "Transactions subcommands",
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		paircli.GetTxCmd(),
		tokencli.GetTxCmd(),
		BankSendCmd(),
	)
	return cmd
}

// QueryCmd returns the contract query commands.
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Querying subcommands",
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		paircli.GetQueryCmd(),
		tokencli.GetQueryCmd(),
		BankBalancesCmd(),
		ContractInfoCmd(),
	)
	return cmd
}

func setupNodeContext(cmd *cobra.Command) error {
	app.SetConfig()

	home, _ := cmd.Flags().GetString(FlagHome)
	cfg, err := LoadConfig(home, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	backend, _ := cmd.Flags().GetString(FlagKeyringBackend)

	nc := &nodeContext{
		home:   home,
		config: cfg,
		logger: logger,
		node: &localNode{
			home:           home,
			config:         cfg,
			logger:         logger,
			keyringBackend: backend,
			input:          cmd.InOrStdin(),
		},
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, nodeContextKey{}, nc))
	hostclient.SetContractClient(cmd, nc.node)
	return nil
}

func getNodeContext(cmd *cobra.Command) (*nodeContext, error) {
	if ctx := cmd.Context(); ctx != nil {
		if nc, ok := ctx.Value(nodeContextKey{}).(*nodeContext); ok {
			return nc, nil
		}
	}
	return nil, fmt.Errorf("command %s ran without node context", cmd.Name())
}

func newLogger(cfg Config, w io.Writer) (log.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	opts := []log.Option{log.LevelOption(level)}
	if cfg.LogFormat == "json" {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(w, opts...), nil
}

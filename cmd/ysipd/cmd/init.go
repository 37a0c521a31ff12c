package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ysip-labs/ysip/app"
)

const flagOverwrite = "overwrite"

// InitCmd returns a command that writes app.toml and an empty genesis.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the application configuration and genesis files",
		Long: `Write <home>/config/app.toml with default settings and <home>/config/genesis.json
with default auth and bank state. Fund accounts with "genesis add-account"
before running the first transaction.

Example:
  $ ysipd init --chain-id ysip-local-1 --home ~/.ysip`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}

			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)
			if !overwrite && fileExists(GenesisPath(nc.home)) {
				return fmt.Errorf("genesis.json file already exists: %v", GenesisPath(nc.home))
			}

			cfg := nc.config
			if err := WriteConfig(nc.home, cfg); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			doc := GenesisDoc{
				ChainID:     cfg.ChainID,
				GenesisTime: time.Now().UTC().Truncate(time.Second),
				AppState:    app.NewDefaultGenesisState(app.MakeEncodingConfig().Codec),
			}
			if err := WriteGenesis(nc.home, doc); err != nil {
				return fmt.Errorf("write genesis: %w", err)
			}

			nc.logger.Info("initialized home", "home", nc.home, "chain_id", cfg.ChainID)
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s for chain %s\n", nc.home, cfg.ChainID)
			return nil
		},
	}

	cmd.Flags().Bool(flagOverwrite, false, "overwrite the genesis.json file")
	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

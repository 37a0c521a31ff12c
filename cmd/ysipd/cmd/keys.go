package cmd

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/cosmos/cosmos-sdk/client/input"
	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	"github.com/cosmos/go-bip39"
	"github.com/spf13/cobra"

	"github.com/ysip-labs/ysip/app"
)

const (
	flagRecover        = "recover"
	flagMnemonicLength = "mnemonic-length"
	flagNoBackup       = "no-backup"
	flagAccount        = "account"
	flagIndex          = "index"
)

// KeysCmd returns the key management commands.
func KeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage your application's keys with BIP39 mnemonic support",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		AddKeyCommand(),
		ListKeysCommand(),
		ShowKeysCommand(),
		DeleteKeyCommand(),
	)

	return cmd
}

// AddKeyCommand creates a new key in the keyring with mnemonic generation
func AddKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new key with BIP39 mnemonic generation",
		Long: `Add a new key to the keyring. A fresh 12 or 24 word mnemonic is generated
from crypto/rand entropy unless --recover is set, in which case the mnemonic
is read from standard input.

Examples:
  ysipd keys add alice                           # Generate 24-word mnemonic (default)
  ysipd keys add alice --mnemonic-length 12      # Generate 12-word mnemonic
  ysipd keys add alice --recover                 # Read an existing mnemonic`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}
			kr, err := nc.node.keyring()
			if err != nil {
				return err
			}

			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("argument 'name' cannot be empty")
			}

			var mnemonic string
			if recoverExisting, _ := cmd.Flags().GetBool(flagRecover); recoverExisting {
				mnemonic, err = readMnemonic(cmd)
			} else {
				mnemonicLength, _ := cmd.Flags().GetInt(flagMnemonicLength)
				mnemonic, err = newMnemonic(mnemonicLength)
			}
			if err != nil {
				return err
			}

			account, _ := cmd.Flags().GetUint32(flagAccount)
			index, _ := cmd.Flags().GetUint32(flagIndex)
			hdPath := hd.CreateHDPath(app.CoinType, account, index)
			record, err := kr.NewAccount(name, mnemonic, keyring.DefaultBIP39Passphrase, hdPath.String(), hd.Secp256k1)
			if err != nil {
				return fmt.Errorf("failed to create key: %w", err)
			}
			addr, err := record.GetAddress()
			if err != nil {
				return fmt.Errorf("failed to get address: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "- name: %s\n", name)
			fmt.Fprintf(out, "  address: %s\n", addr.String())

			noBackup, _ := cmd.Flags().GetBool(flagNoBackup)
			recovered, _ := cmd.Flags().GetBool(flagRecover)
			if !noBackup && !recovered {
				fmt.Fprintf(out, "\n**IMPORTANT** Write this mnemonic phrase in a safe place.\n")
				fmt.Fprintf(out, "It is the only way to recover your account.\n\n")
				fmt.Fprintf(out, "%s\n", mnemonic)
			}
			return nil
		},
	}

	cmd.Flags().Bool(flagRecover, false, "Recover key from an existing mnemonic instead of generating a new one")
	cmd.Flags().Int(flagMnemonicLength, 24, "Mnemonic length (12 or 24 words)")
	cmd.Flags().Bool(flagNoBackup, false, "Do not print the generated mnemonic")
	cmd.Flags().Uint32(flagAccount, 0, "Account number for HD derivation")
	cmd.Flags().Uint32(flagIndex, 0, "Address index number for HD derivation")
	return cmd
}

// newMnemonic draws entropy for a 12 (128 bit) or 24 (256 bit) word mnemonic.
func newMnemonic(words int) (string, error) {
	var entropySize int
	switch words {
	case 12:
		entropySize = 128 / 8
	case 24:
		entropySize = 256 / 8
	default:
		return "", fmt.Errorf("mnemonic length must be 12 or 24 words")
	}

	entropy := make([]byte, entropySize)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("failed to generate secure entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return "", fmt.Errorf("generated mnemonic failed validation")
	}
	return mnemonic, nil
}

// readMnemonic reads and validates a mnemonic from standard input.
func readMnemonic(cmd *cobra.Command) (string, error) {
	buf := bufio.NewReader(cmd.InOrStdin())
	mnemonic, err := input.GetString("Enter your bip39 mnemonic", buf)
	if err != nil {
		return "", fmt.Errorf("failed to read mnemonic: %w", err)
	}

	words := strings.Fields(mnemonic)
	mnemonic = strings.Join(words, " ")
	if len(words) != 12 && len(words) != 24 {
		return "", fmt.Errorf("invalid mnemonic length: expected 12 or 24 words, got %d", len(words))
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return "", fmt.Errorf("invalid mnemonic: checksum failed")
	}
	return mnemonic, nil
}

// ListKeysCommand lists all keys in the keyring
func ListKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}
			kr, err := nc.node.keyring()
			if err != nil {
				return err
			}
			records, err := kr.List()
			if err != nil {
				return err
			}
			for _, record := range records {
				addr, err := record.GetAddress()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", record.Name, addr.String())
			}
			return nil
		},
	}
}

// ShowKeysCommand prints the address of a key
func ShowKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show the address of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}
			kr, err := nc.node.keyring()
			if err != nil {
				return err
			}
			record, err := kr.Key(args[0])
			if err != nil {
				return err
			}
			addr, err := record.GetAddress()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr.String())
			return nil
		},
	}
}

// DeleteKeyCommand removes a key from the keyring
func DeleteKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}
			kr, err := nc.node.keyring()
			if err != nil {
				return err
			}
			if err := kr.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Key %s deleted\n", args[0])
			return nil
		},
	}
}

// Package client connects contract CLI commands to a node.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
)

// FlagFrom names the signing key or address of a transaction command.
const FlagFrom = "from"

// Result is the outcome of a committed contract transaction.
type Result struct {
	Contract string       `json:"contract,omitempty"`
	Height   int64        `json:"height"`
	Events   []EventEntry `json:"events"`
}

// EventEntry is a flattened event for printing.
type EventEntry struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

// NewResult flattens events into a printable result.
func NewResult(contract string, height int64, events sdk.Events) Result {
	res := Result{Contract: contract, Height: height, Events: make([]EventEntry, 0, len(events))}
	for _, ev := range events {
		entry := EventEntry{Type: ev.Type, Attributes: make(map[string]string, len(ev.Attributes))}
		for _, attr := range ev.Attributes {
			entry.Attributes[attr.Key] = attr.Value
		}
		res.Events = append(res.Events, entry)
	}
	return res
}

// ContractClient runs contract transactions and queries.
type ContractClient interface {
	Instantiate(ctx context.Context, from string, codeID uint64, msg any, funds sdk.Coins, label string) (Result, error)
	Execute(ctx context.Context, from, contract string, msg any, funds sdk.Coins) (Result, error)
	Query(ctx context.Context, contract string, req, resp any) error
	Contracts(ctx context.Context, codeID uint64) ([]string, error)
	ResolveAddress(ctx context.Context, nameOrAddr string) (string, error)
}

type contextKey struct{}

// SetContractClient attaches c to the command context. Subcommands inherit it.
func SetContractClient(cmd *cobra.Command, c ContractClient) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, contextKey{}, c))
}

// GetContractClient returns the client attached to the command context.
func GetContractClient(cmd *cobra.Command) (ContractClient, error) {
	if ctx := cmd.Context(); ctx != nil {
		if c, ok := ctx.Value(contextKey{}).(ContractClient); ok {
			return c, nil
		}
	}
	return nil, errors.New("no contract client configured")
}

// From returns the --from flag of cmd.
func From(cmd *cobra.Command) (string, error) {
	from, _ := cmd.Flags().GetString(FlagFrom)
	if from == "" {
		return "", fmt.Errorf("--%s is required", FlagFrom)
	}
	return from, nil
}

// AddTxFlags registers the flags shared by transaction commands.
func AddTxFlags(cmd *cobra.Command) {
	cmd.Flags().String(FlagFrom, "", "Name or address of the sending account")
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	bz, err := hosttypes.JSON.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bz))
	return err
}

package api

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	pairtypes "github.com/ysip-labs/ysip/x/pair/types"
)

// Validation constants
const (
	MaxAmountLength  = 40
	MaxAddressLength = 100
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

func (v *ValidationErrors) Error() string {
	if !v.HasErrors() {
		return ""
	}
	var sb strings.Builder
	for i, err := range v.Errors {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return sb.String()
}

// ValidateAddress validates a bech32 account or contract address
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("address is required")
	}
	if len(address) > MaxAddressLength {
		return fmt.Errorf("address too long")
	}
	if _, err := sdk.AccAddressFromBech32(address); err != nil {
		return fmt.Errorf("invalid address format")
	}
	return nil
}

// ValidateAmount parses a positive integer amount
func ValidateAmount(amount string) (math.Uint, error) {
	if amount == "" {
		return math.Uint{}, fmt.Errorf("amount is required")
	}
	if len(amount) > MaxAmountLength {
		return math.Uint{}, fmt.Errorf("amount too long")
	}
	v, err := math.ParseUint(amount)
	if err != nil {
		return math.Uint{}, fmt.Errorf("amount must be a non-negative integer")
	}
	if v.IsZero() {
		return math.Uint{}, fmt.Errorf("amount must be positive")
	}
	return v, nil
}

// ValidateAssetInfo reads an offer asset: a token address or a native denom
func ValidateAssetInfo(asset string) (pairtypes.AssetInfo, error) {
	if asset == "" {
		return pairtypes.AssetInfo{}, fmt.Errorf("asset is required")
	}
	if ValidateAddress(asset) == nil {
		return pairtypes.NewTokenAssetInfo(asset), nil
	}
	if err := sdk.ValidateDenom(asset); err != nil {
		return pairtypes.AssetInfo{}, fmt.Errorf("invalid denom format")
	}
	return pairtypes.NewNativeAssetInfo(asset), nil
}

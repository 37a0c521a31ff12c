package types

import (
	"cosmossdk.io/errors"
)

// x/pair module sentinel errors
var (
	ErrOverlappingAssets       = errors.Register(ModuleName, 2, "overlapping assets in asset infos")
	ErrInvalidAsset            = errors.Register(ModuleName, 3, "invalid asset")
	ErrNativeTokenMismatch     = errors.Register(ModuleName, 4, "native token balance mismatch between the argument and the transferred")
	ErrAssetMismatch           = errors.Register(ModuleName, 5, "asset does not belong to the pair")
	ErrNoLiquidity             = errors.Register(ModuleName, 6, "pool has no liquidity")
	ErrSlippageExceeded        = errors.Register(ModuleName, 7, "slippage exceeded")
	ErrInvalidZeroAmount       = errors.Register(ModuleName, 8, "invalid zero amount")
	ErrInsufficientSecondAsset = errors.Register(ModuleName, 9, "insufficient second asset")
	ErrInsufficientBalance     = errors.Register(ModuleName, 10, "insufficient liquidity token balance")
	ErrArithmetic              = errors.Register(ModuleName, 11, "arithmetic error")
	ErrUnauthorized            = errors.Register(ModuleName, 12, "unauthorized")
	ErrGeneric                 = errors.Register(ModuleName, 13, "generic error")
	ErrInvalidFees             = errors.Register(ModuleName, 14, "invalid fee configuration")
	ErrLiquidityTokenNotReady  = errors.Register(ModuleName, 15, "liquidity token not provisioned")
	ErrUnknownReplyID          = errors.Register(ModuleName, 16, "unknown reply id")
	ErrInvalidRequest          = errors.Register(ModuleName, 17, "invalid request")
)

package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/pair/types"
	tokentypes "github.com/ysip-labs/ysip/x/token/types"
)

// transferMsg pays amount of info from the pair to recipient.
func transferMsg(info types.AssetInfo, recipient string, amount math.Uint) (hosttypes.CosmosMsg, error) {
	switch info.Kind() {
	case types.AssetKindNative:
		coin := sdk.NewCoin(info.NativeToken.Denom, math.NewIntFromBigInt(amount.BigInt()))
		return hosttypes.NewBankSendMsg(recipient, sdk.NewCoins(coin)), nil
	case types.AssetKindToken:
		return tokenExecuteMsg(info.Token.ContractAddr, tokentypes.ExecuteMsg{
			Transfer: &tokentypes.TransferMsg{Recipient: recipient, Amount: amount},
		})
	default:
		return hosttypes.CosmosMsg{}, types.ErrInvalidAsset
	}
}

// transferFromMsg pulls amount of an issued asset from owner to the pair.
func transferFromMsg(token, owner, pair string, amount math.Uint) (hosttypes.CosmosMsg, error) {
	return tokenExecuteMsg(token, tokentypes.ExecuteMsg{
		TransferFrom: &tokentypes.TransferFromMsg{Owner: owner, Recipient: pair, Amount: amount},
	})
}

func tokenExecuteMsg(token string, msg tokentypes.ExecuteMsg) (hosttypes.CosmosMsg, error) {
	cosmosMsg, err := hosttypes.NewWasmExecuteMsg(token, msg, nil)
	if err != nil {
		return hosttypes.CosmosMsg{}, types.ErrGeneric.Wrap(err.Error())
	}
	return cosmosMsg, nil
}

// appendTransfer adds a payout unless the amount is zero.
func appendTransfer(res *hosttypes.Response, info types.AssetInfo, recipient string, amount math.Uint) error {
	if amount.IsZero() {
		return nil
	}
	msg, err := transferMsg(info, recipient, amount)
	if err != nil {
		return err
	}
	res.AddMessage(msg)
	return nil
}

// queryTotalSupply returns the liquidity token supply.
func queryTotalSupply(ctx sdk.Context, deps hosttypes.Deps, lpToken string) (math.Uint, error) {
	var resp tokentypes.TokenInfoResponse
	if err := hosttypes.QuerySmart(ctx, deps.Querier, lpToken, tokentypes.NewTokenInfoQuery(), &resp); err != nil {
		return math.Uint{}, types.ErrGeneric.Wrapf("query liquidity token supply: %v", err)
	}
	return hosttypes.UintOrZero(resp.TotalSupply), nil
}

// queryTokenBalance returns holder's balance of an issued token.
func queryTokenBalance(ctx sdk.Context, deps hosttypes.Deps, token, holder string) (math.Uint, error) {
	var resp tokentypes.BalanceResponse
	if err := hosttypes.QuerySmart(ctx, deps.Querier, token, tokentypes.NewBalanceQuery(holder), &resp); err != nil {
		return math.Uint{}, types.ErrGeneric.Wrapf("query balance of %s: %v", holder, err)
	}
	return hosttypes.UintOrZero(resp.Balance), nil
}

package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/suite"

	"github.com/ysip-labs/ysip/app"
	keepertest "github.com/ysip-labs/ysip/testutil/keeper"
	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/token/types"
)

type KeeperTestSuite struct {
	suite.Suite

	app *app.App
	ctx sdk.Context

	minter sdk.AccAddress
	alice  sdk.AccAddress
	bob    sdk.AccAddress
	carol  sdk.AccAddress

	token string
}

func TestKeeperTestSuite(t *testing.T) {
	suite.Run(t, new(KeeperTestSuite))
}

func (s *KeeperTestSuite) SetupTest() {
	s.app, s.ctx = keepertest.SetupTestApp(s.T())
	s.minter = keepertest.TestAddr("minter")
	s.alice = keepertest.TestAddr("alice")
	s.bob = keepertest.TestAddr("bob")
	s.carol = keepertest.TestAddr("carol")

	s.token = keepertest.CreateToken(s.T(), s.app, s.ctx, s.minter, "MIR", map[string]uint64{
		s.alice.String(): 1_000,
		s.bob.String():   500,
	})
}

func (s *KeeperTestSuite) exec(sender sdk.AccAddress, msg types.ExecuteMsg) error {
	_, err := s.app.ExecuteContract(s.ctx, s.token, sender, msg, nil)
	return err
}

func (s *KeeperTestSuite) balance(addr sdk.AccAddress) string {
	return keepertest.TokenBalance(s.T(), s.app, s.ctx, s.token, addr.String()).String()
}

func (s *KeeperTestSuite) allowance(owner, spender sdk.AccAddress) string {
	var resp types.AllowanceResponse
	s.Require().NoError(s.app.QueryContract(s.ctx, s.token, types.QueryMsg{
		Allowance: &types.AllowanceQuery{Owner: owner.String(), Spender: spender.String()},
	}, &resp))
	return resp.Allowance.String()
}

// requireSupplyMatches checks total supply against the sum of known balances.
func (s *KeeperTestSuite) requireSupplyMatches(holders ...sdk.AccAddress) {
	sum := math.ZeroUint()
	for _, h := range holders {
		sum = sum.Add(keepertest.TokenBalance(s.T(), s.app, s.ctx, s.token, h.String()))
	}
	s.Require().Equal(sum.String(), keepertest.TokenSupply(s.T(), s.app, s.ctx, s.token).String())
}

func (s *KeeperTestSuite) TestInstantiate() {
	var info types.TokenInfoResponse
	s.Require().NoError(s.app.QueryContract(s.ctx, s.token, types.NewTokenInfoQuery(), &info))
	s.Require().Equal("MIR token", info.Name)
	s.Require().Equal("MIR", info.Symbol)
	s.Require().Equal(uint8(6), info.Decimals)
	s.Require().Equal("1500", info.TotalSupply.String())

	var minter types.MinterResponse
	s.Require().NoError(s.app.QueryContract(s.ctx, s.token, types.QueryMsg{Minter: &types.MinterQuery{}}, &minter))
	s.Require().Equal(s.minter.String(), minter.Minter)
	s.Require().Nil(minter.Cap)
}

func (s *KeeperTestSuite) TestInstantiateValidation() {
	cap100 := math.NewUint(100)
	tests := []struct {
		name   string
		msg    types.InstantiateMsg
		expErr error
	}{
		{"short name", types.InstantiateMsg{Name: "ab", Symbol: "ABC"}, types.ErrInvalidName},
		{"symbol with digits", types.InstantiateMsg{Name: "token", Symbol: "AB1"}, types.ErrInvalidSymbol},
		{"too many decimals", types.InstantiateMsg{Name: "token", Symbol: "ABC", Decimals: 19}, types.ErrInvalidDecimals},
		{
			"duplicate balance",
			types.InstantiateMsg{Name: "token", Symbol: "ABC", InitialBalances: []types.Coin{
				{Address: s.alice.String(), Amount: math.NewUint(1)},
				{Address: s.alice.String(), Amount: math.NewUint(2)},
			}},
			types.ErrDuplicateBalance,
		},
		{
			"initial supply over cap",
			types.InstantiateMsg{
				Name: "token", Symbol: "ABC",
				InitialBalances: []types.Coin{{Address: s.alice.String(), Amount: math.NewUint(101)}},
				Mint:            &types.MinterResponse{Minter: s.minter.String(), Cap: &cap100},
			},
			types.ErrCannotExceedCap,
		},
		{
			"invalid holder",
			types.InstantiateMsg{Name: "token", Symbol: "ABC", InitialBalances: []types.Coin{{Address: "nope", Amount: math.NewUint(1)}}},
			types.ErrInvalidAddress,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			_, _, err := s.app.InstantiateContract(s.ctx, app.TokenCodeID, s.minter, tc.msg, nil, "token")
			s.Require().ErrorIs(err, tc.expErr)
		})
	}
}

func (s *KeeperTestSuite) TestTransfer() {
	s.Require().NoError(s.exec(s.alice, types.ExecuteMsg{Transfer: &types.TransferMsg{Recipient: s.carol.String(), Amount: math.NewUint(400)}}))
	s.Require().Equal("600", s.balance(s.alice))
	s.Require().Equal("400", s.balance(s.carol))

	err := s.exec(s.alice, types.ExecuteMsg{Transfer: &types.TransferMsg{Recipient: s.carol.String(), Amount: math.NewUint(601)}})
	s.Require().ErrorIs(err, types.ErrInsufficientFunds)

	err = s.exec(s.alice, types.ExecuteMsg{Transfer: &types.TransferMsg{Recipient: s.carol.String(), Amount: math.ZeroUint()}})
	s.Require().ErrorIs(err, types.ErrInvalidZeroAmount)

	err = s.exec(s.alice, types.ExecuteMsg{Transfer: &types.TransferMsg{Recipient: "invalid", Amount: math.NewUint(1)}})
	s.Require().ErrorIs(err, types.ErrInvalidAddress)

	s.requireSupplyMatches(s.alice, s.bob, s.carol)
}

func (s *KeeperTestSuite) TestRejectsNativeFunds() {
	s.Require().NoError(s.app.FundAccount(s.ctx, s.alice, sdk.NewCoins(sdk.NewInt64Coin("uusd", 10))))
	_, err := s.app.ExecuteContract(s.ctx, s.token, s.alice, types.ExecuteMsg{
		Transfer: &types.TransferMsg{Recipient: s.carol.String(), Amount: math.NewUint(1)},
	}, sdk.NewCoins(sdk.NewInt64Coin("uusd", 10)))
	s.Require().ErrorIs(err, types.ErrInvalidRequest)
	s.Require().Equal("10", keepertest.NativeBalance(s.app, s.ctx, s.alice.String(), "uusd").String())
}

func (s *KeeperTestSuite) TestAllowanceAndTransferFrom() {
	err := s.exec(s.alice, types.ExecuteMsg{IncreaseAllowance: &types.AllowanceMsg{Spender: s.alice.String(), Amount: math.NewUint(1)}})
	s.Require().ErrorIs(err, types.ErrCannotSetOwnAccount)

	s.Require().NoError(s.exec(s.alice, types.ExecuteMsg{IncreaseAllowance: &types.AllowanceMsg{Spender: s.bob.String(), Amount: math.NewUint(300)}}))
	s.Require().NoError(s.exec(s.alice, types.ExecuteMsg{DecreaseAllowance: &types.AllowanceMsg{Spender: s.bob.String(), Amount: math.NewUint(50)}}))
	s.Require().Equal("250", s.allowance(s.alice, s.bob))

	transferFrom := func(amount uint64) error {
		return s.exec(s.bob, types.ExecuteMsg{TransferFrom: &types.TransferFromMsg{
			Owner: s.alice.String(), Recipient: s.carol.String(), Amount: math.NewUint(amount),
		}})
	}
	s.Require().ErrorIs(transferFrom(251), types.ErrInsufficientAllowance)
	s.Require().NoError(transferFrom(200))
	s.Require().Equal("50", s.allowance(s.alice, s.bob))
	s.Require().Equal("800", s.balance(s.alice))
	s.Require().Equal("200", s.balance(s.carol))

	// decreasing below zero clears the allowance
	s.Require().NoError(s.exec(s.alice, types.ExecuteMsg{DecreaseAllowance: &types.AllowanceMsg{Spender: s.bob.String(), Amount: math.NewUint(1_000)}}))
	s.Require().Equal("0", s.allowance(s.alice, s.bob))
	s.Require().ErrorIs(transferFrom(1), types.ErrInsufficientAllowance)
}

func (s *KeeperTestSuite) TestTransferFromInsufficientBalance() {
	s.Require().NoError(s.exec(s.bob, types.ExecuteMsg{IncreaseAllowance: &types.AllowanceMsg{Spender: s.carol.String(), Amount: math.NewUint(10_000)}}))
	err := s.exec(s.carol, types.ExecuteMsg{TransferFrom: &types.TransferFromMsg{
		Owner: s.bob.String(), Recipient: s.carol.String(), Amount: math.NewUint(501),
	}})
	s.Require().ErrorIs(err, types.ErrInsufficientFunds)
	s.Require().Equal("10000", s.allowance(s.bob, s.carol))
}

func (s *KeeperTestSuite) TestBurn() {
	s.Require().NoError(s.exec(s.alice, types.ExecuteMsg{Burn: &types.BurnMsg{Amount: math.NewUint(300)}}))
	s.Require().Equal("700", s.balance(s.alice))
	s.Require().Equal("1200", keepertest.TokenSupply(s.T(), s.app, s.ctx, s.token).String())

	err := s.exec(s.alice, types.ExecuteMsg{Burn: &types.BurnMsg{Amount: math.NewUint(701)}})
	s.Require().ErrorIs(err, types.ErrInsufficientFunds)
	s.requireSupplyMatches(s.alice, s.bob)
}

func (s *KeeperTestSuite) TestBurnFrom() {
	err := s.exec(s.carol, types.ExecuteMsg{BurnFrom: &types.BurnFromMsg{Owner: s.bob.String(), Amount: math.NewUint(100)}})
	s.Require().ErrorIs(err, types.ErrInsufficientAllowance)

	s.Require().NoError(s.exec(s.bob, types.ExecuteMsg{IncreaseAllowance: &types.AllowanceMsg{Spender: s.carol.String(), Amount: math.NewUint(100)}}))
	s.Require().NoError(s.exec(s.carol, types.ExecuteMsg{BurnFrom: &types.BurnFromMsg{Owner: s.bob.String(), Amount: math.NewUint(100)}}))
	s.Require().Equal("400", s.balance(s.bob))
	s.Require().Equal("0", s.allowance(s.bob, s.carol))
	s.requireSupplyMatches(s.alice, s.bob)
}

func (s *KeeperTestSuite) TestMint() {
	mint := func(sender sdk.AccAddress, amount uint64) error {
		return s.exec(sender, types.ExecuteMsg{Mint: &types.MintMsg{Recipient: s.carol.String(), Amount: math.NewUint(amount)}})
	}

	s.Require().ErrorIs(mint(s.alice, 10), types.ErrUnauthorized)
	s.Require().NoError(mint(s.minter, 10))
	s.Require().Equal("10", s.balance(s.carol))
	s.requireSupplyMatches(s.alice, s.bob, s.carol)
}

func (s *KeeperTestSuite) TestMintCap() {
	limit := math.NewUint(1_000)
	capped, _, err := s.app.InstantiateContract(s.ctx, app.TokenCodeID, s.minter, types.InstantiateMsg{
		Name:            "capped",
		Symbol:          "CAP",
		Decimals:        6,
		InitialBalances: []types.Coin{{Address: s.alice.String(), Amount: math.NewUint(900)}},
		Mint:            &types.MinterResponse{Minter: s.minter.String(), Cap: &limit},
	}, nil, "capped")
	s.Require().NoError(err)

	mint := func(amount uint64) error {
		_, err := s.app.ExecuteContract(s.ctx, capped, s.minter, types.ExecuteMsg{
			Mint: &types.MintMsg{Recipient: s.bob.String(), Amount: math.NewUint(amount)},
		}, nil)
		return err
	}
	s.Require().ErrorIs(mint(101), types.ErrCannotExceedCap)
	s.Require().NoError(mint(100))
	s.Require().Equal("1000", keepertest.TokenSupply(s.T(), s.app, s.ctx, capped).String())
}

func (s *KeeperTestSuite) TestSendToNonContractRollsBack() {
	err := s.exec(s.alice, types.ExecuteMsg{Send: &types.SendMsg{
		Contract: s.carol.String(),
		Amount:   math.NewUint(100),
		Msg:      []byte(`{}`),
	}})
	s.Require().ErrorIs(err, hosttypes.ErrContractNotFound)
	s.Require().Equal("1000", s.balance(s.alice))
	s.Require().Equal("0", s.balance(s.carol))
}

func (s *KeeperTestSuite) TestUnknownVariant() {
	_, err := s.app.ExecuteContract(s.ctx, s.token, s.alice, map[string]any{"freeze": map[string]any{}}, nil)
	s.Require().ErrorIs(err, types.ErrInvalidRequest)
}

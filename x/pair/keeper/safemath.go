package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/ysip-labs/ysip/x/pair/types"
)

// Checked arithmetic for pool amounts. Results are bounded to 128 bits;
// intermediate products of MulDiv are not.

var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

func toUint(i *big.Int, op string) (math.Uint, error) {
	if i.Sign() < 0 {
		return math.Uint{}, types.ErrArithmetic.Wrapf("underflow in %s", op)
	}
	if i.Cmp(maxUint128) > 0 {
		return math.Uint{}, types.ErrArithmetic.Wrapf("overflow in %s: %s exceeds 128 bits", op, i)
	}
	return math.NewUintFromBigInt(i), nil
}

// SafeAdd returns a + b.
func SafeAdd(a, b math.Uint) (math.Uint, error) {
	return toUint(new(big.Int).Add(a.BigInt(), b.BigInt()), "addition")
}

// SafeSub returns a - b.
func SafeSub(a, b math.Uint) (math.Uint, error) {
	if a.LT(b) {
		return math.Uint{}, types.ErrArithmetic.Wrapf("underflow: cannot subtract %s from %s", b, a)
	}
	return toUint(new(big.Int).Sub(a.BigInt(), b.BigInt()), "subtraction")
}

// SafeMul returns a * b.
func SafeMul(a, b math.Uint) (math.Uint, error) {
	return toUint(new(big.Int).Mul(a.BigInt(), b.BigInt()), "multiplication")
}

// SafeMulDiv returns floor(a * b / c).
func SafeMulDiv(a, b, c math.Uint) (math.Uint, error) {
	if c.IsZero() {
		return math.Uint{}, types.ErrArithmetic.Wrap("division by zero")
	}
	product := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return toUint(product.Quo(product, c.BigInt()), "multiply-divide")
}

// SafeMulParts returns floor(a * parts / FeeScaleFactor).
func SafeMulParts(a math.Uint, parts uint64) (math.Uint, error) {
	return SafeMulDiv(a, math.NewUint(parts), math.NewUint(types.FeeScaleFactor))
}

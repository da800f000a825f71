// Package bignum provides arbitrary precision helpers on top of math/big.
package bignum

import (
	"math/big"

	"github.com/ALTree/bigfloat"
)

// NewFloat creates a new big.Float with prec bits of mantissa.
// Valid types for x are: int, int64, uint64, float64, *big.Int or *big.Float.
func NewFloat(x interface{}, prec uint) (y *big.Float) {

	y = new(big.Float)
	y.SetPrec(prec)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case int:
		y.SetInt64(int64(x))
	case int64:
		y.SetInt64(x)
	case uint64:
		y.SetUint64(x)
	case float64:
		y.SetFloat64(x)
	case *big.Int:
		y.SetInt(x)
	case *big.Float:
		y.Set(x)
	default:
		panic("bignum.NewFloat: invalid type for x")
	}

	return
}

// Log returns ln(x).
func Log(x *big.Float) (ln *big.Float) {
	return bigfloat.Log(x)
}

// Exp returns exp(x).
func Exp(x *big.Float) (exp *big.Float) {
	return bigfloat.Exp(x)
}

// Pow returns x^y.
func Pow(x, y *big.Float) (pow *big.Float) {
	return bigfloat.Pow(x, y)
}

// Log2 returns log2(x) = ln(x)/ln(2).
func Log2(x *big.Float) (log2 *big.Float) {
	two := NewFloat(2, x.Prec())
	return new(big.Float).Quo(Log(x), Log(two))
}

package ring

import (
	"math/big"
)

// DivRound sets i to round(a/b), rounding half away from zero.
func DivRound(a, b, i *big.Int) {
	_a := new(big.Int).Set(a)
	i.Set(a)
	i.Quo(_a, b)
	r := new(big.Int).Rem(_a, b)
	r2 := new(big.Int).Mul(r, bigIntTwo)
	r2.Abs(r2)
	bAbs := new(big.Int).Abs(b)
	if r2.Cmp(bAbs) != -1 {
		if _a.Sign() == b.Sign() {
			i.Add(i, bigIntOne)
		} else {
			i.Sub(i, bigIntOne)
		}
	}
}

var (
	bigIntOne = big.NewInt(1)
	bigIntTwo = big.NewInt(2)
)

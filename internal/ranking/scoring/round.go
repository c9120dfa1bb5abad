package scoring

import (
	"math/big"
	"strconv"
)

// RoundHalfUp rounds v to the given number of decimal places, with ties
// going away from zero. Rounding is applied to the shortest decimal form of
// v, so 1.005 rounds to 1.01 rather than to the binary neighbour's 1.00.
func RoundHalfUp(v float64, places int) float64 {
	out, _ := strconv.ParseFloat(FormatHalfUp(v, places), 64)
	return out
}

// FormatHalfUp formats v with exactly places decimals using half-up rounding.
func FormatHalfUp(v float64, places int) string {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'f', -1, 64))
	if !ok {
		return strconv.FormatFloat(v, 'f', places, 64)
	}

	neg := r.Sign() < 0
	r.Abs(r)

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))
	r.Add(r, big.NewRat(1, 2))
	n := new(big.Int).Quo(r.Num(), r.Denom())

	if neg && n.Sign() != 0 {
		n.Neg(n)
	}
	return new(big.Rat).SetFrac(n, scale).FloatString(places)
}

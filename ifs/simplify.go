package ifs

import "math/big"

// SimplifyResult is the outcome of Simplify: the map set (unchanged, see
// below) plus the common denominator the caller can use to display the
// translation vectors over a shared scale.
type SimplifyResult struct {
	Maps              []Map
	CommonDenominator *big.Int
}

// Simplify computes a common denominator across a map set's translation
// vectors. Whether a further algebraic rewrite of the maps into a smaller
// equivalent IFS is always correct is unresolved upstream, so this stops
// at the one fact it can verify exactly: every map's D shares this
// denominator. The maps themselves are returned unchanged.
func Simplify(maps []Map) SimplifyResult {
	if len(maps) == 0 {
		return SimplifyResult{CommonDenominator: big.NewInt(1)}
	}
	denom := big.NewInt(1)
	for _, m := range maps {
		_, den := m.D.ToRational()
		denom = lcmBig(denom, den)
	}
	out := make([]Map, len(maps))
	copy(out, maps)
	return SimplifyResult{Maps: out, CommonDenominator: denom}
}

func lcmBig(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return big.NewInt(0)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
	return new(big.Int).Div(new(big.Int).Mul(a, b), g)
}

// ComplexSimplifyResult mirrors SimplifyResult for a complex map set: a
// common denominator across both the real and imaginary translation
// components.
type ComplexSimplifyResult struct {
	Maps              []ComplexMap
	CommonDenominator *big.Int
}

// ComplexSimplify is the Gaussian-complex analogue of Simplify, kept to the
// same conservative scope: upstream's simplification pass for the complex
// transducer never established correctness beyond a shared denominator, so
// neither does this one.
func ComplexSimplify(maps []ComplexMap) ComplexSimplifyResult {
	if len(maps) == 0 {
		return ComplexSimplifyResult{CommonDenominator: big.NewInt(1)}
	}
	denom := big.NewInt(1)
	for _, m := range maps {
		_, reDen := m.D.Re.ToRational()
		_, imDen := m.D.Im.ToRational()
		denom = lcmBig(denom, reDen)
		denom = lcmBig(denom, imDen)
	}
	out := make([]ComplexMap, len(maps))
	copy(out, maps)
	return ComplexSimplifyResult{Maps: out, CommonDenominator: denom}
}

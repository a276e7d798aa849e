// Package cpadic extends padic.PAdic with a Gaussian-complex component and
// the 4-fold rotation operator used to orient transducer states.
package cpadic

import (
	"fmt"

	"github.com/padic-tools/padicifs/internal/padicerr"
	"github.com/padic-tools/padicifs/padic"
)

// ComplexPAdic is a Gaussian-complex p-adic number Re + Im*i. Re and Im
// must share the same prime.
type ComplexPAdic struct {
	Re padic.PAdic
	Im padic.PAdic
}

// Lift embeds a real p-adic as a complex one with zero imaginary part.
func Lift(x padic.PAdic) (ComplexPAdic, error) {
	zero, err := padic.Zero(x.P)
	if err != nil {
		return ComplexPAdic{}, err
	}
	return ComplexPAdic{Re: x, Im: zero}, nil
}

// Zero returns 0+0i for prime p.
func Zero(p int64) (ComplexPAdic, error) {
	re, err := padic.Zero(p)
	if err != nil {
		return ComplexPAdic{}, err
	}
	im, err := padic.Zero(p)
	if err != nil {
		return ComplexPAdic{}, err
	}
	return ComplexPAdic{Re: re, Im: im}, nil
}

func (z ComplexPAdic) checkCompatible(w ComplexPAdic) error {
	if z.Re.P != w.Re.P {
		return padicerr.New(padicerr.IncompatiblePrime, "p=%d vs p=%d", z.Re.P, w.Re.P)
	}
	return nil
}

// Add returns z+w.
func (z ComplexPAdic) Add(w ComplexPAdic) (ComplexPAdic, error) {
	if err := z.checkCompatible(w); err != nil {
		return ComplexPAdic{}, err
	}
	re, err := z.Re.Add(w.Re)
	if err != nil {
		return ComplexPAdic{}, err
	}
	im, err := z.Im.Add(w.Im)
	if err != nil {
		return ComplexPAdic{}, err
	}
	return ComplexPAdic{Re: re, Im: im}, nil
}

// Neg returns -z.
func (z ComplexPAdic) Neg() (ComplexPAdic, error) {
	re, err := z.Re.Neg()
	if err != nil {
		return ComplexPAdic{}, err
	}
	im, err := z.Im.Neg()
	if err != nil {
		return ComplexPAdic{}, err
	}
	return ComplexPAdic{Re: re, Im: im}, nil
}

// Sub returns z-w.
func (z ComplexPAdic) Sub(w ComplexPAdic) (ComplexPAdic, error) {
	negW, err := w.Neg()
	if err != nil {
		return ComplexPAdic{}, err
	}
	return z.Add(negW)
}

// Lsh returns z * p^n, applied componentwise.
func (z ComplexPAdic) Lsh(n int) ComplexPAdic {
	return ComplexPAdic{Re: z.Re.Lsh(n), Im: z.Im.Lsh(n)}
}

// Rsh returns z * p^-n, applied componentwise.
func (z ComplexPAdic) Rsh(n int) ComplexPAdic {
	return ComplexPAdic{Re: z.Re.Rsh(n), Im: z.Im.Rsh(n)}
}

// Rot multiplies z by i^n (n taken mod 4): the orientation operator the
// transducer construction uses to track which quadrant a complex IFS map's
// residue chase is passing through.
func (z ComplexPAdic) Rot(n int) (ComplexPAdic, error) {
	m := ((n % 4) + 4) % 4
	switch m {
	case 0:
		return z, nil
	case 1:
		// i*(a+bi) = -b+ai
		negIm, err := z.Im.Neg()
		if err != nil {
			return ComplexPAdic{}, err
		}
		return ComplexPAdic{Re: negIm, Im: z.Re}, nil
	case 2:
		return z.Neg()
	default: // m == 3
		// i^3*(a+bi) = b-ai
		negRe, err := z.Re.Neg()
		if err != nil {
			return ComplexPAdic{}, err
		}
		return ComplexPAdic{Re: z.Im, Im: negRe}, nil
	}
}

// Equal compares canonical forms of both components.
func (z ComplexPAdic) Equal(w ComplexPAdic) bool {
	return z.Re.Equal(w.Re) && z.Im.Equal(w.Im)
}

// IsZero reports whether both components are canonically zero.
func (z ComplexPAdic) IsZero() bool {
	return z.Re.IsZero() && z.Im.IsZero()
}

// CanonicalKey returns a string uniquely identifying z's canonical form.
func (z ComplexPAdic) CanonicalKey() string {
	return z.Re.CanonicalKey() + "+" + z.Im.CanonicalKey() + "i"
}

func (z ComplexPAdic) String() string {
	return fmt.Sprintf("(%s)+(%s)i", z.Re, z.Im)
}

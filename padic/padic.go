// Package padic implements exact p-adic arithmetic over eventually periodic
// digit sequences: the (repeat, whole, frac) representation of spec.md §3.1.
package padic

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/padic-tools/padicifs/internal/intern"
	"github.com/padic-tools/padicifs/internal/padicerr"
)

// canonicalForms interns the result of Condense by its canonical key, so
// repeated canonicalisations of equal values share one backing PAdic
// rather than reallocating its digit slices every time (spec.md §5:
// "implementations may intern canonical forms of p-adics for equality/hash
// speed").
var canonicalForms = intern.NewCache[PAdic]()

// PAdic is an immutable p-adic number represented as a triple of digit
// sequences over a fixed prime P. Repeat is the periodic tail (non-empty,
// (0) when absent), Whole the aperiodic integer part (most-significant
// digit first), Frac the finite fractional part (highest-magnitude digit
// first). Arithmetic never mutates a receiver; every operation returns a
// fresh value.
type PAdic struct {
	P      int64
	Repeat []int64
	Whole  []int64
	Frac   []int64
}

// Zero returns the additive identity for prime p.
func Zero(p int64) (PAdic, error) {
	if p <= 1 {
		return PAdic{}, padicerr.New(padicerr.InvalidPrime, "p=%d is not a valid prime", p)
	}
	return PAdic{P: p, Repeat: []int64{0}}, nil
}

func cloneDigits(d []int64) []int64 {
	if len(d) == 0 {
		return nil
	}
	out := make([]int64, len(d))
	copy(out, d)
	return out
}

func defaultRepeat(r []int64) []int64 {
	if len(r) == 0 {
		return []int64{0}
	}
	return cloneDigits(r)
}

// New builds a PAdic directly from digit sequences, normalizing an empty
// repeat to (0,). It does not condense; call Condense explicitly if a
// canonical form is required.
func New(p int64, repeat, whole, frac []int64) (PAdic, error) {
	if p <= 1 {
		return PAdic{}, padicerr.New(padicerr.InvalidPrime, "p=%d is not a valid prime", p)
	}
	return PAdic{P: p, Repeat: defaultRepeat(repeat), Whole: cloneDigits(whole), Frac: cloneDigits(frac)}, nil
}

// IsZero reports whether x's canonical form is the zero p-adic.
func (x PAdic) IsZero() bool {
	c := x.Condense()
	if len(c.Frac) != 0 || len(c.Whole) != 0 {
		return false
	}
	for _, d := range c.Repeat {
		if d != 0 {
			return false
		}
	}
	return true
}

func (x PAdic) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	writeJoined(&sb, x.Repeat)
	sb.WriteByte(']')
	writeJoined(&sb, x.Whole)
	sb.WriteByte('.')
	writeJoined(&sb, x.Frac)
	return sb.String()
}

func writeJoined(sb *strings.Builder, digits []int64) {
	for i, d := range digits {
		if i > 0 {
			sb.WriteByte('_')
		}
		fmt.Fprintf(sb, "%d", d)
	}
}

// CanonicalKey returns a string uniquely identifying x's canonical form,
// suitable as a map key or for interning (spec.md §5: implementations may
// intern canonical forms of p-adics for equality/hash speed).
func (x PAdic) CanonicalKey() string {
	c := x.Condense()
	return fmt.Sprintf("%d:%s", c.P, c.String())
}

// Equal compares canonical forms.
func (x PAdic) Equal(y PAdic) bool {
	return x.P == y.P && x.CanonicalKey() == y.CanonicalKey()
}

// At returns the digit at p-adic position index: non-negative indices are
// the integer part (wrapping into the periodic tail as needed), negative
// indices index into Frac.
func (x PAdic) At(index int) (int64, error) {
	if index < -len(x.Frac) {
		return 0, padicerr.New(padicerr.OutOfBounds, "index %d out of bounds (frac length %d)", index, len(x.Frac))
	}
	if index < 0 {
		return x.Frac[-1-index], nil
	}
	if index < len(x.Whole) {
		return x.Whole[len(x.Whole)-1-index], nil
	}
	idx := index - len(x.Whole)
	if len(x.Repeat) == 0 {
		return 0, nil
	}
	idx %= len(x.Repeat)
	return x.Repeat[len(x.Repeat)-1-idx], nil
}

// Condense reduces x to canonical form: absorbs any leading whole digit
// that matches the periodic tail's boundary digit, shrinks the repeat to
// its minimal period, and strips trailing zeros from frac (spec.md §4.1).
func (x PAdic) Condense() PAdic {
	r := defaultRepeat(x.Repeat)
	w := cloneDigits(x.Whole)
	f := cloneDigits(x.Frac)

	for len(w) > 0 && r[0] == w[0] {
		r = loopOver(r, -1)
		w = w[1:]
	}

	n := len(r)
	for i := 1; i < n; i++ {
		if n%i != 0 {
			continue
		}
		if allBatchesEqual(r, i) {
			r = r[:i]
			break
		}
	}

	for len(f) > 0 && f[len(f)-1] == 0 {
		f = f[:len(f)-1]
	}

	result := PAdic{P: x.P, Repeat: defaultRepeat(r), Whole: w, Frac: f}
	key := fmt.Sprintf("%d:%s", result.P, result.String())
	return canonicalForms.Intern(key, result)
}

func allBatchesEqual(r []int64, blockSize int) bool {
	block := r[:blockSize]
	for start := blockSize; start < len(r); start += blockSize {
		for j := 0; j < blockSize; j++ {
			if r[start+j] != block[j] {
				return false
			}
		}
	}
	return true
}

// loopOver rotates digits right by amount (cyclic); a negative amount
// rotates left. Used to keep the periodic tail's boundary consistent as
// digits are absorbed into or spewed out of it.
func loopOver(x []int64, amount int) []int64 {
	n := len(x)
	if n == 0 {
		return x
	}
	amount = ((amount % n) + n) % n
	if amount == 0 {
		return cloneDigits(x)
	}
	out := make([]int64, n)
	copy(out, x[n-amount:])
	copy(out[amount:], x[:n-amount])
	return out
}

// spew materializes amount more digits of cycle onto the front of
// remainder, rotating cycle to match. This is the on-demand periodic
// extension spec.md §9 open question (iii) calls for: shift/rshift never
// need a separate "extend precision" step, they just spew.
func spew(cycle, remainder []int64, amount int) (newCycle, newRemainder []int64) {
	n := len(cycle)
	if n == 0 || amount <= 0 {
		return cloneDigits(cycle), cloneDigits(remainder)
	}
	loops := amount / n
	cyclingAmount := amount % n

	prefix := make([]int64, 0, amount+len(remainder))
	if cyclingAmount > 0 {
		prefix = append(prefix, cycle[n-cyclingAmount:]...)
	}
	for i := 0; i < loops; i++ {
		prefix = append(prefix, cycle...)
	}
	prefix = append(prefix, remainder...)
	return loopOver(cycle, cyclingAmount), prefix
}

func tile(x []int64, length int) []int64 {
	if len(x) == 0 {
		return x
	}
	out := make([]int64, 0, length)
	for len(out) < length {
		out = append(out, x...)
	}
	return out[:length]
}

func padRight(x []int64, length int) []int64 {
	if len(x) >= length {
		return cloneDigits(x)
	}
	out := make([]int64, length)
	copy(out, x)
	return out
}

func addWithCarry(p int64, a, b []int64, carryIn int64) (result []int64, carryOut int64) {
	n := len(a)
	result = make([]int64, n)
	carry := carryIn
	for i := n - 1; i >= 0; i-- {
		sum := a[i] + b[i] + carry
		carry = sum / p
		result[i] = sum % p
	}
	return result, carry
}

// addOnce runs one alignment-and-add pass per spec.md §4.1, unrolling
// extraPeriods additional copies of the period beyond the minimum the spec
// calls for. It reports whether the carry flowing out of the leftmost
// repeat digit matches the carry that flowed into it — the steady-state
// check spec.md §7 requires before trusting the result.
func addOnce(x, y PAdic, extraPeriods int) (PAdic, bool) {
	p := x.P
	r1 := defaultRepeat(x.Repeat)
	r2 := defaultRepeat(y.Repeat)
	L := int(lcm(int64(len(r1)), int64(len(r2))))
	r1 = tile(r1, L)
	r2 = tile(r2, L)

	w1 := cloneDigits(x.Whole)
	w2 := cloneDigits(y.Whole)
	maxW := len(w1)
	if len(w2) > maxW {
		maxW = len(w2)
	}
	W := maxW + L*(1+extraPeriods)
	if d := W - len(w1); d > 0 {
		r1, w1 = spew(r1, w1, d)
	}
	if d := W - len(w2); d > 0 {
		r2, w2 = spew(r2, w2, d)
	}

	f1 := cloneDigits(x.Frac)
	f2 := cloneDigits(y.Frac)
	maxF := len(f1)
	if len(f2) > maxF {
		maxF = len(f2)
	}
	f1 = padRight(f1, maxF)
	f2 = padRight(f2, maxF)

	fracResult, carry := addWithCarry(p, f1, f2, 0)
	wholeResult, carryIntoRepeat := addWithCarry(p, w1, w2, carry)
	repeatResult, carryOutOfRepeat := addWithCarry(p, r1, r2, carryIntoRepeat)

	steady := carryOutOfRepeat == carryIntoRepeat
	return PAdic{P: p, Repeat: repeatResult, Whole: wholeResult, Frac: fracResult}, steady
}

// maxAddUnrolls bounds the retry loop of spec.md §7's carry-consistency
// check; in practice one extra period always suffices.
const maxAddUnrolls = 4

// Add returns x+y, condensed.
func (x PAdic) Add(y PAdic) (PAdic, error) {
	if x.P != y.P {
		return PAdic{}, padicerr.New(padicerr.IncompatiblePrime, "p=%d vs p=%d", x.P, y.P)
	}
	var result PAdic
	for attempt := 0; attempt < maxAddUnrolls; attempt++ {
		r, steady := addOnce(x, y, attempt)
		result = r
		if steady {
			break
		}
	}
	return result.Condense(), nil
}

func complement(p int64, digits []int64) []int64 {
	out := make([]int64, len(digits))
	for i, d := range digits {
		out[i] = p - 1 - d
	}
	return out
}

// Neg returns -x: every digit complemented to p-1, plus p^-|frac| (or 1 if
// x has no fractional part), per spec.md §4.1.
func (x PAdic) Neg() (PAdic, error) {
	p := x.P
	complemented := PAdic{
		P:      p,
		Repeat: complement(p, defaultRepeat(x.Repeat)),
		Whole:  complement(p, x.Whole),
		Frac:   complement(p, x.Frac),
	}
	var epsilon PAdic
	if len(x.Frac) > 0 {
		epsFrac := make([]int64, len(x.Frac))
		epsFrac[len(epsFrac)-1] = 1
		epsilon = PAdic{P: p, Repeat: []int64{0}, Frac: epsFrac}
	} else {
		epsilon = PAdic{P: p, Repeat: []int64{0}, Whole: []int64{1}}
	}
	return complemented.Add(epsilon)
}

// Sub returns x-y.
func (x PAdic) Sub(y PAdic) (PAdic, error) {
	negY, err := y.Neg()
	if err != nil {
		return PAdic{}, err
	}
	return x.Add(negY)
}

// Lsh returns x * p^n (n >= 0): digits move from frac into whole.
func (x PAdic) Lsh(n int) PAdic {
	if n == 0 {
		return x
	}
	f := append(cloneDigits(x.Frac), make([]int64, n)...)
	whole := append(cloneDigits(x.Whole), f[:n]...)
	f = f[n:]
	return PAdic{P: x.P, Repeat: x.Repeat, Whole: whole, Frac: f}.Condense()
}

// Rsh returns x * p^-n (n >= 0): digits move from whole into frac, spewing
// more periodic digits into whole first if needed.
func (x PAdic) Rsh(n int) PAdic {
	if n == 0 {
		return x
	}
	repeat, whole := spew(defaultRepeat(x.Repeat), x.Whole, n)
	tail := append([]int64(nil), whole[len(whole)-n:]...)
	frac := append(tail, x.Frac...)
	whole = whole[:len(whole)-n]
	return PAdic{P: x.P, Repeat: repeat, Whole: whole, Frac: frac}.Condense()
}

// ToRational recovers the unique (numerator, denominator) in lowest terms
// equivalent to x, per spec.md §4.1.
func (x PAdic) ToRational() (*big.Int, *big.Int) {
	p := big.NewInt(x.P)
	a := big.NewInt(0)
	b := big.NewInt(1)
	for _, d := range x.Repeat {
		a.Mul(a, p)
		b.Mul(b, p)
		a.Add(a, big.NewInt(d))
	}
	a.Neg(a)
	b.Sub(b, big.NewInt(1))
	for _, d := range x.Whole {
		a.Mul(a, p)
		a.Add(a, new(big.Int).Mul(big.NewInt(d), b))
	}
	b0 := new(big.Int).Set(b)
	for _, d := range x.Frac {
		a.Mul(a, p)
		b.Mul(b, p)
		a.Add(a, new(big.Int).Mul(big.NewInt(d), b0))
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
	if g.Sign() == 0 {
		return big.NewInt(0), big.NewInt(1)
	}
	num := new(big.Int).Quo(a, g)
	den := new(big.Int).Quo(b, g)
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	return num, den
}

// FromRational converts a/b (b != 0) into its p-adic expansion, per
// spec.md §4.1: extract digits one at a time by choosing the unique
// d in [0,p) making (a-d*b) divisible by p, memoizing a to detect the
// repeating tail.
func FromRational(p, num, denom int64) (PAdic, error) {
	if p <= 1 {
		return PAdic{}, padicerr.New(padicerr.InvalidPrime, "p=%d is not a valid prime", p)
	}
	if denom == 0 {
		return PAdic{}, padicerr.New(padicerr.DivisionByZero, "denominator is zero")
	}
	if num == 0 {
		return Zero(p)
	}

	n0 := valuation(p, num, denom)
	if n0 < 0 {
		for i := int64(0); i < -n0; i++ {
			denom /= p
		}
	}

	visited := map[int64]int64{}
	digits := map[int64]int64{}
	placeValue := n0
	if placeValue > 0 {
		placeValue = 0
	}
	a := num
	var highestIndex int64
	for {
		if pv, seen := visited[a]; seen {
			return buildFromDigits(p, digits, n0, pv, highestIndex), nil
		}
		found := false
		for d := int64(0); d < p; d++ {
			if pyMod(a-d*denom, p) != 0 {
				continue
			}
			digits[placeValue] = d
			if placeValue >= 0 {
				visited[a] = placeValue
				highestIndex++
			}
			a = (a - d*denom) / p
			found = true
			break
		}
		if !found {
			return PAdic{}, padicerr.New(padicerr.MalformedInput, "no digit found for a=%d, denom=%d, p=%d", a, denom, p)
		}
		placeValue++
	}
}

func pyMod(a, p int64) int64 {
	m := a % p
	if m < 0 {
		m += p
	}
	return m
}

func buildFromDigits(p int64, digits map[int64]int64, n0, firstSeenAt, highestIndex int64) PAdic {
	var frac []int64
	for j := int64(-1); j >= n0; j-- {
		frac = append(frac, digits[j])
	}
	var whole []int64
	for j := firstSeenAt - 1; j >= 0; j-- {
		whole = append(whole, digits[j])
	}
	var repeat []int64
	for j := highestIndex - 1; j >= firstSeenAt; j-- {
		repeat = append(repeat, digits[j])
	}
	return PAdic{P: p, Repeat: defaultRepeat(repeat), Whole: whole, Frac: frac}.Condense()
}

func powBig(p int64, exp int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(p), big.NewInt(exp), nil)
}

// Abs returns the p-adic absolute value |x|_p = p^-k where k is the
// position of the lowest non-zero digit (spec.md §4.1); zero has |x|=0.
func (x PAdic) Abs() *big.Rat {
	c := x.Condense()
	if c.IsZero() {
		return new(big.Rat)
	}
	if len(c.Frac) > 0 {
		return new(big.Rat).SetInt(powBig(c.P, int64(len(c.Frac))))
	}
	for i := 0; i < len(c.Whole); i++ {
		if c.Whole[len(c.Whole)-1-i] != 0 {
			return new(big.Rat).SetFrac(big.NewInt(1), powBig(c.P, int64(i)))
		}
	}
	k := int64(len(c.Whole))
	for i := 0; i < len(c.Repeat); i++ {
		if c.Repeat[len(c.Repeat)-1-i] != 0 {
			k += int64(i)
			return new(big.Rat).SetFrac(big.NewInt(1), powBig(c.P, k))
		}
	}
	// unreachable: a non-zero canonical value always has a non-zero digit
	return new(big.Rat)
}

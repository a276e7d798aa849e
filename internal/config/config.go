// Package config reads the line-delimited IFS configuration format: a
// prime, a directive, and one map expression per remaining line. Modelled
// on the teacher's runner/config.go load-and-validate shape, generalised
// from YAML unmarshalling to a small hand-written scanner since the format
// here is not YAML/JSON.
package config

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/padic-tools/padicifs/internal/padicerr"
)

// MapSpec is one parsed map line: f(x) = sign*(x<<k) + d, with d either a
// real rational or (for a complex pipeline) a pair of rationals.
type MapSpec struct {
	Name string
	Sign int
	// Rotation is the complex-pipeline rotation index epsilon in [0,4):
	// derived from the leading coefficient's sign and i/j marker the same
	// way the upstream Python reader does (a '-' contributes 2, an i/j marker
	// contributes 1), not from the trailing constant. Unused by the real
	// pipeline, which uses Sign directly.
	Rotation int
	K        int
	Re       *big.Rat
	Im       *big.Rat // nil unless the constant used i/j notation
}

// Complex reports whether this spec's constant carries an imaginary part.
func (m MapSpec) Complex() bool { return m.Im != nil }

// Config is a fully parsed configuration file.
type Config struct {
	P         int64
	Directive string
	Specs     []MapSpec
}

// Complex reports whether any map in the file used complex constants. A
// well-formed file is either all-real or all-complex.
func (c *Config) Complex() bool {
	for _, s := range c.Specs {
		if s.Complex() {
			return true
		}
	}
	return false
}

// The leading coefficient is matched in two parts: an optional sign and an
// optional i/j rotation marker (mirroring the upstream Python reader, which
// derives the complex rotation index from this same leading coefficient
// text rather than from the trailing constant).
var mapLineRe = regexp.MustCompile(
	`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*:\s*([+-]?)\s*([ij]?)\s*\*?\s*p(?:\^(\d+))?\s*\*\s*x\s*(?:([+-])\s*(.+?))?\s*$`,
)

// Parse reads a configuration from r: line 1 is `p:<int>`, line 2 is the
// directive, and every remaining non-empty, non-comment line is a map
// expression. Blank lines and lines starting with '#' are skipped wherever
// they occur after the first two.
func Parse(r io.Reader) (*Config, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0

	nextNonEmpty := func() (string, int, bool) {
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			return line, lineNo, true
		}
		return "", lineNo, false
	}

	pLine, pLineNo, ok := nextNonEmpty()
	if !ok {
		return nil, padicerr.New(padicerr.MalformedInput, "line %d: missing prime declaration", pLineNo+1)
	}
	p, err := parsePrimeLine(pLine, pLineNo)
	if err != nil {
		return nil, err
	}

	directiveLine, directiveLineNo, ok := nextNonEmpty()
	if !ok {
		return nil, padicerr.New(padicerr.MalformedInput, "line %d: missing directive", directiveLineNo+1)
	}

	cfg := &Config{P: p, Directive: directiveLine}

	for {
		line, n, ok := nextNonEmpty()
		if !ok {
			break
		}
		spec, err := parseMapLine(line, n)
		if err != nil {
			return nil, err
		}
		cfg.Specs = append(cfg.Specs, spec)
	}
	if err := scanner.Err(); err != nil {
		return nil, padicerr.New(padicerr.MalformedInput, "reading config: %v", err)
	}
	return cfg, nil
}

func parsePrimeLine(line string, n int) (int64, error) {
	rest, ok := strings.CutPrefix(line, "p:")
	if !ok {
		return 0, padicerr.New(padicerr.MalformedInput, "line %d: expected 'p:<int>', got %q", n, line)
	}
	p, err := strconv.ParseInt(strings.TrimSpace(rest), 10, 64)
	if err != nil {
		return 0, padicerr.New(padicerr.MalformedInput, "line %d: invalid prime %q: %v", n, rest, err)
	}
	if p <= 1 {
		return 0, padicerr.New(padicerr.InvalidPrime, "line %d: p=%d is not a valid prime", n, p)
	}
	return p, nil
}

func parseMapLine(line string, n int) (MapSpec, error) {
	m := mapLineRe.FindStringSubmatch(line)
	if m == nil {
		return MapSpec{}, padicerr.New(padicerr.MalformedInput, "line %d: map expression does not parse: %q", n, line)
	}
	name, signStr, imagMarker, kStr, constSign, constVal := m[1], m[2], m[3], m[4], m[5], m[6]

	sign := 1
	if signStr == "-" {
		sign = -1
	}

	rotation := 0
	if signStr == "-" {
		rotation += 2
	}
	if imagMarker != "" {
		rotation += 1
	}

	k := 1
	if kStr != "" {
		parsedK, err := strconv.Atoi(kStr)
		if err != nil {
			return MapSpec{}, padicerr.New(padicerr.MalformedInput, "line %d: invalid exponent %q", n, kStr)
		}
		k = parsedK
	}

	spec := MapSpec{Name: name, Sign: sign, Rotation: rotation, K: k, Re: big.NewRat(0, 1)}
	if constVal == "" {
		return spec, nil
	}

	re, im, err := parseConstant(constVal, n)
	if err != nil {
		return MapSpec{}, err
	}
	if constSign == "-" {
		re.Neg(re)
		if im != nil {
			im.Neg(im)
		}
	}
	spec.Re = re
	spec.Im = im
	return spec, nil
}

var complexTermRe = regexp.MustCompile(`^([+-]?\s*[0-9./]*)\s*[ij]$`)

// parseConstant parses a constant term: a plain rational ("3", "1/3"), or a
// complex one of the form "a + b·i" / "a + b·j" / "a - bi" (both spellings
// of the imaginary unit accepted).
func parseConstant(s string, n int) (*big.Rat, *big.Rat, error) {
	s = strings.ReplaceAll(s, "·", "")
	s = strings.ReplaceAll(s, " ", "")

	// Split on a top-level +/- that is not the leading sign and not part of
	// an exponent; constants here have no exponents, so a simple scan for a
	// second sign character suffices.
	splitAt := -1
	for i := 1; i < len(s); i++ {
		if s[i] == '+' || s[i] == '-' {
			splitAt = i
			break
		}
	}

	if splitAt == -1 {
		if complexTermRe.MatchString(s) {
			im, err := parseRatTerm(strings.TrimSuffix(strings.TrimSuffix(s, "i"), "j"), n)
			if err != nil {
				return nil, nil, err
			}
			return big.NewRat(0, 1), im, nil
		}
		re, err := parseRatTerm(s, n)
		if err != nil {
			return nil, nil, err
		}
		return re, nil, nil
	}

	reStr, imStr := s[:splitAt], s[splitAt:]
	if !strings.HasSuffix(imStr, "i") && !strings.HasSuffix(imStr, "j") {
		return nil, nil, padicerr.New(padicerr.MalformedInput, "line %d: malformed constant %q", n, s)
	}
	re, err := parseRatTerm(reStr, n)
	if err != nil {
		return nil, nil, err
	}
	imSign := 1
	if imStr[0] == '-' {
		imSign = -1
	}
	imStr = strings.TrimLeft(imStr, "+-")
	imStr = strings.TrimSuffix(strings.TrimSuffix(imStr, "i"), "j")
	im, err := parseRatTerm(imStr, n)
	if err != nil {
		return nil, nil, err
	}
	im.Mul(im, big.NewRat(int64(imSign), 1))
	return re, im, nil
}

func parseRatTerm(s string, n int) (*big.Rat, error) {
	if s == "" || s == "+" {
		return big.NewRat(1, 1), nil
	}
	if s == "-" {
		return big.NewRat(-1, 1), nil
	}
	r := new(big.Rat)
	if _, ok := r.SetString(s); !ok {
		return nil, padicerr.New(padicerr.MalformedInput, "line %d: invalid rational %q", n, s)
	}
	return r, nil
}

// String renders a MapSpec the way it was written, for diagnostics.
func (m MapSpec) String() string {
	sign := "+"
	if m.Sign < 0 {
		sign = "-"
	}
	if m.Im == nil {
		return fmt.Sprintf("%s: %sp^%d*x + %s", m.Name, sign, m.K, m.Re.RatString())
	}
	return fmt.Sprintf("%s: %sp^%d*x + %s + %si", m.Name, sign, m.K, m.Re.RatString(), m.Im.RatString())
}

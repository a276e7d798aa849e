// Package padicifs orchestrates the p-adic IFS toolkit end to end: parse a
// configuration, build the transducer it describes, and render whichever
// artifact the configuration's directive names. Mirrors the teacher's
// root-package Mutator orchestrator (Options.Validate / New / a single
// entry point), adapted to synchronous single-pass execution per spec.md
// §5 — no goroutine fan-out, the core is single-threaded.
package padicifs

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/projectdiscovery/gologger"

	"github.com/padic-tools/padicifs/automaton"
	"github.com/padic-tools/padicifs/cpadic"
	"github.com/padic-tools/padicifs/ifs"
	"github.com/padic-tools/padicifs/internal/config"
	"github.com/padic-tools/padicifs/internal/dotgraph"
	"github.com/padic-tools/padicifs/internal/padicerr"
	"github.com/padic-tools/padicifs/padic"
)

// Options configures a single Pipeline run.
type Options struct {
	// ConfigPath is the path to the line-delimited configuration file
	// (spec.md §6.1). Required.
	ConfigPath string
	// DirectiveOverride, when non-empty, takes precedence over the
	// directive named on line 2 of the configuration file.
	DirectiveOverride string
	// ExplorationCap bounds transducer exploration before Unbounded is
	// reported (0 uses ifs.DefaultExplorationCap). DFA subset construction
	// is not capped.
	ExplorationCap int
	// Output receives the rendered artifact. Defaults to os.Stdout if nil.
	Output io.Writer
}

// Validate fills in defaults and rejects an unusable configuration.
func (o *Options) Validate() error {
	if o.ConfigPath == "" {
		return padicerr.New(padicerr.MalformedInput, "no configuration file given")
	}
	if o.ExplorationCap < 0 {
		return padicerr.New(padicerr.MalformedInput, "exploration cap cannot be negative, got %d", o.ExplorationCap)
	}
	if o.Output == nil {
		o.Output = os.Stdout
	}
	return nil
}

// Pipeline is a parsed configuration ready to be run.
type Pipeline struct {
	Options *Options
	cfg     *config.Config
}

// New validates opts and parses the configuration read from r, returning a
// Pipeline ready for Run. opts.ConfigPath is not opened here; it is only
// checked for presence and used in log output.
func New(opts *Options, r io.Reader) (*Pipeline, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	cfg, err := config.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Pipeline{Options: opts, cfg: cfg}, nil
}

func (p *Pipeline) directive() string {
	if p.Options.DirectiveOverride != "" {
		return p.Options.DirectiveOverride
	}
	return p.cfg.Directive
}

func (p *Pipeline) explorationCap() int {
	if p.Options.ExplorationCap > 0 {
		return p.Options.ExplorationCap
	}
	return ifs.DefaultExplorationCap
}

// Run dispatches on the configured directive and writes the requested
// artifact to Options.Output: DFA/NDFA render Graphviz DOT source, A prints
// the adjacency matrix, DIMENSION prints the Hausdorff dimension, SIMPLIFY
// prints the maps' common denominator and the maps themselves (ifs.Simplify
// does not rewrite them) plus the dimension and DFA, and any other
// directive (including the literal "transducer") renders the raw
// transducer graph (spec.md §6.2).
func (p *Pipeline) Run() error {
	gologger.Info().Msgf("running pipeline: config=%s directive=%s", p.Options.ConfigPath, p.directive())
	if p.cfg.Complex() {
		return p.runComplex()
	}
	return p.runReal()
}

func realMaps(specs []config.MapSpec, pPrime int64) ([]ifs.Map, error) {
	maps := make([]ifs.Map, len(specs))
	for i, s := range specs {
		num := s.Re.Num().Int64()
		den := s.Re.Denom().Int64()
		d, err := padic.FromRational(pPrime, num, den)
		if err != nil {
			return nil, err
		}
		maps[i] = ifs.Map{Name: s.Name, D: d, K: s.K, Sign: s.Sign}
	}
	return maps, nil
}

func complexMaps(specs []config.MapSpec, pPrime int64) ([]ifs.ComplexMap, error) {
	maps := make([]ifs.ComplexMap, len(specs))
	for i, s := range specs {
		re, err := padic.FromRational(pPrime, s.Re.Num().Int64(), s.Re.Denom().Int64())
		if err != nil {
			return nil, err
		}
		im := padic.PAdic{}
		if s.Im != nil {
			im, err = padic.FromRational(pPrime, s.Im.Num().Int64(), s.Im.Denom().Int64())
			if err != nil {
				return nil, err
			}
		} else {
			im, err = padic.Zero(pPrime)
			if err != nil {
				return nil, err
			}
		}
		maps[i] = ifs.ComplexMap{Name: s.Name, D: cpadic.ComplexPAdic{Re: re, Im: im}, K: s.K, Rotations: s.Rotation}
	}
	return maps, nil
}

func (p *Pipeline) runReal() error {
	maps, err := realMaps(p.cfg.Specs, p.cfg.P)
	if err != nil {
		return err
	}
	zero, err := padic.Zero(p.cfg.P)
	if err != nil {
		return err
	}
	start := ifs.State{Residue: zero, Orientation: 1}
	tr := ifs.NewTransducer(p.cfg.P, start, maps)
	if err := tr.Explore(p.explorationCap()); err != nil {
		return err
	}

	switch p.directive() {
	case "NDFA":
		n := automaton.BuildNDFA(tr)
		return p.writeDOT(ndfaSpec(n, plainDigitLabel), "ndfa")
	case "DFA":
		n := automaton.BuildNDFA(tr)
		d := automaton.BuildDFA(n, start.Key(), p.cfg.P)
		return p.writeDOT(dfaSpec(d, plainDigitLabel), "dfa")
	case "A":
		n := automaton.BuildNDFA(tr)
		d := automaton.BuildDFA(n, start.Key(), p.cfg.P)
		fmt.Fprintln(p.Options.Output, formatMatrix(automaton.AdjacencyMatrix(d)))
		return nil
	case "DIMENSION":
		n := automaton.BuildNDFA(tr)
		d := automaton.BuildDFA(n, start.Key(), p.cfg.P)
		dim, err := automaton.HausdorffDimension(automaton.GonumEigenSolver{}, d, p.cfg.P)
		if err != nil {
			return err
		}
		fmt.Fprintln(p.Options.Output, dim)
		return nil
	case "SIMPLIFY":
		result := ifs.Simplify(maps)
		n := automaton.BuildNDFA(tr)
		d := automaton.BuildDFA(n, start.Key(), p.cfg.P)
		dim, err := automaton.HausdorffDimension(automaton.GonumEigenSolver{}, d, p.cfg.P)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.Options.Output, "maps (common denominator %s):\n", result.CommonDenominator)
		for _, m := range result.Maps {
			fmt.Fprintln(p.Options.Output, m)
		}
		fmt.Fprintf(p.Options.Output, "dimension: %v\n", dim)
		dotSrc, err := dotgraph.Render(dfaSpec(d, plainDigitLabel), "dfa")
		if err != nil {
			return err
		}
		fmt.Fprintln(p.Options.Output, dotSrc)
		return nil
	default:
		return p.writeDOT(transducerSpec(tr), "transducer")
	}
}

func (p *Pipeline) runComplex() error {
	maps, err := complexMaps(p.cfg.Specs, p.cfg.P)
	if err != nil {
		return err
	}
	zero, err := cpadic.Zero(p.cfg.P)
	if err != nil {
		return err
	}
	start := ifs.ComplexState{Residue: zero, Rotation: 0}
	tr := ifs.NewComplexTransducer(p.cfg.P, start, maps)
	if err := tr.Explore(p.explorationCap()); err != nil {
		return err
	}

	complexAlphabet := p.cfg.P * p.cfg.P

	switch p.directive() {
	case "NDFA":
		n := automaton.BuildComplexNDFA(tr)
		return p.writeDOT(ndfaSpec(n, complexDigitLabel(p.cfg.P)), "ndfa")
	case "DFA":
		n := automaton.BuildComplexNDFA(tr)
		d := automaton.BuildDFA(n, start.Key(), complexAlphabet)
		return p.writeDOT(dfaSpec(d, complexDigitLabel(p.cfg.P)), "dfa")
	case "A":
		n := automaton.BuildComplexNDFA(tr)
		d := automaton.BuildDFA(n, start.Key(), complexAlphabet)
		fmt.Fprintln(p.Options.Output, formatMatrix(automaton.AdjacencyMatrix(d)))
		return nil
	case "DIMENSION":
		n := automaton.BuildComplexNDFA(tr)
		d := automaton.BuildDFA(n, start.Key(), complexAlphabet)
		dim, err := automaton.HausdorffDimension(automaton.GonumEigenSolver{}, d, p.cfg.P)
		if err != nil {
			return err
		}
		fmt.Fprintln(p.Options.Output, dim)
		return nil
	case "SIMPLIFY":
		result := ifs.ComplexSimplify(maps)
		n := automaton.BuildComplexNDFA(tr)
		d := automaton.BuildDFA(n, start.Key(), complexAlphabet)
		dim, err := automaton.HausdorffDimension(automaton.GonumEigenSolver{}, d, p.cfg.P)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.Options.Output, "maps (common denominator %s):\n", result.CommonDenominator)
		for _, m := range result.Maps {
			fmt.Fprintln(p.Options.Output, m)
		}
		fmt.Fprintf(p.Options.Output, "dimension: %v\n", dim)
		dotSrc, err := dotgraph.Render(dfaSpec(d, complexDigitLabel(p.cfg.P)), "dfa")
		if err != nil {
			return err
		}
		fmt.Fprintln(p.Options.Output, dotSrc)
		return nil
	default:
		return p.writeDOT(complexTransducerSpec(tr, p.cfg.P), "transducer")
	}
}

func (p *Pipeline) writeDOT(spec dotgraph.Spec, name string) error {
	src, err := dotgraph.Render(spec, name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.Options.Output, src)
	return err
}

func transducerSpec(t *ifs.Transducer) dotgraph.Spec {
	spec := dotgraph.Spec{}
	for _, s := range t.Nodes() {
		spec.Nodes = append(spec.Nodes, s.Key())
		for _, e := range t.EdgesFrom(s) {
			spec.Edges = append(spec.Edges, dotgraph.EdgeSpec{
				From:  s.Key(),
				To:    e.To.Key(),
				Label: digitsLabel(e.Output, plainDigitLabel),
			})
		}
	}
	return spec
}

func complexTransducerSpec(t *ifs.ComplexTransducer, p int64) dotgraph.Spec {
	spec := dotgraph.Spec{}
	label := complexDigitLabel(p)
	for _, s := range t.Nodes() {
		spec.Nodes = append(spec.Nodes, s.Key())
		for _, e := range t.EdgesFrom(s) {
			spec.Edges = append(spec.Edges, dotgraph.EdgeSpec{
				From:  s.Key(),
				To:    e.To.Key(),
				Label: digitsLabel(e.Output, label),
			})
		}
	}
	return spec
}

func ndfaSpec(n *automaton.NDFA, label func(int64) string) dotgraph.Spec {
	spec := dotgraph.Spec{}
	for name := range n.Nodes {
		spec.Nodes = append(spec.Nodes, name)
	}
	for tail, byDigit := range n.Edges {
		for digit, heads := range byDigit {
			for head := range heads {
				spec.Edges = append(spec.Edges, dotgraph.EdgeSpec{
					From:  tail,
					To:    head,
					Label: label(digit),
				})
			}
		}
	}
	return spec
}

func dfaSpec(d *automaton.DFA, label func(int64) string) dotgraph.Spec {
	spec := dotgraph.Spec{}
	for i, names := range d.States {
		spec.Nodes = append(spec.Nodes, fmt.Sprintf("q%d[%s]", i, strings.Join(names, ",")))
	}
	for i, trans := range d.Transitions {
		from := fmt.Sprintf("q%d[%s]", i, strings.Join(d.States[i], ","))
		for digit, j := range trans {
			to := fmt.Sprintf("q%d[%s]", j, strings.Join(d.States[j], ","))
			spec.Edges = append(spec.Edges, dotgraph.EdgeSpec{From: from, To: to, Label: label(digit)})
		}
	}
	return spec
}

// plainDigitLabel renders a real transducer's digit symbol as-is.
func plainDigitLabel(d int64) string {
	return fmt.Sprintf("%d", d)
}

// complexDigitLabel renders an ifs.PackComplexDigit-packed symbol back as
// its (re, im) digit pair, e.g. "2+1i".
func complexDigitLabel(p int64) func(int64) string {
	return func(packed int64) string {
		re, im := ifs.UnpackComplexDigit(p, packed)
		if im == 0 {
			return fmt.Sprintf("%d", re)
		}
		return fmt.Sprintf("%d+%di", re, im)
	}
}

func digitsLabel(digits []int64, label func(int64) string) string {
	parts := make([]string, len(digits))
	for i, d := range digits {
		parts[i] = label(d)
	}
	return strings.Join(parts, "")
}

func formatMatrix(m interface {
	Dims() (int, int)
	At(i, j int) float64
}) string {
	r, c := m.Dims()
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < r; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("[")
		for j := 0; j < c; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%d", int64(m.At(i, j)))
		}
		b.WriteString("]")
	}
	b.WriteString("]")
	return b.String()
}

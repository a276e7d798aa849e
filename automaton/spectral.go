package automaton

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/padic-tools/padicifs/internal/padicerr"
)

// AdjacencyMatrix builds the DFA's integer adjacency matrix: entry (i,j)
// counts the DFA transitions from state i to state j (a self-loop on two
// different digits counts twice, matching a true multigraph adjacency
// count).
func AdjacencyMatrix(d *DFA) *mat.Dense {
	n := len(d.States)
	data := make([]float64, n*n)
	for i, trans := range d.Transitions {
		for _, j := range trans {
			data[i*n+j]++
		}
	}
	return mat.NewDense(n, n, data)
}

// EigenSolver is the external collaborator spec.md §6.3 calls for: given a
// square matrix, report its spectral radius (largest eigenvalue modulus).
type EigenSolver interface {
	SpectralRadius(m mat.Matrix) (float64, error)
}

// GonumEigenSolver implements EigenSolver with gonum's general eigenvalue
// decomposition.
type GonumEigenSolver struct{}

func (GonumEigenSolver) SpectralRadius(m mat.Matrix) (float64, error) {
	r, c := m.Dims()
	if r != c {
		return 0, padicerr.New(padicerr.MalformedInput, "adjacency matrix must be square, got %dx%d", r, c)
	}
	if r == 0 {
		return 0, nil
	}
	var eig mat.Eigen
	if ok := eig.Factorize(m, mat.EigenRight); !ok {
		return 0, padicerr.New(padicerr.MalformedInput, "eigendecomposition did not converge")
	}
	values := eig.Values(nil)
	maxAbs := 0.0
	for _, v := range values {
		if a := cmplx.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	return maxAbs, nil
}

// HausdorffDimension returns log(rho)/log(p), where rho is the spectral
// radius of the DFA's adjacency matrix (spec.md §4.6).
func HausdorffDimension(solver EigenSolver, d *DFA, p int64) (float64, error) {
	rho, err := solver.SpectralRadius(AdjacencyMatrix(d))
	if err != nil {
		return 0, err
	}
	if rho <= 0 {
		return 0, nil
	}
	return math.Log(rho) / math.Log(float64(p)), nil
}

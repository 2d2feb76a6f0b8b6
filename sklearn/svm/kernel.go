package svm

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/irisvc/core/parallel"
)

// Kernel names accepted by WithKernel.
const (
	KernelLinear  = "linear"
	KernelPoly    = "poly"
	KernelRBF     = "rbf"
	KernelSigmoid = "sigmoid"
)

// gramParallelThreshold is the row count above which the Gram matrix is
// filled by several goroutines.
const gramParallelThreshold = 512

// kernelFunc evaluates k(x, y) for two rows of equal length.
type kernelFunc func(x, y []float64) float64

func newKernel(name string, gamma, coef0 float64, degree int) kernelFunc {
	switch name {
	case KernelLinear:
		return func(x, y []float64) float64 {
			return floats.Dot(x, y)
		}
	case KernelPoly:
		return func(x, y []float64) float64 {
			return math.Pow(gamma*floats.Dot(x, y)+coef0, float64(degree))
		}
	case KernelSigmoid:
		return func(x, y []float64) float64 {
			return math.Tanh(gamma*floats.Dot(x, y) + coef0)
		}
	default:
		return func(x, y []float64) float64 {
			d := floats.Distance(x, y, 2)
			return math.Exp(-gamma * d * d)
		}
	}
}

// gram computes the symmetric kernel matrix of the rows of X.
func gram(X *mat.Dense, k kernelFunc) *mat.SymDense {
	n, _ := X.Dims()
	K := mat.NewSymDense(n, nil)
	parallel.ParallelizeWithThreshold(n, gramParallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			xi := X.RawRowView(i)
			for j := i; j < n; j++ {
				K.SetSym(i, j, k(xi, X.RawRowView(j)))
			}
		}
	})
	return K
}

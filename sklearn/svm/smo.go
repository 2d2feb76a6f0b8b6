package svm

import "math"

// tau replaces a non-positive curvature along the working pair.
const tau = 1e-12

// binaryProblem is the dual of a two-class C-SVC:
//
//	min ½ αᵀQα − eᵀα  s.t.  yᵀα = 0, 0 ≤ α ≤ C
//
// with Q_ij = y_i y_j K(x_i, x_j). K is indexed through rows, which map
// problem positions to rows of the shared Gram matrix.
type binaryProblem struct {
	gram interface{ At(i, j int) float64 }
	rows []int
	y    []float64 // +1 or -1
	c    float64
	tol  float64

	maxIter int
}

// binarySolution holds the dual coefficients and intercept of one
// solved problem. The decision value is Σ alpha_i y_i K(x_i, x) − rho.
type binarySolution struct {
	alpha      []float64
	rho        float64
	iterations int
	converged  bool
}

func (p *binaryProblem) k(i, j int) float64 {
	return p.gram.At(p.rows[i], p.rows[j])
}

// solve runs SMO with second-order working set selection (Fan, Chen
// and Lin, 2005), the same scheme libsvm uses.
func (p *binaryProblem) solve() binarySolution {
	n := len(p.rows)
	alpha := make([]float64, n)
	grad := make([]float64, n)
	diag := make([]float64, n)
	for t := 0; t < n; t++ {
		grad[t] = -1
		diag[t] = p.k(t, t)
	}

	maxIter := p.maxIter
	if maxIter < 0 {
		maxIter = max(10_000_000, 100*n)
	}

	iter := 0
	converged := false
	for iter < maxIter {
		i, j, ok := p.selectWorkingSet(alpha, grad, diag)
		if !ok {
			converged = true
			break
		}
		iter++
		p.update(i, j, alpha, grad, diag)
	}

	return binarySolution{
		alpha:      alpha,
		rho:        p.rho(alpha, grad),
		iterations: iter,
		converged:  converged,
	}
}

func (p *binaryProblem) isUpper(a float64) bool { return a >= p.c }
func (p *binaryProblem) isLower(a float64) bool { return a <= 0 }

// selectWorkingSet picks i as the maximal violator in I_up and j as the
// index in I_low giving the largest decrease of the objective. It
// reports false once the KKT gap falls below tol.
func (p *binaryProblem) selectWorkingSet(alpha, grad, diag []float64) (int, int, bool) {
	gmax := math.Inf(-1)
	gmax2 := math.Inf(-1)
	iIdx, jIdx := -1, -1

	for t := range alpha {
		if p.y[t] > 0 {
			if !p.isUpper(alpha[t]) && -grad[t] >= gmax {
				gmax = -grad[t]
				iIdx = t
			}
		} else if !p.isLower(alpha[t]) && grad[t] >= gmax {
			gmax = grad[t]
			iIdx = t
		}
	}
	if iIdx < 0 {
		return -1, -1, false
	}

	objMin := math.Inf(1)
	for t := range alpha {
		var gradDiff float64
		if p.y[t] > 0 {
			if p.isLower(alpha[t]) {
				continue
			}
			gradDiff = gmax + grad[t]
			gmax2 = math.Max(gmax2, grad[t])
		} else {
			if p.isUpper(alpha[t]) {
				continue
			}
			gradDiff = gmax - grad[t]
			gmax2 = math.Max(gmax2, -grad[t])
		}
		if gradDiff <= 0 {
			continue
		}
		quad := diag[iIdx] + diag[t] - 2*p.k(iIdx, t)
		if quad <= 0 {
			quad = tau
		}
		if obj := -(gradDiff * gradDiff) / quad; obj <= objMin {
			objMin = obj
			jIdx = t
		}
	}

	if gmax+gmax2 < p.tol || jIdx < 0 {
		return -1, -1, false
	}
	return iIdx, jIdx, true
}

// update optimizes the pair (i, j) analytically, clips to the box and
// refreshes the gradient.
func (p *binaryProblem) update(i, j int, alpha, grad, diag []float64) {
	c := p.c
	oldI, oldJ := alpha[i], alpha[j]
	quad := diag[i] + diag[j] - 2*p.k(i, j)
	if quad <= 0 {
		quad = tau
	}

	if p.y[i] != p.y[j] {
		delta := (-grad[i] - grad[j]) / quad
		diff := alpha[i] - alpha[j]
		alpha[i] += delta
		alpha[j] += delta
		if diff > 0 {
			if alpha[j] < 0 {
				alpha[j] = 0
				alpha[i] = diff
			}
		} else if alpha[i] < 0 {
			alpha[i] = 0
			alpha[j] = -diff
		}
		if diff > 0 {
			if alpha[i] > c {
				alpha[i] = c
				alpha[j] = c - diff
			}
		} else if alpha[j] > c {
			alpha[j] = c
			alpha[i] = c + diff
		}
	} else {
		delta := (grad[i] - grad[j]) / quad
		sum := alpha[i] + alpha[j]
		alpha[i] -= delta
		alpha[j] += delta
		if sum > c {
			if alpha[i] > c {
				alpha[i] = c
				alpha[j] = sum - c
			}
			if alpha[j] > c {
				alpha[j] = c
				alpha[i] = sum - c
			}
		} else {
			if alpha[j] < 0 {
				alpha[j] = 0
				alpha[i] = sum
			}
			if alpha[i] < 0 {
				alpha[i] = 0
				alpha[j] = sum
			}
		}
	}

	dI := alpha[i] - oldI
	dJ := alpha[j] - oldJ
	for t := range grad {
		// Q_ti = y_t y_i K_ti
		grad[t] += p.y[t] * (p.y[i]*p.k(t, i)*dI + p.y[j]*p.k(t, j)*dJ)
	}
}

// rho averages y_t·grad_t over free vectors, or takes the midpoint of
// the feasible interval when every α sits on a bound.
func (p *binaryProblem) rho(alpha, grad []float64) float64 {
	ub := math.Inf(1)
	lb := math.Inf(-1)
	sumFree := 0.0
	nFree := 0

	for t := range alpha {
		yg := p.y[t] * grad[t]
		switch {
		case p.isUpper(alpha[t]):
			if p.y[t] < 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		case p.isLower(alpha[t]):
			if p.y[t] > 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		default:
			nFree++
			sumFree += yg
		}
	}

	if nFree > 0 {
		return sumFree / float64(nFree)
	}
	return (ub + lb) / 2
}

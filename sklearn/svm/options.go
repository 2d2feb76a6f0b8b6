package svm

// Option configures an SVC.
type Option func(*SVC)

// WithKernel sets the kernel: "linear", "poly", "rbf" or "sigmoid".
func WithKernel(kernel string) Option {
	return func(s *SVC) {
		s.kernel = kernel
	}
}

// WithC sets the regularization parameter. Must be strictly positive.
func WithC(c float64) Option {
	return func(s *SVC) {
		s.C = c
	}
}

// WithGamma sets a fixed kernel coefficient for rbf, poly and sigmoid.
func WithGamma(gamma float64) Option {
	return func(s *SVC) {
		s.gamma = GammaValue
		s.gammaValue = gamma
	}
}

// WithGammaMode selects how gamma is derived from the training data:
// GammaScale (1 / (n_features * X.var())) or GammaAuto (1 / n_features).
func WithGammaMode(mode string) Option {
	return func(s *SVC) {
		s.gamma = mode
	}
}

// WithDegree sets the degree of the poly kernel.
func WithDegree(degree int) Option {
	return func(s *SVC) {
		s.degree = degree
	}
}

// WithCoef0 sets the independent term of the poly and sigmoid kernels.
func WithCoef0(coef0 float64) Option {
	return func(s *SVC) {
		s.coef0 = coef0
	}
}

// WithTol sets the stopping tolerance on the maximal KKT violation.
func WithTol(tol float64) Option {
	return func(s *SVC) {
		s.tol = tol
	}
}

// WithMaxIter caps the SMO iterations per binary problem. -1 means no
// explicit cap (max(10_000_000, 100*n) iterations).
func WithMaxIter(maxIter int) Option {
	return func(s *SVC) {
		s.maxIter = maxIter
	}
}

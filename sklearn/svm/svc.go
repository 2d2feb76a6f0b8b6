// Package svm provides a C-support vector classifier compatible with
// scikit-learn's SVC. Multi-class problems are decomposed one-vs-one and
// each binary dual is solved by SMO.
package svm

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/irisvc/core/model"
	"github.com/YuminosukeSato/irisvc/pkg/errors"
	"github.com/YuminosukeSato/irisvc/pkg/log"
	"github.com/YuminosukeSato/irisvc/preprocessing"
)

// Gamma modes accepted by WithGammaMode.
const (
	GammaScale = "scale"
	GammaAuto  = "auto"
	GammaValue = "value"
)

// SVC is a C-support vector classifier.
type SVC struct {
	state *model.StateManager

	kernel     string
	C          float64
	gamma      string
	gammaValue float64
	degree     int
	coef0      float64
	tol        float64
	maxIter    int

	encoder *preprocessing.LabelEncoder
	classes []string

	// fitted state
	gamma_         float64
	supportVectors *mat.Dense
	support        []int
	nSupport       []int
	pairs          []pairModel
	kfn            kernelFunc
}

// pairModel is the binary classifier separating classes pos and neg.
// sv indexes rows of SVC.supportVectors.
type pairModel struct {
	pos, neg int
	sv       []int
	coef     []float64
	rho      float64
}

// NewSVC creates an SVC with scikit-learn's defaults: rbf kernel, C=1,
// gamma="scale", degree 3, coef0 0, tol 1e-3 and no iteration limit.
func NewSVC(opts ...Option) *SVC {
	s := &SVC{
		state:   model.NewStateManager(),
		kernel:  KernelRBF,
		C:       1.0,
		gamma:   GammaScale,
		degree:  3,
		coef0:   0,
		tol:     1e-3,
		maxIter: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SVC) validateParams() error {
	switch s.kernel {
	case KernelLinear, KernelPoly, KernelRBF, KernelSigmoid:
	default:
		return errors.NewValidationError("kernel", "must be one of linear, poly, rbf, sigmoid", s.kernel)
	}
	if s.C <= 0 {
		return errors.NewValidationError("C", "must be strictly positive", s.C)
	}
	switch s.gamma {
	case GammaScale, GammaAuto:
	case GammaValue:
		if s.gammaValue <= 0 {
			return errors.NewValidationError("gamma", "must be strictly positive", s.gammaValue)
		}
	default:
		return errors.NewValidationError("gamma", "must be 'scale', 'auto' or a positive float", s.gamma)
	}
	if s.degree < 0 {
		return errors.NewValidationError("degree", "must be non-negative", s.degree)
	}
	if s.tol <= 0 {
		return errors.NewValidationError("tol", "must be strictly positive", s.tol)
	}
	if s.maxIter == 0 || s.maxIter < -1 {
		return errors.NewValidationError("max_iter", "must be positive or -1", s.maxIter)
	}
	return nil
}

// Fit trains one binary SVC per pair of classes.
func (s *SVC) Fit(X mat.Matrix, y []string) (err error) {
	defer errors.Recover(&err, "SVC.Fit")

	if err := s.validateParams(); err != nil {
		return err
	}
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewModelError("SVC.Fit", "empty data", errors.ErrEmptyData)
	}
	if len(y) != rows {
		return errors.NewDimensionError("SVC.Fit", rows, len(y), 0)
	}
	if err := errors.CheckMatrix("SVC.Fit", X, rows, cols, -1); err != nil {
		return err
	}

	encoder := preprocessing.NewLabelEncoder()
	codes, err := encoder.FitTransform(y)
	if err != nil {
		return err
	}
	classes := encoder.Classes()
	if len(classes) < 2 {
		return errors.NewValueError("SVC.Fit", fmt.Sprintf("the number of classes has to be greater than one; got %d class", len(classes)))
	}

	start := time.Now()
	s.state.Reset()
	Xd := mat.DenseCopyOf(X)
	s.gamma_ = s.resolveGamma(Xd)
	s.kfn = newKernel(s.kernel, s.gamma_, s.coef0, s.degree)
	K := gram(Xd, s.kfn)

	byClass := make([][]int, len(classes))
	for i, c := range codes {
		byClass[c] = append(byClass[c], i)
	}

	// 学習行 → サポートベクトル行
	svRow := make(map[int]int)
	var svIndex []int
	type rawPair struct {
		pos, neg int
		rows     []int
		coef     []float64
		rho      float64
	}
	var raw []rawPair

	for a := 0; a < len(classes); a++ {
		for b := a + 1; b < len(classes); b++ {
			rowsAB := append(append([]int(nil), byClass[a]...), byClass[b]...)
			signs := make([]float64, len(rowsAB))
			for t := range signs {
				if t < len(byClass[a]) {
					signs[t] = 1
				} else {
					signs[t] = -1
				}
			}

			problem := &binaryProblem{gram: K, rows: rowsAB, y: signs, c: s.C, tol: s.tol, maxIter: s.maxIter}
			sol := problem.solve()
			if !sol.converged {
				errors.Warn(errors.NewConvergenceWarning("SMO", sol.iterations,
					fmt.Sprintf("classes %q vs %q; consider scaling the features or raising max_iter", classes[a], classes[b])))
			}
			if err := errors.CheckNumericalStability("SVC.Fit dual", sol.alpha, sol.iterations); err != nil {
				return err
			}

			p := rawPair{pos: a, neg: b, rho: sol.rho}
			for t, alpha := range sol.alpha {
				if alpha <= 0 {
					continue
				}
				p.rows = append(p.rows, rowsAB[t])
				p.coef = append(p.coef, signs[t]*alpha)
				if _, ok := svRow[rowsAB[t]]; !ok {
					svRow[rowsAB[t]] = -1
					svIndex = append(svIndex, rowsAB[t])
				}
			}
			raw = append(raw, p)
		}
	}

	// サポートベクトルをクラス順・学習順に並べる
	s.support = s.support[:0]
	s.nSupport = make([]int, len(classes))
	for c, members := range byClass {
		for _, r := range members {
			if _, ok := svRow[r]; ok {
				svRow[r] = len(s.support)
				s.support = append(s.support, r)
				s.nSupport[c]++
			}
		}
	}
	s.supportVectors = mat.NewDense(len(s.support), cols, nil)
	for i, r := range s.support {
		s.supportVectors.SetRow(i, Xd.RawRowView(r))
	}

	s.pairs = make([]pairModel, len(raw))
	for k, p := range raw {
		sv := make([]int, len(p.rows))
		for t, r := range p.rows {
			sv[t] = svRow[r]
		}
		s.pairs[k] = pairModel{pos: p.pos, neg: p.neg, sv: sv, coef: p.coef, rho: p.rho}
	}

	s.encoder = encoder
	s.classes = classes
	s.state.SetDimensions(cols, rows)
	s.state.SetFitted()

	log.GetLoggerWithName("svm").Info("Fitted SVC",
		log.OperationKey, log.OperationFit,
		log.ModelNameKey, "SVC",
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.ClassesKey, len(classes),
		log.SupportVectorsKey, len(svIndex),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// resolveGamma applies the gamma mode to the training matrix.
func (s *SVC) resolveGamma(X *mat.Dense) float64 {
	_, cols := X.Dims()
	switch s.gamma {
	case GammaValue:
		return s.gammaValue
	case GammaAuto:
		return 1 / float64(cols)
	}
	rows, _ := X.Dims()
	all := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		all = append(all, X.RawRowView(i)...)
	}
	v := stat.PopVariance(all, nil)
	if v == 0 {
		return 1
	}
	return 1 / (float64(cols) * v)
}

func (s *SVC) checkInput(op string, X mat.Matrix) (*mat.Dense, error) {
	if err := s.state.RequireFitted("SVC", op); err != nil {
		return nil, err
	}
	rows, cols := X.Dims()
	if err := s.state.RequireFeatures("SVC."+op, cols); err != nil {
		return nil, err
	}
	if err := errors.CheckMatrix("SVC."+op, X, rows, cols, -1); err != nil {
		return nil, err
	}
	return mat.DenseCopyOf(X), nil
}

// decisionValues returns one decision value per class pair for row x.
func (s *SVC) decisionValues(x []float64, kv, out []float64) {
	for i := range kv {
		kv[i] = s.kfn(x, s.supportVectors.RawRowView(i))
	}
	for k, p := range s.pairs {
		sum := 0.0
		for t, sv := range p.sv {
			sum += p.coef[t] * kv[sv]
		}
		out[k] = sum - p.rho
	}
}

// DecisionFunction returns the one-vs-one decision values, shape
// (n_samples, n_classes*(n_classes-1)/2). Column order is (0,1), (0,2),
// ..., (1,2), ... and a positive value favors the first class of the pair.
func (s *SVC) DecisionFunction(X mat.Matrix) (*mat.Dense, error) {
	Xd, err := s.checkInput("DecisionFunction", X)
	if err != nil {
		return nil, err
	}
	rows, _ := Xd.Dims()
	out := mat.NewDense(rows, len(s.pairs), nil)
	kv := make([]float64, len(s.support))
	for i := 0; i < rows; i++ {
		s.decisionValues(Xd.RawRowView(i), kv, out.RawRowView(i))
	}
	return out, nil
}

// Predict returns the class winning the most pairwise votes for each
// row. Ties go to the class that sorts first.
func (s *SVC) Predict(X mat.Matrix) (pred []string, err error) {
	defer errors.Recover(&err, "SVC.Predict")

	Xd, err := s.checkInput("Predict", X)
	if err != nil {
		return nil, err
	}
	rows, _ := Xd.Dims()
	codes := make([]int, rows)
	kv := make([]float64, len(s.support))
	dec := make([]float64, len(s.pairs))
	votes := make([]int, len(s.classes))

	for i := 0; i < rows; i++ {
		s.decisionValues(Xd.RawRowView(i), kv, dec)
		for c := range votes {
			votes[c] = 0
		}
		for k, p := range s.pairs {
			if dec[k] > 0 {
				votes[p.pos]++
			} else {
				votes[p.neg]++
			}
		}
		best := 0
		for c := 1; c < len(votes); c++ {
			if votes[c] > votes[best] {
				best = c
			}
		}
		codes[i] = best
	}

	log.GetLoggerWithName("svm").Debug("Predicted",
		log.OperationKey, log.OperationPredict,
		log.SamplesKey, rows,
	)
	return s.encoder.InverseTransform(codes)
}

// Score returns the mean accuracy of Predict(X) against y.
func (s *SVC) Score(X mat.Matrix, y []string) (float64, error) {
	pred, err := s.Predict(X)
	if err != nil {
		return 0, err
	}
	if len(pred) != len(y) {
		return 0, errors.NewDimensionError("SVC.Score", len(pred), len(y), 0)
	}
	if len(y) == 0 {
		return 0, errors.NewModelError("SVC.Score", "empty data", errors.ErrEmptyData)
	}
	correct := 0
	for i := range y {
		if pred[i] == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(y)), nil
}

// Classes returns the sorted class labels seen during Fit.
func (s *SVC) Classes() []string {
	return append([]string(nil), s.classes...)
}

// NSupport returns the number of support vectors per class.
func (s *SVC) NSupport() []int {
	return append([]int(nil), s.nSupport...)
}

// Support returns the training-row indices of the support vectors,
// grouped by class.
func (s *SVC) Support() []int {
	return append([]int(nil), s.support...)
}

// SupportVectors returns a copy of the support vectors.
func (s *SVC) SupportVectors() *mat.Dense {
	if s.supportVectors == nil {
		return nil
	}
	return mat.DenseCopyOf(s.supportVectors)
}

// Gamma returns the kernel coefficient used by the fitted model.
func (s *SVC) Gamma() float64 {
	return s.gamma_
}

// IsFitted reports whether Fit has completed.
func (s *SVC) IsFitted() bool {
	return s.state.IsFitted()
}

// GetParams returns the hyperparameters.
func (s *SVC) GetParams() map[string]interface{} {
	var gamma interface{} = s.gamma
	if s.gamma == GammaValue {
		gamma = s.gammaValue
	}
	return map[string]interface{}{
		"kernel":   s.kernel,
		"C":        s.C,
		"gamma":    gamma,
		"degree":   s.degree,
		"coef0":    s.coef0,
		"tol":      s.tol,
		"max_iter": s.maxIter,
	}
}

var (
	_ model.Classifier      = (*SVC)(nil)
	_ model.Scorer          = (*SVC)(nil)
	_ model.ParameterGetter = (*SVC)(nil)
)

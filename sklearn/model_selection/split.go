// Package model_selection splits sample indices into train and test sets.
package model_selection

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/YuminosukeSato/irisvc/pkg/errors"
	"github.com/YuminosukeSato/irisvc/pkg/log"
)

// DefaultTestSize is the test fraction used when WithTestSize is not given.
const DefaultTestSize = 0.25

type splitConfig struct {
	testSize    float64
	shuffle     bool
	stratify    []string
	randomState int64 // negative means unseeded
}

// SplitOption configures TrainTestSplit.
type SplitOption func(*splitConfig)

// WithTestSize sets the fraction of samples placed in the test set.
func WithTestSize(size float64) SplitOption {
	return func(c *splitConfig) {
		c.testSize = size
	}
}

// WithShuffle sets whether samples are shuffled before splitting.
// Stratified splits always shuffle.
func WithShuffle(shuffle bool) SplitOption {
	return func(c *splitConfig) {
		c.shuffle = shuffle
	}
}

// WithStratify makes both partitions keep the class proportions of labels.
// labels must have one entry per sample.
func WithStratify(labels []string) SplitOption {
	return func(c *splitConfig) {
		c.stratify = labels
	}
}

// WithRandomState seeds the shuffle. A negative seed draws fresh
// randomness, so every call may return a different partition.
func WithRandomState(seed int64) SplitOption {
	return func(c *splitConfig) {
		c.randomState = seed
	}
}

// TrainTestSplit partitions the indices 0..nSamples-1 into disjoint train
// and test sets whose union is every index.
//
// Sizes follow scikit-learn: nTest = ceil(testSize * nSamples) and
// nTrain = nSamples - nTest. With WithStratify each class contributes to
// both sets in proportion to its frequency, rounded so the totals match.
func TrainTestSplit(nSamples int, opts ...SplitOption) (train, test []int, err error) {
	cfg := splitConfig{
		testSize:    DefaultTestSize,
		shuffle:     true,
		randomState: -1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if nSamples <= 0 {
		return nil, nil, errors.NewModelError("TrainTestSplit", "no samples", errors.ErrEmptyData)
	}
	if cfg.testSize <= 0 || cfg.testSize >= 1 || math.IsNaN(cfg.testSize) {
		return nil, nil, errors.NewValidationError("test_size", "must be in the open interval (0, 1)", cfg.testSize)
	}

	nTest := int(math.Ceil(cfg.testSize * float64(nSamples)))
	nTrain := nSamples - nTest
	if nTrain <= 0 {
		return nil, nil, errors.NewValidationError("test_size",
			"leaves an empty train set", cfg.testSize)
	}

	rng := newRand(cfg.randomState)

	switch {
	case cfg.stratify != nil:
		if len(cfg.stratify) != nSamples {
			return nil, nil, errors.NewDimensionError("TrainTestSplit", nSamples, len(cfg.stratify), 0)
		}
		if !cfg.shuffle {
			return nil, nil, errors.NewValidationError("shuffle", "stratified splits require shuffle", false)
		}
		train, test, err = stratifiedSplit(cfg.stratify, nTrain, nTest, rng)
		if err != nil {
			return nil, nil, err
		}
	case cfg.shuffle:
		perm := rng.Perm(nSamples)
		test = perm[:nTest]
		train = perm[nTest:]
	default:
		train = arange(0, nTrain)
		test = arange(nTrain, nSamples)
	}

	log.GetLoggerWithName("model_selection").Debug("Split samples",
		log.OperationKey, log.OperationSplit,
		log.SamplesKey, nSamples,
		log.TrainSamplesKey, len(train),
		log.TestSamplesKey, len(test),
		log.RandomSeedKey, cfg.randomState,
	)
	return train, test, nil
}

func stratifiedSplit(labels []string, nTrain, nTest int, rng *rand.Rand) (train, test []int, err error) {
	// Group row indices by class, classes in sorted order.
	byClass := make(map[string][]int)
	for i, l := range labels {
		byClass[l] = append(byClass[l], i)
	}
	classes := make([]string, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	counts := make([]int, len(classes))
	for i, c := range classes {
		counts[i] = len(byClass[c])
		if counts[i] < 2 {
			return nil, nil, errors.NewValidationError("stratify",
				"the least populated class has only 1 member, which is too few; every class needs at least 2", c)
		}
	}
	if nTrain < len(classes) {
		return nil, nil, errors.NewValidationError("train_size",
			"should be greater or equal to the number of classes", nTrain)
	}
	if nTest < len(classes) {
		return nil, nil, errors.NewValidationError("test_size",
			"should be greater or equal to the number of classes", nTest)
	}

	trainPerClass := approximateMode(counts, nTrain, rng)
	remaining := make([]int, len(counts))
	for i := range counts {
		remaining[i] = counts[i] - trainPerClass[i]
	}
	testPerClass := approximateMode(remaining, nTest, rng)

	train = make([]int, 0, nTrain)
	test = make([]int, 0, nTest)
	for i, c := range classes {
		idx := byClass[c]
		perm := rng.Perm(len(idx))
		for k := 0; k < trainPerClass[i]; k++ {
			train = append(train, idx[perm[k]])
		}
		for k := trainPerClass[i]; k < trainPerClass[i]+testPerClass[i]; k++ {
			test = append(test, idx[perm[k]])
		}
	}

	rng.Shuffle(len(train), func(i, j int) { train[i], train[j] = train[j], train[i] })
	rng.Shuffle(len(test), func(i, j int) { test[i], test[j] = test[j], test[i] })
	return train, test, nil
}

// approximateMode draws nDraws items from classes with the given counts
// and returns the most likely per-class allocation: the floor of each
// proportional share, with the leftover draws going to the largest
// fractional remainders. Ties are broken at random.
func approximateMode(counts []int, nDraws int, rng *rand.Rand) []int {
	total := 0
	for _, c := range counts {
		total += c
	}

	floored := make([]int, len(counts))
	remainder := make([]float64, len(counts))
	assigned := 0
	for i, c := range counts {
		continuous := float64(c) / float64(total) * float64(nDraws)
		floored[i] = int(math.Floor(continuous))
		remainder[i] = continuous - float64(floored[i])
		assigned += floored[i]
	}

	needToAdd := nDraws - assigned
	if needToAdd <= 0 {
		return floored
	}

	values := uniqueDescending(remainder)
	for _, v := range values {
		var inds []int
		for i, r := range remainder {
			if r == v {
				inds = append(inds, i)
			}
		}
		rng.Shuffle(len(inds), func(i, j int) { inds[i], inds[j] = inds[j], inds[i] })
		addNow := min(len(inds), needToAdd)
		for _, i := range inds[:addNow] {
			floored[i]++
		}
		needToAdd -= addNow
		if needToAdd == 0 {
			break
		}
	}
	return floored
}

func uniqueDescending(values []float64) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	out := make([]float64, 0, len(sorted))
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}

func newRand(seed int64) *rand.Rand {
	if seed < 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

func arange(start, end int) []int {
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}

package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/irisvc/pkg/errors"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 10,
		3, 10,
		4, 10,
	})

	scaler := NewStandardScalerDefault()
	out, err := scaler.FitTransform(X)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{2.5, 10}, scaler.Mean, 1e-12)
	// Population standard deviation of 1..4, constant column keeps scale 1.
	assert.InDeltaSlice(t, []float64{math.Sqrt(1.25), 1}, scaler.Scale, 1e-12)

	col := mat.Col(nil, 0, out)
	assert.InDelta(t, -1.3416407865, col[0], 1e-9)
	assert.InDelta(t, 1.3416407865, col[3], 1e-9)
	assert.Equal(t, 0.0, out.At(2, 1))

	// Input is not modified.
	assert.Equal(t, 1.0, X.At(0, 0))
}

func TestStandardScalerErrors(t *testing.T) {
	scaler := NewStandardScalerDefault()

	_, err := scaler.Transform(mat.NewDense(1, 2, nil))
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))

	require.NoError(t, scaler.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = scaler.Transform(mat.NewDense(1, 3, nil))
	var dim *errors.DimensionError
	assert.True(t, errors.As(err, &dim))

	assert.Error(t, scaler.Fit(&mat.Dense{}))
}

func TestMinMaxScaler(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		0, 5,
		5, 5,
		10, 5,
	})

	scaler := NewMinMaxScalerDefault()
	out, err := scaler.FitTransform(X)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0.5, 1}, mat.Col(nil, 0, out))
	assert.Equal(t, []float64{0, 0, 0}, mat.Col(nil, 1, out))

	bad := NewMinMaxScaler([2]float64{1, 1})
	assert.Error(t, bad.Fit(X))
}

func TestNewScaler(t *testing.T) {
	s, err := NewScaler("standard")
	require.NoError(t, err)
	assert.IsType(t, &StandardScaler{}, s)

	s, err = NewScaler("minmax")
	require.NoError(t, err)
	assert.IsType(t, &MinMaxScaler{}, s)

	_, err = NewScaler("robust")
	assert.Error(t, err)
}

func TestLabelEncoder(t *testing.T) {
	enc := NewLabelEncoder()
	codes, err := enc.FitTransform([]string{"virginica", "setosa", "versicolor", "setosa"})
	require.NoError(t, err)

	assert.Equal(t, []string{"setosa", "versicolor", "virginica"}, enc.Classes())
	assert.Equal(t, []int{2, 0, 1, 0}, codes)

	labels, err := enc.InverseTransform([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"versicolor", "virginica"}, labels)

	_, err = enc.Transform([]string{"rose"})
	assert.Error(t, err)
	_, err = enc.InverseTransform([]int{3})
	assert.Error(t, err)

	assert.Error(t, NewLabelEncoder().Fit(nil))
	_, err = NewLabelEncoder().Transform([]string{"setosa"})
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))
}

package datasets

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/irisvc/pkg/errors"
)

func TestLoadIris(t *testing.T) {
	frame, err := LoadIris()
	require.NoError(t, err)

	assert.Equal(t, 150, frame.Len())
	assert.Equal(t, IrisFeatureNames, frame.FeatureNames())
	assert.Equal(t, []string{"setosa", "versicolor", "virginica"}, frame.TargetNames())

	r, c := frame.Features().Dims()
	assert.Equal(t, 150, r)
	assert.Equal(t, 4, c)

	// First and last rows of the reference table.
	first := mat.Row(nil, 0, frame.Features())
	assert.Equal(t, []float64{5.1, 3.5, 1.4, 0.2}, first)
	last := mat.Row(nil, 149, frame.Features())
	assert.Equal(t, []float64{5.9, 3.0, 5.1, 1.8}, last)

	labels := frame.Labels()
	assert.Equal(t, "setosa", labels[0])
	assert.Equal(t, "versicolor", labels[50])
	assert.Equal(t, "virginica", labels[149])
}

func TestLoadIrisDerivedColumns(t *testing.T) {
	frame, err := LoadIris()
	require.NoError(t, err)

	colors := frame.Colors()
	target := frame.Target()
	require.Len(t, colors, 150)
	for i, c := range colors {
		assert.Equal(t, ClassColors[target[i]], c, "row %d", i)
	}
	assert.Equal(t, color.RGBA{R: 255, A: 255}, colors[0])
}

func TestDescribe(t *testing.T) {
	frame, err := LoadIris()
	require.NoError(t, err)

	summaries := frame.Describe()
	require.Len(t, summaries, 4)

	wantMeans := []float64{5.843333, 3.057333, 3.758, 1.199333}
	for j, s := range summaries {
		assert.InDelta(t, wantMeans[j], s.Mean, 1e-5, s.Name)
	}
	assert.InDelta(t, 0.828066, summaries[0].Std, 1e-5)
	assert.Equal(t, 4.3, summaries[0].Min)
	assert.Equal(t, 7.9, summaries[0].Max)

	out := FormatDescribe(summaries)
	assert.True(t, strings.HasPrefix(out, "feature"))
	assert.Contains(t, out, PetalWidth)
}

func TestColumnAndSubset(t *testing.T) {
	frame, err := LoadIris()
	require.NoError(t, err)

	col, err := frame.Column(PetalLength)
	require.NoError(t, err)
	require.Len(t, col, 150)
	assert.Equal(t, 1.4, col[0])

	_, err = frame.Column("stem length")
	assert.True(t, errors.Is(err, errors.ErrUnknownColumn))

	sub, err := frame.Subset([]int{149, 0, 50})
	require.NoError(t, err)
	assert.Equal(t, 3, sub.Len())
	assert.Equal(t, []string{"virginica", "setosa", "versicolor"}, sub.Labels())
	assert.Equal(t, []int{2, 0, 1}, sub.Target())
	assert.Equal(t, 5.9, sub.Features().At(0, 0))

	_, err = frame.Subset([]int{150})
	assert.Error(t, err)
	_, err = frame.Subset(nil)
	assert.Error(t, err)
}

func TestFrameIsImmutable(t *testing.T) {
	frame, err := LoadIris()
	require.NoError(t, err)

	X := frame.Features()
	X.Set(0, 0, math.NaN())
	target := frame.Target()
	target[0] = 2

	assert.Equal(t, 5.1, frame.Features().At(0, 0))
	assert.Equal(t, "setosa", frame.Labels()[0])
}

func TestLoadCSVErrors(t *testing.T) {
	names := []string{"a", "b"}
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"header only", "1,2,x\n"},
		{"feature count mismatch", "1,3,x\n1,2,3,0\n"},
		{"sample count mismatch", "2,2,x\n1,2,0\n"},
		{"bad float", "1,2,x\n1,abc,0\n"},
		{"bad target", "1,2,x\n1,2,zero\n"},
		{"unknown class", "1,2,x\n1,2,3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadCSV([]byte(tt.raw), names, nil)
			assert.Error(t, err)
		})
	}
}

func TestValueCounts(t *testing.T) {
	counts := ValueCounts([]string{"b", "a", "b", "c", "a", "b"})
	assert.Equal(t, []ValueCount{{"b", 3}, {"a", 2}, {"c", 1}}, counts)

	frame, err := LoadIris()
	require.NoError(t, err)
	iris := ValueCounts(frame.Labels())
	assert.Equal(t, []ValueCount{{"setosa", 50}, {"versicolor", 50}, {"virginica", 50}}, iris)

	out := FormatValueCounts("target_name", iris)
	assert.Equal(t, "target_name\nsetosa        50\nversicolor    50\nvirginica     50\nName: count\n", out)
}

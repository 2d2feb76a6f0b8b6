package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/irisvc/pkg/errors"
)

var (
	sampleTrue = []string{"a", "a", "a", "b", "b", "c"}
	samplePred = []string{"a", "a", "b", "b", "b", "c"}
)

func TestAccuracyScore(t *testing.T) {
	tests := []struct {
		name  string
		yTrue []string
		yPred []string
		want  float64
	}{
		{"perfect", []string{"x", "y", "z"}, []string{"x", "y", "z"}, 1},
		{"partial", sampleTrue, samplePred, 5.0 / 6.0},
		{"zero", []string{"x", "x"}, []string{"y", "y"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AccuracyScore(tt.yTrue, tt.yPred)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestInputErrors(t *testing.T) {
	_, err := AccuracyScore(nil, nil)
	var ve *errors.ValueError
	assert.True(t, errors.As(err, &ve))

	_, err = ConfusionMatrix([]string{"a", "b"}, []string{"a"})
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))

	_, err = NewClassificationReport([]string{"a"}, []string{"a", "b"}, 2)
	assert.True(t, errors.As(err, &de))

	_, err = ConfusionMatrix([]string{"a"}, []string{"a"}, "z")
	assert.True(t, errors.As(err, &ve))

	_, err = ConfusionMatrix([]string{"a"}, []string{"a"}, "a", "a")
	assert.True(t, errors.As(err, &ve))
}

func TestConfusionMatrix(t *testing.T) {
	cm, err := ConfusionMatrix(sampleTrue, samplePred)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, cm.Labels)
	assert.Equal(t, 2, cm.At("a", "a"))
	assert.Equal(t, 1, cm.At("a", "b"))
	assert.Equal(t, 0, cm.At("b", "a"))
	assert.Equal(t, 0, cm.At("a", "missing"))
	assert.Equal(t, len(sampleTrue), cm.Total())

	// 行和は各クラスの真のサンプル数に等しい
	want := map[string]float64{"a": 3, "b": 2, "c": 1}
	for i, label := range cm.Labels {
		row := 0.0
		for j := range cm.Labels {
			row += cm.Counts.At(i, j)
		}
		assert.Equal(t, want[label], row, label)
	}

	assert.Equal(t, "[[2 1 0]\n [0 2 0]\n [0 0 1]]", cm.String())
}

func TestConfusionMatrixExplicitLabels(t *testing.T) {
	cm, err := ConfusionMatrix(sampleTrue, samplePred, "c", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, cm.Labels)
	assert.Equal(t, "[[1 0]\n [0 2]]", cm.String())
}

func TestConfusionMatrixWideCounts(t *testing.T) {
	yTrue := make([]string, 0, 12)
	yPred := make([]string, 0, 12)
	for i := 0; i < 10; i++ {
		yTrue = append(yTrue, "x")
		yPred = append(yPred, "x")
	}
	yTrue = append(yTrue, "y", "y")
	yPred = append(yPred, "x", "y")

	cm, err := ConfusionMatrix(yTrue, yPred)
	require.NoError(t, err)
	assert.Equal(t, "[[10  0]\n [ 1  1]]", cm.String())
}

func TestPrecisionRecallFScoreSupport(t *testing.T) {
	scores, err := PrecisionRecallFScoreSupport(sampleTrue, samplePred)
	require.NoError(t, err)
	require.Len(t, scores, 3)

	assert.Equal(t, "a", scores[0].Label)
	assert.InDelta(t, 1.0, scores[0].Precision, 1e-12)
	assert.InDelta(t, 2.0/3.0, scores[0].Recall, 1e-12)
	assert.InDelta(t, 0.8, scores[0].F1, 1e-12)
	assert.Equal(t, 3, scores[0].Support)

	assert.InDelta(t, 2.0/3.0, scores[1].Precision, 1e-12)
	assert.InDelta(t, 1.0, scores[1].Recall, 1e-12)

	support := 0
	for _, s := range scores {
		support += s.Support
	}
	assert.Equal(t, len(sampleTrue), support)
}

func TestUndefinedMetricWarning(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(func(w error) {})

	// "b" is never predicted
	scores, err := PrecisionRecallFScoreSupport([]string{"a", "b"}, []string{"a", "a"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, scores[1].Precision)
	assert.Equal(t, 0.0, scores[1].F1)

	require.Len(t, warnings, 1)
	var um *errors.UndefinedMetricWarning
	require.True(t, errors.As(warnings[0], &um))
	assert.Equal(t, "precision", um.Metric)
	assert.Contains(t, um.Condition, "[b]")
}

func TestBalancedAccuracyScore(t *testing.T) {
	got, err := BalancedAccuracyScore(sampleTrue, samplePred)
	require.NoError(t, err)
	assert.InDelta(t, (2.0/3.0+1+1)/3, got, 1e-12)

	// a predicted-only class does not count
	got, err = BalancedAccuracyScore([]string{"a", "a"}, []string{"a", "z"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)
}

func TestClassificationReport(t *testing.T) {
	report, err := NewClassificationReport(sampleTrue, samplePred, 2)
	require.NoError(t, err)

	assert.InDelta(t, 5.0/6.0, report.Accuracy, 1e-12)
	assert.Equal(t, 6, report.MacroAvg.Support)
	assert.InDelta(t, (1+2.0/3.0+1)/3, report.MacroAvg.Precision, 1e-12)
	assert.InDelta(t, 5.0/6.0, report.WeightedAvg.Recall, 1e-12)

	want := "              precision    recall  f1-score   support\n\n" +
		"           a       1.00      0.67      0.80         3\n" +
		"           b       0.67      1.00      0.80         2\n" +
		"           c       1.00      1.00      1.00         1\n\n" +
		"    accuracy                           0.83         6\n" +
		"   macro avg       0.89      0.89      0.87         6\n" +
		"weighted avg       0.89      0.83      0.83         6\n"
	assert.Equal(t, want, report.String())
}

func TestClassificationReportLongLabels(t *testing.T) {
	yTrue := []string{"setosa", "versicolor", "virginica"}
	report, err := NewClassificationReport(yTrue, yTrue, 3)
	require.NoError(t, err)

	lines := report.String()
	assert.Contains(t, lines, "  versicolor      1.000     1.000     1.000         1\n")
	assert.Contains(t, lines, "    accuracy                          1.000         3\n")
}

package plotting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/irisvc/metrics"
	"github.com/YuminosukeSato/irisvc/pkg/errors"
	"github.com/YuminosukeSato/irisvc/sklearn/datasets"
)

func assertFigure(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestScatter(t *testing.T) {
	frame, err := datasets.LoadIris()
	require.NoError(t, err)

	p, err := Scatter(frame, datasets.SepalLength, datasets.SepalWidth)
	require.NoError(t, err)
	assert.Equal(t, datasets.SepalLength, p.X.Label.Text)
	assert.Equal(t, datasets.SepalWidth, p.Y.Label.Text)

	path := filepath.Join(t.TempDir(), "nested", "sepal.png")
	require.NoError(t, Save(p, path, DefaultWidth, DefaultHeight))
	assertFigure(t, path)
}

func TestScatterUnknownColumn(t *testing.T) {
	frame, err := datasets.LoadIris()
	require.NoError(t, err)

	_, err = Scatter(frame, "petal area", datasets.PetalWidth)
	assert.True(t, errors.Is(err, errors.ErrUnknownColumn))
}

func TestConfusionGridOrientation(t *testing.T) {
	cm, err := metrics.ConfusionMatrix(
		[]string{"a", "a", "b", "b"},
		[]string{"a", "b", "b", "b"},
	)
	require.NoError(t, err)

	g := confusionGrid{cm: cm, n: 2}
	// 上段 (r=1) が最初のラベル "a"
	assert.Equal(t, 1.0, g.Z(0, 1)) // a→a
	assert.Equal(t, 1.0, g.Z(1, 1)) // a→b
	assert.Equal(t, 0.0, g.Z(0, 0)) // b→a
	assert.Equal(t, 2.0, g.Z(1, 0)) // b→b
}

func TestConfusionMatrixHeatMap(t *testing.T) {
	cm, err := metrics.ConfusionMatrix(
		[]string{"setosa", "versicolor", "virginica", "virginica"},
		[]string{"setosa", "versicolor", "virginica", "versicolor"},
	)
	require.NoError(t, err)

	p, err := ConfusionMatrixHeatMap(cm, WithTitle("iris"), WithAxisLabels("pred", "true"))
	require.NoError(t, err)
	assert.Equal(t, "iris", p.Title.Text)
	assert.Equal(t, "pred", p.X.Label.Text)

	dir := t.TempDir()
	for _, name := range []string{"cm.png", "cm.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(p, path, DefaultWidth, DefaultHeight))
		assertFigure(t, path)
	}
}

func TestConfusionMatrixHeatMapUniform(t *testing.T) {
	cm, err := metrics.ConfusionMatrix([]string{"a"}, []string{"a"})
	require.NoError(t, err)

	p, err := ConfusionMatrixHeatMap(cm)
	require.NoError(t, err)
	require.NoError(t, Save(p, filepath.Join(t.TempDir(), "one.png"), DefaultWidth, DefaultHeight))
}

func TestHeatMapErrors(t *testing.T) {
	_, err := ConfusionMatrixHeatMap(nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	cm, err := metrics.ConfusionMatrix([]string{"a", "b"}, []string{"a", "b"})
	require.NoError(t, err)
	_, err = ConfusionMatrixHeatMap(cm, WithPalette("NoSuchPalette", 9))
	assert.Error(t, err)
}

func TestSaveInvalidSize(t *testing.T) {
	cm, err := metrics.ConfusionMatrix([]string{"a", "b"}, []string{"a", "b"})
	require.NoError(t, err)
	p, err := ConfusionMatrixHeatMap(cm)
	require.NoError(t, err)

	err = Save(p, filepath.Join(t.TempDir(), "x.png"), 0, DefaultHeight)
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))
}

package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/irisvc/pkg/errors"
	"github.com/YuminosukeSato/irisvc/pkg/log"
)

func withTestLogger(t *testing.T) *log.TestLogger {
	t.Helper()
	prev := log.GetLogger()
	logger, _ := log.NewTestLogger(log.LevelDebug)
	log.SetLogger(logger)
	t.Cleanup(func() { log.SetLogger(prev) })
	return logger
}

func TestRun(t *testing.T) {
	logger := withTestLogger(t)
	dir := t.TempDir()

	var out bytes.Buffer
	res, err := Run(context.Background(), DefaultConfig(WithSeed(7), WithOutputDir(dir)), &out)
	require.NoError(t, err)

	assert.Len(t, res.Train, 135)
	assert.Len(t, res.Test, 15)
	assert.Len(t, res.YPred, 15)

	// 層化により各クラス 5 行
	require.Equal(t, []string{"setosa", "versicolor", "virginica"}, res.Confusion.Labels)
	for i := range res.Confusion.Labels {
		row := 0.0
		for j := range res.Confusion.Labels {
			row += res.Confusion.Counts.At(i, j)
		}
		assert.Equal(t, 5.0, row)
	}
	assert.Equal(t, 15, res.Report.WeightedAvg.Support)
	assert.GreaterOrEqual(t, res.Accuracy, 0.8)
	assert.Equal(t, "rbf", res.Params["kernel"])

	require.Len(t, res.Figures, 3)
	for _, name := range []string{"sepal_scatter.png", "petal_scatter.png", "confusion_matrix.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size())
	}

	text := out.String()
	assert.Contains(t, text, "target_name\nsetosa        50\nversicolor    50\nvirginica     50\nName: count\n")
	// 分割後は同数のクラスが出現順に並ぶ
	for _, line := range []string{
		"setosa        45\n", "versicolor    45\n", "virginica     45\n",
		"setosa         5\n", "versicolor     5\n", "virginica      5\n",
	} {
		assert.Contains(t, text, line)
	}
	assert.Contains(t, text, "true: ['")
	assert.Contains(t, text, "pred: ['")
	assert.Contains(t, text, "accuracy:  ")
	assert.Contains(t, text, "classification report: \n              precision")
	assert.Contains(t, text, "confusion matrix: \n[[")

	assert.True(t, logger.ContainsField(log.StageKey, StageEvaluate))
	assert.True(t, logger.ContainsMessage("Saved figure"))
}

func TestRunAccuracy(t *testing.T) {
	withTestLogger(t)

	sum := 0.0
	const runs = 5
	for seed := int64(0); seed < runs; seed++ {
		res, err := Run(context.Background(),
			DefaultConfig(WithSeed(seed), WithOutputDir(t.TempDir()), WithFigureFormat("svg")),
			&bytes.Buffer{})
		require.NoError(t, err)
		sum += res.Accuracy
	}
	assert.Greater(t, sum/runs, 0.9)
}

func TestRunDeterministicWithSeed(t *testing.T) {
	withTestLogger(t)

	run := func() *Result {
		res, err := Run(context.Background(), DefaultConfig(WithSeed(3), WithOutputDir(t.TempDir())), &bytes.Buffer{})
		require.NoError(t, err)
		return res
	}
	a, b := run(), run()
	assert.Equal(t, a.Test, b.Test)
	assert.Equal(t, a.YPred, b.YPred)
}

func TestRunWithScaler(t *testing.T) {
	withTestLogger(t)

	res, err := Run(context.Background(),
		DefaultConfig(WithSeed(1), WithScaler("standard"), WithOutputDir(t.TempDir())),
		&bytes.Buffer{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Accuracy, 0.8)
}

func TestRunFailures(t *testing.T) {
	withTestLogger(t)

	t.Run("invalid config", func(t *testing.T) {
		for _, cfg := range []Config{
			DefaultConfig(WithTestSize(1.5)),
			DefaultConfig(WithScaler("robust")),
			DefaultConfig(WithOutputDir("")),
			DefaultConfig(WithFigureFormat("bmp")),
			DefaultConfig(WithFigureSize(0, 4)),
			DefaultConfig(WithShuffle(false)),
		} {
			_, err := Run(context.Background(), cfg, &bytes.Buffer{})
			var ve *errors.ValidationError
			assert.True(t, errors.As(err, &ve), "%+v", cfg)
		}
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Run(ctx, DefaultConfig(WithOutputDir(t.TempDir())), &bytes.Buffer{})
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("unwritable output", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		_, err := Run(context.Background(), DefaultConfig(WithOutputDir(filepath.Join(blocker, "figs"))), &bytes.Buffer{})
		var me *errors.ModelError
		require.True(t, errors.As(err, &me))
		assert.Equal(t, "pipeline."+StageVisualize, me.Op)
	})
}

func TestPyList(t *testing.T) {
	assert.Equal(t, "['setosa', 'virginica']", pyList([]string{"setosa", "virginica"}))
	assert.Equal(t, "[]", pyList(nil))
}

// Package pipeline runs the iris walkthrough end to end: load, plot,
// split, train an SVC and evaluate it on the held-out rows.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"

	"github.com/YuminosukeSato/irisvc/core/model"
	"github.com/YuminosukeSato/irisvc/metrics"
	"github.com/YuminosukeSato/irisvc/pkg/errors"
	"github.com/YuminosukeSato/irisvc/pkg/log"
	"github.com/YuminosukeSato/irisvc/plotting"
	"github.com/YuminosukeSato/irisvc/preprocessing"
	"github.com/YuminosukeSato/irisvc/sklearn/datasets"
	"github.com/YuminosukeSato/irisvc/sklearn/model_selection"
	"github.com/YuminosukeSato/irisvc/sklearn/svm"
)

// Stage names, in execution order.
const (
	StageLoad      = "load"
	StageVisualize = "visualize"
	StageSplit     = "split"
	StageTrain     = "train"
	StageEvaluate  = "evaluate"
)

// Result collects what a Run produced.
type Result struct {
	Train []int
	Test  []int

	YTrue []string
	YPred []string

	Accuracy         float64
	BalancedAccuracy float64
	Report           *metrics.ClassificationReport
	Confusion        *metrics.Confusion

	Params  map[string]interface{}
	Figures []string
}

// runner carries state between stages.
type runner struct {
	cfg    Config
	out    io.Writer
	logger log.Logger

	frame  *datasets.Frame
	train  *datasets.Frame
	test   *datasets.Frame
	scaler model.Transformer
	clf    *svm.SVC
	result *Result
}

// Run executes the stages in order, printing the console report to out
// and writing the figures under cfg.OutputDir. The first failing stage
// aborts the run.
func Run(ctx context.Context, cfg Config, out io.Writer) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &runner{
		cfg:    cfg,
		out:    out,
		logger: log.GetLoggerWithName("pipeline"),
		result: &Result{},
	}
	stages := []struct {
		name string
		fn   func() error
	}{
		{StageLoad, r.load},
		{StageVisualize, r.visualize},
		{StageSplit, r.split},
		{StageTrain, r.fit},
		{StageEvaluate, r.evaluate},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "before stage %s", stage.name)
		}
		start := time.Now()
		if err := errors.SafeExecute("pipeline."+stage.name, stage.fn); err != nil {
			r.logger.Error("Stage failed", err, log.StageKey, stage.name)
			return nil, errors.NewModelError("pipeline."+stage.name, "stage failed", err)
		}
		r.logger.Debug("Stage completed",
			log.StageKey, stage.name,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}
	return r.result, nil
}

func (r *runner) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *runner) load() error {
	frame, err := datasets.LoadIris()
	if err != nil {
		return err
	}
	r.frame = frame

	r.printf("\n")
	r.printf("%s\n", datasets.FormatDescribe(frame.Describe()))
	return nil
}

func (r *runner) visualize() error {
	pairs := []struct {
		file string
		x, y string
	}{
		{"sepal_scatter", datasets.SepalLength, datasets.SepalWidth},
		{"petal_scatter", datasets.PetalLength, datasets.PetalWidth},
	}
	for _, pair := range pairs {
		p, err := plotting.Scatter(r.frame, pair.x, pair.y)
		if err != nil {
			return err
		}
		if err := r.saveFigure(p, pair.file); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) saveFigure(p *plot.Plot, name string) error {
	path := filepath.Join(r.cfg.OutputDir, name+"."+r.cfg.FigureFormat)
	if err := plotting.Save(p, path, r.cfg.FigureWidth, r.cfg.FigureHeight); err != nil {
		return err
	}
	r.result.Figures = append(r.result.Figures, path)
	r.logger.Info("Saved figure", log.OperationKey, log.OperationRender, log.OutputPathKey, path)
	return nil
}

func (r *runner) split() error {
	opts := []model_selection.SplitOption{
		model_selection.WithTestSize(r.cfg.TestSize),
		model_selection.WithShuffle(r.cfg.Shuffle),
	}
	if r.cfg.Stratify {
		opts = append(opts, model_selection.WithStratify(r.frame.Labels()))
	}
	if r.cfg.Seed >= 0 {
		opts = append(opts, model_selection.WithRandomState(r.cfg.Seed))
	}

	trainIdx, testIdx, err := model_selection.TrainTestSplit(r.frame.Len(), opts...)
	if err != nil {
		return err
	}
	if r.train, err = r.frame.Subset(trainIdx); err != nil {
		return err
	}
	if r.test, err = r.frame.Subset(testIdx); err != nil {
		return err
	}
	r.result.Train = trainIdx
	r.result.Test = testIdx

	for _, f := range []*datasets.Frame{r.frame, r.train, r.test} {
		r.printf("%s", datasets.FormatValueCounts("target_name", datasets.ValueCounts(f.Labels())))
	}

	r.logger.Info("Split dataset",
		log.OperationKey, log.OperationSplit,
		log.TrainSamplesKey, len(trainIdx),
		log.TestSamplesKey, len(testIdx),
		log.RandomSeedKey, r.cfg.Seed,
	)
	return nil
}

// features returns X for f, scaled when a scaler is configured.
func (r *runner) features(f *datasets.Frame, fit bool) (mat.Matrix, error) {
	X := f.Features()
	if r.scaler == nil {
		return X, nil
	}
	if fit {
		return r.scaler.FitTransform(X)
	}
	return r.scaler.Transform(X)
}

func (r *runner) fit() error {
	if r.cfg.Scaler != "" {
		scaler, err := preprocessing.NewScaler(r.cfg.Scaler)
		if err != nil {
			return err
		}
		r.scaler = scaler
	}

	X, err := r.features(r.train, true)
	if err != nil {
		return err
	}

	r.clf = svm.NewSVC()
	if err := r.clf.Fit(X, r.train.Labels()); err != nil {
		return err
	}
	r.result.Params = r.clf.GetParams()

	r.logger.Info("Trained classifier",
		log.ModelNameKey, "SVC",
		log.PhaseKey, log.PhaseTraining,
		log.HyperParamsKey, r.result.Params,
	)
	return nil
}

func (r *runner) evaluate() error {
	X, err := r.features(r.test, false)
	if err != nil {
		return err
	}
	yTrue := r.test.Labels()
	yPred, err := r.clf.Predict(X)
	if err != nil {
		return err
	}

	res := r.result
	res.YTrue, res.YPred = yTrue, yPred
	r.printf("true: %s\n", pyList(yTrue))
	r.printf("pred: %s\n", pyList(yPred))

	if res.Accuracy, err = metrics.AccuracyScore(yTrue, yPred); err != nil {
		return err
	}
	if res.BalancedAccuracy, err = metrics.BalancedAccuracyScore(yTrue, yPred); err != nil {
		return err
	}
	r.printf("accuracy: % .3f\n", res.Accuracy)
	r.printf("balanced accuracy: % .3f\n", res.BalancedAccuracy)

	if res.Report, err = metrics.NewClassificationReport(yTrue, yPred, r.cfg.ReportDigits); err != nil {
		return err
	}
	r.printf("classification report: \n%s\n", res.Report)

	if res.Confusion, err = metrics.ConfusionMatrix(yTrue, yPred); err != nil {
		return err
	}
	r.printf("confusion matrix: \n%s\n", res.Confusion)

	p, err := plotting.ConfusionMatrixHeatMap(res.Confusion)
	if err != nil {
		return err
	}
	if err := r.saveFigure(p, "confusion_matrix"); err != nil {
		return err
	}

	r.logger.Info("Evaluated classifier",
		log.PhaseKey, log.PhaseTesting,
		log.TestSamplesKey, len(yTrue),
		log.AccuracyKey, res.Accuracy,
		log.BalancedAccuracyKey, res.BalancedAccuracy,
	)
	return nil
}

// pyList formats labels as a quoted list: ['a', 'b'].
func pyList(labels []string) string {
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = "'" + l + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

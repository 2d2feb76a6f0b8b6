// Package datasets bundles reference datasets as in-memory Frames.
package datasets

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/irisvc/pkg/errors"
	"github.com/YuminosukeSato/irisvc/pkg/log"
)

//go:embed data/iris.csv
var irisCSV []byte

// Iris feature column names.
const (
	SepalLength = "sepal length (cm)"
	SepalWidth  = "sepal width (cm)"
	PetalLength = "petal length (cm)"
	PetalWidth  = "petal width (cm)"
)

// IrisFeatureNames lists the iris feature columns in file order.
var IrisFeatureNames = []string{SepalLength, SepalWidth, PetalLength, PetalWidth}

// ClassColors is the fixed class color assignment: 0 red, 1 green, 2 blue.
var ClassColors = map[int]color.Color{
	0: color.RGBA{R: 255, A: 255},
	1: color.RGBA{G: 128, A: 255},
	2: color.RGBA{B: 255, A: 255},
}

// LoadIris parses the bundled iris dataset: 150 samples, four features and
// three classes (setosa, versicolor, virginica), with the class name and
// color columns derived from the target.
func LoadIris() (*Frame, error) {
	return loadCSV(irisCSV, IrisFeatureNames, ClassColors)
}

// loadCSV reads the scikit-learn bundled layout: a header line
// "n_samples,n_features,class names..." followed by rows of features and
// an integer target.
func loadCSV(raw []byte, featureNames []string, classColors map[int]color.Color) (*Frame, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "datasets: read csv")
	}
	if len(records) < 2 {
		return nil, errors.NewModelError("datasets.loadCSV", "no samples", errors.ErrEmptyData)
	}

	header := records[0]
	if len(header) < 3 {
		return nil, errors.NewValueError("datasets.loadCSV", fmt.Sprintf("malformed header %v", header))
	}
	nSamples, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, errors.Wrap(err, "datasets: parse sample count")
	}
	nFeatures, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, errors.Wrap(err, "datasets: parse feature count")
	}
	if nFeatures != len(featureNames) {
		return nil, errors.NewDimensionError("datasets.loadCSV", len(featureNames), nFeatures, 1)
	}
	if len(records)-1 != nSamples {
		return nil, errors.NewDimensionError("datasets.loadCSV", nSamples, len(records)-1, 0)
	}
	targetNames := header[2:]

	data := mat.NewDense(nSamples, nFeatures, nil)
	target := make([]int, nSamples)
	for i, rec := range records[1:] {
		if len(rec) != nFeatures+1 {
			return nil, errors.NewValueError("datasets.loadCSV", fmt.Sprintf("row %d has %d fields, want %d", i, len(rec), nFeatures+1))
		}
		for j := 0; j < nFeatures; j++ {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "datasets: row %d column %d", i, j)
			}
			data.Set(i, j, v)
		}
		t, err := strconv.Atoi(rec[nFeatures])
		if err != nil {
			return nil, errors.Wrapf(err, "datasets: row %d target", i)
		}
		target[i] = t
	}

	frame, err := NewFrame(featureNames, data, target, targetNames, classColors)
	if err != nil {
		return nil, err
	}

	log.GetLoggerWithName("datasets").Debug("Loaded dataset",
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.ClassesKey, len(targetNames),
	)
	return frame, nil
}

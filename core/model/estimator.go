// Package model defines the estimator contracts shared by the classifier,
// the preprocessing transformers and the pipeline.
package model

import "gonum.org/v1/gonum/mat"

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// Classifier is a supervised model trained on string class labels, as
// scikit-learn estimators accept class names directly.
type Classifier interface {
	// Fit trains the model on X (n_samples × n_features) and one label per row.
	Fit(X mat.Matrix, y []string) error

	// Predict returns one label per row of X, in row order.
	Predict(X mat.Matrix) ([]string, error)

	// Classes returns the sorted class labels seen during Fit.
	Classes() []string
}

// Scorer is implemented by classifiers that report mean accuracy.
type Scorer interface {
	Score(X mat.Matrix, y []string) (float64, error)
}

// ParameterGetter exposes model hyperparameters for logging.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}

// Package irisvc classifies iris flowers with a support vector machine,
// following the classic scikit-learn walkthrough in Go.
//
// The run loads the bundled iris dataset, draws two scatter plots
// colored by class, holds out a stratified 10% of the rows, trains an
// RBF-kernel SVC on the rest and reports accuracy, a classification
// report and a confusion matrix, also drawn as a heat map.
//
// # Quick Start
//
//	go run ./examples/iris_svc -out figures -seed 42
//
// or from code:
//
//	res, err := pipeline.Run(ctx, pipeline.DefaultConfig(pipeline.WithSeed(42)), os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Confusion)
//
// # Packages
//
//   - sklearn/datasets: the embedded iris table, value counts and a feature summary
//   - sklearn/model_selection: shuffled, stratified train/test split
//   - sklearn/svm: C-SVC (linear, poly, rbf, sigmoid kernels; one-vs-one)
//   - preprocessing: label encoding and optional feature scaling
//   - metrics: accuracy, balanced accuracy, confusion matrix, classification report
//   - plotting: scatter plots and confusion matrix heat map (gonum/plot)
//   - pipeline: the end-to-end run
//   - core/model, core/parallel: estimator contracts and the worker helper
//   - pkg/errors, pkg/log: typed errors over cockroachdb/errors, zerolog logging
//
// # scikit-learn Compatibility
//
// Defaults match scikit-learn: SVC uses kernel="rbf", C=1 and
// gamma="scale"; train_test_split sizes the test set as
// ceil(test_size * n) and allocates strata the same way.
package irisvc

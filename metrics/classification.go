// Package metrics implements classification metrics on string labels:
// accuracy, balanced accuracy, the confusion matrix and the per-class
// precision / recall / F1 report.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/YuminosukeSato/irisvc/pkg/errors"
)

// ClassScore holds the per-class metrics of a classification report.
type ClassScore struct {
	Label     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// checkTargets は yTrue と yPred の長さを検証する
func checkTargets(op string, yTrue, yPred []string) error {
	if len(yTrue) == 0 {
		return errors.NewValueError(op, "empty label vector")
	}
	if len(yPred) != len(yTrue) {
		return errors.NewDimensionError(op, len(yTrue), len(yPred), 0)
	}
	return nil
}

// uniqueLabels returns the sorted union of labels in both vectors.
func uniqueLabels(yTrue, yPred []string) []string {
	seen := make(map[string]struct{}, 8)
	for _, l := range yTrue {
		seen[l] = struct{}{}
	}
	for _, l := range yPred {
		seen[l] = struct{}{}
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// AccuracyScore は正解率（一致したラベルの割合）を計算する
func AccuracyScore(yTrue, yPred []string) (float64, error) {
	if err := checkTargets("AccuracyScore", yTrue, yPred); err != nil {
		return 0, err
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// BalancedAccuracyScore は各クラスの再現率の平均を計算する。
// yTrue に現れないクラスは平均から除外する。
func BalancedAccuracyScore(yTrue, yPred []string) (float64, error) {
	scores, err := prfs("BalancedAccuracyScore", yTrue, yPred, false)
	if err != nil {
		return 0, err
	}
	var sum float64
	n := 0
	for _, s := range scores {
		if s.Support == 0 {
			continue
		}
		sum += s.Recall
		n++
	}
	return sum / float64(n), nil
}

// PrecisionRecallFScoreSupport computes precision, recall, F1 and
// support for every label in the sorted union of yTrue and yPred.
// Undefined ratios are set to 0 and reported through errors.Warn.
func PrecisionRecallFScoreSupport(yTrue, yPred []string) ([]ClassScore, error) {
	return prfs("PrecisionRecallFScoreSupport", yTrue, yPred, true)
}

func prfs(op string, yTrue, yPred []string, warn bool) ([]ClassScore, error) {
	cm, err := confusion(op, yTrue, yPred, nil)
	if err != nil {
		return nil, err
	}

	n := len(cm.Labels)
	scores := make([]ClassScore, n)
	var noPred, noTrue []string
	for k, label := range cm.Labels {
		tp := cm.Counts.At(k, k)
		var predicted, actual float64
		for j := 0; j < n; j++ {
			predicted += cm.Counts.At(j, k)
			actual += cm.Counts.At(k, j)
		}

		s := ClassScore{Label: label, Support: int(actual)}
		if predicted > 0 {
			s.Precision = tp / predicted
		} else {
			noPred = append(noPred, label)
		}
		if actual > 0 {
			s.Recall = tp / actual
		} else {
			noTrue = append(noTrue, label)
		}
		if s.Precision+s.Recall > 0 {
			s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
		}
		scores[k] = s
	}

	if warn {
		if len(noPred) > 0 {
			errors.Warn(errors.NewUndefinedMetricWarning("precision",
				fmt.Sprintf("no predicted samples in labels [%s]", strings.Join(noPred, " ")), 0))
		}
		if len(noTrue) > 0 {
			errors.Warn(errors.NewUndefinedMetricWarning("recall",
				fmt.Sprintf("no true samples in labels [%s]", strings.Join(noTrue, " ")), 0))
		}
	}
	return scores, nil
}

package metrics

import (
	"fmt"
	"strings"
)

// Average is a row of averaged scores in a classification report.
type Average struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// ClassificationReport summarizes per-class precision, recall and F1
// together with accuracy and the macro and support-weighted averages.
type ClassificationReport struct {
	Classes     []ClassScore
	Accuracy    float64
	MacroAvg    Average
	WeightedAvg Average
	Digits      int
}

// NewClassificationReport computes the report. digits controls the
// decimals printed by String and defaults to 2 when not positive.
func NewClassificationReport(yTrue, yPred []string, digits int) (*ClassificationReport, error) {
	if digits <= 0 {
		digits = 2
	}
	scores, err := PrecisionRecallFScoreSupport(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	acc, err := AccuracyScore(yTrue, yPred)
	if err != nil {
		return nil, err
	}

	r := &ClassificationReport{Classes: scores, Accuracy: acc, Digits: digits}
	total := 0
	for _, s := range scores {
		r.MacroAvg.Precision += s.Precision
		r.MacroAvg.Recall += s.Recall
		r.MacroAvg.F1 += s.F1

		w := float64(s.Support)
		r.WeightedAvg.Precision += s.Precision * w
		r.WeightedAvg.Recall += s.Recall * w
		r.WeightedAvg.F1 += s.F1 * w
		total += s.Support
	}
	n := float64(len(scores))
	r.MacroAvg.Precision /= n
	r.MacroAvg.Recall /= n
	r.MacroAvg.F1 /= n
	r.MacroAvg.Support = total

	r.WeightedAvg.Precision /= float64(total)
	r.WeightedAvg.Recall /= float64(total)
	r.WeightedAvg.F1 /= float64(total)
	r.WeightedAvg.Support = total
	return r, nil
}

// String lays the report out like scikit-learn's classification_report.
func (r *ClassificationReport) String() string {
	const lastHeading = "weighted avg"
	width := max(len(lastHeading), r.Digits)
	for _, s := range r.Classes {
		width = max(width, len(s.Label))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%*s ", width, "")
	for _, h := range []string{"precision", "recall", "f1-score", "support"} {
		fmt.Fprintf(&b, " %9s", h)
	}
	b.WriteString("\n\n")

	row := func(name string, p, rec, f float64, support int) {
		fmt.Fprintf(&b, "%*s  %9.*f %9.*f %9.*f %9d\n",
			width, name, r.Digits, p, r.Digits, rec, r.Digits, f, support)
	}
	for _, s := range r.Classes {
		row(s.Label, s.Precision, s.Recall, s.F1, s.Support)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%*s  %9s %9s %9.*f %9d\n", width, "accuracy", "", "", r.Digits, r.Accuracy, r.MacroAvg.Support)
	row("macro avg", r.MacroAvg.Precision, r.MacroAvg.Recall, r.MacroAvg.F1, r.MacroAvg.Support)
	row(lastHeading, r.WeightedAvg.Precision, r.WeightedAvg.Recall, r.WeightedAvg.F1, r.WeightedAvg.Support)
	return b.String()
}

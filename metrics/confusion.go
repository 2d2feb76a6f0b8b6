package metrics

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/irisvc/pkg/errors"
)

// Confusion is a labeled confusion matrix. Counts[i][j] is the number of
// samples whose true label is Labels[i] and predicted label is Labels[j].
type Confusion struct {
	Labels []string
	Counts *mat.Dense
}

// ConfusionMatrix builds the confusion matrix of yTrue against yPred.
// Without explicit labels the rows and columns follow the sorted union of
// both vectors. Pairs involving a label outside the list are ignored.
func ConfusionMatrix(yTrue, yPred []string, labels ...string) (*Confusion, error) {
	return confusion("ConfusionMatrix", yTrue, yPred, labels)
}

func confusion(op string, yTrue, yPred, labels []string) (*Confusion, error) {
	if err := checkTargets(op, yTrue, yPred); err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		labels = uniqueLabels(yTrue, yPred)
	}

	index := make(map[string]int, len(labels))
	for i, l := range labels {
		if _, dup := index[l]; dup {
			return nil, errors.NewValueError(op, fmt.Sprintf("duplicate label %q", l))
		}
		index[l] = i
	}

	counts := mat.NewDense(len(labels), len(labels), nil)
	matched := 0
	for i := range yTrue {
		r, okTrue := index[yTrue[i]]
		c, okPred := index[yPred[i]]
		if okTrue {
			matched++
		}
		if !okTrue || !okPred {
			continue
		}
		counts.Set(r, c, counts.At(r, c)+1)
	}
	if matched == 0 {
		return nil, errors.NewValueError(op, "at least one label specified must be in y_true")
	}

	return &Confusion{Labels: append([]string(nil), labels...), Counts: counts}, nil
}

// At returns the count for a (true, predicted) label pair.
func (c *Confusion) At(trueLabel, predLabel string) int {
	r, col := -1, -1
	for i, l := range c.Labels {
		if l == trueLabel {
			r = i
		}
		if l == predLabel {
			col = i
		}
	}
	if r < 0 || col < 0 {
		return 0
	}
	return int(c.Counts.At(r, col))
}

// Total returns the number of counted samples.
func (c *Confusion) Total() int {
	return int(mat.Sum(c.Counts))
}

// String prints the counts the way numpy prints an integer array.
func (c *Confusion) String() string {
	n, _ := c.Counts.Dims()
	width := 1
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			width = max(width, len(strconv.Itoa(int(c.Counts.At(i, j)))))
		}
	}

	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString("\n ")
		}
		b.WriteString("[")
		for j := 0; j < n; j++ {
			if j > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%*d", width, int(c.Counts.At(i, j)))
		}
		b.WriteString("]")
	}
	b.WriteString("]")
	return b.String()
}

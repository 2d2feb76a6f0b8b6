package preprocessing

import (
	"fmt"
	"sort"

	"github.com/YuminosukeSato/irisvc/core/model"
	"github.com/YuminosukeSato/irisvc/pkg/errors"
)

// LabelEncoder maps string class labels to integers 0..n_classes-1 in
// sorted label order, like scikit-learn's LabelEncoder.
type LabelEncoder struct {
	state   *model.StateManager
	classes []string
	index   map[string]int
}

// NewLabelEncoder creates an unfitted LabelEncoder.
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{state: model.NewStateManager()}
}

// Fit learns the sorted set of distinct labels.
func (e *LabelEncoder) Fit(y []string) error {
	if len(y) == 0 {
		return errors.NewModelError("LabelEncoder.Fit", "empty labels", errors.ErrEmptyData)
	}

	seen := make(map[string]struct{})
	for _, label := range y {
		seen[label] = struct{}{}
	}
	e.classes = make([]string, 0, len(seen))
	for label := range seen {
		e.classes = append(e.classes, label)
	}
	sort.Strings(e.classes)

	e.index = make(map[string]int, len(e.classes))
	for i, c := range e.classes {
		e.index[c] = i
	}

	e.state.SetDimensions(1, len(y))
	e.state.SetFitted()
	return nil
}

// Transform encodes labels. A label unseen during Fit is an error.
func (e *LabelEncoder) Transform(y []string) ([]int, error) {
	if err := e.state.RequireFitted("LabelEncoder", "Transform"); err != nil {
		return nil, err
	}
	out := make([]int, len(y))
	for i, label := range y {
		code, ok := e.index[label]
		if !ok {
			return nil, errors.NewValueError("LabelEncoder.Transform", fmt.Sprintf("y contains previously unseen label %q", label))
		}
		out[i] = code
	}
	return out, nil
}

// FitTransform fits and encodes y.
func (e *LabelEncoder) FitTransform(y []string) ([]int, error) {
	if err := e.Fit(y); err != nil {
		return nil, err
	}
	return e.Transform(y)
}

// InverseTransform decodes integer codes back to labels.
func (e *LabelEncoder) InverseTransform(codes []int) ([]string, error) {
	if err := e.state.RequireFitted("LabelEncoder", "InverseTransform"); err != nil {
		return nil, err
	}
	out := make([]string, len(codes))
	for i, code := range codes {
		if code < 0 || code >= len(e.classes) {
			return nil, errors.NewValueError("LabelEncoder.InverseTransform", fmt.Sprintf("code %d out of range [0, %d)", code, len(e.classes)))
		}
		out[i] = e.classes[code]
	}
	return out, nil
}

// Classes returns the sorted labels.
func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

// Accuracy は正解ラベルと予測ラベルの一致率を計算する
func Accuracy(actual, predicted []string) (float64, error) {
	n := len(actual)
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty label slice")
	}
	if len(predicted) != n {
		return 0, errors.NewDimensionError("Accuracy", n, len(predicted), 0)
	}

	hits := make([]float64, n)
	for i := range actual {
		if actual[i] == predicted[i] {
			hits[i] = 1
		}
	}
	return floats.Sum(hits) / float64(n), nil
}

// UnionLabels は複数のラベル列を初出順で結合し、重複を除いて返す
//
// 評価では学習ラベル、テストラベルの順に渡すことで、混同行列の行・列の
// 順序が学習時のクラス順に揃う。
func UnionLabels(sets ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, set := range sets {
		for _, label := range set {
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}
			out = append(out, label)
		}
	}
	return out
}

// Confusion は混同行列（行 = 正解、列 = 予測）
type Confusion struct {
	// Labels は行・列の並び順
	Labels []string

	// Counts は len(Labels)×len(Labels) の件数行列
	Counts *mat.Dense

	index map[string]int
}

// ConfusionMatrix は正解ラベルと予測ラベルから混同行列を作成する
//
// labels が nil の場合は UnionLabels(actual, predicted) を使う。
// labels に含まれないラベルが現れた場合は ErrUnknownClass を返す。
func ConfusionMatrix(actual, predicted, labels []string) (*Confusion, error) {
	if len(actual) == 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "empty label slice")
	}
	if len(predicted) != len(actual) {
		return nil, errors.NewDimensionError("ConfusionMatrix", len(actual), len(predicted), 0)
	}
	if labels == nil {
		labels = UnionLabels(actual, predicted)
	}

	cm := &Confusion{
		Labels: append([]string(nil), labels...),
		index:  make(map[string]int, len(labels)),
	}
	for i, label := range cm.Labels {
		if _, dup := cm.index[label]; dup {
			return nil, errors.NewValidationError("labels", "duplicate label", label)
		}
		cm.index[label] = i
	}
	if len(cm.Labels) == 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "no labels")
	}
	cm.Counts = mat.NewDense(len(cm.Labels), len(cm.Labels), nil)

	for i := range actual {
		r, ok := cm.index[actual[i]]
		if !ok {
			return nil, errors.Wrapf(errors.ErrUnknownClass, "ConfusionMatrix: actual label %q", actual[i])
		}
		c, ok := cm.index[predicted[i]]
		if !ok {
			return nil, errors.Wrapf(errors.ErrUnknownClass, "ConfusionMatrix: predicted label %q", predicted[i])
		}
		cm.Counts.Set(r, c, cm.Counts.At(r, c)+1)
	}
	return cm, nil
}

// Count は正解 actual・予測 predicted の件数を返す（未知のラベルは 0）
func (cm *Confusion) Count(actual, predicted string) int {
	r, ok := cm.index[actual]
	if !ok {
		return 0
	}
	c, ok := cm.index[predicted]
	if !ok {
		return 0
	}
	return int(cm.Counts.At(r, c))
}

// Total は全件数
func (cm *Confusion) Total() int {
	return int(mat.Sum(cm.Counts))
}

// Correct は対角成分の合計（正解数）
func (cm *Confusion) Correct() int {
	return int(mat.Trace(cm.Counts))
}

// Accuracy は Correct / Total
func (cm *Confusion) Accuracy() float64 {
	total := cm.Total()
	if total == 0 {
		return 0
	}
	return float64(cm.Correct()) / float64(total)
}

// Recall は label の再現率。label の正解が一件もなければ 0
func (cm *Confusion) Recall(label string) float64 {
	i, ok := cm.index[label]
	if !ok {
		return 0
	}
	support := floats.Sum(cm.Counts.RawRowView(i))
	if support == 0 {
		return 0
	}
	return cm.Counts.At(i, i) / support
}

// Precision は label の適合率。label と予測された件数が 0 なら 0
func (cm *Confusion) Precision(label string) float64 {
	i, ok := cm.index[label]
	if !ok {
		return 0
	}
	predicted := floats.Sum(mat.Col(nil, i, cm.Counts))
	if predicted == 0 {
		return 0
	}
	return cm.Counts.At(i, i) / predicted
}

// Package model defines the estimator interfaces, fitted-state bookkeeping and
// parameter persistence shared by gaussnb classifiers.
package model

import "gonum.org/v1/gonum/mat"

// Trainer は学習可能なモデルのインターフェース
type Trainer interface {
	// Train はラベル付きの訓練データでモデルを学習させる
	Train(instances [][]float64, labels []string) error
}

// ProbabilisticClassifier はクラス確率を予測できるモデルのインターフェース
type ProbabilisticClassifier interface {
	// Predict は1インスタンスに対するクラスごとの事後確率を返す
	Predict(instance []float64) (map[string]float64, error)

	// PredictLabel は最も確率の高いクラスを返す
	PredictLabel(instance []float64) (string, error)

	// PredictProba は行列の各行に対する確率をクラスのインデックス順に返す
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// Classes は学習時に現れた順のクラスラベルを返す
	Classes() []string
}

// Classifier は学習と予測の両方を備えた分類器
type Classifier interface {
	Trainer
	ProbabilisticClassifier
}

// ParameterGetter はハイパーパラメータを公開するモデル
type ParameterGetter interface {
	GetParams() map[string]interface{}
}

// ParameterSetter はハイパーパラメータの変更を許すモデル
type ParameterSetter interface {
	SetParams(params map[string]interface{}) error
}

// WeightExporter は学習済みパラメータをエクスポートできるモデル
type WeightExporter interface {
	ExportWeights() (*ModelWeights, error)
}

package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

// ModelWeights はモデルの学習済みパラメータを表す構造体（シリアライゼーション用）
//
// クラス数を C、属性数を F とすると、Classes・ClassCount・ClassPrior は長さ C、
// Theta と Variance は C×F の行列（クラスのインデックス順）です。
type ModelWeights struct {
	// ModelType はモデルの種類（GaussianNB 等）
	ModelType string `json:"model_type"`

	// Version はモデルのバージョン（互換性チェック用）
	Version string `json:"version"`

	// Classes は学習時に現れた順のクラスラベル
	Classes []string `json:"classes"`

	// ClassCount は各クラスの訓練サンプル数
	ClassCount []int `json:"class_count"`

	// ClassPrior は各クラスの事前確率
	ClassPrior []float64 `json:"class_prior"`

	// Theta はクラスごと・属性ごとの平均
	Theta [][]float64 `json:"theta"`

	// Variance はクラスごと・属性ごとの標本分散
	Variance [][]float64 `json:"var"`

	// Hyperparameters はモデルのハイパーパラメータ
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// Metadata は追加のメタデータ（チェックサム等）
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// ToJSON はModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// FromJSON はJSON形式からModelWeightsをデシリアライズ
func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return errors.Wrap(err, "failed to decode model weights")
	}
	return nil
}

// WriteJSON はModelWeightsをJSONとしてwに書き出す
func (mw *ModelWeights) WriteJSON(w io.Writer) error {
	data, err := mw.ToJSON()
	if err != nil {
		return errors.Wrap(err, "failed to encode model weights")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "failed to write model weights")
	}
	return nil
}

// ReadWeightsJSON はrからModelWeightsを読み込み、検証する
func ReadWeightsJSON(r io.Reader) (*ModelWeights, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read model weights")
	}
	mw := &ModelWeights{}
	if err := mw.FromJSON(data); err != nil {
		return nil, err
	}
	if err := mw.Validate(); err != nil {
		return nil, err
	}
	return mw, nil
}

// Validate はModelWeightsの形状の整合性を検証
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return errors.NewValidationError("model_type", "is required", mw.ModelType)
	}
	if mw.Version == "" {
		return errors.NewValidationError("version", "is required", mw.Version)
	}
	if !mw.IsFitted {
		if len(mw.Classes) > 0 {
			return errors.NewValidationError("classes", "unfitted model should not have parameters", len(mw.Classes))
		}
		return nil
	}

	nClasses := len(mw.Classes)
	if nClasses == 0 {
		return errors.NewValidationError("classes", "fitted model must have at least one class", nClasses)
	}
	if len(mw.ClassCount) != nClasses {
		return errors.NewDimensionError("ModelWeights.Validate", nClasses, len(mw.ClassCount), 0)
	}
	if len(mw.ClassPrior) != nClasses {
		return errors.NewDimensionError("ModelWeights.Validate", nClasses, len(mw.ClassPrior), 0)
	}
	if len(mw.Theta) != nClasses || len(mw.Variance) != nClasses {
		return errors.NewDimensionError("ModelWeights.Validate", nClasses, len(mw.Theta), 0)
	}

	nFeatures := len(mw.Theta[0])
	if nFeatures == 0 {
		return errors.NewValidationError("theta", "fitted model must have at least one attribute", nFeatures)
	}
	for c := 0; c < nClasses; c++ {
		if len(mw.Theta[c]) != nFeatures {
			return errors.NewDimensionError("ModelWeights.Validate", nFeatures, len(mw.Theta[c]), 1)
		}
		if len(mw.Variance[c]) != nFeatures {
			return errors.NewDimensionError("ModelWeights.Validate", nFeatures, len(mw.Variance[c]), 1)
		}
	}

	if sum, ok := mw.Metadata["checksum"].(string); ok && sum != mw.Checksum() {
		return errors.NewValidationError("checksum", "weights may be corrupted", sum)
	}
	return nil
}

// Checksum はパラメータのSHA-256を16進文字列で返す（検証用）
func (mw *ModelWeights) Checksum() string {
	data, _ := json.Marshal(struct {
		Classes    []string    `json:"c"`
		ClassCount []int       `json:"n"`
		ClassPrior []float64   `json:"p"`
		Theta      [][]float64 `json:"t"`
		Variance   [][]float64 `json:"v"`
	}{mw.Classes, mw.ClassCount, mw.ClassPrior, mw.Theta, mw.Variance})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Clone はModelWeightsのディープコピーを作成
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := &ModelWeights{
		ModelType:       mw.ModelType,
		Version:         mw.Version,
		IsFitted:        mw.IsFitted,
		Classes:         append([]string(nil), mw.Classes...),
		ClassCount:      append([]int(nil), mw.ClassCount...),
		ClassPrior:      append([]float64(nil), mw.ClassPrior...),
		Theta:           cloneRows(mw.Theta),
		Variance:        cloneRows(mw.Variance),
		Hyperparameters: make(map[string]interface{}, len(mw.Hyperparameters)),
		Metadata:        make(map[string]interface{}, len(mw.Metadata)),
	}

	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}
	for k, v := range mw.Metadata {
		clone.Metadata[k] = v
	}

	return clone
}

func cloneRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = append([]float64(nil), r...)
	}
	return out
}

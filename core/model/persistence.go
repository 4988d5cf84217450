package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

// SaveModel はModelWeightsをgob形式でファイルに保存する
//
// 使用例:
//
//	w, err := nb.ExportWeights()
//	err = model.SaveModel(w, "model.gob")
func SaveModel(weights *ModelWeights, filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", filename)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", filename)
		}
	}()

	return SaveModelToWriter(weights, file)
}

// LoadModel はgob形式のファイルからModelWeightsを読み込む
func LoadModel(filename string) (*ModelWeights, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", filename)
	}
	defer file.Close()

	return LoadModelFromReader(file)
}

// SaveModelToWriter はModelWeightsをio.Writerにgob形式で保存する
func SaveModelToWriter(weights *ModelWeights, w io.Writer) error {
	if weights == nil {
		return errors.NewValueError("SaveModelToWriter", "weights cannot be nil")
	}
	if err := weights.Validate(); err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(weights); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadModelFromReader はio.ReaderからModelWeightsを読み込み、検証する
func LoadModelFromReader(r io.Reader) (*ModelWeights, error) {
	weights := &ModelWeights{}
	if err := gob.NewDecoder(r).Decode(weights); err != nil {
		return nil, errors.Wrap(err, "failed to decode model")
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return weights, nil
}

func init() {
	// Hyperparameters and Metadata hold these concrete types.
	gob.Register(map[string]interface{}{})
	gob.Register([]interface{}{})
}

package boosting

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/happyguy1986/rtbkit/pkg/errors"
)

// SaveStump は学習済みスタンプをJSONファイルに保存する
//
// 使用例:
//
//	stump, _ := trainer.TrainStump(ds, weights, 1)
//	err := boosting.SaveStump(stump, "stump.json")
func SaveStump(stump Stump, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "SaveStump: create %s", filename)
	}
	defer file.Close()
	return SaveStumpToWriter(stump, file)
}

// SaveStumpToWriter はスタンプをio.Writerに書き出す
func SaveStumpToWriter(stump Stump, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stump); err != nil {
		return errors.Wrap(err, "SaveStump: encode stump")
	}
	return nil
}

// LoadStump はJSONファイルからスタンプを読み込み、内容を検証する
func LoadStump(filename string) (Stump, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Stump{}, errors.Wrapf(err, "LoadStump: open %s", filename)
	}
	defer file.Close()
	return LoadStumpFromReader(file)
}

// LoadStumpFromReader はio.Readerからスタンプを読み込む
func LoadStumpFromReader(r io.Reader) (Stump, error) {
	var stump Stump
	if err := json.NewDecoder(r).Decode(&stump); err != nil {
		return Stump{}, errors.Wrap(err, "LoadStump: decode stump")
	}
	if err := validateStump(stump); err != nil {
		return Stump{}, err
	}
	return stump, nil
}

// validateStump は読み込んだスタンプが予測に使える状態かを確認する
func validateStump(s Stump) error {
	if s.Feature < 0 {
		return errors.NewValidationError("feature", "must be >= 0", s.Feature)
	}
	if math.IsNaN(s.Threshold) || math.IsInf(s.Threshold, 0) {
		return errors.NewValidationError("threshold", "must be finite", s.Threshold)
	}
	if s.Rule < UpdateNormal || s.Rule > UpdateGentle {
		return errors.NewValidationError("update_rule", "unknown update rule", int(s.Rule))
	}
	for b := Bucket(0); b < NumBuckets; b++ {
		if math.IsNaN(s.Predictions[b]) || math.IsInf(s.Predictions[b], 0) {
			return errors.NewValidationError("predictions", "must be finite", s.Predictions[b])
		}
	}
	return nil
}

// Package errors はgaussnb全体のエラーハンドリングと警告システムを提供します。
// 分類器の前提条件違反を構造化されたエラー型として表現し、呼び出し元へ返します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("gaussnb-warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler は警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// UnseenClassWarning は評価データに学習時に存在しなかったクラスが含まれる場合の警告です。
// そのクラスのサンプルは必ず誤分類されます。
type UnseenClassWarning struct {
	Class   string
	Samples int
}

func (w *UnseenClassWarning) Error() string {
	return fmt.Sprintf("class %q appears in %d evaluation samples but was never seen during training", w.Class, w.Samples)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *UnseenClassWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("class", w.Class).
		Int("samples", w.Samples).
		Str("type", "UnseenClassWarning")
}

// NewUnseenClassWarning は新しいUnseenClassWarningを作成します。
func NewUnseenClassWarning(class string, samples int) *UnseenClassWarning {
	return &UnseenClassWarning{Class: class, Samples: samples}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Predict` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("gaussnb: %s: this model is not trained yet. Call Train() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows/samples, 1 for attributes
}

func (e *DimensionError) axisName() string {
	if e.Axis == 0 {
		return "samples"
	}
	return "attributes"
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("gaussnb: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, e.axisName(), e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", e.axisName()).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// DegenerateClassError はクラスのガウス分布パラメータが定義できない場合のエラーです。
// 標本分散は n-1 で割るため、サンプル数が2未満のクラスや分散が0になる属性は扱えません。
type DegenerateClassError struct {
	Class     string
	Count     int
	Attribute int // -1 when the whole class is degenerate
}

func (e *DegenerateClassError) Error() string {
	if e.Attribute >= 0 {
		return fmt.Sprintf("gaussnb: class %q has zero variance for attribute %d (%d samples)", e.Class, e.Attribute, e.Count)
	}
	return fmt.Sprintf("gaussnb: class %q has %d training samples, at least 2 are required to estimate its variance", e.Class, e.Count)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DegenerateClassError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("class", e.Class).
		Int("count", e.Count).
		Int("attribute", e.Attribute).
		Str("type", "DegenerateClassError")
}

// NewDegenerateClassError はサンプル数不足のDegenerateClassErrorを作成します。
func NewDegenerateClassError(class string, count int) error {
	err := &DegenerateClassError{Class: class, Count: count, Attribute: -1}
	return errors.WithStack(err)
}

// NewZeroVarianceError は分散0のDegenerateClassErrorを作成します。
func NewZeroVarianceError(class string, count, attribute int) error {
	err := &DegenerateClassError{Class: class, Count: count, Attribute: attribute}
	return errors.WithStack(err)
}

// ZeroEvidenceError は全クラスの同時尤度の和が0にアンダーフローした場合のエラーです。
// この場合、事後確率の正規化は定義できません。
type ZeroEvidenceError struct {
	Op       string
	NClasses int
}

func (e *ZeroEvidenceError) Error() string {
	return fmt.Sprintf("gaussnb: %s: total evidence over %d classes is zero, the instance is too far from every class to normalize", e.Op, e.NClasses)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ZeroEvidenceError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("n_classes", e.NClasses).
		Str("type", "ZeroEvidenceError")
}

// NewZeroEvidenceError は新しいZeroEvidenceErrorを作成し、スタックトレースを付与します。
func NewZeroEvidenceError(op string, nClasses int) error {
	err := &ZeroEvidenceError{Op: op, NClasses: nClasses}
	return errors.WithStack(err)
}

// ValidationError は設定値やパラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("gaussnb: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切な場合に発生するエラーです。
// 例えば、数値として解釈できない属性値など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("gaussnb: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError はモデルに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gaussnb: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("gaussnb: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// NumericalInstabilityError は数値計算でNaNやInfが検出された場合のエラーです。
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "train", "evidence"）
	Values    []float64 // 問題のある値
	Index     int       // 問題の値が見つかったサンプル番号（不明な場合は-1）
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	if e.Index >= 0 {
		return fmt.Sprintf("gaussnb: numerical instability detected in %s at sample %d. Values: [%s]",
			e.Operation, e.Index, valStr)
	}
	return fmt.Sprintf("gaussnb: numerical instability detected in %s. Values: [%s]", e.Operation, valStr)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Floats64("values", e.Values).
		Int("index", e.Index).
		Str("type", "NumericalInstabilityError")
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64, index int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Index:     index,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// Join は複数のエラーを1つにまとめます。nil は無視され、全て nil なら nil を返します。
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrUnknownClass はモデルが知らないクラスラベルを参照した場合のエラーです。
	ErrUnknownClass = New("unknown class")
)

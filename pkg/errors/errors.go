// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// ブースティング学習器の構造化されたエラー情報と、学習中の非致命的な警告を扱います。
package errors

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	警告のディスパッチ
//
// ===========================================================================

var (
	warningMutex sync.Mutex

	// 既定ハンドラは標準ロガーへ出力する
	warningHandler = func(w error) {
		log.Printf("RTBKit-Warning: %v\n", w)
	}

	// zerologへのブリッジ。循環importを避けるため関数値で注入される。
	zerologWarnFunc func(warning error)
)

// SetWarningHandler は警告の受け口を差し替えます。
// nilを渡すと警告は破棄されます。
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

// SetZerologWarnFunc はzerolog経由の警告出力を注入します。
// 設定されている間は通常のハンドラより優先されます。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は非致命的な警告を発行します。学習は継続されます。
func Warn(w error) {
	warningMutex.Lock()
	bridge := zerologWarnFunc
	handler := warningHandler
	warningMutex.Unlock()

	// ハンドラがさらにSetWarningHandlerを呼んでもデッドロックしないよう、
	// ロックの外で呼び出す。
	if bridge != nil {
		bridge(w)
		return
	}
	if handler != nil {
		handler(w)
	}
}

// ===========================================================================
//
//	学習時の警告型
//
// ===========================================================================

// DegenerateFeatureWarning は特徴量から有効な分割候補が得られなかった場合に発生する警告です。
// 全ての値が同一、または全ての値が欠損している特徴量が該当します。
type DegenerateFeatureWarning struct {
	Feature  int
	Examples int
	Reason   string
}

func (w *DegenerateFeatureWarning) Error() string {
	return fmt.Sprintf("feature %d has no usable split over %d examples: %s", w.Feature, w.Examples, w.Reason)
}

// MarshalZerologObject は警告の内容をzerologイベントへ構造化して書き込みます。
func (w *DegenerateFeatureWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("feature", w.Feature).
		Int("examples", w.Examples).
		Str("reason", w.Reason).
		Str("type", "DegenerateFeatureWarning")
}

// NewDegenerateFeatureWarning はDegenerateFeatureWarningを生成します。
func NewDegenerateFeatureWarning(feature, examples int, reason string) *DegenerateFeatureWarning {
	return &DegenerateFeatureWarning{Feature: feature, Examples: examples, Reason: reason}
}

// DataConversionWarning はデータの型が暗黙的に変換された場合に発生する警告です。
// 例えばfloat32のNPY配列をfloat64へ拡張して読み込んだ場合など。
type DataConversionWarning struct {
	FromType string
	ToType   string
	Reason   string
}

func (w *DataConversionWarning) Error() string {
	return fmt.Sprintf("data converted from %s to %s. Reason: %s", w.FromType, w.ToType, w.Reason)
}

// MarshalZerologObject は警告の内容をzerologイベントへ構造化して書き込みます。
func (w *DataConversionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("from_type", w.FromType).
		Str("to_type", w.ToType).
		Str("reason", w.Reason).
		Str("type", "DataConversionWarning")
}

// NewDataConversionWarning はDataConversionWarningを生成します。
func NewDataConversionWarning(from, to, reason string) *DataConversionWarning {
	return &DataConversionWarning{FromType: from, ToType: to, Reason: reason}
}

// UndefinedMetricWarning は評価指標が計算できない場合に発生する警告です。
// 例えば、総重みがゼロのデータに対して加重誤差を計算しようとした場合など。
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64 // この条件で返される値
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

// MarshalZerologObject は警告の内容をzerologイベントへ構造化して書き込みます。
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning はUndefinedMetricWarningを生成します。
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// InvalidProblemError は学習器が扱えない問題設定を渡された場合のエラーです。
// 回帰スタンプはラベル数がちょうど1の問題のみを扱います。
type InvalidProblemError struct {
	Op        string
	NumLabels int
}

func (e *InvalidProblemError) Error() string {
	return fmt.Sprintf("rtbkit: %s: regression stumps require exactly one label, got %d", e.Op, e.NumLabels)
}

// MarshalZerologObject はエラーの内容をzerologイベントへ構造化して書き込みます。
func (e *InvalidProblemError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("num_labels", e.NumLabels).
		Str("type", "InvalidProblemError")
}

// NewInvalidProblemError はスタックトレース付きのInvalidProblemErrorを生成します。
func NewInvalidProblemError(op string, numLabels int) error {
	err := &InvalidProblemError{Op: op, NumLabels: numLabels}
	return errors.WithStack(err)
}

// NotImplementedError は未実装の操作が要求された場合のエラーです。
// errors.Is(err, ErrNotImplemented) で判定できます。
type NotImplementedError struct {
	Op     string
	Reason string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("rtbkit: %s: not implemented: %s", e.Op, e.Reason)
}

func (e *NotImplementedError) Unwrap() error {
	return ErrNotImplemented
}

// MarshalZerologObject はエラーの内容をzerologイベントへ構造化して書き込みます。
func (e *NotImplementedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("reason", e.Reason).
		Str("type", "NotImplementedError")
}

// NewNotImplementedError はスタックトレース付きのNotImplementedErrorを生成します。
func NewNotImplementedError(op, reason string) error {
	err := &NotImplementedError{Op: op, Reason: reason}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) axisLabel() string {
	if e.Axis == 0 {
		return "rows"
	}
	return "features"
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("rtbkit: %s: dimension mismatch on axis %d (%s). Expected %d, got %d",
		e.Op, e.Axis, e.axisLabel(), e.Expected, e.Got)
}

// MarshalZerologObject はエラーの内容をzerologイベントへ構造化して書き込みます。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", e.axisLabel()).
		Str("type", "DimensionError")
}

// NewDimensionError はスタックトレース付きのDimensionErrorを生成します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
// `ValueError`よりも具体的なバリデーションロジックの失敗を示します。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rtbkit: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はエラーの内容をzerologイベントへ構造化して書き込みます。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError はスタックトレース付きのValidationErrorを生成します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
// 例えば、総重みゼロのバケットから予測値を合成しようとした場合など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("rtbkit: %s: %s", e.Op, e.Message)
}

// NewValueError はスタックトレース付きのValueErrorを生成します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// TrainingError は学習処理に関する一般的なエラーです。
// Kindが失敗の種別を、Errが根本原因を保持します。
type TrainingError struct {
	Op   string
	Kind string
	Err  error
}

func (e *TrainingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rtbkit: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("rtbkit: %s: %s", e.Op, e.Kind)
}

func (e *TrainingError) Unwrap() error {
	return e.Err
}

// NewTrainingError はスタックトレース付きのTrainingErrorを生成します。
func NewTrainingError(op, kind string, err error) error {
	trainErr := &TrainingError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(trainErr)
}

// ===========================================================================
//
//	数値計算特有のエラー型
//
// ===========================================================================

// NumericalInstabilityError は数値計算が不安定になった場合のエラーです。
// NaN、Inf、オーバーフロー、アンダーフローなどを検出します。
type NumericalInstabilityError struct {
	Operation string                 // 発生した操作（例: "accumulate", "split_score"）
	Values    []float64              // 問題のある値
	Context   map[string]interface{} // デバッグ用の追加コンテキスト情報
	Iteration int                    // 発生したイテレーション番号
}

// メッセージに埋め込む値の個数。残りは"..."に畳まれる。
const shownValues = 5

func (e *NumericalInstabilityError) Error() string {
	var sb strings.Builder
	for i, v := range e.Values {
		if i > 0 {
			sb.WriteString(", ")
		}
		if i >= shownValues {
			sb.WriteString("...")
			break
		}
		fmt.Fprintf(&sb, "%.6g", v)
	}
	return fmt.Sprintf("rtbkit: numerical instability detected in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, sb.String())
}

// NewNumericalInstabilityError はスタックトレース付きのNumericalInstabilityErrorを生成します。
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
		Context:   make(map[string]interface{}),
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーチェーンにtargetが含まれるかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーチェーンからtargetの型を探して取り出します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap はエラーに文脈メッセージを重ねます。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf はエラーにフォーマット済みの文脈メッセージを重ねます。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New はスタックトレース付きの新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf はスタックトレース付きのフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack は既存のエラーに現在位置のスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrNotImplemented は機能が未実装の場合のエラーです。
	ErrNotImplemented = New("not implemented")

	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")
)

// Package errors provides the error handling and warning system for molbench.
// It exposes structured error types for the benchmark pipeline together with
// thin wrappers around cockroachdb/errors so callers get stack traces for free.
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
//	Global warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler logs to standard error.
		log.Printf("molbench-warning: %v\n", w)
	}
	// zerolog sink, lazily wired to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the process-wide warning handler. Bulk operations
// such as fingerprint encoding install a low-severity handler here so that
// benign structural-parse warnings never interrupt a batch.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // drop warnings entirely
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc wires a zerolog-backed warning sink (set by pkg/log).
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn raises a warning. Warnings are diagnostics, not failures: they are
// routed to the configured handler and never propagate as errors.
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
//	Warning types
//
// ===========================================================================

// StructureParseWarning reports a recoverable oddity while parsing a
// structural string during fingerprint encoding. It is benign: the string
// still produced a usable fingerprint.
type StructureParseWarning struct {
	Structure string
	Detail    string
}

func (w *StructureParseWarning) Error() string {
	return fmt.Sprintf("structure %q parsed with warning: %s", w.Structure, w.Detail)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *StructureParseWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("structure", w.Structure).
		Str("detail", w.Detail).
		Str("type", "StructureParseWarning")
}

// NewStructureParseWarning creates a new StructureParseWarning.
func NewStructureParseWarning(structure, detail string) *StructureParseWarning {
	return &StructureParseWarning{Structure: structure, Detail: detail}
}

// UndefinedMetricWarning is raised when a metric cannot be computed, for
// example precision when no positive predictions were made. Result is the
// value substituted under the chosen convention.
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning creates a new UndefinedMetricWarning.
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// DataQualityError indicates that a structural string could not be parsed
// into a usable molecule. Fatal for the affected row; no fallback feature
// vector is substituted.
type DataQualityError struct {
	Structure string
	Reason    string
}

func (e *DataQualityError) Error() string {
	return fmt.Sprintf("molbench: structure %q is unusable: %s", e.Structure, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DataQualityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("structure", e.Structure).
		Str("reason", e.Reason).
		Str("type", "DataQualityError")
}

// NewDataQualityError creates a new DataQualityError with a stack trace.
func NewDataQualityError(structure, reason string) error {
	err := &DataQualityError{Structure: structure, Reason: reason}
	return errors.WithStack(err)
}

// ShapeMismatchError indicates that a dataset's raw label tensor does not
// match the shape its label extractor expects. This is a configuration bug
// and surfaces immediately.
type ShapeMismatchError struct {
	Extractor string
	Expected  string
	Got       []int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("molbench: %s extractor: label tensor shape %v does not match expected %s", e.Extractor, e.Got, e.Expected)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ShapeMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("extractor", e.Extractor).
		Str("expected", e.Expected).
		Ints("got", e.Got).
		Str("type", "ShapeMismatchError")
}

// NewShapeMismatchError creates a new ShapeMismatchError with a stack trace.
func NewShapeMismatchError(extractor, expected string, got []int) error {
	err := &ShapeMismatchError{Extractor: extractor, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// InsufficientClassDiversityError indicates that a training partition
// contains a single class, which leaves balanced class weights undefined.
type InsufficientClassDiversityError struct {
	Dataset string
	Class   float64
	Samples int
}

func (e *InsufficientClassDiversityError) Error() string {
	return fmt.Sprintf("molbench: dataset %q: training partition contains only class %g (%d samples); class weights are undefined", e.Dataset, e.Class, e.Samples)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *InsufficientClassDiversityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("dataset", e.Dataset).
		Float64("class", e.Class).
		Int("samples", e.Samples).
		Str("type", "InsufficientClassDiversityError")
}

// NewInsufficientClassDiversityError creates a new
// InsufficientClassDiversityError with a stack trace.
func NewInsufficientClassDiversityError(dataset string, class float64, samples int) error {
	err := &InsufficientClassDiversityError{Dataset: dataset, Class: class, Samples: samples}
	return errors.WithStack(err)
}

// NotFittedError is returned when Predict is called on an unfitted model.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("molbench: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a new NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError indicates that input data dimensions differ from what an
// operation expects.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("molbench: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError indicates an invalid argument value.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("molbench: %s: %s", e.Op, e.Message)
}

// NewValueError creates a new ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As reports whether err can be assigned to target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ErrEmptyData is returned when an operation receives no samples.
var ErrEmptyData = New("empty data")

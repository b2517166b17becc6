// Package errors provides the error handling and warning system used across
// goeda. It mirrors the conventions of scikit-learn style libraries:
// structured, typed errors for caller mistakes and a pluggable warning hook
// for recoverable data-quality issues.
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
		log.Printf("goeda-Warning: %v\n", w)
	}
	// zerolog sink, set lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the library-wide warning handler. Use it to
// silence or redirect warnings such as DegenerateColumnWarning.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink. When set it
// takes precedence over the plain handler.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning through the zerolog sink when one is installed,
// falling back to the plain handler otherwise.
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

// DegenerateColumnWarning is raised when a column carries no usable signal
// for the requested statistic, e.g. zero variance or a single observed level.
type DegenerateColumnWarning struct {
	Column    string
	Statistic string
	Reason    string
}

func (w *DegenerateColumnWarning) Error() string {
	return fmt.Sprintf("column '%s' is degenerate for %s: %s", w.Column, w.Statistic, w.Reason)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *DegenerateColumnWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("column", w.Column).
		Str("statistic", w.Statistic).
		Str("reason", w.Reason).
		Str("type", "DegenerateColumnWarning")
}

// NewDegenerateColumnWarning creates a new DegenerateColumnWarning.
func NewDegenerateColumnWarning(column, statistic, reason string) *DegenerateColumnWarning {
	return &DegenerateColumnWarning{Column: column, Statistic: statistic, Reason: reason}
}

// HighCardinalityWarning is raised when a categorical column has so many
// distinct levels that an operation (one-hot encoding, contingency tables)
// is likely to explode in width.
type HighCardinalityWarning struct {
	Column string
	Levels int
	Limit  int
}

func (w *HighCardinalityWarning) Error() string {
	return fmt.Sprintf("column '%s' has %d distinct levels (advisory limit %d)", w.Column, w.Levels, w.Limit)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *HighCardinalityWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("column", w.Column).
		Int("levels", w.Levels).
		Int("limit", w.Limit).
		Str("type", "HighCardinalityWarning")
}

// NewHighCardinalityWarning creates a new HighCardinalityWarning.
func NewHighCardinalityWarning(column string, levels, limit int) *HighCardinalityWarning {
	return &HighCardinalityWarning{Column: column, Levels: levels, Limit: limit}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// UnsupportedKindError is returned when a closed-set selector (correlation
// method, visualization backend, model kind, metric) is asked for a kind it
// does not know. It is raised before any computation starts.
type UnsupportedKindError struct {
	Op        string
	Kind      string
	Supported []string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("goeda: %s: unsupported kind '%s' (supported: %v)", e.Op, e.Kind, e.Supported)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *UnsupportedKindError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("kind", e.Kind).
		Strs("supported", e.Supported).
		Str("type", "UnsupportedKindError")
}

// NewUnsupportedKindError creates a new UnsupportedKindError with a stack trace.
func NewUnsupportedKindError(op, kind string, supported []string) error {
	err := &UnsupportedKindError{Op: op, Kind: kind, Supported: supported}
	return errors.WithStack(err)
}

// NotFittedError is returned when Transform or Predict is called on an
// estimator before Fit.
type NotFittedError struct {
	EstimatorName string
	Method        string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("goeda: %s: this estimator is not fitted yet. Call Fit() before using %s()", e.EstimatorName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("estimator_name", e.EstimatorName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a new NotFittedError with a stack trace.
func NewNotFittedError(estimatorName, method string) error {
	err := &NotFittedError{EstimatorName: estimatorName, Method: method}
	return errors.WithStack(err)
}

// DimensionError is returned when an input's dimensions do not match what
// the operation expects.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("goeda: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError is returned when a configuration parameter fails
// validation at the boundary, before any work starts.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("goeda: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a new ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError is returned when an argument has an inappropriate value, e.g.
// a column name that is not present in the dataset.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("goeda: %s: %s", e.Op, e.Message)
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

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a format string.
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

// ===========================================================================
//
//	Common sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives a dataset with no
	// rows or no columns.
	ErrEmptyData = New("empty data")

	// ErrColumnNotFound is returned when a named column is absent.
	ErrColumnNotFound = New("column not found")
)

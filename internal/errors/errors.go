// Package errors defines the error taxonomy shared by the loading and
// extraction pipeline.
//
// The taxonomy separates recoverable absence (NotFoundError, handled locally
// as an availability flag) from fatal conditions (ParseError, ConfigError,
// DataQualityError) and from aggregated bulk-construction failures
// (BuildError). All types support errors.Is/errors.As matching.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError indicates that a source file, row or location for a
// workpiece is missing. It is recoverable: experiment construction turns it
// into a "process absent" flag instead of propagating it.
type NotFoundError struct {
	Resource    string
	WorkpieceID int
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.WorkpieceID != 0 {
		return fmt.Sprintf("%s not found for workpiece %d", e.Resource, e.WorkpieceID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// NewNotFound creates a NotFoundError for the given resource and workpiece.
func NewNotFound(resource string, workpieceID int) *NotFoundError {
	return &NotFoundError{Resource: resource, WorkpieceID: workpieceID}
}

// ParseError indicates that a source file is present but malformed. It is
// fatal for the affected experiment's construction.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }

// NewParse creates a ParseError for the given file path.
func NewParse(path string, err error) *ParseError {
	return &ParseError{Path: path, Err: err}
}

// ConfigError indicates a malformed or inconsistent preprocessing or
// extraction configuration. It is raised before any row processing begins.
type ConfigError struct {
	Section string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("config %s: %s", e.Section, e.Message)
	}
	return fmt.Sprintf("config: %s", e.Message)
}

// NewConfig creates a ConfigError scoped to a configuration section.
func NewConfig(section, format string, args ...any) *ConfigError {
	return &ConfigError{Section: section, Message: fmt.Sprintf(format, args...)}
}

// DataQualityError indicates non-finite values or degenerate statistics
// encountered where the configured method cannot tolerate them. Callers at
// recording scope recover it per column; anywhere else it fails the
// extraction call.
type DataQualityError struct {
	Series  string
	Message string
}

// Error implements the error interface.
func (e *DataQualityError) Error() string {
	if e.Series != "" {
		return fmt.Sprintf("data quality (%s): %s", e.Series, e.Message)
	}
	return fmt.Sprintf("data quality: %s", e.Message)
}

// NewDataQuality creates a DataQualityError for the named series.
func NewDataQuality(series, format string, args ...any) *DataQualityError {
	return &DataQualityError{Series: series, Message: fmt.Sprintf(format, args...)}
}

// BuildFailure records one failed experiment during bulk dataset
// construction.
type BuildFailure struct {
	WorkpieceID int
	Err         error
}

// BuildError aggregates per-workpiece failures during bulk dataset
// construction instead of failing on the first one.
type BuildError struct {
	Failures []BuildFailure
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if len(e.Failures) == 0 {
		return "dataset build failed"
	}
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("workpiece %d: %v", f.WorkpieceID, f.Err))
	}
	return fmt.Sprintf("dataset build failed for %d workpiece(s): %s",
		len(e.Failures), strings.Join(parts, "; "))
}

// FailedIDs returns the workpiece ids that failed, in failure order.
func (e *BuildError) FailedIDs() []int {
	ids := make([]int, 0, len(e.Failures))
	for _, f := range e.Failures {
		ids = append(ids, f.WorkpieceID)
	}
	return ids
}

// NewBuild creates a BuildError from the collected failures.
func NewBuild(failures []BuildFailure) *BuildError {
	return &BuildError{Failures: failures}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsParse reports whether err is (or wraps) a ParseError.
func IsParse(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

// IsConfig reports whether err is (or wraps) a ConfigError.
func IsConfig(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

// IsDataQuality reports whether err is (or wraps) a DataQualityError.
func IsDataQuality(err error) bool {
	var target *DataQualityError
	return errors.As(err, &target)
}

// IsBuild reports whether err is (or wraps) a BuildError.
func IsBuild(err error) bool {
	var target *BuildError
	return errors.As(err, &target)
}

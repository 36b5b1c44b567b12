package errors

import (
	"errors"
	"fmt"
)

// ConfigError reports a malformed or incomplete inputs document.
// It is always fatal and is raised before any query runs.
type ConfigError struct {
	Input string
	Field string
	Msg   string
	Err   error
}

func NewConfigError(input, field, msg string) *ConfigError {
	return &ConfigError{Input: input, Field: field, Msg: msg}
}

func NewConfigErrorWrap(input, field string, err error) *ConfigError {
	return &ConfigError{Input: input, Field: field, Msg: err.Error(), Err: err}
}

func (e *ConfigError) Error() string {
	switch {
	case e.Input != "" && e.Field != "":
		return fmt.Sprintf("invalid input %q: %s: %s", e.Input, e.Field, e.Msg)
	case e.Input != "":
		return fmt.Sprintf("invalid input %q: %s", e.Input, e.Msg)
	case e.Field != "":
		return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Msg)
	default:
		return fmt.Sprintf("invalid configuration: %s", e.Msg)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// QueryError reports a database level failure of one input's query.
type QueryError struct {
	Input string
	Err   error
}

func NewQueryError(input string, err error) *QueryError {
	return &QueryError{Input: input, Err: err}
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query for input %q failed: %v", e.Input, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func IsQueryError(err error) bool {
	var e *QueryError
	return errors.As(err, &e)
}

// SkipReason classifies why a row did not produce a host.
type SkipReason string

const (
	SkipHostFieldMissing      SkipReason = "host_field_missing"
	SkipHostEmpty             SkipReason = "host_empty"
	SkipTransformFieldMissing SkipReason = "transform_field_missing"
	SkipTransformNoMatch      SkipReason = "transform_no_match"
)

// RowError describes a single row that could not be mapped. It is never fatal.
type RowError struct {
	Input  string
	Reason SkipReason
	Detail string
}

func NewRowError(input string, reason SkipReason, detail string) *RowError {
	return &RowError{Input: input, Reason: reason, Detail: detail}
}

func (e *RowError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("row of input %q skipped: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("row of input %q skipped: %s: %s", e.Input, e.Reason, e.Detail)
}

func IsRowError(err error) bool {
	var e *RowError
	return errors.As(err, &e)
}

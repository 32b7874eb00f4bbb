//
// Tencent is pleased to support the open source community by making trpc-composio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-composio-go is licensed under the Apache License Version 2.0.
//
//

// Package sdkerrors defines the structured error types shared across the SDK.
//
// Every error raised by the SDK carries a Code identifying its kind, a
// human-readable message, optional structured metadata for programmatic
// handling, and the wrapped cause when one exists. Callers are expected to
// branch on Code (or errors.As / the IsXxx helpers), never on message text.
package sdkerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies the kind of an SDK error.
type Code string

// Error codes.
const (
	// CodeValidation marks malformed caller input, detected before any
	// network call is made.
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeNotFound marks a missing remote entity (tool, toolkit,
	// connected account, session).
	CodeNotFound Code = "NOT_FOUND"
	// CodeConflict marks an operation rejected because it would duplicate
	// existing state, e.g. a second connected account without opt-in.
	CodeConflict Code = "CONFLICT"
	// CodeTimeout marks an operation that exceeded its polling budget.
	CodeTimeout Code = "TIMEOUT"
	// CodeExecution wraps any failure raised inside the tool execution
	// pipeline. The original failure is available via Unwrap.
	CodeExecution Code = "TOOL_EXECUTION_FAILED"
	// CodeConfiguration marks a missing or invalid collaborator at
	// construction time.
	CodeConfiguration Code = "CONFIGURATION_ERROR"
	// CodeUpload marks a failed file upload. Uploads are load-bearing for
	// the subsequent tool call, so these always propagate.
	CodeUpload Code = "FILE_UPLOAD_FAILED"
	// CodeConnectionFailed marks a connection attempt that reached a
	// failure-terminal status (FAILED or EXPIRED).
	CodeConnectionFailed Code = "CONNECTION_FAILED"
)

// Error is the structured error type used throughout the SDK.
type Error struct {
	// Code identifies the kind of error.
	Code Code
	// Message is the human-readable description.
	Message string
	// Metadata carries structured context (ids, slugs, status values) for
	// programmatic handling.
	Metadata map[string]any
	// PossibleFixes lists optional human-facing remediation hints.
	PossibleFixes []string
	// Cause is the wrapped underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Code))
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the wrapped cause, enabling errors.Is / errors.As on the
// cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code. This lets
// callers match against a prototype, e.g. errors.Is(err, &Error{Code: CodeNotFound}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithMetadata attaches a metadata key/value pair and returns the error for
// chaining.
func (e *Error) WithMetadata(key string, value any) *Error {
	if e.Metadata == nil {
		e.Metadata = make(map[string]any)
	}
	e.Metadata[key] = value
	return e
}

// WithFix appends a remediation hint and returns the error for chaining.
func (e *Error) WithFix(fix string) *Error {
	e.PossibleFixes = append(e.PossibleFixes, fix)
	return e
}

// WithCause wraps an underlying error and returns the error for chaining.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// NewValidationError reports malformed caller input.
func NewValidationError(format string, args ...any) *Error {
	return New(CodeValidation, format, args...)
}

// NewNotFoundError reports a missing entity of the given kind ("tool",
// "toolkit", "connected account", ...), carrying its identifier as metadata.
func NewNotFoundError(kind, id string) *Error {
	return New(CodeNotFound, "%s not found: %s", kind, id).
		WithMetadata("kind", kind).
		WithMetadata("id", id)
}

// NewConflictError reports an operation rejected to avoid duplicating state.
func NewConflictError(format string, args ...any) *Error {
	return New(CodeConflict, format, args...)
}

// NewTimeoutError reports an exceeded polling budget.
func NewTimeoutError(format string, args ...any) *Error {
	return New(CodeTimeout, format, args...)
}

// NewExecutionError wraps a failure raised anywhere inside the execution
// pipeline for the given tool slug.
func NewExecutionError(toolSlug string, cause error) *Error {
	return New(CodeExecution, "failed to execute tool %s", toolSlug).
		WithMetadata("toolSlug", toolSlug).
		WithCause(cause)
}

// NewConfigurationError reports a missing or invalid collaborator at
// construction time.
func NewConfigurationError(format string, args ...any) *Error {
	return New(CodeConfiguration, format, args...)
}

// NewUploadError reports a failed file upload.
func NewUploadError(format string, args ...any) *Error {
	return New(CodeUpload, format, args...)
}

// CodeOf returns the code of err if it is (or wraps) an *Error, or the empty
// string otherwise.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return CodeOf(err) == CodeValidation }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool { return CodeOf(err) == CodeConflict }

// IsTimeout reports whether err is a timeout error.
func IsTimeout(err error) bool { return CodeOf(err) == CodeTimeout }

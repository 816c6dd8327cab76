// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
	"fmt"
)

var (
	ErrIO                    = errors.New("i/o failure")
	ErrInvalidRequest        = errors.New("invalid request")
	ErrPathRequired          = errors.New("path is required")
	ErrInvalidParameterType  = errors.New("invalid parameter type")
	ErrUnknownParameter      = errors.New("unsupported parameter")
	ErrInvalidArguments      = errors.New("invalid arguments")
	ErrProviderNotFound      = errors.New("provider not found")
	ErrProviderNotManageable = errors.New("provider is not manageable")
	ErrNoSuitableProvider    = errors.New("no suitable provider found")
	ErrDuplicateProvider     = errors.New("provider already exists")
)

const (
	// IOOperationRead indicates a failure reading the existing file
	IOOperationRead = "read"
	// IOOperationWrite indicates a failure creating directories or writing the file
	IOOperationWrite = "write"
)

// IOError is returned when the filesystem could not be brought to the desired state,
// Result holds the fields that were known when the failure happened
type IOError struct {
	Op     string
	Path   string
	Result Result
	Err    error
}

func (e *IOError) Error() string {
	switch e.Op {
	case IOOperationRead:
		return fmt.Sprintf("Failed to read existing file: %v", e.Err)
	default:
		return fmt.Sprintf("Failed to write file: %v", e.Err)
	}
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// NewReadError creates an IOError for a failed read of an existing file
func NewReadError(path string, result Result, err error) *IOError {
	return &IOError{Op: IOOperationRead, Path: path, Result: result, Err: err}
}

// NewWriteError creates an IOError for a failed directory creation or file write
func NewWriteError(path string, result Result, err error) *IOError {
	return &IOError{Op: IOOperationWrite, Path: path, Result: result, Err: err}
}

// ValidationError indicates a request was rejected before any convergence was attempted
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidRequest }

// NewValidationError creates a validation error for field, format and args are appended to err when given
func NewValidationError(field string, err error, format string, args ...any) *ValidationError {
	if format != "" {
		err = fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))
	}

	return &ValidationError{Field: field, Err: err}
}

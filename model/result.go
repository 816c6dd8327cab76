// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

const (
	MessageFileCreated   = "File created successfully"
	MessageFileUpdated   = "File updated successfully"
	MessageFileUnchanged = "File already exists with the same content"
)

// Result is the outcome of a single convergence, values are never mutated in place
// instead the With* methods return updated copies
type Result struct {
	Changed         bool   `json:"changed" yaml:"changed"`
	OriginalMessage string `json:"original_message" yaml:"original_message"`
	Message         string `json:"message" yaml:"message"`
}

// NewResult creates an unchanged result echoing path
func NewResult(path string) Result {
	return Result{OriginalMessage: path}
}

// WithMessage returns a copy of the result with message set
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithChange returns a copy of the result marked as changed with message set
func (r Result) WithChange(msg string) Result {
	r.Changed = true
	r.Message = msg
	return r
}

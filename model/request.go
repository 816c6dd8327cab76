// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"strings"
)

const (
	// FileTypeName is the type name for the file convergence resource
	FileTypeName = "file"
)

// Request describes the desired state of a single file
type Request struct {
	Path     string `json:"path" yaml:"path"`
	Content  string `json:"content,omitempty" yaml:"content,omitempty"`
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
}

// Validate checks the request can be converged
func (r *Request) Validate() error {
	if r.Path == "" {
		return &ValidationError{Field: "path", Err: ErrPathRequired}
	}

	if strings.ContainsRune(r.Path, 0) {
		return NewValidationError("path", ErrInvalidRequest, "path may not contain NUL bytes")
	}

	return nil
}

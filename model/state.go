// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"time"
)

const (
	// ResourceStatusFileProtocol is the protocol identifier for file state
	ResourceStatusFileProtocol = "io.choria.fileconverge.v1.file.state"

	// EnsurePresent indicates a regular file exists at the path
	EnsurePresent = "present"
	// EnsureAbsent indicates nothing exists at the path
	EnsureAbsent = "absent"
	// EnsureDirectory indicates a directory exists at the path
	EnsureDirectory = "directory"
)

// FileMetadata contains detailed metadata about a file
type FileMetadata struct {
	Name     string    `json:"name" yaml:"name"`
	Checksum string    `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	Owner    string    `json:"owner" yaml:"owner"`
	Group    string    `json:"group" yaml:"group"`
	Mode     string    `json:"mode" yaml:"mode"`
	Provider string    `json:"provider,omitempty" yaml:"provider,omitempty"`
	MTime    time.Time `json:"mtime,omitempty" yaml:"mtime,omitempty"`
	Size     int64     `json:"size,omitempty" yaml:"size,omitempty"`
}

// FileState represents the current state of a path on the system
type FileState struct {
	TimeStamp time.Time     `json:"timestamp" yaml:"timestamp"`
	Protocol  string        `json:"protocol" yaml:"protocol"`
	Ensure    string        `json:"ensure" yaml:"ensure"`
	Metadata  *FileMetadata `json:"metadata" yaml:"metadata"`
}

// NewFileState creates a file state for name that is initially present
func NewFileState(name string, provider string) *FileState {
	return &FileState{
		TimeStamp: time.Now().UTC(),
		Protocol:  ResourceStatusFileProtocol,
		Ensure:    EnsurePresent,
		Metadata: &FileMetadata{
			Name:     name,
			Provider: provider,
		},
	}
}

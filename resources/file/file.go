// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package fileresource

import (
	"context"

	"github.com/choria-io/fileconverge/model"
	"github.com/choria-io/fileconverge/resources/file/atomic"
	"github.com/choria-io/fileconverge/resources/file/posix"
)

func init() {
	posix.Register()
	atomic.Register()
}

//go:generate mockgen -destination mock_provider_test.go -package fileresource github.com/choria-io/fileconverge/resources/file FileProvider

// FileProvider performs the filesystem operations needed to converge a file
type FileProvider interface {
	model.Provider

	Exists(ctx context.Context, file string) bool
	Read(ctx context.Context, file string) ([]byte, error)
	CreateDirectory(ctx context.Context, dir string) error
	Store(ctx context.Context, file string, contents []byte) error
	Status(ctx context.Context, file string) (*model.FileState, error)
}

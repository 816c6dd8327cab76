// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package posix

import (
	"context"
	"errors"
	"io/fs"
	"os"

	iu "github.com/choria-io/fileconverge/internal/util"
	"github.com/choria-io/fileconverge/model"
)

const (
	ProviderName = "posix"

	// new files and directories are subject to the process umask
	fileCreateMode = 0666
	dirCreateMode  = 0777
)

// Provider writes files in place, truncating and rewriting existing files
type Provider struct {
	log model.Logger
}

func NewPosixProvider(log model.Logger) (*Provider, error) {
	return &Provider{log: log}, nil
}

// Exists reports whether anything exists at file, stat failures are treated as absent
func (p *Provider) Exists(_ context.Context, file string) bool {
	return iu.FileExists(file)
}

// Read returns the full contents of file
func (p *Provider) Read(_ context.Context, file string) ([]byte, error) {
	return os.ReadFile(file)
}

// CreateDirectory creates dir and any missing parents, existing directories are not an error
func (p *Provider) CreateDirectory(_ context.Context, dir string) error {
	return os.MkdirAll(dir, dirCreateMode)
}

// Store replaces the contents of file with contents, creating it when needed
func (p *Provider) Store(_ context.Context, file string, contents []byte) error {
	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileCreateMode)
	if err != nil {
		return err
	}

	_, err = f.Write(contents)
	if err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Status returns the current state of a file
func (p *Provider) Status(_ context.Context, file string) (*model.FileState, error) {
	return FileStatus(file, ProviderName, p.log), nil
}

func (p *Provider) Name() string {
	return ProviderName
}

// FileStatus inspects file and reports its state, failures to gather metadata are logged and leave fields empty
func FileStatus(file string, provider string, log model.Logger) *model.FileState {
	state := model.NewFileState(file, provider)

	stat, err := os.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		state.Ensure = model.EnsureAbsent
	case errors.Is(err, fs.ErrPermission):
		log.Warn("Permission denied for file", "file", file, "error", err)
		state.Ensure = model.EnsureAbsent
	case err == nil:
		if stat.IsDir() {
			state.Ensure = model.EnsureDirectory
		}

		state.Metadata.Size = stat.Size()
		state.Metadata.MTime = stat.ModTime().UTC()
		state.Metadata.Owner, state.Metadata.Group, state.Metadata.Mode, err = iu.GetFileOwner(stat)
		if err != nil {
			log.Warn("Failed to get file ownership information", "file", file, "error", err)
		}

		if stat.Mode().IsRegular() {
			state.Metadata.Checksum, err = iu.Sha256HashFile(file)
			if err != nil {
				log.Warn("Failed to calculate checksum", "file", file, "error", err)
			}
		}

	default:
		log.Warn("Failed to get file information", "file", file, "error", err)
		state.Ensure = model.EnsureAbsent
	}

	return state
}

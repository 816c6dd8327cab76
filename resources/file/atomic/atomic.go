// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package atomic provides a file provider that replaces files by writing a
// temporary file next to the target and renaming it into place.
//
// Unlike the posix provider, which rewrites files in place, readers of the
// target see either the old or the new content and never a partial write.
// The window between reading the current content and replacing the file is
// not protected.
package atomic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	iu "github.com/choria-io/fileconverge/internal/util"
	"github.com/choria-io/fileconverge/model"
	"github.com/choria-io/fileconverge/resources/file/posix"
)

const (
	ProviderName = "atomic"

	defaultFileMode = 0644
)

// Provider shares reads and directory creation with the posix provider and replaces Store
type Provider struct {
	*posix.Provider

	log model.Logger
}

func NewAtomicProvider(log model.Logger) (*Provider, error) {
	pp, err := posix.NewPosixProvider(log)
	if err != nil {
		return nil, err
	}

	return &Provider{Provider: pp, log: log}, nil
}

// Store writes contents to a temporary file in the same directory and renames it over file,
// the permissions and where possible the ownership of an existing file are retained
func (p *Provider) Store(_ context.Context, file string, contents []byte) error {
	dir := filepath.Dir(file)
	if !iu.IsDirectory(dir) {
		return fmt.Errorf("%q is not a directory", dir)
	}

	mode := os.FileMode(defaultFileMode)
	existing, err := os.Stat(file)
	if err == nil {
		mode = existing.Mode().Perm()
	}

	tf, err := os.CreateTemp(dir, fmt.Sprintf(".%s.*", filepath.Base(file)))
	if err != nil {
		return err
	}

	success := false
	defer func() {
		if !success {
			tf.Close()
			os.Remove(tf.Name())
		}
	}()

	_, err = tf.Write(contents)
	if err != nil {
		return err
	}

	err = tf.Chmod(mode)
	if err != nil {
		return err
	}

	if existing != nil {
		p.preserveOwner(tf, existing)
	}

	err = tf.Sync()
	if err != nil {
		return fmt.Errorf("could not sync temporary file: %w", err)
	}

	err = tf.Close()
	if err != nil {
		return fmt.Errorf("could not close temporary file: %w", err)
	}

	err = os.Rename(tf.Name(), file)
	if err != nil {
		return fmt.Errorf("could not rename temporary file: %w", err)
	}

	success = true

	return nil
}

func (p *Provider) preserveOwner(tf *os.File, existing os.FileInfo) {
	uid, gid, err := iu.GetFileIDs(existing)
	if err != nil {
		p.log.Debug("Could not determine ownership of existing file", "error", err)
		return
	}

	if uid == os.Getuid() && gid == os.Getgid() {
		return
	}

	err = tf.Chown(uid, gid)
	if err != nil {
		p.log.Warn("Could not retain ownership of existing file", "uid", uid, "gid", gid, "error", err)
	}
}

// Status returns the current state of a file
func (p *Provider) Status(_ context.Context, file string) (*model.FileState, error) {
	return posix.FileStatus(file, ProviderName, p.log), nil
}

func (p *Provider) Name() string {
	return ProviderName
}

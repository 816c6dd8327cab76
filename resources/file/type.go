// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package fileresource

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/choria-io/fileconverge/internal/registry"
	"github.com/choria-io/fileconverge/model"
	"github.com/choria-io/fileconverge/resources/file/atomic"
	"github.com/choria-io/fileconverge/resources/file/posix"
)

// Type converges a single file to the requested content
type Type struct {
	req      *model.Request
	mgr      model.Manager
	log      model.Logger
	provider FileProvider

	mu sync.Mutex
}

// ErrInvalidEncoding indicates the existing file could not be decoded as UTF-8 text
var ErrInvalidEncoding = errors.New("invalid UTF-8 in existing file")

var _ FileProvider = (*posix.Provider)(nil)
var _ FileProvider = (*atomic.Provider)(nil)

// New creates a new file resource for req, the request is validated and a provider selected
func New(_ context.Context, mgr model.Manager, req model.Request) (*Type, error) {
	err := req.Validate()
	if err != nil {
		return nil, err
	}

	logger, err := mgr.Logger("type", model.FileTypeName, "name", req.Path)
	if err != nil {
		return nil, err
	}

	t := &Type{
		req: &req,
		mgr: mgr,
		log: logger,
	}

	err = t.selectProviderUnlocked()
	if err != nil {
		return nil, &model.ValidationError{Field: "provider", Err: err}
	}

	t.log.Debug("Created resource instance", "provider", t.provider.Name())

	return t, nil
}

// Apply converges the file honoring the manager check mode and reports the outcome as a transaction event,
// the event is returned even when convergence fails
func (t *Type) Apply(ctx context.Context) (*model.TransactionEvent, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	event := t.newTransactionEvent()
	checkMode := t.mgr.CheckMode()
	start := time.Now()

	result, err := t.converge(ctx, checkMode)
	event.Duration = time.Since(start)
	event.Result = result
	event.Changed = result.Changed
	event.CheckMode = checkMode
	event.Provider = t.providerUnlocked()

	if err != nil {
		event.Failed = true
		event.Error = err.Error()
	}

	return event, err
}

// Converge brings the file to the requested content, in check mode the filesystem is not accessed
func (t *Type) Converge(ctx context.Context, checkMode bool) (model.Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.converge(ctx, checkMode)
}

func (t *Type) converge(ctx context.Context, checkMode bool) (model.Result, error) {
	var (
		result  = model.NewResult(t.req.Path)
		p       = t.provider
		path    = t.req.Path
		content = t.req.Content
		changed = true
	)

	if checkMode {
		t.log.Info("Skipping convergence in check mode")
		return result, nil
	}

	exists := p.Exists(ctx, path)
	if exists {
		current, err := p.Read(ctx, path)
		if err != nil {
			t.log.Error("Could not read existing file", "error", err)
			return result, model.NewReadError(path, result, err)
		}

		// existing content is text, undecodable files are left untouched
		if !utf8.Valid(current) {
			t.log.Error("Existing file is not valid UTF-8", "path", path)
			return result, model.NewReadError(path, result, ErrInvalidEncoding)
		}

		changed = string(current) != content
	}

	if !changed {
		t.log.Debug("Content matches")
		return result.WithMessage(model.MessageFileUnchanged), nil
	}

	err := p.CreateDirectory(ctx, filepath.Dir(path))
	if err != nil {
		t.log.Error("Could not create parent directory", "error", err)
		return result, model.NewWriteError(path, result, err)
	}

	err = p.Store(ctx, path, []byte(content))
	if err != nil {
		t.log.Error("Could not store new file", "error", err)
		return result, model.NewWriteError(path, result, err)
	}

	if exists {
		t.log.Info("Updated file content")
		return result.WithChange(model.MessageFileUpdated), nil
	}

	t.log.Info("Created file")
	return result.WithChange(model.MessageFileCreated), nil
}

func (t *Type) newTransactionEvent() *model.TransactionEvent {
	event := model.NewTransactionEvent(model.FileTypeName, t.req.Path)
	req := *t.req
	event.Request = &req

	return event
}

// Info returns the current state of the managed file
func (t *Type) Info(ctx context.Context) (*model.FileState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.provider.Status(ctx, t.req.Path)
}

func (t *Type) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return fmt.Sprintf("%s#%s", model.FileTypeName, t.req.Path)
}

func (t *Type) Type() string {
	return model.FileTypeName
}

func (t *Type) Name() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.req.Path
}

func (t *Type) providerUnlocked() string {
	if t.provider == nil {
		return ""
	}

	return t.provider.Name()
}

func (t *Type) Provider() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.providerUnlocked()
}

func (t *Type) selectProviderUnlocked() error {
	if t.provider != nil {
		return nil
	}

	selected, err := registry.FindSuitableProvider(model.FileTypeName, t.req.Provider, t.log)
	if err != nil {
		return err
	}

	fp, ok := selected.(FileProvider)
	if !ok {
		return fmt.Errorf("%w: %s does not manage files", model.ErrNoSuitableProvider, selected.Name())
	}

	t.log.Debug("Selected provider", "provider", fp.Name())
	t.provider = fp

	return nil
}

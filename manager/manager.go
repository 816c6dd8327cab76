// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"context"
	"fmt"
	"sync"

	"github.com/choria-io/fileconverge/model"
	fileresource "github.com/choria-io/fileconverge/resources/file"
	"github.com/choria-io/fileconverge/session"
)

// CCM orchestrates file convergence, it owns the loggers, check mode and session store
type CCM struct {
	session         model.SessionStore
	log             model.Logger
	userLogger      model.Logger
	checkMode       bool
	defaultProvider string

	mu sync.Mutex
}

var _ model.Manager = (*CCM)(nil)

// NewManager creates a new manager with the provided loggers, log receives diagnostic output
// while userLogger receives the outcome of each convergence
func NewManager(log model.Logger, userLogger model.Logger, opts ...Option) (*CCM, error) {
	mgr := &CCM{log: log, userLogger: userLogger}

	for _, opt := range opts {
		err := opt(mgr)
		if err != nil {
			return nil, err
		}
	}

	if mgr.session == nil {
		sessionLog, err := mgr.Logger("session", "memory")
		if err != nil {
			return nil, err
		}

		mgr.session, err = session.NewMemorySessionStore(sessionLog)
		if err != nil {
			return nil, err
		}
	}

	return mgr, nil
}

// Logger creates a new logger with the provided key-value pairs added to the context
func (m *CCM) Logger(args ...any) (model.Logger, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("invalid logger arguments, must be key value pairs")
	}

	return m.log.With(args...), nil
}

// CheckMode indicates if changes should only be reported and not made
func (m *CCM) CheckMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.checkMode
}

// StartSession starts a new session in the session store
func (m *CCM) StartSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return fmt.Errorf("no session store available")
	}

	return m.session.StartSession()
}

// RecordEvent records event in the session store
func (m *CCM) RecordEvent(event *model.TransactionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return fmt.Errorf("no session store available")
	}

	return m.session.RecordEvent(event)
}

// SessionSummary summarizes the events recorded in the current session
func (m *CCM) SessionSummary() (*model.SessionSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, fmt.Errorf("no session store available")
	}

	return m.session.StopSession(false)
}

// Converge brings the file described by req to the desired content and records the outcome in the session.
//
// Invalid requests return a *model.ValidationError before the filesystem is accessed, failures during
// convergence return a *model.IOError. The returned result always echoes the requested path.
func (m *CCM) Converge(ctx context.Context, req model.Request) (model.Result, error) {
	if req.Provider == "" {
		req.Provider = m.defaultProvider
	}

	ft, err := fileresource.New(ctx, m, req)
	if err != nil {
		m.log.Debug("Rejected request", "path", req.Path, "error", err)
		return model.NewResult(req.Path), err
	}

	event, err := ft.Apply(ctx)

	rerr := m.RecordEvent(event)
	if rerr != nil {
		m.log.Warn("Could not record transaction event", "path", req.Path, "error", rerr)
	}

	event.LogStatus(m.userLogger)

	return event.Result, err
}

// Status reports the current state of a file using the requested or default provider
func (m *CCM) Status(ctx context.Context, path string, provider string) (*model.FileState, error) {
	if provider == "" {
		provider = m.defaultProvider
	}

	ft, err := fileresource.New(ctx, m, model.Request{Path: path, Provider: provider})
	if err != nil {
		return nil, err
	}

	return ft.Info(ctx)
}

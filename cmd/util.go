// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"os"

	"github.com/SladkyCitron/slogcolor"
	"golang.org/x/term"

	"github.com/choria-io/fileconverge/config"
	iu "github.com/choria-io/fileconverge/internal/util"
	"github.com/choria-io/fileconverge/manager"
	"github.com/choria-io/fileconverge/model"
)

// newManager creates a manager, a session directory that does not exist yet is created and a session started in it
func newManager(logger model.Logger, out model.Logger, checkMode bool, session string, provider string) (*manager.CCM, model.Logger, error) {
	var opts []manager.Option

	if checkMode {
		opts = append(opts, manager.WithCheckMode())
	}

	if session != "" {
		opts = append(opts, manager.WithSessionDirectory(session))
	}

	if provider != "" {
		opts = append(opts, manager.WithDefaultProvider(provider))
	}

	mgr, err := manager.NewManager(logger, out, opts...)
	if err != nil {
		return nil, nil, err
	}

	if session != "" && !iu.IsDirectory(session) {
		logger.Debug("Starting new session", "directory", session)
		err = mgr.StartSession()
		if err != nil {
			return nil, nil, err
		}
	}

	return mgr, out, nil
}

func logLevel() slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case info:
		return slog.LevelInfo
	}

	if cfg == nil {
		return slog.LevelWarn
	}

	// validated while loading
	level, _ := config.ParseLogLevel(cfg.LogLevel)

	return level
}

func newOutputLogger() model.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return manager.NewSlogTextLogger(os.Stdout, level)
	}

	return manager.NewSlogLogger(slog.New(slogcolor.NewHandler(os.Stdout, &slogcolor.Options{Level: level})))
}

func newLogger() model.Logger {
	return manager.NewSlogTextLogger(os.Stderr, logLevel())
}

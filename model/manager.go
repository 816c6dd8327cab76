// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

type Manager interface {
	Logger(args ...any) (Logger, error)
	CheckMode() bool
	RecordEvent(event *TransactionEvent) error
	Converge(ctx context.Context, req Request) (Result, error)
	SessionSummary() (*SessionSummary, error)
}

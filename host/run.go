// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package host implements the module invocation protocol: arguments are read from a file
// named on the command line and a single JSON document describing the outcome is written to stdout
package host

import (
	"context"
	"errors"
	"io"

	"github.com/choria-io/fileconverge/metrics"
	"github.com/choria-io/fileconverge/model"
)

// ManagerFactory creates the manager used for an invocation in the requested check mode
type ManagerFactory func(checkMode bool) (model.Manager, error)

// Run performs one module invocation and returns the process exit status
func Run(ctx context.Context, argsFile string, out io.Writer, log model.Logger, newManager ManagerFactory) int {
	args, err := ParseArgumentsFile(argsFile)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			metrics.ArgumentErrors.WithLabelValues(verr.Field).Inc()
		}

		log.Error("Invalid module arguments", "file", argsFile, "error", err)

		res := model.Result{}
		if args != nil {
			res = model.NewResult(args.Request.Path)
		}

		return respond(out, log, res, err)
	}

	log.Debug("Parsed module arguments", "path", args.Request.Path, "provider", args.Request.Provider, "check_mode", args.CheckMode)

	mgr, err := newManager(args.CheckMode)
	if err != nil {
		return respond(out, log, model.NewResult(args.Request.Path), err)
	}

	res, err := mgr.Converge(ctx, args.Request)

	return respond(out, log, res, err)
}

func respond(out io.Writer, log model.Logger, res model.Result, err error) int {
	resp := NewResponse(res, err)

	werr := resp.Write(out)
	if werr != nil {
		log.Error("Could not write module response", "error", werr)
		return ExitFailed
	}

	return resp.ExitCode()
}

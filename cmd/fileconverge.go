// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/choria-io/fisk"

	"github.com/choria-io/fileconverge/config"
	"github.com/choria-io/fileconverge/host"
	iu "github.com/choria-io/fileconverge/internal/util"
	"github.com/choria-io/fileconverge/metrics"
	"github.com/choria-io/fileconverge/model"
)

var (
	ctx     context.Context
	debug   bool
	info    bool
	cfg     *config.Config
	Version = "development"

	commandNames = []string{"ensure", "converge", "schema", "session", "status", "info", "help"}
)

func main() {
	app := fisk.New("fileconverge", "Choria File Convergence")
	app.Version(Version)
	app.Author("https://choria.io")

	app.Flag("debug", "Enable debug logging").UnNegatableBoolVar(&debug)
	app.Flag("info", "Enable info logging").UnNegatableBoolVar(&info)

	registerEnsureCommand(app)
	registerSchemaCommand(app)
	registerSessionCommand(app)
	registerStatusCommand(app)

	var cancel context.CancelFunc
	ctx, cancel = interruptContext()
	defer cancel()

	var err error
	cfg, err = config.Load()

	if isModuleInvocation(os.Args[1:]) {
		code := runModule(os.Args[1], err, os.Stdout)
		cancel()
		os.Exit(code)
	}

	if err != nil {
		cancel()
		log.Fatalf("Could not load configuration: %v", err)
	}

	app.MustParseWithUsage(os.Args[1:])
}

// interruptContext is canceled on interrupt or when the returned cancel is called
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// isModuleInvocation detects the module protocol where the only argument is the arguments file written by the host
func isModuleInvocation(args []string) bool {
	if len(args) != 1 || strings.HasPrefix(args[0], "-") {
		return false
	}

	if slices.Contains(commandNames, args[0]) {
		return false
	}

	return iu.IsRegularFile(args[0])
}

// runModule handles a module invocation writing the response to out, check mode runs leave no session or metrics behind
func runModule(argsFile string, cfgErr error, out io.Writer) int {
	// out holds only the module response
	log := newLogger()

	if cfgErr != nil {
		log.Error("Could not load configuration", "error", cfgErr)
		resp := host.NewResponse(model.Result{}, cfgErr)
		err := resp.Write(out)
		if err != nil {
			log.Error("Could not write module response", "error", err)
		}

		return resp.ExitCode()
	}

	var checked bool

	code := host.Run(ctx, argsFile, out, log, func(checkMode bool) (model.Manager, error) {
		checked = checkMode

		session := cfg.SessionDirectory
		if checkMode {
			session = ""
		}

		mgr, _, err := newManager(log, log, checkMode, session, cfg.Provider)
		return mgr, err
	})

	if checked {
		log.Debug("Skipping metrics in check mode", "file", cfg.MetricsFile)
		return code
	}

	err := metrics.WriteTextfile(cfg.MetricsFile)
	if err != nil {
		log.Error("Could not write metrics", "file", cfg.MetricsFile, "error", err)
	}

	return code
}

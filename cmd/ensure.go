// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/choria-io/fisk"

	"github.com/choria-io/fileconverge/host"
	"github.com/choria-io/fileconverge/metrics"
	"github.com/choria-io/fileconverge/model"
)

type ensureCommand struct {
	path        string
	content     string
	contentFile string
	checkMode   bool
	provider    string
	session     string
	metricsFile string
	json        bool
}

func registerEnsureCommand(app *fisk.Application) {
	cmd := &ensureCommand{}

	ens := app.Command("ensure", "Ensures a file has specific content").Alias("converge").Action(cmd.ensureAction)
	ens.Arg("path", "The file to manage").Required().StringVar(&cmd.path)
	ens.Flag("content", "Desired content of the file").PlaceHolder("STRING").StringVar(&cmd.content)
	ens.Flag("content-file", "File holding the desired content of the file").PlaceHolder("FILE").ExistingFileVar(&cmd.contentFile)
	ens.Flag("check", "Report what would change without making changes").UnNegatableBoolVar(&cmd.checkMode)
	ens.Flag("provider", "Provider to write the file with").PlaceHolder("NAME").StringVar(&cmd.provider)
	ens.Flag("session", "Session store to use").Envar("FILECONVERGE_SESSION_STORE").PlaceHolder("DIRECTORY").StringVar(&cmd.session)
	ens.Flag("metrics-file", "Writes prometheus metrics to a node exporter textfile").PlaceHolder("FILE").StringVar(&cmd.metricsFile)
	ens.Flag("json", "Render the result as JSON").UnNegatableBoolVar(&cmd.json)
}

func (c *ensureCommand) ensureAction(_ *fisk.ParseContext) error {
	if c.content != "" && c.contentFile != "" {
		return fmt.Errorf("cannot specify both content and content-file")
	}

	req := model.Request{Path: c.path, Content: c.content, Provider: c.provider}

	if c.contentFile != "" {
		content, err := os.ReadFile(c.contentFile)
		if err != nil {
			return err
		}
		req.Content = string(content)
	}

	if c.session == "" {
		c.session = cfg.SessionDirectory
	}
	if c.provider == "" {
		req.Provider = cfg.Provider
	}
	if c.metricsFile == "" {
		c.metricsFile = cfg.MetricsFile
	}

	logger := newLogger()
	mgr, _, err := newManager(logger, newOutputLogger(), c.checkMode, c.session, "")
	if err != nil {
		return err
	}

	res, err := mgr.Converge(ctx, req)

	merr := metrics.WriteTextfile(c.metricsFile)
	if merr != nil {
		logger.Error("Could not write metrics", "file", c.metricsFile, "error", merr)
	}

	if c.json {
		resp := host.NewResponse(res, err)
		werr := resp.Write(os.Stdout)
		if werr != nil {
			return werr
		}

		os.Exit(resp.ExitCode())
	}

	return err
}

// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/choria-io/fisk"
)

type statusCommand struct {
	json     bool
	path     string
	provider string
}

func registerStatusCommand(app *fisk.Application) {
	cmd := &statusCommand{}

	status := app.Command("status", "Get file status").Alias("info").Action(cmd.statusAction)
	status.Arg("path", "File to get status for").Required().StringVar(&cmd.path)
	status.Flag("provider", "Provider to inspect the file with").PlaceHolder("NAME").StringVar(&cmd.provider)
	status.Flag("json", "Output status in JSON format").UnNegatableBoolVar(&cmd.json)
}

func (c *statusCommand) statusAction(_ *fisk.ParseContext) error {
	logger := newLogger()
	mgr, _, err := newManager(logger, logger, true, "", cfg.Provider)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(c.path)
	if err != nil {
		return err
	}

	nfo, err := mgr.Status(ctx, abs, c.provider)
	if err != nil {
		return fmt.Errorf("could not get status: %w", err)
	}

	var out []byte
	if c.json {
		out, err = json.MarshalIndent(nfo, "", "  ")
	} else {
		out, err = yaml.Marshal(nfo)
	}
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}

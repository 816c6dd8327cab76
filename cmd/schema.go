// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/choria-io/fisk"

	"github.com/choria-io/fileconverge/host"
)

func registerSchemaCommand(app *fisk.Application) {
	app.Command("schema", "Shows the JSON schema for module arguments").Action(func(_ *fisk.ParseContext) error {
		fmt.Println(string(host.Schema()))
		return nil
	})
}

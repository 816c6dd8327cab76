// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package host

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const argumentsSchemaURL = "https://choria.io/schemas/fileconverge/v1/arguments.json"

//go:embed arguments.schema.json
var argumentsSchema []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(argumentsSchema))
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	err = c.AddResource(argumentsSchemaURL, doc)
	if err != nil {
		return nil, err
	}

	return c.Compile(argumentsSchemaURL)
})

// Schema is the JSON schema describing module arguments
func Schema() []byte {
	return bytes.Clone(argumentsSchema)
}

func validateSchema(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}

	return sch.Validate(doc)
}

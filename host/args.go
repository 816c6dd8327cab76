// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package host

import (
	"bytes"
	"encoding/json"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/tidwall/gjson"

	"github.com/choria-io/fileconverge/model"
)

const (
	ParamPath      = "path"
	ParamContent   = "content"
	ParamProvider  = "provider"
	ParamCheckMode = "_ansible_check_mode"

	hostParamPrefix = "_ansible_"
)

var stringParams = []string{ParamPath, ParamContent, ParamProvider}

// Arguments are the decoded module arguments
type Arguments struct {
	Request   model.Request
	CheckMode bool
}

// ParseArgumentsFile reads and decodes the arguments file written by the host
func ParseArgumentsFile(file string) (*Arguments, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, model.NewValidationError("", model.ErrInvalidArguments, "could not read arguments file: %v", err)
	}

	return ParseArguments(data)
}

// ParseArguments decodes a JSON object or legacy key=value arguments.
//
// All failures are *model.ValidationError, when a valid path was supplied the returned
// arguments hold it even on failure so responses can echo it.
func ParseArguments(data []byte) (*Arguments, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, model.NewValidationError("", model.ErrInvalidArguments, "no arguments supplied")
	}

	if data[0] != '{' {
		var err error
		data, err = keyValueToJSON(data)
		if err != nil {
			return nil, err
		}
	}

	if !gjson.ValidBytes(data) {
		return nil, model.NewValidationError("", model.ErrInvalidArguments, "arguments are not valid JSON")
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, model.NewValidationError("", model.ErrInvalidArguments, "arguments must be a JSON object")
	}

	args := &Arguments{}
	if path := parsed.Get(ParamPath); path.Type == gjson.String {
		args.Request.Path = path.String()
	}

	err := validateSchema(data)
	if err != nil {
		return args, diagnose(parsed, err)
	}

	args.Request.Content = parsed.Get(ParamContent).String()
	args.Request.Provider = parsed.Get(ParamProvider).String()
	args.CheckMode = parsed.Get(ParamCheckMode).Bool()

	err = args.Request.Validate()
	if err != nil {
		return args, err
	}

	return args, nil
}

// diagnose turns a schema failure into a validation error naming the offending parameter
func diagnose(parsed gjson.Result, schemaErr error) error {
	var unknown []string
	parsed.ForEach(func(key, _ gjson.Result) bool {
		name := key.String()
		if !slices.Contains(stringParams, name) && !strings.HasPrefix(name, hostParamPrefix) {
			unknown = append(unknown, name)
		}
		return true
	})

	if len(unknown) > 0 {
		slices.Sort(unknown)
		return model.NewValidationError(strings.Join(unknown, ","), model.ErrUnknownParameter, "Unsupported parameters for (fileconverge) module: %s. Supported parameters include: %s", strings.Join(unknown, ", "), strings.Join(stringParams, ", "))
	}

	path := parsed.Get(ParamPath)
	if !path.Exists() || path.Type == gjson.Null {
		return model.NewValidationError(ParamPath, model.ErrPathRequired, "missing required arguments: %s", ParamPath)
	}

	for _, name := range stringParams {
		val := parsed.Get(name)
		if val.Exists() && val.Type != gjson.Null && val.Type != gjson.String {
			return model.NewValidationError(name, model.ErrInvalidParameterType, "argument %s is of type %s, expected string", name, jsonType(val))
		}
	}

	check := parsed.Get(ParamCheckMode)
	if check.Exists() && !check.IsBool() {
		return model.NewValidationError(ParamCheckMode, model.ErrInvalidParameterType, "argument %s is of type %s, expected boolean", ParamCheckMode, jsonType(check))
	}

	if path.String() == "" {
		return &model.ValidationError{Field: ParamPath, Err: model.ErrPathRequired}
	}

	return model.NewValidationError("", model.ErrInvalidArguments, "%v", schemaErr)
}

func jsonType(r gjson.Result) string {
	switch {
	case r.IsBool():
		return "boolean"
	case r.IsArray():
		return "array"
	case r.IsObject():
		return "object"
	case r.Type == gjson.Number:
		return "number"
	case r.Type == gjson.Null:
		return "null"
	default:
		return "string"
	}
}

// keyValueToJSON converts shell quoted key=value words into a JSON object, host keys holding booleans are converted
func keyValueToJSON(data []byte) ([]byte, error) {
	words, err := shellquote.Split(string(data))
	if err != nil {
		return nil, model.NewValidationError("", model.ErrInvalidArguments, "could not parse arguments: %v", err)
	}

	args := make(map[string]any, len(words))
	for _, word := range words {
		key, val, ok := strings.Cut(word, "=")
		if !ok || key == "" {
			return nil, model.NewValidationError("", model.ErrInvalidArguments, "argument %q is not in key=value format", word)
		}

		args[key] = val

		if strings.HasPrefix(key, hostParamPrefix) {
			b, ok := parseBool(val)
			if ok {
				args[key] = b
			}
		}
	}

	return json.Marshal(args)
}

func parseBool(val string) (bool, bool) {
	switch strings.ToLower(val) {
	case "yes", "on", "y":
		return true, true
	case "no", "off", "n":
		return false, true
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, false
	}

	return b, true
}

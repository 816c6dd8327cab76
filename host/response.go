// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package host

import (
	"encoding/json"
	"io"

	"github.com/choria-io/fileconverge/model"
)

const (
	ExitOK     = 0
	ExitFailed = 1
)

// Response is the JSON document a module writes to stdout
type Response struct {
	Changed         bool   `json:"changed"`
	OriginalMessage string `json:"original_message"`
	Message         string `json:"message"`
	Failed          bool   `json:"failed,omitempty"`
	Msg             string `json:"msg,omitempty"`
}

// NewResponse creates a response for res, a non nil err marks it as failed
func NewResponse(res model.Result, err error) Response {
	resp := Response{
		Changed:         res.Changed,
		OriginalMessage: res.OriginalMessage,
		Message:         res.Message,
	}

	if err != nil {
		resp.Failed = true
		resp.Msg = err.Error()
	}

	return resp
}

// ExitCode is the process exit status matching the response
func (r Response) ExitCode() int {
	if r.Failed {
		return ExitFailed
	}

	return ExitOK
}

// Write writes the response as a single JSON document followed by a newline
func (r Response) Write(w io.Writer) error {
	return json.NewEncoder(w).Encode(r)
}

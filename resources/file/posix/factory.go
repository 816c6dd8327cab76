// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package posix

import (
	"github.com/choria-io/fileconverge/internal/registry"
	"github.com/choria-io/fileconverge/model"
)

// Register registers this provider with the registry
func Register() {
	registry.MustRegister(&factory{})
}

type factory struct{}

func (p *factory) TypeName() string { return model.FileTypeName }
func (p *factory) Name() string     { return ProviderName }
func (p *factory) New(log model.Logger) (model.Provider, error) {
	return NewPosixProvider(log)
}
func (p *factory) IsManageable() (bool, int, error) {
	return true, 1, nil
}

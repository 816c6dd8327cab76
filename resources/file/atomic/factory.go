// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package atomic

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
	return NewAtomicProvider(log)
}

// IsManageable is true everywhere but the provider is only used when requested by name
func (p *factory) IsManageable() (bool, int, error) {
	return true, 10, nil
}

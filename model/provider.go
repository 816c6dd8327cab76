// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

// Provider is an interface for a resource provider
type Provider interface {
	Name() string
}

// ProviderFactory creates providers, lower priorities are preferred when no provider is requested
type ProviderFactory interface {
	IsManageable() (bool, int, error)
	TypeName() string
	Name() string
	New(Logger) (Provider, error)
}

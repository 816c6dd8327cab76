// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/choria-io/fileconverge/model"
)

var (
	providers = make(map[string]map[string]model.ProviderFactory)
	mu        sync.Mutex
)

// Clear removes all registered providers
func Clear() {
	mu.Lock()
	defer mu.Unlock()

	providers = make(map[string]map[string]model.ProviderFactory)
}

// Register registers a plugin
func Register(p any) error {
	switch tp := p.(type) {
	case model.ProviderFactory:
		return registerProvider(tp)
	default:
		return fmt.Errorf("cannot register provider of type %T", p)
	}
}

// MustRegister registers a plugin and panics if registration fails
func MustRegister(p any) {
	err := Register(p)
	if err != nil {
		panic(err)
	}
}

// registerProvider registers a provider factory for its type and returns an error if a provider with the same name already exists
func registerProvider(p model.ProviderFactory) error {
	mu.Lock()
	defer mu.Unlock()

	tn := p.TypeName()
	pn := p.Name()

	_, ok := providers[tn]
	if !ok {
		providers[tn] = make(map[string]model.ProviderFactory)
	}

	_, ok = providers[tn][pn]
	if ok {
		return model.ErrDuplicateProvider
	}

	providers[tn][pn] = p

	return nil
}

// selectProviders returns the manageable providers for a type ordered by priority
func selectProviders(typeName string, log model.Logger) []model.ProviderFactory {
	mu.Lock()
	defer mu.Unlock()

	type matched struct {
		prio int
		prov model.ProviderFactory
	}

	var found []matched

	for _, f := range providers[typeName] {
		ok, priority, err := f.IsManageable()
		if err != nil {
			log.Warn("Could not check if provider is manageable", "provider", f.Name(), "err", err)
			continue
		}

		if ok {
			found = append(found, matched{priority, f})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].prio == found[j].prio {
			return found[i].prov.Name() < found[j].prov.Name()
		}
		return found[i].prio < found[j].prio
	})

	result := make([]model.ProviderFactory, 0, len(found))
	for _, v := range found {
		result = append(result, v.prov)
	}

	return result
}

// selectProvider finds a provider matching name and checks it's manageable before returning it
func selectProvider(typeName string, providerName string, log model.Logger) (model.ProviderFactory, error) {
	mu.Lock()
	defer mu.Unlock()

	p, ok := providers[typeName][providerName]
	if !ok {
		log.Debug("No providers found", "type", typeName, "provider", providerName)
		return nil, fmt.Errorf("%w: %s", model.ErrProviderNotFound, providerName)
	}

	ok, _, err := p.IsManageable()
	if err != nil {
		log.Debug("Provider detection failed", "provider", p.Name(), "err", err)
		return nil, fmt.Errorf("%w: %w", model.ErrProviderNotManageable, err)
	}

	if !ok {
		log.Debug("Provider cannot be used", "provider", p.Name())
		return nil, fmt.Errorf("%w: %s", model.ErrProviderNotManageable, "not applicable to instance")
	}

	return p, nil
}

// Types returns a list of all registered resource type names
func Types() []string {
	mu.Lock()
	defer mu.Unlock()

	res := make([]string, 0, len(providers))
	for k := range maps.Keys(providers) {
		res = append(res, k)
	}

	sort.Strings(res)

	return res
}

// Providers returns the names of all providers registered for a type
func Providers(typeName string) []string {
	mu.Lock()
	defer mu.Unlock()

	res := make([]string, 0, len(providers[typeName]))
	for k := range maps.Keys(providers[typeName]) {
		res = append(res, k)
	}

	sort.Strings(res)

	return res
}

// FindSuitableProvider creates the named provider, or the preferred manageable provider when provider is empty
func FindSuitableProvider(typeName string, provider string, log model.Logger) (model.Provider, error) {
	var selected model.ProviderFactory

	if provider == "" {
		provs := selectProviders(typeName, log)
		if len(provs) == 0 {
			return nil, model.ErrNoSuitableProvider
		}

		selected = provs[0]
	} else {
		prov, err := selectProvider(typeName, provider, log)
		if err != nil {
			return nil, err
		}

		selected = prov
	}

	return selected.New(log)
}

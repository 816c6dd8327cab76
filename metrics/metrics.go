// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	NameSpace = "choria"
	Subsystem = "fileconverge"

	// ConvergeTime is a summary of the time taken to converge a particular file
	ConvergeTime = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "converge_duration_seconds"),
		Help: "Time taken to converge a particular resource",
	}, []string{"type", "provider"})

	// ResourceStateTotal counts how many resources were processed
	ResourceStateTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "resource_state_total_count"),
		Help: "How many resources were processed",
	}, []string{"type", "name"})

	// ResourceStateChanged counts how many resources were changed
	ResourceStateChanged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "resource_state_changed_count"),
		Help: "How many resources were changed",
	}, []string{"type", "name"})

	// ResourceStateStable counts how many resources already had the desired content
	ResourceStateStable = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "resource_state_stable_count"),
		Help: "How many resources were in stable state",
	}, []string{"type", "name"})

	// ResourceStateFailed counts how many resources failed
	ResourceStateFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "resource_state_failed_count"),
		Help: "How many resources failed",
	}, []string{"type", "name"})

	// ResourceStateCheckMode counts how many resources were processed in check mode
	ResourceStateCheckMode = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "resource_state_check_mode_count"),
		Help: "How many resources were processed in check mode",
	}, []string{"type", "name"})

	// ArgumentErrors counts module invocations rejected before convergence
	ArgumentErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "argument_error_count"),
		Help: "How many invocations had invalid arguments",
	}, []string{"field"})

	registerOnce sync.Once
)

// RegisterMetrics registers all collectors with the default registry, repeated calls are ignored
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ConvergeTime)
		prometheus.MustRegister(ResourceStateTotal)
		prometheus.MustRegister(ResourceStateChanged)
		prometheus.MustRegister(ResourceStateStable)
		prometheus.MustRegister(ResourceStateFailed)
		prometheus.MustRegister(ResourceStateCheckMode)
		prometheus.MustRegister(ArgumentErrors)
	})
}

// WriteTextfile writes the registered metrics to file in the format read by the node exporter textfile collector
func WriteTextfile(file string) error {
	if file == "" {
		return nil
	}

	RegisterMetrics()

	return prometheus.WriteToTextfile(file, prometheus.DefaultGatherer)
}

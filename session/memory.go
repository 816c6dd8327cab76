// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"slices"
	"sync"

	"github.com/choria-io/fileconverge/model"
)

// MemorySessionStore keeps the events of a session in memory, it is the store used by module invocations
type MemorySessionStore struct {
	events []model.SessionEvent
	log    model.Logger
	mu     sync.Mutex
}

var _ model.SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore creates a new in-memory session store
func NewMemorySessionStore(logger model.Logger) (*MemorySessionStore, error) {
	logger.Debug("Creating new session store", "store", "memory")

	return &MemorySessionStore{
		log:    logger,
		events: make([]model.SessionEvent, 0),
	}, nil
}

// StartSession discards previously recorded events and records a session start event
func (s *MemorySessionStore) StartSession() error {
	s.mu.Lock()
	s.events = make([]model.SessionEvent, 0)
	s.mu.Unlock()

	s.log.Debug("Starting new session", "store", "memory")

	return s.RecordEvent(model.NewSessionStartEvent())
}

// RecordEvent adds an event to the session
func (s *MemorySessionStore) RecordEvent(event model.SessionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updateMetrics(event)

	s.events = append(s.events, event)

	return nil
}

// StopSession summarizes the session, when destroy is set the recorded events are discarded
func (s *MemorySessionStore) StopSession(destroy bool) (*model.SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := model.BuildSessionSummary(s.events)

	if destroy {
		s.events = make([]model.SessionEvent, 0)
	}

	return summary, nil
}

// EventsForResource returns all events for a given resource, the latest event is last
func (s *MemorySessionStore) EventsForResource(resourceType string, resourceName string) ([]model.TransactionEvent, error) {
	allEvents, err := s.AllEvents()
	if err != nil {
		return nil, err
	}

	return filterEvents(allEvents, resourceType, resourceName), nil
}

// AllEvents returns a copy of all events in the session in the order they were recorded
func (s *MemorySessionStore) AllEvents() ([]model.SessionEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.events), nil
}

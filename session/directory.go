// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/segmentio/ksuid"
	"github.com/tidwall/gjson"

	iu "github.com/choria-io/fileconverge/internal/util"
	"github.com/choria-io/fileconverge/model"
)

// DirectorySessionStore persists events as individual files in a directory so that
// several invocations can be reported on as one session
type DirectorySessionStore struct {
	directory string
	log       model.Logger
	mu        sync.Mutex
}

var _ model.SessionStore = (*DirectorySessionStore)(nil)

// NewDirectorySessionStore creates a session store backed by directory, the directory is created on StartSession
func NewDirectorySessionStore(directory string, logger model.Logger) (*DirectorySessionStore, error) {
	if directory == "" {
		return nil, fmt.Errorf("session directory path cannot be empty")
	}

	absDir, err := filepath.Abs(filepath.Clean(directory))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	logger.Debug("Creating new session store", "store", "directory", "directory", absDir)

	return &DirectorySessionStore{
		log:       logger,
		directory: absDir,
	}, nil
}

// Directory is the absolute path events are stored in
func (s *DirectorySessionStore) Directory() string {
	return s.directory
}

// StartSession ensures the directory exists and records a session start event, existing events are kept
func (s *DirectorySessionStore) StartSession() error {
	s.log.Debug("Starting new session", "store", "directory")

	s.mu.Lock()
	err := os.MkdirAll(s.directory, 0755)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	return s.RecordEvent(model.NewSessionStartEvent())
}

// EventsForResource returns all events for a given resource, the latest event is last
func (s *DirectorySessionStore) EventsForResource(resourceType string, resourceName string) ([]model.TransactionEvent, error) {
	allEvents, err := s.AllEvents()
	if err != nil {
		return nil, err
	}

	return filterEvents(allEvents, resourceType, resourceName), nil
}

// RecordEvent writes event to <event id>.event in the session directory
func (s *DirectorySessionStore) RecordEvent(event model.SessionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updateMetrics(event)

	// ksuids are base62 so a valid id can not escape the directory
	_, err := ksuid.Parse(event.SessionEventID())
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	if !iu.IsDirectory(s.directory) {
		return fmt.Errorf("session store %s does not exist", s.directory)
	}

	data, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return err
	}

	filename := filepath.Join(s.directory, event.SessionEventID()+eventFileSuffix)
	s.log.Debug("Recording event", "filename", filename)

	return os.WriteFile(filename, data, 0644)
}

// StopSession summarizes the session, when destroy is set the directory is removed
func (s *DirectorySessionStore) StopSession(destroy bool) (*model.SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.allEventsUnlocked()
	if err != nil {
		return nil, err
	}

	summary := model.BuildSessionSummary(events)

	if destroy && iu.IsDirectory(s.directory) {
		err = os.RemoveAll(s.directory)
		if err != nil {
			s.log.Error("Failed to remove session directory", "error", err)
		}
	}

	return summary, nil
}

// AllEvents returns all events in the session in time order, unreadable files are logged and skipped
func (s *DirectorySessionStore) AllEvents() ([]model.SessionEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.allEventsUnlocked()
}

func (s *DirectorySessionStore) allEventsUnlocked() ([]model.SessionEvent, error) {
	var events []model.SessionEvent

	entries, err := os.ReadDir(s.directory)
	if errors.Is(err, fs.ErrNotExist) {
		return events, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), eventFileSuffix) {
			continue
		}

		filename := filepath.Join(s.directory, entry.Name())
		event, err := s.readEvent(filename)
		if err != nil {
			s.log.Error("Failed to read event file", "filename", filename, "error", err)
			continue
		}

		if event != nil {
			events = append(events, event)
		}
	}

	// ksuids sort in creation order
	sort.Slice(events, func(i, j int) bool {
		return events[i].SessionEventID() < events[j].SessionEventID()
	})

	return events, nil
}

func (s *DirectorySessionStore) readEvent(filename string) (model.SessionEvent, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}

	var event model.SessionEvent

	switch protocol := gjson.GetBytes(data, "protocol").String(); protocol {
	case model.SessionStartEventProtocol:
		event = &model.SessionStartEvent{}
	case model.TransactionEventProtocol:
		event = &model.TransactionEvent{}
	default:
		s.log.Warn("Unknown event protocol", "filename", filename, "protocol", protocol)
		return nil, nil
	}

	err = json.Unmarshal(data, event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

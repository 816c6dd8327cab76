// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"github.com/choria-io/fileconverge/model"
	"github.com/choria-io/fileconverge/session"
)

// Option is a functional option for configuring the manager
type Option func(*CCM) error

// WithCheckMode reports what would change without changing anything
func WithCheckMode() Option {
	return func(c *CCM) error {
		c.checkMode = true
		return nil
	}
}

// WithSessionDirectory stores session events in path rather than in memory
func WithSessionDirectory(path string) Option {
	return func(c *CCM) error {
		if path == "" {
			return nil
		}

		log, err := c.Logger("session", "directory", "path", path)
		if err != nil {
			return err
		}

		sess, err := session.NewDirectorySessionStore(path, log)
		if err != nil {
			return err
		}

		c.session = sess

		return nil
	}
}

// WithSessionStore uses a custom session store
func WithSessionStore(store model.SessionStore) Option {
	return func(c *CCM) error {
		c.session = store
		return nil
	}
}

// WithDefaultProvider sets the provider used for requests that do not name one
func WithDefaultProvider(provider string) Option {
	return func(c *CCM) error {
		c.defaultProvider = provider
		return nil
	}
}

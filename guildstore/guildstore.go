// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

/*
Package guildstore persists per-guild settings, currently the
Message-domain locale override consumed by package i18n.

The store is read-mostly: every guild command handler reads it, writes
happen only when an admin runs setlang. State lives in memory behind a
RWMutex and is flushed to a YAML file on every change.
*/
package guildstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codeberg.org/melodica/melodica/i18n"
)

// Settings is the persisted record for one guild.
type Settings struct {
	// Locale is the guild's Message-domain locale override, or "" when
	// the guild follows the process-wide locale. Stored exactly as the
	// admin set it; resolution against available catalogs happens at
	// lookup time.
	Locale string `yaml:"locale,omitempty"`
}

// Guild is an immutable snapshot of one guild's settings. It implements
// i18n.GuildContext.
type Guild struct {
	id     string
	locale string
}

var _ i18n.GuildContext = Guild{}

func (g Guild) GuildID() string {
	return g.id
}

func (g Guild) LocaleOverride() string {
	return g.locale
}

// Store holds all guild settings and their backing file.
type Store struct {
	path   string
	logger zerolog.Logger

	mu     sync.RWMutex
	guilds map[string]Settings
}

// Open loads the store from path, creating an empty store when the file
// does not exist yet. A corrupt file is an error; losing every guild's
// settings silently is worse than failing startup.
func Open(path string) (*Store, error) {
	s := &Store{
		path:   path,
		logger: log.With().Str("sys", "guildstore").Logger(),
		guilds: make(map[string]Settings),
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from our own configuration
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Info().Str("path", path).Msg("No guild settings file yet, starting empty")

		return s, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read guild settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s.guilds); err != nil {
		return nil, fmt.Errorf("failed to parse guild settings %s: %w", path, err)
	}

	s.logger.Info().Int("guilds", len(s.guilds)).Str("path", path).Msg("Loaded guild settings")

	return s, nil
}

// Guild returns a snapshot of id's settings. Unknown guilds get a zero
// snapshot, meaning no locale override.
func (s *Store) Guild(id string) Guild {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Guild{id: id, locale: s.guilds[id].Locale}
}

// SetLocale records a guild's Message-domain locale override and flushes
// the store. An empty tag clears the override.
func (s *Store) SetLocale(id, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.guilds[id]
	cur.Locale = tag

	// Guilds with no remaining settings are dropped from the file
	// entirely.
	if cur == (Settings{}) {
		delete(s.guilds, id)
	} else {
		s.guilds[id] = cur
	}

	return s.save()
}

// save writes the settings file via a temp file and rename so a crash
// mid-write cannot leave a half-written store behind. Caller holds mu.
func (s *Store) save() error {
	data, err := yaml.Marshal(s.guilds)
	if err != nil {
		return fmt.Errorf("failed to encode guild settings: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create guild settings directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write guild settings: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace guild settings: %w", err)
	}

	return nil
}

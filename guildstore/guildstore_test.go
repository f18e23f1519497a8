// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package guildstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "guilds.yaml")

	s, err := Open(path)
	require.NoError(t, err)

	g := s.Guild("123")
	require.Equal(t, "123", g.GuildID())
	require.Equal(t, "", g.LocaleOverride())
}

func TestOpenCorruptFileFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "guilds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{:::not yaml"), 0o600))

	_, err := Open(path)
	require.Error(t, err)
}

func TestSetLocalePersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "guilds.yaml")

	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.SetLocale("123", "fr"))
	require.Equal(t, "fr", s.Guild("123").LocaleOverride())

	// A fresh store sees the flushed state.
	reopened, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, "fr", reopened.Guild("123").LocaleOverride())
}

func TestSetLocaleClearsOverride(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "guilds.yaml")

	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.SetLocale("123", "de_DE"))
	require.NoError(t, s.SetLocale("123", ""))
	require.Equal(t, "", s.Guild("123").LocaleOverride())

	// Guilds with no remaining settings are dropped from the file
	// entirely.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "123")
}

func TestGuildSnapshotIsStable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "guilds.yaml")

	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.SetLocale("123", "fr"))

	snap := s.Guild("123")
	require.NoError(t, s.SetLocale("123", "de"))

	// The earlier snapshot keeps the value read at snapshot time.
	require.Equal(t, "fr", snap.LocaleOverride())
	require.Equal(t, "de", s.Guild("123").LocaleOverride())
}

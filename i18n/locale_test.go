// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"codeberg.org/melodica/melodica/mofile"
)

func TestLanguages(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "en", DomainLog, []mofile.Entry{{ID: "x", Str: []string{"y"}}})
	writeCatalog(t, dir, "de_DE", DomainMessage, []mofile.Entry{{ID: "x", Str: []string{"y"}}})

	// A locale directory without any compiled catalog is not offered.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fr", "LC_MESSAGES"), 0o755))

	// Stray files next to the locale directories are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("hi"), 0o644))

	installStore(t, dir, map[Domain][]string{DomainLog: {"en"}})

	tags := Languages()
	require.Len(t, tags, 2)
	require.Equal(t, "de-DE", tags[0].String())
	require.Equal(t, "en", tags[1].String())
}

func TestLanguagesWithoutSetup(t *testing.T) {
	require.Nil(t, Languages())
}

// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package i18n

import (
	"os"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Languages returns the locales that have at least one compiled catalog
// present under the configured directory, as sorted BCP 47 tags. The
// setlang command lists these to users.
//
// This is a reporting surface only: runtime catalog matching stays
// byte-for-byte on directory names. Directory names that do not parse as
// a language tag are skipped with a warning.
func Languages() []language.Tag {
	if defaultStore == nil {
		return nil
	}

	st := defaultStore.state.Load()
	if st.dir == "" {
		return nil
	}

	entries, err := os.ReadDir(st.dir)
	if err != nil {
		Logger.Warn().Err(err).Str("dir", st.dir).Msg("Failed to list locale directory")

		return nil
	}

	var out []language.Tag

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !st.catalogExists(DomainLog, name) && !st.catalogExists(DomainMessage, name) {
			continue
		}

		t, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
		if err != nil {
			Logger.Warn().Err(err).Str("dir", name).Msg("Skipping unparseable locale directory")

			continue
		}

		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })

	return out
}

// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package i18n

import (
	"os"
	"strings"
)

// BaseLocale is the built-in fallback tag used when neither flags nor the
// environment yield a candidate. It is also the language the msgids
// themselves are written in.
const BaseLocale = "en"

// envChain is the fixed priority order of environment variables consulted
// when no explicit override is configured, matching gettext convention on
// unix-like hosts. Only the first variable with a non-empty value
// supplies candidates; sources are never merged.
var envChain = [...]string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"}

// Candidates derives the ordered locale preference list for one domain,
// most preferred first.
//
// An explicit override (startup flag) wins outright and may carry several
// tags separated by commas or colons. Otherwise the environment chain
// supplies the list, split on ":". When nothing yields a tag, the result
// is [BaseLocale] alone.
//
// Unknown or unparseable tags are kept as-is; deciding whether a tag is
// usable is the resolver's job, so Candidates never fails.
func Candidates(override string, lookupEnv func(string) (string, bool)) []string {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	if tags := SplitTags(override); len(tags) > 0 {
		return tags
	}

	for _, name := range envChain {
		v, ok := lookupEnv(name)
		if !ok || v == "" {
			continue
		}

		if tags := SplitTags(v); len(tags) > 0 {
			return tags
		}
	}

	return []string{BaseLocale}
}

// SplitTags splits a raw preference value on ":" and ",", trimming
// whitespace and stripping codeset and modifier suffixes, so
// "de_DE.UTF-8@euro" becomes "de_DE". Nothing else about a tag is
// normalised; catalogs are matched byte-for-byte against directory names.
func SplitTags(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ':' || r == ','
	})

	out := make([]string, 0, len(fields))

	for _, f := range fields {
		f = strings.TrimSpace(f)

		if i := strings.IndexByte(f, '.'); i >= 0 {
			f = f[:i]
		}

		if i := strings.IndexByte(f, '@'); i >= 0 {
			f = f[:i]
		}

		if f != "" {
			out = append(out, f)
		}
	}

	return out
}

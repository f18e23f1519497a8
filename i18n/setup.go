// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package i18n

import (
	"github.com/rs/zerolog/log"
)

// Options configures Setup.
type Options struct {
	// Dir is the root of the locale tree:
	// <Dir>/<tag>/LC_MESSAGES/<catalog>.mo. An empty Dir leaves both
	// domains unresolved, which is valid: all output stays untranslated.
	Dir string

	// Lang, LogLang and MsgLang are the startup language overrides, each
	// a comma- or colon-separated candidate list. The domain-specific
	// fields win over Lang for their domain; whatever is left unset
	// falls through to the environment chain.
	Lang    string
	LogLang string
	MsgLang string

	// StrictMissing wraps missing translations visibly and logs them
	// once per locale+key. Intended for development and the "xx" test
	// locale, not production.
	StrictMissing bool

	// LookupEnv overrides the environment snapshot consulted for
	// candidates. Nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

var (
	defaultStore *Store
	setupOpts    Options
)

// Setup initialises package i18n: it derives per-domain candidate lists
// from opts and the environment, activates the best available locale for
// each domain, and installs the package-level store behind the Tr
// functions. Catalogs load lazily on first lookup.
//
// Call Setup once at startup, before concurrent use. Calling it again
// replaces the previous store.
func Setup(opts Options) {
	Logger = log.With().Str("sys", "i18n").Logger()

	setupOpts = opts
	defaultStore = NewStore(opts.Dir, candidatesFor(opts), opts.StrictMissing)
}

// Reload re-resolves both domains against the directory tree and swaps
// the catalog cache atomically. Intended for a runtime reload command
// after catalogs were recompiled on disk. Safe under concurrent lookups.
func Reload() {
	if defaultStore == nil {
		return
	}

	defaultStore.Reload(candidatesFor(setupOpts))
}

// ActiveLocale returns the locale activated for d, or "" when d is
// unresolved or Setup has not run.
func ActiveLocale(d Domain) string {
	if defaultStore == nil {
		return ""
	}

	return defaultStore.ActiveLocale(d)
}

// candidatesFor derives both domains' candidate lists from opts. Per
// domain, the most specific override wins outright; only one source is
// ever consulted.
func candidatesFor(opts Options) map[Domain][]string {
	logOverride := opts.LogLang
	if logOverride == "" {
		logOverride = opts.Lang
	}

	msgOverride := opts.MsgLang
	if msgOverride == "" {
		msgOverride = opts.Lang
	}

	return map[Domain][]string{
		DomainLog:     Candidates(logOverride, opts.LookupEnv),
		DomainMessage: Candidates(msgOverride, opts.LookupEnv),
	}
}

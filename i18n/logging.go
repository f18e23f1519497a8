// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package i18n

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// Logger is the logger used by package i18n.
	Logger = log.With().Str("sys", "i18n").Logger()

	// warnOnce deduplicates warnings about defective catalog data and
	// missing keys. Keys are built with "\x00" separators.
	warnOnce sync.Map
)

// once reports whether id has not been seen before, so a warning tied to
// id is emitted a single time per process.
func once(id string) bool {
	_, loaded := warnOnce.LoadOrStore(id, struct{}{})

	return !loaded
}

// logMissingOnce records a missing translation at low severity, once per
// (locale, msgid) pair. A miss is an expected state, never a user-visible
// error.
func logMissingOnce(level zerolog.Level, locale, msgid string) {
	if !once("miss\x00" + locale + "\x00" + msgid) {
		return
	}

	Logger.WithLevel(level).
		Str("locale", locale).
		Str("key", msgid).
		Msg("Missing translation")
}

// warnPlaceholderOnce records a placeholder violation in a loaded
// catalog, once per (locale, msgid) pair. The lookup that hit it falls
// back to the untranslated msgid.
func warnPlaceholderOnce(locale, msgid string) {
	if !once("verb\x00" + locale + "\x00" + msgid) {
		return
	}

	Logger.Warn().
		Str("locale", locale).
		Str("key", msgid).
		Msg("Translation alters placeholders, using untranslated text")
}

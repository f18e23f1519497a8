// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

/*
Package i18n provides locale resolution and gettext message catalogs for
the bot. It keeps two independent translation namespaces: the Log domain
for system output and the Message domain for user-facing, per-guild
output. Each domain activates its own locale and loads its own compiled
.mo catalogs.

# Quick start

Use the original English text as the msgid; do not invent keys.

	i18n.Setup(i18n.Options{Dir: "i18n"})

	i18n.TrL("Connected to voice channel")         // log output, now
	i18n.TrM(guild, "Now playing: %s")             // guild reply, now

Deferred forms capture the msgid and resolve when the consuming sink
formats them, so a runtime locale reload affects records that have not
been rendered yet:

	msg := i18n.DeferL("Shutting down")
	logger.Info().Stringer("status", msg).Send()

Strings shared by both domains, such as error messages, are marked with
[MarkX] or carried by a [MarkedError] and resolved by whichever handler
processes the condition.

# Locale resolution

Candidate locales come from the startup flags, else from the first
non-empty of LANGUAGE, LC_ALL, LC_MESSAGES and LANG, else from
[BaseLocale]. Each candidate is probed against the catalog tree
longest-match-first: "en_GB" is tried before "en". Directory names are
compared byte-for-byte; no case folding or tag normalisation happens at
runtime. When nothing matches, the domain stays unresolved and every
lookup returns the msgid unchanged. That is a supported mode, not an
error.

# Missing translations

A missing catalog, a missing key, or a corrupt catalog file all degrade
to the untranslated msgid with its placeholders intact. When
Options.StrictMissing is enabled, missing lookups are logged once per
locale+key and the returned text is visibly wrapped as "⟦...⟧".

# Placeholders

Translations keep the msgid's fmt verbs; the caller's existing
formatting step fills them. A translation may drop placeholders but must
not add or alter them. The toolchain checks this offline (cmd/langtool
-k) and lookups verify it defensively, falling back to the msgid on a
violation.

# Catalog layout

	<dir>/<locale>/LC_MESSAGES/melodica_logs.mo
	<dir>/<locale>/LC_MESSAGES/melodica_messages.mo

cmd/langtool extracts msgids from source, compiles .po catalogs to .mo,
and maintains the "xx" test locale.
*/
package i18n

// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package i18n

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// readFile wraps os.ReadFile so tests can observe and count catalog reads.
var readFile = os.ReadFile

// Store resolves locales and serves catalog lookups for both domains.
//
// All mutable parts live in an immutable state value behind an atomic
// pointer: steady-state readers never take a lock, and Reload swaps in a
// fresh state without disturbing in-flight lookups.
type Store struct {
	state atomic.Pointer[storeState]
}

// storeState is one generation of resolver output plus its lazily
// populated catalog cache. A generation is built once, by NewStore or
// Reload, and its active locales never change afterwards.
type storeState struct {
	dir    string
	strict bool
	active [numDomains]string // resolved locale per domain; "" when unresolved

	flight    singleflight.Group
	catalogs  sync.Map // "<domain>\x00<locale>" -> *catalogSlot
	overrides sync.Map // guild override tag -> resolved tag ("" when unresolved)
}

// catalogSlot remembers one load attempt. A nil mo records a failed or
// corrupt load so it is not retried within this generation.
type catalogSlot struct {
	mo *gotext.Mo
}

// NewStore activates the best matching locale per domain by probing dir
// for compiled catalogs. Activation performs existence checks only;
// catalogs themselves load lazily on first lookup.
//
// candidates is indexed by domain; a missing or empty list leaves that
// domain unresolved.
func NewStore(dir string, candidates map[Domain][]string, strict bool) *Store {
	s := &Store{}
	s.state.Store(newState(dir, candidates, strict))

	return s
}

func newState(dir string, candidates map[Domain][]string, strict bool) *storeState {
	st := &storeState{dir: dir, strict: strict}

	for d := DomainLog; d < numDomains; d++ {
		tag, ok := resolve(candidates[d], func(t string) bool {
			return st.catalogExists(d, t)
		})
		if !ok {
			Logger.Debug().
				Stringer("domain", d).
				Strs("candidates", candidates[d]).
				Msg("No catalog matched any candidate, domain stays untranslated")

			continue
		}

		st.active[d] = tag

		Logger.Info().
			Stringer("domain", d).
			Str("locale", tag).
			Msg("Activated locale")
	}

	return st
}

// Reload rebuilds resolver state against the current directory tree and
// swaps it in atomically. Catalogs recompiled or added since startup
// become visible without a restart; lookups already running finish
// against the previous generation.
func (s *Store) Reload(candidates map[Domain][]string) {
	old := s.state.Load()
	s.state.Store(newState(old.dir, candidates, old.strict))
}

// ActiveLocale returns the locale activated for d, or "" when d is
// unresolved.
func (s *Store) ActiveLocale(d Domain) string {
	return s.state.Load().active[d]
}

// Lookup translates msgid in domain d, honoring g's locale override when
// d is the Message domain. The bool reports whether a translation was
// applied; on any miss the msgid comes back verbatim, placeholders
// intact.
func (s *Store) Lookup(d Domain, g GuildContext, msgid string) (string, bool) {
	st := s.state.Load()

	locale := st.localeFor(d, g)
	if locale == "" {
		return st.missing(BaseLocale, msgid)
	}

	cat := st.catalog(d, locale)
	if cat == nil || !cat.IsTranslated(msgid) {
		return st.missing(locale, msgid)
	}

	tr := translate(cat, msgid)
	if !CheckPlaceholders(msgid, tr) {
		warnPlaceholderOnce(locale, msgid)

		return msgid, false
	}

	return tr, true
}

// LookupPlural translates a singular/plural pair for n in domain d. On a
// miss it falls back to the untranslated singular or plural form chosen
// by n != 1.
func (s *Store) LookupPlural(d Domain, g GuildContext, singular, plural string, n int) (string, bool) {
	st := s.state.Load()

	fallback := singular
	if n != 1 {
		fallback = plural
	}

	locale := st.localeFor(d, g)
	if locale == "" {
		return st.missing(BaseLocale, fallback)
	}

	cat := st.catalog(d, locale)
	if cat == nil || !cat.IsTranslatedN(singular, n) {
		return st.missing(locale, fallback)
	}

	// A plural form may draw its placeholders from either msgid: many
	// languages use the counted form ("%d ...") for n = 1 as well.
	tr := translateN(cat, singular, plural, n)
	if !CheckPlaceholders(singular, tr) && !CheckPlaceholders(plural, tr) {
		warnPlaceholderOnce(locale, singular)

		return fallback, false
	}

	return tr, true
}

// translate and translateN fetch through method values; a direct call
// trips vet's printf checker, which takes gotext msgids for format
// strings.
func translate(mo *gotext.Mo, msgid string) string {
	get := mo.Get

	return get(msgid)
}

func translateN(mo *gotext.Mo, singular, plural string, n int) string {
	getN := mo.GetN

	return getN(singular, plural, n)
}

// missing is the common miss path: untranslated fallback, low-severity
// logging, and the visible wrapping used in strict mode.
func (st *storeState) missing(locale, msgid string) (string, bool) {
	if st.strict {
		logMissingOnce(zerolog.WarnLevel, locale, msgid)

		return "⟦" + msgid + "⟧", false
	}

	logMissingOnce(zerolog.DebugLevel, locale, msgid)

	return msgid, false
}

// localeFor picks the locale serving a lookup. Only the Message domain
// consults the guild override; an override that resolves to no available
// catalog falls back to the process-wide Message locale.
func (st *storeState) localeFor(d Domain, g GuildContext) string {
	if d == DomainMessage && g != nil {
		if o := g.LocaleOverride(); o != "" {
			if tag := st.resolveOverride(o); tag != "" {
				return tag
			}
		}
	}

	return st.active[d]
}

// resolveOverride maps a guild's preferred tag onto an available Message
// catalog with the same longest-match probing used at activation.
// Results, including failures, are cached per generation.
func (st *storeState) resolveOverride(raw string) string {
	if v, ok := st.overrides.Load(raw); ok {
		return v.(string)
	}

	resolved, ok := resolve(SplitTags(raw), func(t string) bool {
		return st.catalogExists(DomainMessage, t)
	})
	if !ok {
		resolved = ""
	}

	st.overrides.Store(raw, resolved)

	return resolved
}

func (st *storeState) catalogPath(d Domain, locale string) string {
	return filepath.Join(st.dir, locale, "LC_MESSAGES", d.CatalogName()+".mo")
}

// catalogExists probes for a compiled catalog. The locale tag is used
// exactly as given; directory names match byte-for-byte.
func (st *storeState) catalogExists(d Domain, locale string) bool {
	if st.dir == "" || locale == "" {
		return false
	}

	fi, err := os.Stat(st.catalogPath(d, locale))

	return err == nil && !fi.IsDir()
}

// catalog returns the loaded catalog for (d, locale), loading it on first
// use. Concurrent first use collapses to a single read of the underlying
// file. A failed load is remembered and reported as an absent catalog.
func (st *storeState) catalog(d Domain, locale string) *gotext.Mo {
	key := d.CatalogName() + "\x00" + locale

	if v, ok := st.catalogs.Load(key); ok {
		return v.(*catalogSlot).mo
	}

	v, _, _ := st.flight.Do(key, func() (any, error) {
		if v, ok := st.catalogs.Load(key); ok {
			return v, nil
		}

		slot := &catalogSlot{mo: st.readCatalog(d, locale)}
		st.catalogs.Store(key, slot)

		return slot, nil
	})

	return v.(*catalogSlot).mo
}

// readCatalog reads and parses one compiled catalog. Failures are logged
// and degrade the (domain, locale) pair to untranslated output; the host
// process keeps running.
func (st *storeState) readCatalog(d Domain, locale string) *gotext.Mo {
	path := st.catalogPath(d, locale)

	buf, err := readFile(path)
	if err != nil {
		Logger.Warn().
			Err(err).
			Str("path", path).
			Msg("Failed to read catalog, continuing untranslated")

		return nil
	}

	mo := gotext.NewMo()
	mo.Parse(buf)

	if len(mo.GetDomain().GetTranslations()) == 0 {
		Logger.Warn().
			Str("path", path).
			Msg("Catalog is empty or corrupt, continuing untranslated")

		return nil
	}

	return mo
}

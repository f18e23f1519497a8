// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package i18n

// Request describes one translation to perform: the target domain and,
// for the Message domain, the guild whose override to honor. It is the
// single resolution entry point behind the call-site helpers.
type Request struct {
	Domain Domain
	Guild  GuildContext
}

// Resolve translates msgid according to req using the package store.
// Before Setup has run, every lookup falls back to msgid.
func Resolve(req Request, msgid string) string {
	if defaultStore == nil {
		return msgid
	}

	out, _ := defaultStore.Lookup(req.Domain, req.Guild, msgid)

	return out
}

// ResolvePlural is the plural-aware counterpart of Resolve.
func ResolvePlural(req Request, singular, plural string, n int) string {
	if defaultStore == nil {
		if n != 1 {
			return plural
		}

		return singular
	}

	out, _ := defaultStore.LookupPlural(req.Domain, req.Guild, singular, plural, n)

	return out
}

// TrL translates msgid immediately in the Log domain.
func TrL(msgid string) string {
	return Resolve(Request{Domain: DomainLog}, msgid)
}

// TrLN translates a singular/plural pair for n in the Log domain.
func TrLN(singular, plural string, n int) string {
	return ResolvePlural(Request{Domain: DomainLog}, singular, plural, n)
}

// TrM translates msgid immediately in the Message domain. A non-nil g
// with a locale override targets that guild's language; nil uses the
// process-wide Message locale.
func TrM(g GuildContext, msgid string) string {
	return Resolve(Request{Domain: DomainMessage, Guild: g}, msgid)
}

// TrMN translates a singular/plural pair for n in the Message domain.
func TrMN(g GuildContext, singular, plural string, n int) string {
	return ResolvePlural(Request{Domain: DomainMessage, Guild: g}, singular, plural, n)
}

// DeferL marks msgid for the Log domain without resolving it. The
// returned thunk translates with the locale active when the log sink
// renders it, not when the call site ran, so a reload between the two
// points is reflected in the output.
func DeferL(msgid string) Deferred {
	return Deferred{key: MsgKey(msgid), domain: DomainLog}
}

// DeferM marks msgid for the Message domain without resolving it,
// honoring g's override at the later resolution point.
func DeferM(g GuildContext, msgid string) Deferred {
	return Deferred{key: MsgKey(msgid), domain: DomainMessage, guild: g}
}

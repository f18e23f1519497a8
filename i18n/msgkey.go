// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package i18n

// MsgKey is a source message id: the original English string itself,
// used verbatim as the catalog lookup key.
//
// MarkX produces one for strings that belong to both domains; extraction
// tooling records the call for both catalogs, and nothing is resolved
// until TrL or TrM is called by whichever handler processes the value.
type MsgKey string

// MarkX marks msgid as translatable in both domains without resolving
// it.
func MarkX(msgid string) MsgKey {
	return MsgKey(msgid)
}

// TrL resolves the key in the Log domain.
func (k MsgKey) TrL() string {
	return TrL(string(k))
}

// TrM resolves the key in the Message domain for g. A nil g uses the
// process-wide Message locale.
func (k MsgKey) TrM(g GuildContext) string {
	return TrM(g, string(k))
}

// Deferred is a translation thunk: a msgid captured together with its
// target domain and optional guild, resolved only when the consuming
// sink formats it. It implements fmt.Stringer so zerolog and fmt
// evaluate it at emission time.
type Deferred struct {
	key    MsgKey
	domain Domain
	guild  GuildContext
}

// Tr resolves the thunk against the locale active right now.
func (d Deferred) Tr() string {
	return Resolve(Request{Domain: d.domain, Guild: d.guild}, string(d.key))
}

func (d Deferred) String() string {
	return d.Tr()
}

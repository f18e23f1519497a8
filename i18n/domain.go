// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package i18n

// Domain is an independent translation namespace. Log output and
// user-facing messages live in separate catalogs so translators can ship
// either set on its own, and so the bot can log in the operator's
// language while replying in each guild's.
type Domain int

const (
	// DomainLog is the namespace for system and log output.
	DomainLog Domain = iota

	// DomainMessage is the namespace for user-facing output. It is the
	// only domain that consults per-guild locale overrides.
	DomainMessage

	numDomains = iota
)

// CatalogName returns the gettext domain name for d, which is also the
// catalog file name (plus ".mo") under <locale>/LC_MESSAGES/.
func (d Domain) CatalogName() string {
	if d == DomainLog {
		return "melodica_logs"
	}

	return "melodica_messages"
}

func (d Domain) String() string {
	if d == DomainLog {
		return "logs"
	}

	return "messages"
}

// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package i18n

import "strings"

// resolve picks the active locale from an ordered candidate list using
// longest-match-first probing: each candidate is tried exactly as given,
// then with trailing underscore components progressively stripped
// ("en_GB" -> "en"). The first candidate that probes successfully at any
// truncation level wins; a later candidate is never preferred over an
// earlier candidate's shortened form.
//
// resolve is a pure function of candidates and availability. An exhausted
// list reports ok=false, which callers treat as the unresolved state
// rather than an error.
func resolve(candidates []string, available func(tag string) bool) (string, bool) {
	for _, cand := range candidates {
		for tag := cand; tag != ""; tag = shorten(tag) {
			if available(tag) {
				return tag, true
			}
		}
	}

	return "", false
}

// shorten strips the trailing underscore component of tag, returning ""
// once nothing can be removed.
func shorten(tag string) string {
	i := strings.LastIndexByte(tag, '_')
	if i <= 0 {
		return ""
	}

	return tag[:i]
}

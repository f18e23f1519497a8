// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package i18n

import "regexp"

// verbPattern matches fmt conversion verbs, including explicit argument
// indexes ("%[1]s"), flags, width and precision.
var verbPattern = regexp.MustCompile(`%(?:\[\d+\])?[-+ #0]*(?:\*|\d+)?(?:\.(?:\*|\d+)?)?[a-zA-Z]|%%`)

// Placeholders returns the fmt conversion verbs in s, in order, excluding
// literal "%%".
func Placeholders(s string) []string {
	matches := verbPattern.FindAllString(s, -1)

	out := make([]string, 0, len(matches))

	for _, m := range matches {
		if m == "%%" {
			continue
		}

		out = append(out, m)
	}

	return out
}

// CheckPlaceholders reports whether every verb in translated also occurs
// in original, counting duplicates. Translations may drop placeholders
// but must not add or alter them; a false result is a catalog defect.
func CheckPlaceholders(original, translated string) bool {
	have := make(map[string]int)
	for _, v := range Placeholders(original) {
		have[v]++
	}

	for _, v := range Placeholders(translated) {
		if have[v] == 0 {
			return false
		}

		have[v]--
	}

	return true
}

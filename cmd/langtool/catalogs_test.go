// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leonelquinteros/gotext"
	"github.com/stretchr/testify/require"
)

func TestScramblePreservesPlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    string
		want string
	}{
		{
			name: "No verbs",
			s:    "Now playing",
			want: "gniyalp woN",
		},
		{
			name: "Trailing verb",
			s:    "Hello %s",
			want: "%s olleH",
		},
		{
			name: "Leading verb",
			s:    "%d songs",
			want: "sgnos %d",
		},
		{
			name: "Verbs swap positions with their text",
			s:    "%s of %d",
			want: "%d fo %s",
		},
		{
			name: "Literal percent survives",
			s:    "100%% done",
			want: "enod %%001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := scramble(tt.s); got != tt.want {
				t.Errorf("scramble(%q) = %q, want %q", tt.s, got, tt.want)
			}
		})
	}
}

func TestMergePoCarriesTranslations(t *testing.T) {
	t.Parallel()

	template := map[string]*gotext.Translation{
		"greeting %s": {ID: "greeting %s"},
		"new entry":   {ID: "new entry"},
		"one file":    {ID: "one file", PluralID: "%d files"},
	}
	existing := map[string]*gotext.Translation{
		"greeting %s": {ID: "greeting %s", Trs: map[int]string{0: "salut %s"}},
		"one file":    {ID: "one file", PluralID: "%d files", Trs: map[int]string{0: "un fichier", 1: "%d fichiers"}},
		"stale entry": {ID: "stale entry", Trs: map[int]string{0: "ancien"}},
	}

	out := string(mergePo("fr", "nplurals=2; plural=(n > 1);", template, existing))

	require.Contains(t, out, `"Language: fr\n"`)
	require.Contains(t, out, `"Plural-Forms: nplurals=2; plural=(n > 1);\n"`)
	require.NotContains(t, out, "stale entry")
	require.Contains(t, out, "msgid \"new entry\"\nmsgstr \"\"\n")

	po := gotext.NewPo()
	po.Parse([]byte(out))

	trs := po.GetDomain().GetTranslations()
	require.Equal(t, "salut %s", trs["greeting %s"].Trs[0])
	require.Equal(t, "un fichier", trs["one file"].Trs[0])
	require.Equal(t, "%d fichiers", trs["one file"].Trs[1])

	// Catalogs with no Plural-Forms header get the Germanic default.
	out = string(mergePo("de", "", template, nil))
	require.Contains(t, out, "nplurals=2; plural=(n != 1);")
}

func TestUpdateSyncsCatalogsWithTemplates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	logsPot := `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"

msgid "added later"
msgstr ""

msgid "kept %s"
msgstr ""
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "melodica_logs.pot"), []byte(logsPot), 0o644))

	messagesPot := `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "melodica_messages.pot"), []byte(messagesPot), 0o644))

	msgDir := filepath.Join(dir, "de", "LC_MESSAGES")
	require.NoError(t, os.MkdirAll(msgDir, 0o755))

	po := `msgid ""
msgstr ""
"Language: de\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Plural-Forms: nplurals=2; plural=(n != 1);\n"

msgid "kept %s"
msgstr "behalten %s"

msgid "removed upstream"
msgstr "entfernt"
`
	poPath := filepath.Join(msgDir, "melodica_logs.po")
	require.NoError(t, os.WriteFile(poPath, []byte(po), 0o644))

	require.NoError(t, update(dir, ""))

	merged, err := os.ReadFile(poPath)
	require.NoError(t, err)

	// Entries gone from the template are dropped, new template entries
	// show up untranslated, and finished translations survive the merge.
	require.NotContains(t, string(merged), "removed upstream")
	require.Contains(t, string(merged), "msgid \"added later\"")
	require.Contains(t, string(merged), `"Plural-Forms: nplurals=2; plural=(n != 1);\n"`)

	parsed := gotext.NewPo()
	parsed.Parse(merged)

	require.Equal(t, "behalten %s", parsed.GetDomain().GetTranslations()["kept %s"].Trs[0])
}

// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package i18n

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"codeberg.org/melodica/melodica/mofile"
)

// installStore swaps in a package store for the duration of one test.
// Tests using it mutate package state and must not run in parallel.
func installStore(t *testing.T, dir string, candidates map[Domain][]string) {
	t.Helper()

	defaultStore = NewStore(dir, candidates, false)

	t.Cleanup(func() { defaultStore = nil })
}

func TestResolveBeforeSetup(t *testing.T) {
	require.Equal(t, "Hello %s", TrL("Hello %s"))
	require.Equal(t, "Hello %s", TrM(nil, "Hello %s"))
	require.Equal(t, "one", TrLN("one", "many", 1))
	require.Equal(t, "many", TrLN("one", "many", 2))
	require.Equal(t, "many", TrMN(nil, "one", "many", 0))
}

func TestTrPerDomain(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "de", DomainLog, []mofile.Entry{
		{ID: "Hello %s", Str: []string{"Hallo %s"}},
	})
	writeCatalog(t, dir, "fr", DomainMessage, []mofile.Entry{
		{ID: "Hello %s", Str: []string{"Bonjour %s"}},
	})

	installStore(t, dir, map[Domain][]string{
		DomainLog:     {"de"},
		DomainMessage: {"fr"},
	})

	require.Equal(t, "Hallo %s", TrL("Hello %s"))
	require.Equal(t, "Bonjour %s", TrM(nil, "Hello %s"))
}

func TestTrMGuildOverride(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "en", DomainMessage, []mofile.Entry{
		{ID: "Hi", Str: []string{"Hi there"}},
	})
	writeCatalog(t, dir, "fr", DomainMessage, []mofile.Entry{
		{ID: "Hi", Str: []string{"Salut"}},
	})

	installStore(t, dir, map[Domain][]string{DomainMessage: {"en"}})

	require.Equal(t, "Salut", TrM(testGuild{id: "1", locale: "fr"}, "Hi"))
	require.Equal(t, "Hi there", TrM(nil, "Hi"))
}

func TestDeferredResolvesAtRenderTime(t *testing.T) {
	d := DeferL("Hello %s")

	// No store yet: rendering now yields the untranslated msgid.
	require.Equal(t, "Hello %s", d.String())

	dir := t.TempDir()
	writeCatalog(t, dir, "de", DomainLog, []mofile.Entry{
		{ID: "Hello %s", Str: []string{"Hallo %s"}},
	})

	installStore(t, dir, map[Domain][]string{DomainLog: {"de"}})

	// The same thunk now renders against the newly active locale.
	require.Equal(t, "Hallo %s", d.String())
	require.Equal(t, "Hallo %s", fmt.Sprint(d))
}

func TestDeferredMessageDomainCarriesGuild(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "en", DomainMessage, []mofile.Entry{
		{ID: "Hi", Str: []string{"Hi there"}},
	})
	writeCatalog(t, dir, "fr", DomainMessage, []mofile.Entry{
		{ID: "Hi", Str: []string{"Salut"}},
	})

	installStore(t, dir, map[Domain][]string{DomainMessage: {"en"}})

	d := DeferM(testGuild{id: "1", locale: "fr"}, "Hi")
	require.Equal(t, "Salut", d.Tr())
}

func TestMsgKey(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "de", DomainLog, []mofile.Entry{
		{ID: "Shutting down", Str: []string{"Fahre herunter"}},
	})
	writeCatalog(t, dir, "fr", DomainMessage, []mofile.Entry{
		{ID: "Shutting down", Str: []string{"Arrêt en cours"}},
	})

	installStore(t, dir, map[Domain][]string{
		DomainLog:     {"de"},
		DomainMessage: {"fr"},
	})

	k := MarkX("Shutting down")

	require.Equal(t, "Fahre herunter", k.TrL())
	require.Equal(t, "Arrêt en cours", k.TrM(nil))
}

func TestSetupAndReload(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "de", DomainLog, []mofile.Entry{
		{ID: "Hello %s", Str: []string{"Hallo %s"}},
	})

	Setup(Options{
		Dir:     dir,
		LogLang: "de_AT",
		MsgLang: "de",
		LookupEnv: func(string) (string, bool) {
			t.Error("environment must not be consulted when overrides are set")

			return "", false
		},
	})

	t.Cleanup(func() {
		defaultStore = nil
		setupOpts = Options{}
	})

	require.Equal(t, "de", ActiveLocale(DomainLog))
	require.Equal(t, "", ActiveLocale(DomainMessage))
	require.Equal(t, "Hallo %s", TrL("Hello %s"))

	// A Message catalog compiled after startup becomes visible on Reload.
	writeCatalog(t, dir, "de", DomainMessage, []mofile.Entry{
		{ID: "Hello %s", Str: []string{"Hallo %s"}},
	})

	Reload()

	require.Equal(t, "de", ActiveLocale(DomainMessage))
	require.Equal(t, "Hallo %s", TrM(nil, "Hello %s"))
}

func TestSetupLangAppliesToBothDomains(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "fr", DomainLog, []mofile.Entry{{ID: "x", Str: []string{"y"}}})
	writeCatalog(t, dir, "fr", DomainMessage, []mofile.Entry{{ID: "x", Str: []string{"y"}}})
	writeCatalog(t, dir, "de", DomainLog, []mofile.Entry{{ID: "x", Str: []string{"y"}}})

	Setup(Options{Dir: dir, Lang: "fr", LogLang: "de"})

	t.Cleanup(func() {
		defaultStore = nil
		setupOpts = Options{}
	})

	// The domain-specific override wins for its domain; Lang covers the
	// rest.
	require.Equal(t, "de", ActiveLocale(DomainLog))
	require.Equal(t, "fr", ActiveLocale(DomainMessage))
}

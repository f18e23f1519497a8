// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/sync/errgroup"

	"codeberg.org/melodica/melodica/i18n"
	"codeberg.org/melodica/melodica/mofile"
)

// testLocale is the debugging pseudo-locale: every msgstr is the msgid
// with its letters reversed but its fmt placeholders kept intact, so
// untranslated strings stand out at a glance while formatting still
// works.
const testLocale = "xx"

var (
	pluralFormsPattern = regexp.MustCompile(`Plural-Forms:\s*([^\\"]+)`)
	npluralsPattern    = regexp.MustCompile(`nplurals=(\d+)`)
)

// poFile is one PO catalog on disk, located under
// <dir>/<locale>/LC_MESSAGES/.
type poFile struct {
	locale string
	path   string
}

// localePoFiles lists the PO catalogs under dir, optionally restricted
// to a single locale.
func localePoFiles(dir, only string) ([]poFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale tree %s: %w", dir, err)
	}

	var out []poFile

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		locale := entry.Name()
		if only != "" && locale != only {
			continue
		}

		matches, err := filepath.Glob(filepath.Join(dir, locale, "LC_MESSAGES", "*.po"))
		if err != nil {
			return nil, err
		}

		sort.Strings(matches)

		for _, path := range matches {
			out = append(out, poFile{locale: locale, path: path})
		}
	}

	return out, nil
}

func parsePo(path string) (*gotext.Po, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	po := gotext.NewPo()
	po.Parse(data)

	return po, data, nil
}

// compile turns every PO catalog under dir into the binary MO file the
// bot loads, written next to its source.
func compile(dir, only string) error {
	files, err := localePoFiles(dir, only)
	if err != nil {
		return err
	}

	var g errgroup.Group

	for _, pf := range files {
		g.Go(func() error {
			po, data, err := parsePo(pf.path)
			if err != nil {
				return err
			}

			f := &mofile.File{Language: pf.locale, PluralForms: pluralForms(data)}

			translated := 0

			for id, tr := range po.GetDomain().GetTranslations() {
				if id == "" {
					continue
				}

				entry, ok := moEntry(tr)
				if !ok {
					continue
				}

				f.Entries = append(f.Entries, entry)
				translated++
			}

			out := strings.TrimSuffix(pf.path, ".po") + ".mo"
			if err := f.WriteFile(out); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			fmt.Printf("compiled %s (%d entries)\n", out, translated)

			return nil
		})
	}

	return g.Wait()
}

// moEntry converts a parsed translation into an MO entry, reporting
// false for untranslated ones. msgfmt drops those too; a missing entry
// is what makes the runtime fall back to the msgid.
func moEntry(tr *gotext.Translation) (mofile.Entry, bool) {
	entry := mofile.Entry{ID: tr.ID, Plural: tr.PluralID}

	last := -1
	for i := range tr.Trs {
		if i > last {
			last = i
		}
	}

	if last < 0 {
		return mofile.Entry{}, false
	}

	entry.Str = make([]string, last+1)

	any := false

	for i, s := range tr.Trs {
		entry.Str[i] = s
		if s != "" {
			any = true
		}
	}

	return entry, any
}

// pluralForms extracts the Plural-Forms header from raw PO bytes,
// falling back to the Germanic two-form rule.
func pluralForms(data []byte) string {
	if m := pluralFormsPattern.FindSubmatch(data); m != nil {
		return strings.TrimSpace(string(m[1]))
	}

	return ""
}

// update merges the current POT templates into every existing PO
// catalog: entries gone from the template are dropped, new entries are
// added untranslated, and existing translations are carried over. This
// is the sync step translators run after -e.
func update(dir, only string) error {
	files, err := localePoFiles(dir, only)
	if err != nil {
		return err
	}

	for _, d := range domains {
		pot, _, err := parsePo(filepath.Join(dir, d.pot))
		if err != nil {
			return fmt.Errorf("missing POT template (run -e first): %w", err)
		}

		template := pot.GetDomain().GetTranslations()

		entries := 0

		for id := range template {
			if id != "" {
				entries++
			}
		}

		for _, pf := range files {
			if filepath.Base(pf.path) != d.name+".po" {
				continue
			}

			old, data, err := parsePo(pf.path)
			if err != nil {
				return err
			}

			merged := mergePo(pf.locale, pluralForms(data), template, old.GetDomain().GetTranslations())
			if err := os.WriteFile(pf.path, merged, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", pf.path, err)
			}

			fmt.Printf("updated %s (%d entries)\n", pf.path, entries)
		}
	}

	return nil
}

// mergePo renders a PO catalog containing exactly the template's
// entries, carrying over any translations present in existing.
func mergePo(locale, plural string, template, existing map[string]*gotext.Translation) []byte {
	if plural == "" {
		plural = "nplurals=2; plural=(n != 1);"
	}

	nforms := 2
	if m := npluralsPattern.FindStringSubmatch(plural); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			nforms = n
		}
	}

	ids := make([]string, 0, len(template))

	for id := range template {
		if id != "" {
			ids = append(ids, id)
		}
	}

	sort.Strings(ids)

	var b strings.Builder

	fmt.Fprintln(&b, `msgid ""`)
	fmt.Fprintln(&b, `msgstr ""`)
	fmt.Fprintf(&b, "\"Language: %s\\n\"\n", locale)
	fmt.Fprintln(&b, `"Content-Type: text/plain; charset=UTF-8\n"`)
	fmt.Fprintf(&b, "\"Plural-Forms: %s\\n\"\n", plural)

	for _, id := range ids {
		tr := template[id]
		old := existing[id]

		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "msgid %q\n", tr.ID)

		if tr.PluralID != "" {
			fmt.Fprintf(&b, "msgid_plural %q\n", tr.PluralID)

			for i := range nforms {
				s := ""
				if old != nil {
					s = old.Trs[i]
				}

				fmt.Fprintf(&b, "msgstr[%d] %q\n", i, s)
			}

			continue
		}

		s := ""
		if old != nil {
			s = old.Trs[0]
		}

		fmt.Fprintf(&b, "msgstr %q\n", s)
	}

	return []byte(b.String())
}

// testlang builds the xx locale from the POT templates: a PO catalog and
// its compiled MO for each domain.
func testlang(dir string) error {
	outDir := filepath.Join(dir, testLocale, "LC_MESSAGES")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	for _, d := range domains {
		potPath := filepath.Join(dir, d.pot)

		pot, _, err := parsePo(potPath)
		if err != nil {
			return fmt.Errorf("missing POT template (run -e first): %w", err)
		}

		var b strings.Builder

		fmt.Fprintln(&b, `msgid ""`)
		fmt.Fprintln(&b, `msgstr ""`)
		fmt.Fprintf(&b, "\"Language: %s\\n\"\n", testLocale)
		fmt.Fprintln(&b, `"Content-Type: text/plain; charset=UTF-8\n"`)
		fmt.Fprintln(&b, `"Plural-Forms: nplurals=2; plural=(n != 1);\n"`)

		f := &mofile.File{Language: testLocale}

		ids := make([]string, 0)
		trs := pot.GetDomain().GetTranslations()

		for id := range trs {
			if id != "" {
				ids = append(ids, id)
			}
		}

		sort.Strings(ids)

		for _, id := range ids {
			tr := trs[id]

			fmt.Fprintln(&b)
			fmt.Fprintf(&b, "msgid %q\n", tr.ID)

			entry := mofile.Entry{ID: tr.ID, Plural: tr.PluralID}

			if tr.PluralID != "" {
				fmt.Fprintf(&b, "msgid_plural %q\n", tr.PluralID)
				fmt.Fprintf(&b, "msgstr[0] %q\n", scramble(tr.ID))
				fmt.Fprintf(&b, "msgstr[1] %q\n", scramble(tr.PluralID))

				entry.Str = []string{scramble(tr.ID), scramble(tr.PluralID)}
			} else {
				fmt.Fprintf(&b, "msgstr %q\n", scramble(tr.ID))

				entry.Str = []string{scramble(tr.ID)}
			}

			f.Entries = append(f.Entries, entry)
		}

		poPath := filepath.Join(outDir, d.name+".po")
		if err := os.WriteFile(poPath, []byte(b.String()), 0o644); err != nil {
			return err
		}

		moPath := filepath.Join(outDir, d.name+".mo")
		if err := f.WriteFile(moPath); err != nil {
			return err
		}

		fmt.Printf("wrote %s and %s (%d entries)\n", poPath, moPath, len(ids))
	}

	return nil
}

// scramble reverses s rune-wise, then restores each fmt placeholder to
// its original spelling so the result still formats cleanly.
func scramble(s string) string {
	out := reverse(s)
	for _, verb := range i18n.Placeholders(s) {
		out = strings.Replace(out, reverse(verb), verb, 1)
	}

	return out
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}

	return string(r)
}

// stats prints translation coverage for each PO catalog under dir.
func stats(dir, only string) error {
	files, err := localePoFiles(dir, only)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Println("no PO catalogs found")

		return nil
	}

	for _, pf := range files {
		po, _, err := parsePo(pf.path)
		if err != nil {
			return err
		}

		total := 0

		translated := 0

		for id, tr := range po.GetDomain().GetTranslations() {
			if id == "" {
				continue
			}

			total++

			if _, ok := moEntry(tr); ok {
				translated++
			}
		}

		percent := 0.0
		if total > 0 {
			percent = float64(translated) / float64(total) * 100
		}

		fmt.Printf("%-8s %-40s %4d/%4d  %5.1f%%\n", pf.locale, filepath.Base(pf.path), translated, total, percent)
	}

	return nil
}

// check verifies that no translation introduces fmt placeholders absent
// from its msgid. Dropping a placeholder is fine; inventing one would
// make Sprintf emit %!(MISSING) noise at runtime. Returns the number of
// violations found.
func check(dir, only string) (int, error) {
	files, err := localePoFiles(dir, only)
	if err != nil {
		return 0, err
	}

	violations := 0

	for _, pf := range files {
		po, _, err := parsePo(pf.path)
		if err != nil {
			return violations, err
		}

		for id, tr := range po.GetDomain().GetTranslations() {
			if id == "" {
				continue
			}

			for _, s := range tr.Trs {
				if s == "" {
					continue
				}

				// Plural forms may draw their placeholders from either
				// the singular or the plural msgid.
				if i18n.CheckPlaceholders(tr.ID, s) {
					continue
				}

				if tr.PluralID != "" && i18n.CheckPlaceholders(tr.PluralID, s) {
					continue
				}

				violations++

				fmt.Fprintf(os.Stderr, "%s: msgid %q: translation %q alters placeholders\n", pf.path, tr.ID, s)
			}
		}
	}

	return violations, nil
}

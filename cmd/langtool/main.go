// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

// Command langtool maintains the Melodica translation catalogs.
//
// It extracts translatable strings from the source tree into POT
// templates, merges updated templates into existing PO catalogs,
// compiles PO catalogs into the binary MO files the bot loads at
// runtime, builds the "xx" debugging locale, reports per-locale
// translation coverage, and checks translations for placeholder
// mismatches.
package main

import (
	"flag"
	"fmt"
	"os"
)

var domains = []struct {
	name string
	pot  string
}{
	{name: "melodica_logs", pot: "melodica_logs.pot"},
	{name: "melodica_messages", pot: "melodica_messages.pot"},
}

func main() {
	var (
		localeDir  = flag.String("dir", "i18n", "root of the locale tree")
		onlyLocale = flag.String("L", "", "restrict catalog operations to one locale")
		doExtract  = flag.Bool("e", false, "extract translatable strings into POT templates")
		doUpdate   = flag.Bool("u", false, "merge updated POT templates into existing PO catalogs")
		doCompile  = flag.Bool("c", false, "compile PO catalogs into MO files")
		doTestlang = flag.Bool("t", false, "build the 'xx' debugging locale from the POT templates")
		doStats    = flag.Bool("s", false, "report per-locale translation coverage")
		doCheck    = flag.Bool("k", false, "check translations for placeholder mismatches")
	)

	flag.Parse()

	if !*doExtract && !*doUpdate && !*doCompile && !*doTestlang && !*doStats && !*doCheck {
		flag.Usage()
		os.Exit(2)
	}

	if *doExtract {
		if err := extract(*localeDir); err != nil {
			fatal(err)
		}
	}

	if *doUpdate {
		if err := update(*localeDir, *onlyLocale); err != nil {
			fatal(err)
		}
	}

	if *doTestlang {
		if err := testlang(*localeDir); err != nil {
			fatal(err)
		}
	}

	if *doCompile {
		if err := compile(*localeDir, *onlyLocale); err != nil {
			fatal(err)
		}
	}

	if *doStats {
		if err := stats(*localeDir, *onlyLocale); err != nil {
			fatal(err)
		}
	}

	if *doCheck {
		violations, err := check(*localeDir, *onlyLocale)
		if err != nil {
			fatal(err)
		}

		if violations > 0 {
			fmt.Fprintf(os.Stderr, "langtool: %d placeholder violation(s)\n", violations)
			os.Exit(1)
		}
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "langtool: %v\n", err)
	os.Exit(1)
}

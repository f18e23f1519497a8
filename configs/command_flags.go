// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package config

import "flag"

type commandFlags struct {
	configPath string
	lang       string
	logLang    string
	msgLang    string

	// set records which flags the user passed explicitly, so an empty
	// default is distinguishable from an explicit empty value.
	set map[string]bool
}

// parseCommandLineArgs defines and parses the process flags. Definitions
// are guarded so tests can call LoadConfig repeatedly.
func parseCommandLineArgs() commandFlags {
	if flag.Lookup("config") == nil {
		flag.String("config", "./config.yaml", "Path to a Melodica configuration file in YAML format.")
	}

	if flag.Lookup("lang") == nil {
		flag.String("lang", "", "Locale tags for both translation domains, comma- or colon-separated, most preferred first.")
	}

	if flag.Lookup("log_lang") == nil {
		flag.String("log_lang", "", "Locale tags for the log domain; wins over -lang.")
	}

	if flag.Lookup("msg_lang") == nil {
		flag.String("msg_lang", "", "Locale tags for the message domain; wins over -lang.")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	out := commandFlags{set: make(map[string]bool)}

	flag.Visit(func(f *flag.Flag) {
		out.set[f.Name] = true
	})

	out.configPath = flag.Lookup("config").Value.String()
	out.lang = flag.Lookup("lang").Value.String()
	out.logLang = flag.Lookup("log_lang").Value.String()
	out.msgLang = flag.Lookup("msg_lang").Value.String()

	return out
}

// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

// Package config loads and validates the bot process configuration from,
// in increasing priority: built-in defaults, a YAML file, a .env file,
// environment variables, and command-line flags.
package config

import (
	"fmt"
	"os"
)

// Global exposes the bot configuration.
var Global BotConfig

// BotConfig holds the application configuration.
type BotConfig struct {
	Build buildInfo `yaml:"-"`

	Locale struct {
		// Dir is the root of the locale tree:
		// <dir>/<tag>/LC_MESSAGES/<catalog>.mo.
		Dir string `env:"MELODICA_LOCALE_DIR,overwrite" yaml:"dir"`

		// Lang sets the candidate list for both domains at once;
		// LogLang and MsgLang are the per-domain overrides and win over
		// Lang for their domain. Each is a comma- or colon-separated
		// list of locale tags. Anything left unset falls through to the
		// LANGUAGE/LC_ALL/LC_MESSAGES/LANG environment chain.
		Lang    string `env:"MELODICA_LANG" yaml:"lang"`
		LogLang string `env:"MELODICA_LOG_LANG" yaml:"logLang"`
		MsgLang string `env:"MELODICA_MSG_LANG" yaml:"msgLang"`

		// StrictMissing wraps missing translations visibly and logs
		// them once per locale+key. Development aid.
		StrictMissing bool `env:"MELODICA_STRICT_MISSING" yaml:"strictMissing"`
	} `yaml:"locale"`

	GuildStore struct {
		Path string `env:"MELODICA_GUILD_STORE,overwrite" yaml:"path"`
	} `yaml:"guildStore"`

	Log struct {
		Level   string   `env:"MELODICA_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"MELODICA_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"MELODICA_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`
}

// LoadConfig loads the configuration from all sources and applies it.
func (cfg *BotConfig) LoadConfig() error {
	flags := parseCommandLineArgs()

	// Config file path precedence: -config flag, then MELODICA_CONFIGFILE,
	// then ./config.yaml with a ./config.yml fallback.
	configFilePath := flags.configPath

	if !flags.set["config"] {
		if envVar := os.Getenv("MELODICA_CONFIGFILE"); envVar != "" {
			configFilePath = envVar
		} else if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			if _, statErr := os.Stat("./config.yml"); statErr == nil {
				configFilePath = "./config.yml"
			}
		}
	}

	cfg.SetDefaults()

	cfg.Build.load()

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	// Language flags are the most explicit source and win over
	// everything above.
	if flags.set["lang"] {
		cfg.Locale.Lang = flags.lang
	}

	if flags.set["log_lang"] {
		cfg.Locale.LogLang = flags.logLang
	}

	if flags.set["msg_lang"] {
		cfg.Locale.MsgLang = flags.msgLang
	}

	if err := cfg.validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupLogging()

	cfg.print()

	return nil
}

// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"codeberg.org/melodica/melodica/i18n"
)

// validation errors.
var (
	errInvalidLogLevel     = errors.New("invalid Log.Level value")
	errInvalidLogFormat    = errors.New("invalid Log.Format value")
	errMalformedLanguage   = errors.New("language override contains no usable locale tags")
	errLocaleDirNotADir    = errors.New("Locale.Dir exists but is not a directory")
	errEmptyGuildStorePath = errors.New("GuildStore.Path cannot be empty")
)

// validate applies configuration rules. Misconfiguration is a startup
// error; translation failures at runtime never are.
func (cfg *BotConfig) validate() error {
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	// A language override that is set but contains only separators is
	// user error, not a resolution miss.
	for name, value := range map[string]string{
		"lang":     cfg.Locale.Lang,
		"log_lang": cfg.Locale.LogLang,
		"msg_lang": cfg.Locale.MsgLang,
	} {
		if value != "" && len(i18n.SplitTags(value)) == 0 {
			return fmt.Errorf("%w: -%s=%q", errMalformedLanguage, name, value)
		}
	}

	if cfg.Locale.Dir != "" {
		if fi, err := os.Stat(cfg.Locale.Dir); err == nil && !fi.IsDir() {
			return fmt.Errorf("%w: %s", errLocaleDirNotADir, cfg.Locale.Dir)
		} else if os.IsNotExist(err) {
			// Running without catalogs is supported; everything stays
			// untranslated.
			log.Warn().
				Str("dir", cfg.Locale.Dir).
				Msg("Locale directory does not exist, running untranslated")
		}
	}

	if cfg.GuildStore.Path == "" {
		return errEmptyGuildStorePath
	}

	return nil
}

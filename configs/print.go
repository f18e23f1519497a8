// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func (cfg *BotConfig) print() {
	log.Info().
		Str("version", BuildVersion).
		Str("revision", cfg.Build.Revision()).
		Msg("Starting Melodica")

	configYAML, err := yaml.Marshal(*cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal config to YAML for printing")

		return
	}

	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		log.Debug().
			Msg("Application configuration:")
		fmt.Fprintln(os.Stderr, string(configYAML))
	}
}

// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package config

// SetDefaults populates the configuration with default values.
func (cfg *BotConfig) SetDefaults() {
	cfg.Locale.Dir = "i18n"
	cfg.Locale.StrictMissing = false

	cfg.GuildStore.Path = "data/guilds.yaml"

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}

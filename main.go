// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

/*
Melodica is a Discord music bot. This entry point wires up the
translation engine and the per-guild settings store; the gateway
connection is attached by the command layer once it is configured.
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	config "codeberg.org/melodica/melodica/configs"
	"codeberg.org/melodica/melodica/guildstore"
	"codeberg.org/melodica/melodica/i18n"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}

// run orchestrates the application startup and graceful shutdown.
func run() error {
	if err := config.Global.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	i18n.Setup(i18n.Options{
		Dir:           config.Global.Locale.Dir,
		Lang:          config.Global.Locale.Lang,
		LogLang:       config.Global.Locale.LogLang,
		MsgLang:       config.Global.Locale.MsgLang,
		StrictMissing: config.Global.Locale.StrictMissing,
	})

	log.Info().
		Str("logLocale", i18n.ActiveLocale(i18n.DomainLog)).
		Str("msgLocale", i18n.ActiveLocale(i18n.DomainMessage)).
		Msg(i18n.TrL("Initialized translation engine"))

	if _, err := guildstore.Open(config.Global.GuildStore.Path); err != nil {
		return fmt.Errorf("failed to open guild settings: %w", err)
	}

	// SIGHUP re-resolves both domains after catalogs were recompiled on
	// disk; SIGINT and SIGTERM shut the process down.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for s := range quit {
		if s == syscall.SIGHUP {
			i18n.Reload()
			log.Info().
				Str("logLocale", i18n.ActiveLocale(i18n.DomainLog)).
				Str("msgLocale", i18n.ActiveLocale(i18n.DomainMessage)).
				Msg(i18n.TrL("Reloaded translation catalogs"))

			continue
		}

		log.Info().Str("signal", s.String()).Msg(i18n.TrL("Shutdown signal received"))

		break
	}

	log.Info().Msg(i18n.TrL("Exited gracefully"))

	return nil
}

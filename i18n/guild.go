// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package i18n

import "context"

// GuildContext exposes the slice of per-guild configuration the Message
// domain consults: an optional locale override. The Log domain never
// looks at it.
//
// Values are owned by the guild settings store, which must be safe for
// concurrent use; package i18n only ever reads them.
type GuildContext interface {
	GuildID() string

	// LocaleOverride returns the guild's preferred locale tag for
	// user-facing output, or "" when the guild follows the process-wide
	// Message-domain locale.
	LocaleOverride() string
}

type guildKeyType struct{}

var guildKey = guildKeyType{}

// WithGuild stores g in ctx and returns a derived context carrying it,
// for threading a guild through command handlers down to the point where
// a reply is rendered. Passing nil clears any existing value.
func WithGuild(ctx context.Context, g GuildContext) context.Context {
	return context.WithValue(ctx, guildKey, g)
}

// GuildFrom returns the guild stored in ctx, or nil when none is present
// or ctx is nil. A nil guild means Message-domain lookups use the
// process-wide locale.
func GuildFrom(ctx context.Context) GuildContext {
	if ctx == nil {
		return nil
	}

	g, _ := ctx.Value(guildKey).(GuildContext)

	return g
}

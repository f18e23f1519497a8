// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package i18n

import (
	"context"
	"testing"
)

func TestGuildContextPlumbing(t *testing.T) {
	t.Parallel()

	g := testGuild{id: "42", locale: "fr"}

	ctx := WithGuild(context.Background(), g)
	if got := GuildFrom(ctx); got != g {
		t.Errorf("GuildFrom = %v, want %v", got, g)
	}

	if got := GuildFrom(context.Background()); got != nil {
		t.Errorf("GuildFrom on empty context = %v, want nil", got)
	}

	if got := GuildFrom(nil); got != nil { //nolint:staticcheck // nil context is part of the contract
		t.Errorf("GuildFrom(nil) = %v, want nil", got)
	}

	cleared := WithGuild(ctx, nil)
	if got := GuildFrom(cleared); got != nil {
		t.Errorf("GuildFrom after clearing = %v, want nil", got)
	}
}

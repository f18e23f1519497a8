// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

//go:build test

/*
This file is included only when built with '-tags test'.
It provides a reset hook for unit tests. It is not part of production builds.
*/

package i18n

import "sync"

// ResetForTests clears package state so tests can exercise Setup
// multiple times from a clean slate.
//
// Concurrency: only call from tests before spinning up any goroutines
// that use this package.
func ResetForTests() {
	warnOnce = sync.Map{}
	defaultStore = nil
	setupOpts = Options{}
}

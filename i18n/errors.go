// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package i18n

import "fmt"

// MarkedError is an error whose message is marked translatable in both
// domains but resolved only when a handler decides where the condition
// surfaces: LogError for the log sink, UserError for a guild reply.
//
// Printf arguments are kept unformatted alongside the key so either
// resolution can fill the translated string's own placeholders.
type MarkedError struct {
	key   MsgKey
	args  []any
	cause error
}

// NewError marks msgid in both domains and records args for later
// formatting.
func NewError(msgid string, args ...any) *MarkedError {
	return &MarkedError{key: MsgKey(msgid), args: args}
}

// Wrap is NewError with an underlying cause attached for errors.Is/As
// chains.
func Wrap(err error, msgid string, args ...any) *MarkedError {
	return &MarkedError{key: MsgKey(msgid), args: args, cause: err}
}

// Error returns the untranslated message so error chains read the same
// regardless of locale. Translated forms come from LogError and
// UserError.
func (e *MarkedError) Error() string {
	msg := formatTrimmed(string(e.key), string(e.key), e.args)
	if e.cause != nil {
		return msg + ": " + e.cause.Error()
	}

	return msg
}

func (e *MarkedError) Unwrap() error {
	return e.cause
}

// Key returns the dual-domain message key for callers that need to defer
// further.
func (e *MarkedError) Key() MsgKey {
	return e.key
}

// LogError resolves the message in the Log domain, using the locale
// active when the handler asks.
func (e *MarkedError) LogError() string {
	return formatTrimmed(string(e.key), e.key.TrL(), e.args)
}

// UserError resolves the message in the Message domain for g.
func (e *MarkedError) UserError(g GuildContext) string {
	return formatTrimmed(string(e.key), e.key.TrM(g), e.args)
}

// formatTrimmed formats like fmt.Sprintf but selects arguments for the
// verbs the translated format actually contains: each surviving verb is
// matched to its occurrence in the original msgid and fed that
// position's argument. Translations may drop or reorder placeholders;
// neither must misalign arguments or leak %!(EXTRA ...) noise into
// rendered output.
func formatTrimmed(original, format string, args []any) string {
	if len(args) == 0 {
		return format
	}

	orig := Placeholders(original)
	verbs := Placeholders(format)

	used := make([]bool, len(orig))
	picked := make([]any, 0, len(verbs))

	for _, v := range verbs {
		idx := -1

		for i, o := range orig {
			if !used[i] && o == v {
				idx = i

				break
			}
		}

		// A verb absent from the original slipped past the catalog
		// checks; fall back to passing arguments in order.
		if idx < 0 || idx >= len(args) {
			n := min(len(verbs), len(args))

			return fmt.Sprintf(format, args[:n]...)
		}

		used[idx] = true
		picked = append(picked, args[idx])
	}

	return fmt.Sprintf(format, picked...)
}

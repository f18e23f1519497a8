// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"
)

// i18nStubPath stands in for the real translation package so the
// extractor can be exercised on in-memory sources without loading the
// whole module.
const i18nStubPath = "melodica.test/i18n"

const i18nStubSrc = `package i18n

type MsgKey string

type GuildContext interface {
	GuildID() string
	LocaleOverride() string
}

func TrL(msgid string, args ...any) string                                    { return msgid }
func TrLN(singular, plural string, n int, args ...any) string                 { return singular }
func DeferL(msgid string, args ...any) func() string                          { return nil }
func TrM(g GuildContext, msgid string, args ...any) string                    { return msgid }
func TrMN(g GuildContext, singular, plural string, n int, args ...any) string { return singular }
func NewError(msgid string, args ...any) error                                { return nil }
func Wrap(err error, msgid string, args ...any) error                         { return nil }
`

const callerSrc = `package app

import "melodica.test/i18n"

func announce(g i18n.GuildContext, err error) {
	i18n.TrL("joined channel %s", "general")
	i18n.TrLN("one track queued", "%d tracks queued", 2)
	i18n.TrM(g, "now playing")
	i18n.TrMN(g, "one song", "%d songs", 3)
	_ = i18n.NewError("player stalled")
	_ = i18n.Wrap(err, "failed to seek %s", "intro")
	_ = i18n.MsgKey("volume changed")
}
`

type importerFunc func(path string) (*types.Package, error)

func (f importerFunc) Import(path string) (*types.Package, error) {
	return f(path)
}

// typeCheckCaller parses and type-checks the stub translation package
// plus a package calling into it, returning what the extractor needs to
// walk the caller.
func typeCheckCaller(t *testing.T) (*token.FileSet, *ast.File, *types.Info) {
	t.Helper()

	fset := token.NewFileSet()

	stubFile, err := parser.ParseFile(fset, "i18n.go", i18nStubSrc, 0)
	require.NoError(t, err)

	callerFile, err := parser.ParseFile(fset, "app.go", callerSrc, 0)
	require.NoError(t, err)

	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}

	var stubPkg *types.Package

	conf := types.Config{Importer: importerFunc(func(path string) (*types.Package, error) {
		if path == i18nStubPath {
			return stubPkg, nil
		}

		return nil, fmt.Errorf("unexpected import %q", path)
	})}

	stubPkg, err = conf.Check(i18nStubPath, fset, []*ast.File{stubFile}, info)
	require.NoError(t, err)

	_, err = conf.Check("melodica.test/app", fset, []*ast.File{callerFile}, info)
	require.NoError(t, err)

	return fset, callerFile, info
}

func TestExtractorRoutesKeywordsToDomains(t *testing.T) {
	t.Parallel()

	fset, callerFile, info := typeCheckCaller(t)

	e := &extractor{
		refs:        [2]map[key][]ref{{}, {}},
		projectRoot: ".",
		fset:        fset,
		info:        info,
		i18nPkgs:    map[string]struct{}{i18nStubPath: {}},
	}

	ast.Inspect(callerFile, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.CallExpr:
			e.handleCallExpr(x)
		case *ast.CompositeLit:
			e.handleCompositeLit(x)
		}

		return true
	})

	logRefs := e.refs[0]
	msgRefs := e.refs[1]

	// Log-domain keywords land in the Log template only.
	require.Contains(t, logRefs, key{id: "joined channel %s"})
	require.Contains(t, logRefs, key{id: "one track queued", plural: "%d tracks queued"})
	require.NotContains(t, msgRefs, key{id: "joined channel %s"})
	require.NotContains(t, msgRefs, key{id: "one track queued", plural: "%d tracks queued"})

	// Message-domain keywords take their msgid after the guild argument.
	require.Contains(t, msgRefs, key{id: "now playing"})
	require.Contains(t, msgRefs, key{id: "one song", plural: "%d songs"})
	require.NotContains(t, logRefs, key{id: "now playing"})
	require.NotContains(t, logRefs, key{id: "one song", plural: "%d songs"})

	// Error markers and MsgKey conversions land in both templates.
	for _, k := range []key{{id: "player stalled"}, {id: "failed to seek %s"}, {id: "volume changed"}} {
		require.Contains(t, logRefs, k)
		require.Contains(t, msgRefs, k)
	}
}

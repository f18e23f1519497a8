// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/tools/go/packages"
)

const (
	domainLog = 1 << iota
	domainMessage

	domainBoth = domainLog | domainMessage
)

// key models a gettext entry identified by singular msgid and optional
// plural msgid_plural. For non-plural entries, plural is empty.
type key struct {
	id     string
	plural string
}

type ref struct {
	file string
	line int
}

// keywordSpec describes one translation call in package i18n: which
// domains its msgid belongs to and the argument positions of the
// singular and plural strings. plural is -1 for non-plural calls.
type keywordSpec struct {
	domains  int
	singular int
	plural   int
}

var keywords = map[string]keywordSpec{
	"TrL":      {domains: domainLog, singular: 0, plural: -1},
	"TrLN":     {domains: domainLog, singular: 0, plural: 1},
	"DeferL":   {domains: domainLog, singular: 0, plural: -1},
	"TrM":      {domains: domainMessage, singular: 1, plural: -1},
	"TrMN":     {domains: domainMessage, singular: 1, plural: 2},
	"DeferM":   {domains: domainMessage, singular: 1, plural: -1},
	"MarkX":    {domains: domainBoth, singular: 0, plural: -1},
	"NewError": {domains: domainBoth, singular: 0, plural: -1},
	"Wrap":     {domains: domainBoth, singular: 1, plural: -1},
}

// extractor holds the shared state and context for AST analysis within a
// package. refs[0] collects Log domain entries, refs[1] Message domain
// entries.
type extractor struct {
	refs        [2]map[key][]ref
	projectRoot string
	fset        *token.FileSet
	info        *types.Info
	i18nPkgs    map[string]struct{}
}

// extract scans every buildable package in the module and writes one POT
// template per domain into dir.
func extract(dir string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax, Tests: false}, "./...")
	if err != nil {
		return fmt.Errorf("failed to load packages: %w", err)
	}

	if packages.PrintErrors(pkgs) > 0 {
		return fmt.Errorf("failed to load packages due to errors")
	}

	e := &extractor{
		refs:        [2]map[key][]ref{{}, {}},
		projectRoot: findProjectRoot(wd),
		i18nPkgs:    findI18nPkgPaths(pkgs),
	}

	for _, p := range pkgs {
		if p.TypesInfo == nil {
			continue
		}

		e.fset = p.Fset
		e.info = p.TypesInfo

		for _, f := range p.Syntax {
			ast.Inspect(f, func(n ast.Node) bool {
				switch x := n.(type) {
				case *ast.CallExpr:
					e.handleCallExpr(x)
				case *ast.CompositeLit:
					e.handleCompositeLit(x)
				}

				return true
			})
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for i, d := range domains {
		out := filepath.Join(dir, d.pot)
		if err := os.WriteFile(out, []byte(renderPOT(e.refs[i])), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}

		fmt.Printf("wrote %s (%d entries)\n", out, len(e.refs[i]))
	}

	return nil
}

// renderPOT emits a POT template for one domain's collected references.
func renderPOT(refs map[key][]ref) string {
	keys := make([]key, 0, len(refs))
	for k := range refs {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].id != keys[j].id {
			return keys[i].id < keys[j].id
		}

		return keys[i].plural < keys[j].plural
	})

	var b strings.Builder
	writeHeader(&b)

	for i, k := range keys {
		rs := refs[k]
		sort.Slice(rs, func(i, j int) bool {
			if rs[i].file != rs[j].file {
				return rs[i].file < rs[j].file
			}

			return rs[i].line < rs[j].line
		})

		// After sorting by file and line, duplicates will be adjacent.
		// Avoid a per-key set while producing identical output.
		fmt.Fprint(&b, "#:")

		lastFile := ""

		lastLine := 0
		for _, r := range rs {
			if r.file != lastFile || r.line != lastLine {
				fmt.Fprintf(&b, " %s:%d", r.file, r.line)

				lastFile = r.file
				lastLine = r.line
			}
		}

		fmt.Fprintln(&b)

		if k.plural != "" {
			fmt.Fprintf(&b, "msgid %q\n", k.id)
			fmt.Fprintf(&b, "msgid_plural %q\n", k.plural)
			fmt.Fprintf(&b, "msgstr[0] \"\"\n")
			fmt.Fprintf(&b, "msgstr[1] \"\"\n")
		} else {
			fmt.Fprintf(&b, "msgid %q\n", k.id)
			fmt.Fprintf(&b, "msgstr \"\"\n")
		}

		// Add a separating blank line, but not after the very last entry.
		if i < len(keys)-1 {
			fmt.Fprintln(&b)
		}
	}

	return b.String()
}

// findI18nPkgPaths returns the set of package paths in this build that
// define the i18n package with a MsgKey type whose underlying type is
// string. This lets us require that matched translation calls, and
// MsgKey conversions, come from our i18n package, regardless of how it
// is imported or aliased.
func findI18nPkgPaths(pkgs []*packages.Package) map[string]struct{} {
	out := make(map[string]struct{})

	for _, p := range pkgs {
		if p.Name != "i18n" || p.Types == nil {
			continue
		}

		obj := p.Types.Scope().Lookup("MsgKey")

		tn, ok := obj.(*types.TypeName)
		if !ok {
			continue
		}

		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}

		basic, ok := named.Underlying().(*types.Basic)
		if ok && basic.Kind() == types.String {
			out[p.PkgPath] = struct{}{}
		}
	}

	return out
}

// constString evaluates expr to a constant string if possible using
// types.Info. Handles string literals, const identifiers, and constant
// expressions like "a" + "b". Non-constant expressions return false.
func constString(info *types.Info, expr ast.Expr) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// isMsgKeyNamedTypeInI18n reports whether t is exactly the named type
// i18n.MsgKey, with package path present in i18nPkgs. Accepts both
// direct types and type aliases that resolve to i18n.MsgKey.
func isMsgKeyNamedTypeInI18n(t types.Type, i18nPkgs map[string]struct{}) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	if obj == nil || obj.Pkg() == nil {
		return false
	}

	if _, ok := i18nPkgs[obj.Pkg().Path()]; !ok {
		return false
	}

	return obj.Name() == "MsgKey"
}

// handleCompositeLit inspects composite literals to find implicit
// conversions to i18n.MsgKey. A bare MsgKey is dual-domain: nothing at
// the marking site says where the value will eventually be resolved.
func (e *extractor) handleCompositeLit(x *ast.CompositeLit) {
	tv, ok := e.info.Types[x]
	if !ok || tv.Type == nil {
		return
	}

	// Unwrap one level of pointer so &T{...} is treated as T{...}.
	t := tv.Type
	if p, ok := t.Underlying().(*types.Pointer); ok && p.Elem() != nil {
		t = p.Elem()
	}

	switch u := t.Underlying().(type) {
	case *types.Map:
		keyIsMK := isMsgKeyNamedTypeInI18n(u.Key(), e.i18nPkgs)

		valIsMK := isMsgKeyNamedTypeInI18n(u.Elem(), e.i18nPkgs)
		if !keyIsMK && !valIsMK {
			return
		}

		for _, elt := range x.Elts {
			kv, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				continue
			}

			if keyIsMK {
				if msg, ok := constString(e.info, kv.Key); ok {
					e.addRef(domainBoth, kv.Key.Pos(), msg, "")
				}
			}

			if valIsMK {
				if msg, ok := constString(e.info, kv.Value); ok {
					e.addRef(domainBoth, kv.Value.Pos(), msg, "")
				}
			}
		}

	case *types.Slice, *types.Array:
		var elemType types.Type
		if s, ok := u.(*types.Slice); ok {
			elemType = s.Elem()
		} else {
			// If not a slice, it must be an array due to the case statement.
			elemType = u.(*types.Array).Elem()
		}

		if !isMsgKeyNamedTypeInI18n(elemType, e.i18nPkgs) {
			return
		}

		for _, elt := range x.Elts {
			if msg, ok := constString(e.info, elt); ok {
				e.addRef(domainBoth, elt.Pos(), msg, "")
			}
		}

	case *types.Struct:
		// To handle both keyed and positional literals, we first map field
		// names to their types. Then, for keyed elements we look up the
		// type by name. For positional elements, we rely on the declared
		// field order.
		fieldTypes := make(map[string]types.Type, u.NumFields())
		for i := range u.NumFields() {
			f := u.Field(i)

			fieldTypes[f.Name()] = f.Type()
		}

		for i, elt := range x.Elts {
			// Keyed field: FieldName: "..."
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				if id, ok := kv.Key.(*ast.Ident); ok {
					if ft, ok := fieldTypes[id.Name]; ok && isMsgKeyNamedTypeInI18n(ft, e.i18nPkgs) {
						if msg, ok := constString(e.info, kv.Value); ok {
							e.addRef(domainBoth, kv.Value.Pos(), msg, "")
						}
					}
				}

				continue
			}

			// Positional field: rely on declared field order.
			if i < u.NumFields() {
				ft := u.Field(i).Type()
				if isMsgKeyNamedTypeInI18n(ft, e.i18nPkgs) {
					if msg, ok := constString(e.info, elt); ok {
						e.addRef(domainBoth, elt.Pos(), msg, "")
					}
				}
			}
		}
	}
}

// handleCallExpr inspects function calls and type conversions to find
// translatable strings, routing each to the domain its keyword targets.
func (e *extractor) handleCallExpr(x *ast.CallExpr) {
	// Case 1: Type conversion, e.g., i18n.MsgKey("Hello").
	// A call expression where x.Fun is a type is a type conversion.
	if tv, ok := e.info.Types[x.Fun]; ok && tv.IsType() {
		if len(x.Args) == 1 && isMsgKeyNamedTypeInI18n(tv.Type, e.i18nPkgs) {
			if msg, ok := constString(e.info, x.Args[0]); ok {
				e.addRef(domainBoth, x.Args[0].Pos(), msg, "")
			}
		}

		return // This was a type conversion, handled or not.
	}

	// Case 2: For function calls, first check if it's one of the keyword
	// calls. These have specific argument positions for msgid and plural.
	if sel, ok := x.Fun.(*ast.SelectorExpr); ok {
		if fn, ok := e.info.Uses[sel.Sel].(*types.Func); ok && fn.Pkg() != nil {
			if _, ok := e.i18nPkgs[fn.Pkg().Path()]; ok {
				if spec, ok := keywords[fn.Name()]; ok {
					e.handleKeyword(x, spec)

					return
				}
			}
		}
	}

	// Case 3: A generic function call with i18n.MsgKey parameters.
	// This handles implicit conversions for any function taking an
	// i18n.MsgKey. We use TypeOf because it works for qualified
	// (pkg.Func) and unqualified (Func) calls.
	sig, ok := e.info.TypeOf(x.Fun).(*types.Signature)
	if !ok {
		return
	}

	params := sig.Params()

	n := params.Len()
	if n == 0 {
		return
	}

	variadic := sig.Variadic()
	last := n - 1

	for i, arg := range x.Args {
		var pt types.Type

		if variadic && i >= last {
			// If called with ...slice, let composite literal handling
			// discover elements.
			if x.Ellipsis != token.NoPos {
				continue
			}
			// A valid variadic signature guarantees the last param is a slice.
			pt = params.At(last).Type().(*types.Slice).Elem()
		} else {
			if i >= n {
				break // More arguments than parameters (and not variadic)
			}

			pt = params.At(i).Type()
		}

		if isMsgKeyNamedTypeInI18n(pt, e.i18nPkgs) {
			if msg, ok := constString(e.info, arg); ok {
				e.addRef(domainBoth, arg.Pos(), msg, "")
			}
		}
	}
}

// handleKeyword records the msgid (and plural, for the *N calls) at the
// argument positions spec names.
func (e *extractor) handleKeyword(x *ast.CallExpr, spec keywordSpec) {
	if len(x.Args) <= spec.singular {
		return
	}

	msg, ok := constString(e.info, x.Args[spec.singular])
	if !ok {
		return
	}

	plural := ""

	if spec.plural >= 0 {
		if len(x.Args) <= spec.plural {
			return
		}

		plural, ok = constString(e.info, x.Args[spec.plural])
		if !ok {
			return
		}
	}

	e.addRef(spec.domains, x.Args[spec.singular].Pos(), msg, plural)
}

// addRef records a reference to a msgid in every domain set in domains,
// normalising the file path relative to the computed project root.
func (e *extractor) addRef(domains int, pos token.Pos, msg, plural string) {
	p := e.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(e.projectRoot, file); err == nil {
		file = rel
	}

	file = filepath.ToSlash(file)

	k := key{id: msg, plural: plural}
	r := ref{file: file, line: p.Line}

	if domains&domainLog != 0 {
		e.refs[0][k] = append(e.refs[0][k], r)
	}

	if domains&domainMessage != 0 {
		e.refs[1][k] = append(e.refs[1][k], r)
	}
}

// writeHeader emits a POT header.
func writeHeader(b *strings.Builder) {
	fmt.Fprintln(b, `msgid ""`)
	fmt.Fprintln(b, `msgstr ""`)
	fmt.Fprintf(b, "\"Project-Id-Version: Melodica %s\\n\"\n", detectVersion())
	fmt.Fprintf(b, "\"POT-Creation-Date: %s\\n\"\n", time.Now().UTC().Format("2006-01-02 15:04+0000"))
	fmt.Fprintln(b, `"Language: en\n"`)
	fmt.Fprintln(b, `"Report-Msgid-Bugs-To: https://codeberg.org/melodica/melodica/issues\n"`)
	fmt.Fprintln(b, `"MIME-Version: 1.0\n"`)
	fmt.Fprintln(b, `"Content-Type: text/plain; charset=UTF-8\n"`)
	fmt.Fprintln(b, `"Content-Transfer-Encoding: 8bit\n"`)
	fmt.Fprintln(b, `"Plural-Forms: nplurals=2; plural=(n != 1);\n"`)
	fmt.Fprintln(b)
}

// detectVersion resolves a human-friendly version string using git
// describe. Falls back to "dev" when git is unavailable or this is not a
// git checkout.
func detectVersion() string {
	cmd := exec.Command("git", "describe", "--tags", "--always", "--dirty")

	out, err := cmd.Output()
	if err != nil {
		return "dev"
	}

	return strings.TrimSpace(string(out))
}

// findProjectRoot attempts to find a stable root directory for source
// references. Preference order:
//  1. git toplevel directory
//  2. nearest parent directory that contains go.mod
//  3. the provided working directory
func findProjectRoot(wd string) string {
	if root := gitTopLevel(wd); root != "" {
		return root
	}

	if root := nearestGoModDir(wd); root != "" {
		return root
	}

	return wd
}

func gitTopLevel(wd string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")

	cmd.Dir = wd

	out, err := cmd.Output()
	if err != nil {
		return ""
	}

	root := strings.TrimSpace(string(out))
	if root == "" {
		return ""
	}

	return filepath.Clean(root)
}

func nearestGoModDir(start string) string {
	dir := filepath.Clean(start)
	for {
		if fileExists(filepath.Join(dir, "go.mod")) {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}

func fileExists(path string) bool {
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		return true
	}

	return false
}

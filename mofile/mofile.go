// Copyright 2024 - 2026, the Melodica contributors
// SPDX-License-Identifier: MIT

/*
Package mofile writes GNU gettext binary catalogs (.mo).

The runtime only ever reads compiled catalogs; this writer is the
compile half of cmd/langtool, turning editable .po entries into the
binary form the catalog store consumes. Output is little-endian,
revision 0, with string tables sorted by msgid as msgfmt produces.
*/
package mofile

import (
	"bytes"
	"encoding/binary"
	"os"
	"sort"
	"strings"
)

// magicLE is the little-endian magic number of the .mo format.
const magicLE = 0x950412de

// headerSize is the fixed size of the .mo preamble: magic, revision,
// entry count, two table offsets, hash size and hash offset.
const headerSize = 28

// Entry is one message in a catalog. Str holds the translation, one
// element per plural form; a nil or empty Str writes an untranslated
// entry.
type Entry struct {
	Ctx    string
	ID     string
	Plural string
	Str    []string
}

// File models a catalog about to be written.
type File struct {
	// Language is the locale tag recorded in the catalog header.
	Language string

	// PluralForms is the Plural-Forms header; empty selects the default
	// germanic rule used across our catalogs.
	PluralForms string

	Entries []Entry
}

const defaultPluralForms = "nplurals=2; plural=(n != 1);"

// Encode returns the binary catalog. The administrative header entry
// (msgid "") is generated from Language and PluralForms; an explicit
// empty-msgid entry in Entries is ignored.
func (f *File) Encode() []byte {
	type pair struct {
		id  []byte
		str []byte
	}

	pairs := []pair{{id: nil, str: []byte(f.header())}}

	for _, e := range f.Entries {
		if e.ID == "" {
			continue
		}

		pairs = append(pairs, pair{id: keyBytes(e), str: strBytes(e)})
	}

	sort.Slice(pairs, func(i, j int) bool {
		return bytes.Compare(pairs[i].id, pairs[j].id) < 0
	})

	n := uint32(len(pairs))

	origTable := uint32(headerSize)
	transTable := origTable + 8*n
	hashOffset := transTable + 8*n

	var data bytes.Buffer

	offsets := make([][2]uint32, 0, 2*n) // (length, offset) for ids, then strs
	dataStart := hashOffset

	for _, p := range pairs {
		offsets = append(offsets, [2]uint32{uint32(len(p.id)), dataStart + uint32(data.Len())})
		data.Write(p.id)
		data.WriteByte(0)
	}

	for _, p := range pairs {
		offsets = append(offsets, [2]uint32{uint32(len(p.str)), dataStart + uint32(data.Len())})
		data.Write(p.str)
		data.WriteByte(0)
	}

	var out bytes.Buffer

	write := func(v uint32) {
		_ = binary.Write(&out, binary.LittleEndian, v)
	}

	write(magicLE)
	write(0) // format revision
	write(n)
	write(origTable)
	write(transTable)
	write(0)          // hash table size; we never emit one
	write(hashOffset) // hash table offset, unused at size 0

	for _, lo := range offsets {
		write(lo[0])
		write(lo[1])
	}

	out.Write(data.Bytes())

	return out.Bytes()
}

// WriteFile encodes the catalog to path.
func (f *File) WriteFile(path string) error {
	return os.WriteFile(path, f.Encode(), 0o644)
}

// header builds the administrative entry's translation text.
func (f *File) header() string {
	plural := f.PluralForms
	if plural == "" {
		plural = defaultPluralForms
	}

	var b strings.Builder

	if f.Language != "" {
		b.WriteString("Language: " + f.Language + "\n")
	}

	b.WriteString("MIME-Version: 1.0\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\n")
	b.WriteString("Plural-Forms: " + plural + "\n")

	return b.String()
}

// keyBytes builds the msgid lookup key: context joined with EOT, plural
// joined with NUL, per the gettext wire conventions.
func keyBytes(e Entry) []byte {
	id := e.ID
	if e.Ctx != "" {
		id = e.Ctx + "\x04" + id
	}

	if e.Plural != "" {
		id = id + "\x00" + e.Plural
	}

	return []byte(id)
}

// strBytes joins plural translations with NUL.
func strBytes(e Entry) []byte {
	return []byte(strings.Join(e.Str, "\x00"))
}

// Package canon provides the canonical instrument name table for Partwise.
// It maps raw part and instrument labels, including sample-library-branded
// variants, to the generic family names used when rewriting a score.
package canon

import "strings"

// Entry maps a raw name pattern to its canonical family name.
// A pattern matches any label that contains it as a substring.
type Entry struct {
	Pattern string
	Family  string
}

// Table is an ordered canonical name table. Lookup scans entries in
// insertion order and the first pattern contained in the input wins, so
// entry order determines precedence when patterns overlap.
//
// A Table is immutable after construction and safe for concurrent readers.
type Table struct {
	entries []Entry
	index   map[string]int
}

// set inserts or replaces a mapping. Replacing an existing pattern keeps
// its original position so precedence is unaffected by overrides.
func (t *Table) set(pattern, family string) {
	if i, ok := t.index[pattern]; ok {
		t.entries[i].Family = family
		return
	}
	t.index[pattern] = len(t.entries)
	t.entries = append(t.entries, Entry{Pattern: pattern, Family: family})
}

// section holds the raw names belonging to one instrument section.
// Sections exist for construction clarity only; the runtime table is flat.
type section struct {
	name  string
	names []string
}

var sections = []section{
	{"wind", []string{
		"Piccolo", "Alto Flute", "Bass Flute", "Flutes", "Flute",
		"Oboes", "Oboe", "English Horn", "Contrabass Clarinet",
		"Bass Clarinet", "Eb Clarinet", "Clarinets", "Clarinet",
		"Contrabassoon", "Bassoons", "Bassoon", "Cor Anglais",
	}},
	{"horn", []string{
		"12 French Horns", "2 French Horns", "4 French Horns",
	}},
	{"brass", []string{
		"Horn Ensemble", "CineBrass French Horn", "2 Trumpets",
		"Trumpet Ensemble", "Trumpet", "Bass Trombone", "Trombones",
		"Trombone Ensemble", "Trombone", "Tuba",
	}},
	{"percussion", []string{
		"Timpani", "Cymbals", "Glockenspiel", "Marimba",
		"Vibraphone", "Bass Drum 36in", "Bowed Gongs",
	}},
	{"keys", []string{
		"Harp",
	}},
	{"voice", []string{
		"Sopranos", "Full Chorus", "Boys Choir", "Solo Soprano",
	}},
	{"strings", []string{
		"Violin 1", "Violin 2", "Viola", "Cello", "Bass",
		"Violins 1", "Violins 2", "Violas", "Cellos", "Basses",
	}},
}

var soloStrings = []string{"Violin 1", "Violin 2", "Viola", "Cello", "Bass"}

var sectionStrings = []string{"Violins 1", "Violins 2", "Violas", "Cellos", "Basses"}

// NewTable builds the built-in canonical name table.
// Every section name maps to itself first; overrides then remap the
// regional, ensemble-size and sample-library variants onto their
// standard families. Overrides of an existing pattern keep its position.
func NewTable() *Table {
	t := &Table{index: make(map[string]int)}

	for _, sec := range sections {
		for _, name := range sec.names {
			t.set(name, name)
		}
	}

	// Regional spelling
	t.set("Cor Anglais", "English Horn")

	// Horns
	for _, n := range []string{"1", "2", "3", "4"} {
		t.set("Berlin Brass Horn "+n, "French Horn")
	}
	t.set("Horn Ensemble", "4 French Horns")
	t.set("CineBrass French Horn", "French Horn")

	// Brass ensembles
	t.set("Trumpet Ensemble", "2 Trumpets")
	t.set("Trombone Ensemble", "Trombones")

	// Library-branded percussion and voices
	for _, sec := range sections {
		switch sec.name {
		case "percussion":
			for _, name := range sec.names {
				t.set("CinePerc "+name, name)
			}
		case "voice":
			for _, name := range sec.names {
				t.set("VOXOS "+name, name)
			}
		}
	}

	// Library-branded strings
	for _, name := range soloStrings {
		t.set("Cinestrings Solo "+name, "Solo "+name)
		t.set("First Chair "+name, "Solo "+name)
	}
	for _, name := range sectionStrings {
		t.set("Berlin Strings "+name, name)
	}
	t.set("Spitfire Chamber Strings Violins I", "Violins 1")
	t.set("Spitfire Chamber Strings Violins II", "Violins 2")
	for _, name := range []string{"Violas", "Cellos", "Basses"} {
		t.set("Spitfire Chamber Strings "+name, name)
	}

	return t
}

// Extend returns a new table with the given entries appended after the
// built-in ones. The receiver is not modified. Appended entries that
// collide with an existing pattern replace its family in place.
func (t *Table) Extend(entries []Entry) *Table {
	ext := &Table{
		entries: make([]Entry, len(t.entries)),
		index:   make(map[string]int, len(t.index)+len(entries)),
	}
	copy(ext.entries, t.entries)
	for pattern, i := range t.index {
		ext.index[pattern] = i
	}
	for _, e := range entries {
		ext.set(e.Pattern, e.Family)
	}
	return ext
}

// Resolve returns the canonical family name for a raw label.
// It scans entries in insertion order and returns the family of the
// first pattern that occurs as a substring of raw. The second return
// value is false when no pattern matches.
func (t *Table) Resolve(raw string) (string, bool) {
	for _, e := range t.entries {
		if strings.Contains(raw, e.Pattern) {
			return e.Family, true
		}
	}
	return "", false
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the table entries in precedence order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Package renamer computes and applies generic part and instrument
// names for a MusicXML score. It discovers every labelled entity,
// resolves its label against the canonical name table, numbers repeated
// families in document order, strips the number again for families that
// occur only once, and finally rewrites the matched labels in place.
package renamer

import "fmt"

// EntityKind distinguishes the two label namespaces in a score.
// Parts and instruments are counted and renamed independently even
// when they share family names.
type EntityKind string

const (
	KindPart       EntityKind = "part"
	KindInstrument EntityKind = "instrument"
)

// PlanEntry records the rename decision for one entity.
type PlanEntry struct {
	Original string // label text recorded at discovery time
	Proposed string // replacement label
}

// Plan maps entity identifiers to their rename decisions. An entity is
// renamed at most once; entities absent from the plan are never touched.
type Plan map[string]*PlanEntry

// Counts tracks how many entities resolved to each family, in document
// order. The count both assigns sequence numbers during discovery and
// drives the single-occurrence cleanup.
type Counts map[string]int

// Unmatched records a label that resolved to no table entry. Such
// entities pass through unchanged; the record exists for diagnostics
// and alias discovery.
type Unmatched struct {
	Kind EntityKind
	ID   string
	Name string
}

// Result holds the outcome of discovering renames in one score.
type Result struct {
	Parts            Plan
	PartCounts       Counts
	Instruments      Plan
	InstrumentCounts Counts
	Unmatched        []Unmatched
}

// Renamed returns how many plan entries actually change their label.
// Entries whose cleaned-up proposed name equals the original (a lone
// "Harp" staying "Harp") rewrite to identical text.
func (r *Result) Renamed() (parts, instruments int) {
	for _, e := range r.Parts {
		if e.Original != e.Proposed {
			parts++
		}
	}
	for _, e := range r.Instruments {
		if e.Original != e.Proposed {
			instruments++
		}
	}
	return parts, instruments
}

// ConsistencyError reports a live label that no longer matches the text
// recorded at discovery time. It signals a duplicate identifier in the
// source or a document mutated between discovery and apply; forcing the
// rename through would corrupt an already-diverged score.
type ConsistencyError struct {
	Kind     EntityKind
	EntityID string
	Recorded string
	Found    string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s %s: label %q does not match recorded name %q",
		e.Kind, e.EntityID, e.Found, e.Recorded)
}

package renamer

import (
	"fmt"

	"partwise/internal/canon"
	"partwise/internal/musicxml"
)

// propose resolves one label against the table and, on a match, bumps
// the family counter and returns the numbered proposal.
func propose(name string, table *canon.Table, counts Counts) (PlanEntry, bool) {
	family, ok := table.Resolve(name)
	if !ok {
		return PlanEntry{}, false
	}
	counts[family]++
	return PlanEntry{
		Original: name,
		Proposed: fmt.Sprintf("%s %d", family, counts[family]),
	}, true
}

// Discover walks the score in document order and computes the rename
// plan for parts and instruments. The two namespaces use independent
// counters. Labels without a table match are recorded as unmatched and
// left out of the plans.
func Discover(doc *musicxml.Document, table *canon.Table) *Result {
	res := &Result{
		Parts:            make(Plan),
		PartCounts:       make(Counts),
		Instruments:      make(Plan),
		InstrumentCounts: make(Counts),
	}

	for _, part := range doc.Parts() {
		if name := part.Name(); name != "" {
			if entry, ok := propose(name, table, res.PartCounts); ok {
				res.Parts[part.ID()] = &entry
			} else {
				res.Unmatched = append(res.Unmatched, Unmatched{Kind: KindPart, ID: part.ID(), Name: name})
			}
		}

		for _, inst := range part.Instruments() {
			name := inst.Name()
			if name == "" {
				continue
			}
			if entry, ok := propose(name, table, res.InstrumentCounts); ok {
				res.Instruments[inst.ID()] = &entry
			} else {
				res.Unmatched = append(res.Unmatched, Unmatched{Kind: KindInstrument, ID: inst.ID(), Name: name})
			}
		}
	}

	return res
}

// Cleanup strips the " 1" suffix from every family that occurred
// exactly once, so a lone instrument is "Timpani" rather than
// "Timpani 1". Families with two or more occurrences keep their full
// numbering. Running Cleanup twice is a no-op: after the first pass no
// entry carries the numbered form anymore.
func Cleanup(plan Plan, counts Counts) {
	for family, count := range counts {
		if count != 1 {
			continue
		}
		numbered := family + " 1"
		for _, entry := range plan {
			if entry.Proposed == numbered {
				entry.Proposed = family
			}
		}
	}
}

// Apply rewrites planned labels in the score. It first verifies that
// every planned entity's live label text still equals the recorded
// original; any mismatch aborts with a ConsistencyError before a single
// label has been touched, leaving the document unmodified. Entities
// absent from the plans are never written.
func Apply(doc *musicxml.Document, parts, instruments Plan) error {
	if err := verify(doc, parts, instruments); err != nil {
		return err
	}

	for _, part := range doc.Parts() {
		if entry, ok := parts[part.ID()]; ok {
			for _, el := range part.NameElements() {
				el.SetText(entry.Proposed)
			}
		}
		for _, inst := range part.Instruments() {
			if entry, ok := instruments[inst.ID()]; ok {
				for _, el := range inst.NameElements() {
					el.SetText(entry.Proposed)
				}
			}
		}
	}
	return nil
}

// verify checks every planned label against the live document text.
func verify(doc *musicxml.Document, parts, instruments Plan) error {
	for _, part := range doc.Parts() {
		if entry, ok := parts[part.ID()]; ok {
			for _, el := range part.NameElements() {
				if el.Text() != entry.Original {
					return &ConsistencyError{
						Kind:     KindPart,
						EntityID: part.ID(),
						Recorded: entry.Original,
						Found:    el.Text(),
					}
				}
			}
		}
		for _, inst := range part.Instruments() {
			if entry, ok := instruments[inst.ID()]; ok {
				for _, el := range inst.NameElements() {
					if el.Text() != entry.Original {
						return &ConsistencyError{
							Kind:     KindInstrument,
							EntityID: inst.ID(),
							Recorded: entry.Original,
							Found:    el.Text(),
						}
					}
				}
			}
		}
	}
	return nil
}

// Normalize runs the full discover, cleanup and apply pipeline on a
// score and returns the applied plan. The document is only mutated when
// the returned error is nil.
func Normalize(doc *musicxml.Document, table *canon.Table) (*Result, error) {
	res := Discover(doc, table)
	Cleanup(res.Parts, res.PartCounts)
	Cleanup(res.Instruments, res.InstrumentCounts)
	if err := Apply(doc, res.Parts, res.Instruments); err != nil {
		return nil, err
	}
	return res, nil
}

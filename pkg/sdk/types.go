package gallformers

import (
	domgall "github.com/kailas-cloud/gallformers/internal/domain/gall"
	domgloss "github.com/kailas-cloud/gallformers/internal/domain/glossary"
	"github.com/kailas-cloud/gallformers/internal/domain/glossary/linker"
	"github.com/kailas-cloud/gallformers/internal/domain/search/filter"
)

// Entry is a glossary term with its definition.
type Entry = domgloss.Entry

// Gall is a gall species record. Empty fields mean "no data".
type Gall = domgall.Gall

// LeafAnywhere matches any location mentioning "leaf".
const LeafAnywhere = filter.LeafAnywhere

// Flag returns a pointer to v, for building Gall.Detachable.
func Flag(v int) *int { return domgall.Flag(v) }

// SegmentKind distinguishes plain text from glossary links.
type SegmentKind string

// Segment kinds.
const (
	SegmentText SegmentKind = "text"
	SegmentLink SegmentKind = "link"
)

// Segment is one piece of linked text. Concatenating every Value
// reproduces the input.
type Segment struct {
	Kind  SegmentKind
	Value string
	// Link-only fields.
	Anchor string   // glossary word the link points at
	Href   string   // "#word" on the glossary page, "/glossary/#word" elsewhere
	Also   []string // further words sharing the anchor's stem
}

// SearchResult is one page of matching galls.
type SearchResult struct {
	Galls   []Gall
	Total   int
	HasMore bool
}

func fromInternalSegments(segs []linker.Segment) []Segment {
	out := make([]Segment, len(segs))
	for i, s := range segs {
		if !s.IsLink() {
			out[i] = Segment{Kind: SegmentText, Value: s.Value()}
			continue
		}
		out[i] = Segment{
			Kind:   SegmentLink,
			Value:  s.Display(),
			Anchor: s.Anchor(),
			Href:   s.Href(),
			Also:   s.Also(),
		}
	}
	return out
}

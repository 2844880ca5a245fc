package linker

import "strings"

// Kind discriminates the two segment variants.
type Kind string

// Segment kinds.
const (
	KindText Kind = "text"
	KindLink Kind = "link"
)

// GlossaryPath is the page glossary anchors resolve against when not linking in-page.
const GlossaryPath = "/glossary/"

// Segment is one unit of linked output: either verbatim text or a link to a glossary word.
type Segment struct {
	kind     Kind
	value    string
	anchor   string
	samePage bool
	also     []string
}

// Text creates a verbatim text segment.
func Text(value string) Segment {
	return Segment{kind: KindText, value: value}
}

// MakeLink creates a link segment pointing at anchor and displaying display.
// samePage resolves the anchor within the current page instead of the glossary page.
func MakeLink(anchor, display string, samePage bool) Segment {
	return Segment{kind: KindLink, value: display, anchor: anchor, samePage: samePage}
}

// Kind returns the segment variant.
func (s Segment) Kind() Kind { return s.kind }

// IsLink reports whether the segment is a link.
func (s Segment) IsLink() bool { return s.kind == KindLink }

// Value returns the verbatim text of a text segment, or the display text of a link.
func (s Segment) Value() string { return s.value }

// Display returns the link display text (the literal token from the input).
func (s Segment) Display() string { return s.value }

// Anchor returns the glossary word a link points at. Empty for text segments.
func (s Segment) Anchor() string { return s.anchor }

// SamePage reports whether the link resolves within the current page.
func (s Segment) SamePage() bool { return s.samePage }

// Also returns further glossary words that share the anchor's stem.
func (s Segment) Also() []string { return s.also }

// Href returns the link target. Empty for text segments.
func (s Segment) Href() string {
	if s.kind != KindLink {
		return ""
	}
	if s.samePage {
		return "#" + s.anchor
	}
	return GlossaryPath + "#" + s.anchor
}

// Concat rebuilds the literal text the segments were produced from.
func Concat(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.value)
	}
	return b.String()
}

package linker

import (
	"html"
	"strings"
)

// DefinitionLookup resolves a glossary word to its definition.
type DefinitionLookup func(word string) (string, bool)

// RenderHTML renders segments as HTML. Links become jargon-term spans carrying
// the definition as hover text when lookup knows the word. All text is escaped.
func RenderHTML(segs []Segment, lookup DefinitionLookup) string {
	var b strings.Builder
	for _, s := range segs {
		if !s.IsLink() {
			b.WriteString(html.EscapeString(s.value))
			continue
		}
		b.WriteString(`<span class="jargon-term"><a href="`)
		b.WriteString(html.EscapeString(s.Href()))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(s.value))
		b.WriteString(`</a>`)
		if lookup != nil {
			if def, ok := lookup(s.anchor); ok {
				b.WriteString(`<span class="jargon-info">`)
				b.WriteString(html.EscapeString(def))
				b.WriteString(`</span>`)
			}
		}
		b.WriteString(`</span>`)
	}
	return b.String()
}

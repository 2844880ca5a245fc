// Package linker turns prose into text and link segments for glossary vocabulary.
//
// Tokens are matched on their stem, so "galls" and "Gall" both link to a
// "gall" entry while the output keeps the original spelling. Concatenating the
// literal content of the returned segments always reproduces the input.
package linker

import (
	"strings"

	"github.com/kailas-cloud/gallformers/internal/domain/glossary"
)

// StemmedEntry pairs a glossary word with its stem.
type StemmedEntry struct {
	Word string
	Stem string
}

// Option configures a Linker.
type Option func(*Linker)

// WithStemmer replaces the default English stemmer.
func WithStemmer(s Stemmer) Option {
	return func(l *Linker) { l.stemmer = s }
}

// WithTokenizer replaces the default word tokenizer.
func WithTokenizer(t Tokenizer) Option {
	return func(l *Linker) { l.tokenizer = t }
}

// WithSkip suppresses links for tokens whose stem satisfies skip.
func WithSkip(skip func(stem string) bool) Option {
	return func(l *Linker) { l.skip = skip }
}

// Linker links glossary vocabulary in free text. Safe for concurrent use.
type Linker struct {
	stemmer   Stemmer
	tokenizer Tokenizer
	skip      func(stem string) bool
}

// New creates a Linker with the English stemmer and word tokenizer unless overridden.
func New(opts ...Option) *Linker {
	l := &Linker{stemmer: EnglishStemmer, tokenizer: WordTokenizer}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Default is a Linker with default settings.
var Default = New()

// Stem computes the stem of every entry's word, preserving order.
func (l *Linker) Stem(entries []glossary.Entry) []StemmedEntry {
	out := make([]StemmedEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, StemmedEntry{Word: e.Word, Stem: l.stemmer.Stem(e.Word)})
	}
	return out
}

// LinkText links text against the glossary. Empty text yields no segments.
func (l *Linker) LinkText(text string, entries []glossary.Entry, samePage bool) []Segment {
	if text == "" {
		return []Segment{}
	}
	return l.LinkFromStems(text, samePage, l.Stem(entries))
}

// LinkFromStems splits text into text and link segments.
//
// Each token whose stem equals an entry's stem is emitted as a link anchored at
// the first such entry; later entries with the same stem are kept in Also.
// The text between links is emitted verbatim. Text without any match comes
// back as a single text segment.
func (l *Linker) LinkFromStems(text string, samePage bool, stems []StemmedEntry) []Segment {
	var segs []Segment

	// scan is where the next token search starts; emitted is the end of the last link.
	scan, emitted := 0, 0
	for _, tok := range l.tokenizer.Tokenize(text) {
		if tok == "" {
			continue
		}
		idx := strings.Index(text[scan:], tok)
		if idx < 0 {
			continue
		}
		start := scan + idx
		end := start + len(tok)
		scan = end

		words := l.match(tok, stems)
		if len(words) == 0 {
			continue
		}

		if start > emitted {
			segs = append(segs, Text(text[emitted:start]))
		}
		link := MakeLink(words[0], tok, samePage)
		if len(words) > 1 {
			link.also = words[1:]
		}
		segs = append(segs, link)
		emitted = end
	}

	if len(segs) == 0 {
		return []Segment{Text(text)}
	}
	if emitted < len(text) {
		segs = append(segs, Text(text[emitted:]))
	}
	return segs
}

// match returns the words of all entries sharing tok's stem, in entry order.
func (l *Linker) match(tok string, stems []StemmedEntry) []string {
	stem := l.stemmer.Stem(tok)
	if l.skip != nil && l.skip(stem) {
		return nil
	}
	var words []string
	for _, s := range stems {
		if s.Stem != stem || contains(words, s.Word) {
			continue
		}
		words = append(words, s.Word)
	}
	return words
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// Stem computes stems with the default Linker.
func Stem(entries []glossary.Entry) []StemmedEntry {
	return Default.Stem(entries)
}

// LinkFromStems links text with the default Linker.
func LinkFromStems(text string, samePage bool, stems []StemmedEntry) []Segment {
	return Default.LinkFromStems(text, samePage, stems)
}

// LinkText links text with the default Linker.
func LinkText(text string, entries []glossary.Entry, samePage bool) []Segment {
	return Default.LinkText(text, entries, samePage)
}

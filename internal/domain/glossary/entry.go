package glossary

import (
	"fmt"
	"sort"
	"strings"
)

// MaxWordLength is the maximum length of a glossary word.
const MaxWordLength = 128

// Entry is a single glossary term with its definition and reference URLs.
type Entry struct {
	Word       string   `json:"word" yaml:"word"`
	Definition string   `json:"definition" yaml:"definition"`
	URLs       []string `json:"urls,omitempty" yaml:"urls,omitempty"`
}

// Validate checks the entry for storage.
func (e *Entry) Validate() error {
	w := strings.TrimSpace(e.Word)
	if w == "" {
		return fmt.Errorf("glossary word is required")
	}
	if len(w) > MaxWordLength {
		return fmt.Errorf("glossary word too long (max %d)", MaxWordLength)
	}
	if strings.ContainsAny(w, "*?[]") {
		return fmt.Errorf("glossary word %q contains pattern characters", w)
	}
	if strings.TrimSpace(e.Definition) == "" {
		return fmt.Errorf("definition is required for %q", w)
	}
	return nil
}

// Key returns the storage identity of the entry. Words differing only in case share a key.
func (e *Entry) Key() string {
	return KeyFor(e.Word)
}

// KeyFor normalizes a word into its storage identity.
func KeyFor(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// SortByWord orders entries by word, ascending.
func SortByWord(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Word < entries[j].Word
	})
}

// Find returns the first entry with the given word.
func Find(entries []Entry, word string) (Entry, bool) {
	for _, e := range entries {
		if e.Word == word {
			return e, true
		}
	}
	return Entry{}, false
}

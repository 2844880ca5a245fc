package linker

import (
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
)

// Stemmer reduces a word to its morphological root.
type Stemmer interface {
	Stem(word string) string
}

// Tokenizer splits text into word tokens, preserving each token's surface form.
type Tokenizer interface {
	Tokenize(text string) []string
}

// StemmerFunc adapts a function to Stemmer.
type StemmerFunc func(word string) string

// Stem implements Stemmer.
func (f StemmerFunc) Stem(word string) string { return f(word) }

// TokenizerFunc adapts a function to Tokenizer.
type TokenizerFunc func(text string) []string

// Tokenize implements Tokenizer.
func (f TokenizerFunc) Tokenize(text string) []string { return f(text) }

// EnglishStemmer is the Snowball English (Porter2) stemmer. Output is lower-cased.
var EnglishStemmer Stemmer = StemmerFunc(func(word string) string {
	return snowballeng.Stem(word, false)
})

// WordTokenizer splits on every rune that is not a letter, digit or underscore.
var WordTokenizer Tokenizer = TokenizerFunc(func(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '_'
	})
})

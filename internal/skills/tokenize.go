// Package skills extracts a normalized skill set from free text and scores the
// overlap between a candidate's skills and the skills a job requires.
//
// Everything in this package is a pure function of its arguments. The only
// shared input is the Tokenizer capability, which callers construct once and
// hand in by reference.
package skills

import (
	"reflect"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer turns already lowercased text into word tokens in document order.
// Implementations must be safe for concurrent use.
type Tokenizer interface {
	Tokenize(text string) []string
}

// TokenizerFunc adapts a plain function to the Tokenizer interface.
type TokenizerFunc func(text string) []string

func (f TokenizerFunc) Tokenize(text string) []string { return f(text) }

// Tokenize lowercases text and splits it with the supplied capability.
// A nil capability or blank text produce an empty, non-nil sequence.
// Invalid UTF-8 bytes are replaced with spaces before tokenization.
func Tokenize(text string, tokenizer Tokenizer) []string {
	if !Available(tokenizer) {
		return []string{}
	}

	text = strings.ToValidUTF8(text, " ")
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	raw := tokenizer.Tokenize(Normalize(text))

	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}

	return tokens
}

// Available reports whether tokenizer can be called. A typed nil pointer
// stored in the interface counts as unavailable.
func Available(tokenizer Tokenizer) bool {
	if tokenizer == nil {
		return false
	}

	v := reflect.ValueOf(tokenizer)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return !v.IsNil()
	}
	return true
}

// Normalize applies NFKC and lowercases the text. A Caser keeps state, so a
// fresh one is built for every call.
func Normalize(text string) string {
	return cases.Lower(language.Und).String(norm.NFKC.String(text))
}

// SimpleTokenizer is the fallback splitter used when no linguistic tokenizer
// is available. A token is a maximal run of letters, digits, '+' or '#'.
type SimpleTokenizer struct{}

func (SimpleTokenizer) Tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#'
}

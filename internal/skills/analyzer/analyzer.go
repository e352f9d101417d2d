// Package analyzer provides a linguistic skills.Tokenizer built on the bleve
// text analysis pipeline: Unicode (UAX #29) word segmentation followed by a
// lowercase filter and English possessive removal ("python's" -> "python").
// Stop words are kept so phrase adjacency is preserved.
package analyzer

import (
	"fmt"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/registry"
)

// Name is the analyzer name registered in the private registry cache.
const Name = "hr_screener_words"

// Tokenizer wraps a bleve analyzer. It is read-only after construction and
// safe for concurrent use.
type Tokenizer struct {
	analyzer analysis.Analyzer
}

// New builds the analyzer. Construction is the expensive step and callers are
// expected to do it once per process.
func New() (*Tokenizer, error) {
	cache := registry.NewCache()

	a, err := cache.DefineAnalyzer(Name, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name, en.PossessiveName},
	})
	if err != nil {
		return nil, fmt.Errorf("define %s analyzer: %w", Name, err)
	}

	return &Tokenizer{analyzer: a}, nil
}

// Tokenize returns the analyzed terms in document order.
func (t *Tokenizer) Tokenize(text string) []string {
	if t == nil || t.analyzer == nil || text == "" {
		return []string{}
	}

	stream := t.analyzer.Analyze([]byte(text))
	tokens := make([]string, 0, len(stream))
	for _, token := range stream {
		if len(token.Term) == 0 {
			continue
		}
		tokens = append(tokens, string(token.Term))
	}

	return tokens
}

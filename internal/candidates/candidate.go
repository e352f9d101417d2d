// Package candidates loads resumes from disk and keeps the per-candidate
// screening outcome used by batch mode.
package candidates

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/spigell/hr-screener/internal/ai"
	"github.com/spigell/hr-screener/internal/fetch"
	"github.com/spigell/hr-screener/internal/skills"
)

// Extensions that LoadDir picks up.
var supportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".text": true,
	".html": true,
	".htm":  true,
}

type Candidates struct {
	Items []*Candidate
}

type Candidate struct {
	// ID is derived from the resume content so renamed files keep their identity.
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Path   string         `json:"path,omitempty"`
	Text   string         `json:"-"`
	Report *skills.Report `json:"report,omitempty"`
	Review *ai.Review     `json:"review,omitempty"`
}

// Percentage returns the match percentage, or 0 before screening.
func (c *Candidate) Percentage() float64 {
	if c == nil || c.Report == nil {
		return 0
	}
	return c.Report.Result.Percentage
}

// ContentID hashes the resume text.
func ContentID(text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:6])
}

// LoadFile reads one resume. HTML resumes are reduced to their text. Files
// that are not valid UTF-8 are decoded as Windows-1252.
func LoadFile(path string) (*Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err = fetch.ExtractText(text, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	base := filepath.Base(path)
	return &Candidate{
		ID:   ContentID(text),
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
		Path: path,
		Text: text,
	}, nil
}

func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	return charmap.Windows1252.NewDecoder().String(string(data))
}

// LoadDir reads every supported file in dir (not recursive), ordered by name.
// Files with identical content are loaded once.
func LoadDir(dir string) (*Candidates, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	result := &Candidates{}
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		c, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		result.Items = append(result.Items, c)
	}

	return result, nil
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) FindByID(id string) *Candidate {
	for _, candidate := range c.Items {
		if candidate.ID == id {
			return candidate
		}
	}
	return nil
}

func (c *Candidates) IDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, candidate := range c.Items {
		ids = append(ids, candidate.ID)
	}
	return ids
}

// Exclude removes candidates whose ID is in ids and returns the removed IDs.
// Order of the remaining candidates is preserved.
func (c *Candidates) Exclude(ids []string) []string {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	return c.Keep(func(candidate *Candidate) bool { return !drop[candidate.ID] })
}

// Keep retains the candidates for which keep returns true and returns the
// IDs of the others.
func (c *Candidates) Keep(keep func(*Candidate) bool) []string {
	var dropped []string
	kept := c.Items[:0]
	for _, candidate := range c.Items {
		if keep(candidate) {
			kept = append(kept, candidate)
			continue
		}
		dropped = append(dropped, candidate.ID)
	}
	c.Items = kept
	return dropped
}

// SortByScore orders candidates by match percentage, highest first. Ties
// keep name order.
func (c *Candidates) SortByScore() {
	sort.SliceStable(c.Items, func(i, j int) bool {
		pi, pj := c.Items[i].Percentage(), c.Items[j].Percentage()
		if pi != pj {
			return pi > pj
		}
		return c.Items[i].Name < c.Items[j].Name
	})
}

// ReportByScore groups candidate summaries into quartile buckets.
func (c *Candidates) ReportByScore() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, candidate := range c.Items {
		key := scoreBucket(candidate.Percentage())
		entry := map[string]string{
			"id":         candidate.ID,
			"name":       candidate.Name,
			"percentage": skills.FormatPercentage(candidate.Percentage()),
		}
		if candidate.Report != nil {
			entry["matched"] = strings.Join(candidate.Report.Result.Matched.Sorted(), ", ")
			entry["missing"] = strings.Join(candidate.Report.Result.Missing.Sorted(), ", ")
		}
		if candidate.Review != nil && candidate.Review.Recommendation != "" {
			entry["recommendation"] = candidate.Review.Recommendation
		}
		report[key] = append(report[key], entry)
	}
	return report
}

func scoreBucket(p float64) string {
	switch {
	case p >= 75:
		return "75-100%"
	case p >= 50:
		return "50-75%"
	case p >= 25:
		return "25-50%"
	default:
		return "0-25%"
	}
}

func (c *Candidates) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	return file.Name(), nil
}

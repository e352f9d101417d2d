package candidates

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"
)

const (
	ExcludeActorUser     = "user"
	ExcludeActorMinMatch = "min_match"
)

// ExcludedCandidates is the content of an exclude file: candidates that later
// batch runs should skip.
type ExcludedCandidates struct {
	Items []*ExcludedCandidate
}

type ExcludedCandidate struct {
	ID         string
	Name       string
	Percentage float64
	ExcludedAt time.Time
	Actor      string `json:",omitempty"`
	Reason     string `json:",omitempty"`
}

func (c *Candidates) ToExcluded(actor, reason string) *ExcludedCandidates {
	excluded := &ExcludedCandidates{}
	for _, candidate := range c.Items {
		excluded.Items = append(excluded.Items, &ExcludedCandidate{
			ID:         candidate.ID,
			Name:       candidate.Name,
			Percentage: candidate.Percentage(),
			ExcludedAt: time.Now().UTC(),
			Actor:      actor,
			Reason:     reason,
		})
	}
	return excluded
}

// GetExcludedFromFile reads an exclude file. A missing or empty file yields
// an empty list.
func GetExcludedFromFile(path string) (*ExcludedCandidates, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ExcludedCandidates{}, nil
	}
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return &ExcludedCandidates{}, nil
	}

	var excluded ExcludedCandidates
	if err := json.Unmarshal(data, &excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

// Append adds entries whose ID is not already present.
func (e *ExcludedCandidates) Append(other *ExcludedCandidates) {
	known := make(map[string]bool, len(e.Items))
	for _, item := range e.Items {
		known[item.ID] = true
	}
	for _, item := range other.Items {
		if known[item.ID] {
			continue
		}
		known[item.ID] = true
		e.Items = append(e.Items, item)
	}
}

func (e *ExcludedCandidates) IDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (e *ExcludedCandidates) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

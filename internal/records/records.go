// Package records persists screening outcomes and payroll entries.
package records

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/hr-screener/internal/ai"
	"github.com/spigell/hr-screener/internal/skills"
)

// DateLayout is the format of DateProcessed. Timestamps are always UTC.
const DateLayout = "2006-01-02 15:04:05"

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var ErrNotFound = errors.New("record not found")

type ScreeningRecord struct {
	ID            string        `json:"id"`
	CandidateID   string        `json:"candidate_id,omitempty"`
	Name          string        `json:"name"`
	Source        string        `json:"source,omitempty"`
	Report        skills.Report `json:"report"`
	Review        *ai.Review    `json:"review,omitempty"`
	DateProcessed string        `json:"date_processed"`
}

type PayrollRecord struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Salary        float64 `json:"salary"`
	Deductions    float64 `json:"deductions"`
	Taxes         float64 `json:"taxes"`
	Benefits      float64 `json:"benefits"`
	NetSalary     float64 `json:"net_salary"`
	DateProcessed string  `json:"date_processed"`
}

// Store keeps records in insertion order.
type Store interface {
	SaveScreening(ctx context.Context, record *ScreeningRecord) error
	GetScreening(ctx context.Context, id string) (*ScreeningRecord, error)
	ListScreenings(ctx context.Context) ([]*ScreeningRecord, error)

	SavePayroll(ctx context.Context, record *PayrollRecord) error
	ListPayroll(ctx context.Context) ([]*PayrollRecord, error)

	Close() error
}

// Open returns the store for the named backend.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileStore(path), nil
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown records backend %q", backend)
	}
}

// FormatDate renders t the way DateProcessed expects.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

func stamp(id, date *string, now func() time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if *date == "" {
		*date = FormatDate(now())
	}
}

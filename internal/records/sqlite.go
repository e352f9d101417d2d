package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/spigell/hr-screener/internal/ai"
)

const schema = `
CREATE TABLE IF NOT EXISTS screenings (
	seq            INTEGER PRIMARY KEY AUTOINCREMENT,
	id             TEXT NOT NULL UNIQUE,
	candidate_id   TEXT NOT NULL DEFAULT '',
	name           TEXT NOT NULL,
	source         TEXT NOT NULL DEFAULT '',
	percentage     REAL NOT NULL,
	report         TEXT NOT NULL,
	review         TEXT,
	date_processed TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS payroll (
	seq            INTEGER PRIMARY KEY AUTOINCREMENT,
	id             TEXT NOT NULL UNIQUE,
	name           TEXT NOT NULL,
	salary         REAL NOT NULL,
	deductions     REAL NOT NULL,
	taxes          REAL NOT NULL,
	benefits       REAL NOT NULL,
	net_salary     REAL NOT NULL,
	date_processed TEXT NOT NULL
);`

// SQLiteStore keeps records in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (and creates if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveScreening(ctx context.Context, record *ScreeningRecord) error {
	if record == nil {
		return errors.New("record is nil")
	}

	report, err := json.Marshal(record.Report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	var review sql.NullString
	if record.Review != nil {
		data, err := json.Marshal(record.Review)
		if err != nil {
			return fmt.Errorf("failed to marshal review: %w", err)
		}
		review = sql.NullString{String: string(data), Valid: true}
	}

	stamp(&record.ID, &record.DateProcessed, s.now)

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO screenings (id, candidate_id, name, source, percentage, report, review, date_processed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.CandidateID, record.Name, record.Source,
		record.Report.Result.Percentage, string(report), review, record.DateProcessed,
	)
	if err != nil {
		return fmt.Errorf("failed to save screening: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetScreening(ctx context.Context, id string) (*ScreeningRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, candidate_id, name, source, report, review, date_processed
		 FROM screenings WHERE id = ?`, id)

	record, err := scanScreening(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("screening %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get screening: %w", err)
	}
	return record, nil
}

func (s *SQLiteStore) ListScreenings(ctx context.Context) ([]*ScreeningRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, candidate_id, name, source, report, review, date_processed
		 FROM screenings ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list screenings: %w", err)
	}
	defer rows.Close()

	var records []*ScreeningRecord
	for rows.Next() {
		record, err := scanScreening(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan screening: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) SavePayroll(ctx context.Context, record *PayrollRecord) error {
	if record == nil {
		return errors.New("record is nil")
	}

	stamp(&record.ID, &record.DateProcessed, s.now)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payroll (id, name, salary, deductions, taxes, benefits, net_salary, date_processed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Name, record.Salary, record.Deductions, record.Taxes,
		record.Benefits, record.NetSalary, record.DateProcessed,
	)
	if err != nil {
		return fmt.Errorf("failed to save payroll record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListPayroll(ctx context.Context) ([]*PayrollRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, salary, deductions, taxes, benefits, net_salary, date_processed
		 FROM payroll ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []*PayrollRecord
	for rows.Next() {
		record := &PayrollRecord{}
		if err := rows.Scan(&record.ID, &record.Name, &record.Salary, &record.Deductions,
			&record.Taxes, &record.Benefits, &record.NetSalary, &record.DateProcessed); err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanScreening(row scanner) (*ScreeningRecord, error) {
	var (
		record ScreeningRecord
		report string
		review sql.NullString
	)
	if err := row.Scan(&record.ID, &record.CandidateID, &record.Name, &record.Source,
		&report, &review, &record.DateProcessed); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(report), &record.Report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	if review.Valid {
		record.Review = &ai.Review{}
		if err := json.Unmarshal([]byte(review.String), record.Review); err != nil {
			return nil, fmt.Errorf("failed to unmarshal review: %w", err)
		}
	}
	return &record, nil
}

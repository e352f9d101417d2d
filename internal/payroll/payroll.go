// Package payroll computes net salaries and builds payroll records.
package payroll

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spigell/hr-screener/internal/logger"
	"github.com/spigell/hr-screener/internal/records"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyName     = errors.New("employee name is required")
)

type Entry struct {
	Name       string
	Salary     float64
	Deductions float64
	Taxes      float64
	Benefits   float64
}

// NetSalary is salary minus deductions and taxes, plus benefits.
func NetSalary(salary, deductions, taxes, benefits float64) float64 {
	return salary - deductions - taxes + benefits
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}

	amounts := []struct {
		name  string
		value float64
	}{
		{"salary", e.Salary},
		{"deductions", e.Deductions},
		{"taxes", e.Taxes},
		{"benefits", e.Benefits},
	}
	for _, amount := range amounts {
		if amount.value < 0 || math.IsNaN(amount.value) || math.IsInf(amount.value, 0) {
			return fmt.Errorf("%s %v: %w", amount.name, amount.value, ErrInvalidAmount)
		}
	}
	return nil
}

// Record validates the entry and returns an unsaved payroll record.
func (e Entry) Record() (*records.PayrollRecord, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	return &records.PayrollRecord{
		Name:       strings.TrimSpace(e.Name),
		Salary:     e.Salary,
		Deductions: e.Deductions,
		Taxes:      e.Taxes,
		Benefits:   e.Benefits,
		NetSalary:  NetSalary(e.Salary, e.Deductions, e.Taxes, e.Benefits),
	}, nil
}

type Processor struct {
	store  records.Store
	logger *zap.Logger
}

func NewProcessor(store records.Store, log *zap.Logger) *Processor {
	return &Processor{store: store, logger: logger.OrNop(log)}
}

// Process computes and stores the payroll record for the entry.
func (p *Processor) Process(ctx context.Context, entry Entry) (*records.PayrollRecord, error) {
	record, err := entry.Record()
	if err != nil {
		return nil, err
	}

	if err := p.store.SavePayroll(ctx, record); err != nil {
		return nil, fmt.Errorf("save payroll record: %w", err)
	}

	p.logger.Info("payroll processed",
		zap.String("id", record.ID),
		zap.String("name", record.Name),
		zap.Float64("net_salary", record.NetSalary),
	)
	return record, nil
}

func (p *Processor) Records(ctx context.Context) ([]*records.PayrollRecord, error) {
	return p.store.ListPayroll(ctx)
}

// FormatAmount renders a currency amount with thousands separators, e.g. $1,234.50.
func FormatAmount(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + message.NewPrinter(language.English).Sprintf("$%.2f", v)
}

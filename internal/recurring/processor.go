// Package recurring materializes due recurring expense definitions into
// expense transactions and advances their next run dates.
package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// DescriptionPrefix tags transactions created by the processor.
const DescriptionPrefix = "Auto-generated: "

// Failure records one definition that could not be processed.
type Failure struct {
	DefinitionID uint   `json:"definition_id"`
	Name         string `json:"name"`
	Err          string `json:"error"`
}

// Report summarizes one processor run. Individual definition failures are
// collected here; only a failure of the run itself (e.g. the due-definition
// query) is returned as an error from Run.
type Report struct {
	RunID     string    `json:"run_id"`
	Date      string    `json:"date"`
	Checked   int       `json:"checked"`
	Processed int       `json:"processed"`
	Failures  []Failure `json:"failures,omitempty"`
}

// Processor is the scheduled batch job. Runs are single-flighted: a Run
// invoked while another is in progress joins it and receives its report
// instead of starting a second scan.
//
// Running twice on the same day re-materializes definitions that are still
// due: nothing marks a definition "already processed today" other than the
// advanced next run date, so a repeated run after a mid-unit crash produces a
// duplicate transaction rather than a silent skip.
type Processor struct {
	store   Store
	log     *slog.Logger
	timeout time.Duration

	group singleflight.Group
}

// NewProcessor builds a processor. timeout bounds each definition's unit of
// work; zero disables the bound. A nil logger falls back to slog.Default.
func NewProcessor(store Store, log *slog.Logger, timeout time.Duration) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{store: store, log: log, timeout: timeout}
}

// Run processes every definition due on or before today and returns the run
// report. today is taken at day granularity in its own location; the caller
// fixes the clock, which keeps runs testable against a deterministic date.
func (p *Processor) Run(ctx context.Context, today time.Time) (*Report, error) {
	v, err, _ := p.group.Do("run", func() (interface{}, error) {
		return p.run(ctx, today)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Report), nil
}

func (p *Processor) run(ctx context.Context, today time.Time) (*Report, error) {
	today = DateOnly(today)

	report := &Report{
		RunID: uuid.NewString(),
		Date:  today.Format("2006-01-02"),
	}

	defs, err := p.store.DueDefinitions(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("load due definitions: %w", err)
	}
	report.Checked = len(defs)

	p.log.Info("processing recurring expenses",
		"run_id", report.RunID,
		"due", len(defs),
		"date", report.Date)

	for i := range defs {
		def := &defs[i]

		if err := p.processOne(ctx, def, today); err != nil {
			p.log.Error("failed to process recurring expense",
				"run_id", report.RunID,
				"definition_id", def.ID,
				"name", def.Name,
				"error", err)
			report.Failures = append(report.Failures, Failure{
				DefinitionID: def.ID,
				Name:         def.Name,
				Err:          err.Error(),
			})
			continue
		}
		report.Processed++
	}

	p.log.Info("recurring expense processing complete",
		"run_id", report.RunID,
		"checked", report.Checked,
		"processed", report.Processed,
		"failed", len(report.Failures))

	return report, nil
}

// processOne materializes one definition inside its own unit of work: the
// transaction insert, the category resolution and the due-date advance commit
// together or not at all.
func (p *Processor) processOne(ctx context.Context, def *models.RecurringExpense, today time.Time) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	next, err := NextRunDate(def.NextRunDate, def.Cycle)
	if err != nil {
		return err
	}

	return p.store.InUnit(ctx, func(u Unit) error {
		txn := &models.Transaction{
			UserID:      def.UserID,
			Amount:      def.Amount,
			Type:        models.TypeExpense,
			Description: DescriptionPrefix + def.Name,
			Date:        today,
		}
		if err := u.CreateTransaction(txn); err != nil {
			return err
		}

		cat, err := u.ResolveCategory(models.RecurringCategoryName, models.TypeExpense, def.UserID)
		if err != nil {
			return err
		}
		if err := u.AttachCategory(txn, cat.ID); err != nil {
			return err
		}

		return u.AdvanceNextRun(def, next)
	})
}

package application

import (
	"fmt"

	"github.com/smartspend/SmartSpend/internal/rrule"
	"github.com/smartspend/SmartSpend/internal/schedule/domain"
	scheduleErrors "github.com/smartspend/SmartSpend/internal/schedule/errors"
	"github.com/smartspend/SmartSpend/internal/schedule/recurrence"
)

// ScheduleService orchestrates the recurrence engine against stored
// transactions. The engine itself stays pure; everything touching the
// repository lives here.
type ScheduleService struct {
	repo       domain.TransactionRepository
	categories domain.CategoryRepository
}

func NewScheduleService(repo domain.TransactionRepository, categories domain.CategoryRepository) *ScheduleService {
	return &ScheduleService{repo: repo, categories: categories}
}

type TemplateOverview struct {
	Transaction domain.Transaction `json:"transaction"`
	NextDate    string             `json:"nextDate,omitempty"`
	Description string             `json:"description"`
}

// ListTemplates returns every active template with its next unsatisfied
// occurrence and a human description of the rule.
func (s *ScheduleService) ListTemplates(userID, today string) ([]TemplateOverview, error) {
	transactions, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	overviews := []TemplateOverview{}
	for _, transaction := range transactions {
		if !transaction.IsTemplate() {
			continue
		}
		overviews = append(overviews, TemplateOverview{
			Transaction: transaction,
			NextDate:    recurrence.FindNextOccurrence(*transaction.Schedule, today, transactions, transaction),
			Description: recurrence.Describe(*transaction.Schedule),
		})
	}
	return overviews, nil
}

// ListUpcoming returns the virtual (not persisted) upcoming transactions the
// client renders in its upcoming view.
func (s *ScheduleService) ListUpcoming(userID, today string) ([]domain.Transaction, error) {
	transactions, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	return recurrence.GenerateVirtualTransactions(transactions, today), nil
}

// GenerateUpcoming materializes every due occurrence within the window into
// planned transactions, persists them and advances each template's resume
// cursor. Returns what was written.
func (s *ScheduleService) GenerateUpcoming(userID, today string, monthsAhead int) ([]domain.Transaction, error) {
	transactions, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	generated := recurrence.GenerateScheduledTransactions(transactions, today, monthsAhead)
	if len(generated) == 0 {
		return []domain.Transaction{}, nil
	}
	if err := s.repo.SaveAll(generated); err != nil {
		return nil, fmt.Errorf("saving generated transactions: %w", err)
	}
	if err := s.advanceCursors(transactions, generated); err != nil {
		return nil, err
	}
	return generated, nil
}

// CollectPastDue persists occurrences that fell due while the client was
// offline, as pending entries awaiting user confirmation.
func (s *ScheduleService) CollectPastDue(userID, today string) ([]domain.Transaction, error) {
	transactions, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	pastDue := recurrence.GeneratePastDueTransactions(transactions, today)
	if len(pastDue) == 0 {
		return []domain.Transaction{}, nil
	}
	if err := s.repo.SaveAll(pastDue); err != nil {
		return nil, fmt.Errorf("saving past-due transactions: %w", err)
	}
	if err := s.advanceCursors(transactions, pastDue); err != nil {
		return nil, err
	}
	return pastDue, nil
}

// advanceCursors moves each template's LastGenerated to the latest occurrence
// that was just persisted for it.
func (s *ScheduleService) advanceCursors(transactions, generated []domain.Transaction) error {
	latest := map[string]string{}
	for _, transaction := range generated {
		if transaction.SourceTemplateID == "" {
			continue
		}
		if transaction.Date > latest[transaction.SourceTemplateID] {
			latest[transaction.SourceTemplateID] = transaction.Date
		}
	}
	for _, template := range transactions {
		lastDate, ok := latest[template.ID]
		if !ok || !template.IsTemplate() {
			continue
		}
		updated := recurrence.UpdateLastGenerated(template, lastDate)
		if err := s.repo.UpdateSchedule(template.ID, updated.Schedule); err != nil {
			return fmt.Errorf("advancing cursor for template %s: %w", template.ID, err)
		}
	}
	return nil
}

// Materialize converts a virtual occurrence the user confirmed into a stored
// pending transaction.
func (s *ScheduleService) Materialize(userID string, virtual domain.Transaction) (*domain.Transaction, error) {
	if !recurrence.IsVirtualTransaction(virtual) || virtual.TemplateID == "" {
		return nil, scheduleErrors.ErrNotVirtual
	}

	known, err := s.categories.DoesCategoryExistByName(virtual.Category)
	if err != nil {
		return nil, fmt.Errorf("checking category: %w", err)
	}
	if !known {
		return nil, scheduleErrors.NewValidationError("Unknown category: " + virtual.Category)
	}

	template, err := s.repo.FindByID(virtual.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	if template == nil || template.UserID != userID || !template.IsTemplate() {
		return nil, scheduleErrors.ErrTemplateNotFound
	}

	transactions, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	if recurrence.TransactionExistsForDate(transactions, virtual, virtual.Date) {
		return nil, scheduleErrors.NewValidationError("Occurrence already materialized for this date")
	}

	real := recurrence.MaterializeTransaction(virtual)
	real.UserID = userID
	if err := s.repo.Save(real); err != nil {
		return nil, fmt.Errorf("saving materialized transaction: %w", err)
	}

	updated := recurrence.UpdateLastGenerated(*template, real.Date)
	if err := s.repo.UpdateSchedule(template.ID, updated.Schedule); err != nil {
		return nil, fmt.Errorf("advancing cursor for template %s: %w", template.ID, err)
	}
	return &real, nil
}

// MigrateLegacy upgrades transactions still carrying the boolean isRecurring
// flag to structured schedules. Safe to run repeatedly: converted
// transactions are skipped on later passes.
func (s *ScheduleService) MigrateLegacy(userID string) (int, error) {
	transactions, err := s.repo.FindByUser(userID)
	if err != nil {
		return 0, fmt.Errorf("loading transactions: %w", err)
	}

	migrated := 0
	for _, transaction := range transactions {
		if !transaction.IsRecurring || transaction.Schedule != nil {
			continue
		}
		schedule := recurrence.ConvertLegacyRecurringToSchedule(transaction)
		if err := s.repo.UpdateSchedule(transaction.ID, &schedule); err != nil {
			return migrated, fmt.Errorf("migrating transaction %s: %w", transaction.ID, err)
		}
		migrated++
	}
	return migrated, nil
}

// ExportRRule renders a template's schedule as an RFC 5545 rule for calendar
// export.
func (s *ScheduleService) ExportRRule(userID, templateID string) (string, error) {
	template, err := s.repo.FindByID(templateID)
	if err != nil {
		return "", fmt.Errorf("loading template: %w", err)
	}
	if template == nil || template.UserID != userID || template.Schedule == nil {
		return "", scheduleErrors.ErrTemplateNotFound
	}
	return rrule.FromSchedule(*template.Schedule)
}

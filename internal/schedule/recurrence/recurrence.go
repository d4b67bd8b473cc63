// Package recurrence is the engine behind scheduled transactions: it maps
// recurrence rules to occurrence dates, expands templates into concrete
// planned transactions, and guards against generating the same occurrence
// twice. It is pure (no storage, no clock, no network) so the HTTP layer
// and the notification job link the exact same rule semantics instead of
// carrying two ports of it.
package recurrence

import (
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/smartspend/SmartSpend/internal/schedule/domain"
)

func parseDate(value string) (time.Time, error) {
	return time.Parse(domain.DateLayout, value)
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextDate returns the single occurrence strictly after from, or "" when the
// rule has ended. Monthly rules use raw month addition before the day-of-month
// clamp, so a rule anchored on Jan 31 lands on Mar 31 rather than a February
// date. Stored data relies on this behavior.
func NextDate(schedule domain.Schedule, from string) string {
	fromDate, err := parseDate(from)
	if err != nil {
		log.Printf("recurrence: invalid reference date %q: %v", from, err)
		return ""
	}

	var next time.Time
	switch schedule.Frequency {
	case domain.FrequencyDaily:
		next = fromDate.AddDate(0, 0, schedule.Interval)

	case domain.FrequencyWeekly:
		next = fromDate.AddDate(0, 0, 7*schedule.Interval)
		if schedule.DayOfWeek != nil {
			// Shift within the landing week; the offset may be negative.
			next = next.AddDate(0, 0, *schedule.DayOfWeek-int(next.Weekday()))
		}

	case domain.FrequencyMonthly:
		next = fromDate.AddDate(0, schedule.Interval, 0)
		if schedule.DayOfMonth != nil {
			day := *schedule.DayOfMonth
			if last := daysInMonth(next.Year(), next.Month()); day > last {
				day = last
			}
			next = time.Date(next.Year(), next.Month(), day, 0, 0, 0, 0, time.UTC)
		}

	case domain.FrequencyYearly:
		next = fromDate.AddDate(schedule.Interval, 0, 0)

	default:
		// The frequency enum is closed at every intended call site; hitting
		// this is an input-contract violation, not a recoverable state.
		log.Printf("recurrence: unknown frequency %q", schedule.Frequency)
		return ""
	}

	result := formatDate(next)
	if schedule.EndDate != "" && result > schedule.EndDate {
		return ""
	}
	return result
}

// NextDates expands the rule into every occurrence after startFrom up to and
// including endBound. Callers must pass a bounded endBound: rules without an
// end date recur forever.
func NextDates(schedule domain.Schedule, startFrom, endBound string) []string {
	var dates []string
	current := NextDate(schedule, startFrom)
	for current != "" && current <= endBound {
		dates = append(dates, current)
		current = NextDate(schedule, current)
	}
	return dates
}

// TransactionExistsForDate reports whether any transaction already satisfies
// the (template, date) occurrence, using the strict four-field match.
func TransactionExistsForDate(transactions []domain.Transaction, template domain.Transaction, date string) bool {
	for _, transaction := range transactions {
		if domain.SameOccurrence(transaction, template, date) {
			return true
		}
	}
	return false
}

// occurrenceTaken extends the strict match with the materialization backlink,
// so an occurrence whose amount was edited after confirmation still counts.
func occurrenceTaken(transactions []domain.Transaction, template domain.Transaction, date string) bool {
	for _, transaction := range transactions {
		if domain.SameOccurrence(transaction, template, date) {
			return true
		}
		if transaction.SourceTemplateID != "" && transaction.SourceTemplateID == template.ID && transaction.Date == date {
			return true
		}
	}
	return false
}

func newOccurrence(template domain.Transaction, date string, status domain.TransactionStatus) domain.Transaction {
	return domain.Transaction{
		ID:               uuid.NewString(),
		UserID:           template.UserID,
		Type:             template.Type,
		Name:             template.Name,
		Category:         template.Category,
		Amount:           template.Amount,
		Date:             date,
		Status:           status,
		SourceTemplateID: template.ID,
		CreatedAt:        time.Now().UnixMilli(),
	}
}

func sortByDate(transactions []domain.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		if transactions[i].Date != transactions[j].Date {
			return transactions[i].Date < transactions[j].Date
		}
		return transactions[i].Name < transactions[j].Name
	})
}

// GenerateScheduledTransactions decides which occurrences should be written
// to storage: for every active template it expands the rule from its resume
// point through today plus monthsAhead, drops anything on or before today,
// drops occurrences that already exist, and emits the rest as planned
// transactions ordered by date. No two results share name, category, amount
// and date.
func GenerateScheduledTransactions(transactions []domain.Transaction, today string, monthsAhead int) []domain.Transaction {
	todayDate, err := parseDate(today)
	if err != nil {
		log.Printf("recurrence: invalid today %q: %v", today, err)
		return nil
	}
	endBound := formatDate(todayDate.AddDate(0, monthsAhead, 0))

	var generated []domain.Transaction
	for _, template := range transactions {
		if !template.IsTemplate() || template.Schedule.Expired(today) {
			continue
		}
		for _, date := range NextDates(*template.Schedule, template.Schedule.ResumeFrom(), endBound) {
			if date <= today {
				continue
			}
			if TransactionExistsForDate(transactions, template, date) {
				continue
			}
			if TransactionExistsForDate(generated, template, date) {
				continue
			}
			generated = append(generated, newOccurrence(template, date, domain.StatusPlanned))
		}
	}
	sortByDate(generated)
	return generated
}

// GeneratePastDueTransactions catches occurrences that fell due while the app
// was not running: everything between the template's resume point and today
// inclusive that has no concrete transaction yet, emitted as pending so the
// user can confirm or discard each one.
func GeneratePastDueTransactions(transactions []domain.Transaction, today string) []domain.Transaction {
	var generated []domain.Transaction
	for _, template := range transactions {
		if !template.IsTemplate() {
			continue
		}
		for _, date := range NextDates(*template.Schedule, template.Schedule.ResumeFrom(), today) {
			if occurrenceTaken(transactions, template, date) {
				continue
			}
			if TransactionExistsForDate(generated, template, date) {
				continue
			}
			generated = append(generated, newOccurrence(template, date, domain.StatusPending))
		}
	}
	sortByDate(generated)
	return generated
}

// FindNextOccurrence answers "when is this template due next": the earliest
// occurrence strictly after today, within a one-year horizon, that no
// concrete transaction satisfies yet. Returns "" when nothing is due within
// the horizon. The notification job compares the result against tomorrow.
func FindNextOccurrence(schedule domain.Schedule, today string, transactions []domain.Transaction, template domain.Transaction) string {
	todayDate, err := parseDate(today)
	if err != nil {
		log.Printf("recurrence: invalid today %q: %v", today, err)
		return ""
	}
	horizon := formatDate(todayDate.AddDate(1, 0, 0))

	for _, date := range NextDates(schedule, schedule.StartDate, horizon) {
		if date <= today {
			continue
		}
		if occurrenceTaken(transactions, template, date) {
			continue
		}
		return date
	}
	return ""
}

// UpdateLastGenerated returns a copy of the template with its resume cursor
// advanced. Call it after persisting generated occurrences; the cursor only
// ever moves forward.
func UpdateLastGenerated(template domain.Transaction, lastDate string) domain.Transaction {
	if template.Schedule == nil {
		return template
	}
	updated := template
	updated.Schedule = template.Schedule.Clone()
	if lastDate > updated.Schedule.LastGenerated {
		updated.Schedule.LastGenerated = lastDate
	}
	return updated
}

// ConvertLegacyRecurringToSchedule upgrades the old boolean isRecurring flag
// into a structured rule: monthly, every month, anchored on the transaction's
// own day, running indefinitely. Deterministic and idempotent; used once
// during the schema upgrade pass.
func ConvertLegacyRecurringToSchedule(transaction domain.Transaction) domain.Schedule {
	dayOfMonth := 1
	if date, err := parseDate(transaction.Date); err == nil {
		dayOfMonth = date.Day()
	}
	return domain.Schedule{
		Enabled:    true,
		Frequency:  domain.FrequencyMonthly,
		Interval:   1,
		StartDate:  transaction.Date,
		DayOfMonth: &dayOfMonth,
	}
}

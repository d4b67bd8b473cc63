package domain

import (
	"github.com/shopspring/decimal"
	scheduleErrors "github.com/smartspend/SmartSpend/internal/schedule/errors"
)

type TransactionStatus string

const (
	StatusPaid    TransactionStatus = "paid"
	StatusPending TransactionStatus = "pending"
	StatusPlanned TransactionStatus = "planned"
)

type TransactionRepository interface {
	Save(transaction Transaction) error
	SaveAll(transactions []Transaction) error
	FindByUser(userID string) ([]Transaction, error)
	FindByID(transactionID string) (*Transaction, error)
	Update(transaction Transaction) error
	UpdateSchedule(transactionID string, schedule *Schedule) error
	ListUserIDs() ([]string, error)
}

// Transaction is either a concrete ledger entry or, when Schedule is enabled,
// the template future occurrences are derived from. Virtual instances are
// display-only projections and are never persisted.
type Transaction struct {
	ID       string            `json:"id"`
	UserID   string            `json:"-"`
	Type     string            `json:"type"` // "income" or "expense"
	Name     string            `json:"name"`
	Category string            `json:"category"`
	Amount   decimal.Decimal   `json:"amount"`
	Date     string            `json:"date"` // YYYY-MM-DD
	Status   TransactionStatus `json:"status,omitempty"`
	Schedule *Schedule         `json:"schedule,omitempty"`
	// IsRecurring is the pre-schedule boolean flag, kept only so the legacy
	// migration can find candidates.
	IsRecurring      bool   `json:"isRecurring,omitempty"`
	IsVirtual        bool   `json:"isVirtual,omitempty"`
	TemplateID       string `json:"templateId,omitempty"`
	SourceTemplateID string `json:"sourceTemplateId,omitempty"`
	CreatedAt        int64  `json:"createdAt"`
}

func IsValidTransactionType(transactionType string) bool {
	return transactionType == "income" || transactionType == "expense"
}

func (t *Transaction) Validate() error {
	if !IsValidTransactionType(t.Type) {
		return scheduleErrors.NewValidationError("Type must be 'income' or 'expense'")
	}
	if t.Name == "" {
		return scheduleErrors.NewValidationError("Name must not be empty")
	}
	if len(t.Name) > 200 {
		return scheduleErrors.NewValidationError("Name must be of length less than 200")
	}
	if t.Schedule != nil {
		if err := t.Schedule.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsTemplate reports whether the transaction carries an active recurrence
// rule and therefore drives occurrence generation.
func (t *Transaction) IsTemplate() bool {
	return t.Schedule != nil && t.Schedule.Enabled
}

// SameOccurrence is the strict duplicate check used by the generator: an
// existing transaction satisfies a (template, date) pair only when name,
// category, amount and date all match.
func SameOccurrence(transaction, template Transaction, date string) bool {
	return transaction.Name == template.Name &&
		transaction.Category == template.Category &&
		transaction.Amount.Equal(template.Amount) &&
		transaction.Date == date
}

// SameRecurringSeries is the looser month-level predicate: two transactions
// belong to the same recurring series when name, category and type match.
// Amount does not participate; a recurring bill may fluctuate.
func SameRecurringSeries(a, b Transaction) bool {
	return a.Name == b.Name && a.Category == b.Category && a.Type == b.Type
}

package recurrence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smartspend/SmartSpend/internal/schedule/domain"
)

// GenerateVirtualTransactions builds the display-only upcoming instances: one
// per active template, for the template's next unsatisfied occurrence after
// today. Virtuals are never persisted; confirming one goes through
// MaterializeTransaction.
func GenerateVirtualTransactions(transactions []domain.Transaction, today string) []domain.Transaction {
	var virtuals []domain.Transaction
	for _, template := range transactions {
		if !template.IsTemplate() || template.Schedule.Expired(today) {
			continue
		}
		date := FindNextOccurrence(*template.Schedule, today, transactions, template)
		if date == "" {
			continue
		}
		virtual := template
		virtual.ID = fmt.Sprintf("virtual-%s-%s", template.ID, date)
		virtual.Date = date
		virtual.Status = domain.StatusPlanned
		virtual.Schedule = nil
		virtual.IsVirtual = true
		virtual.TemplateID = template.ID
		virtuals = append(virtuals, virtual)
	}
	sortByDate(virtuals)
	return virtuals
}

// IsVirtualTransaction reports whether the transaction is a display-only
// projection rather than a stored record.
func IsVirtualTransaction(transaction domain.Transaction) bool {
	return transaction.IsVirtual
}

// MaterializeTransaction turns a virtual instance into a persistable pending
// transaction: fresh ID, virtual markers stripped, and a sourceTemplateId
// backlink so later generation rounds recognize the occurrence as taken.
func MaterializeTransaction(virtual domain.Transaction) domain.Transaction {
	real := virtual
	real.ID = uuid.NewString()
	real.Status = domain.StatusPending
	real.IsVirtual = false
	real.SourceTemplateID = virtual.TemplateID
	real.TemplateID = ""
	real.CreatedAt = time.Now().UnixMilli()
	return real
}

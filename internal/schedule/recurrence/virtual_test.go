package recurrence

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smartspend/SmartSpend/internal/schedule/domain"
	"github.com/stretchr/testify/assert"
)

func TestGenerateVirtualTransactions(t *testing.T) {
	transactions := []domain.Transaction{
		template("template-1", "Rent", "housing", 100000, "2025-01-15", monthlySchedule("2025-01-15", 15)),
	}

	virtuals := GenerateVirtualTransactions(transactions, "2025-01-20")

	assert.Len(t, virtuals, 1)
	assert.Equal(t, "2025-02-15", virtuals[0].Date)
	assert.Equal(t, "Rent", virtuals[0].Name)
	assert.Equal(t, domain.StatusPlanned, virtuals[0].Status)
	assert.True(t, virtuals[0].IsVirtual)
	assert.Equal(t, "template-1", virtuals[0].TemplateID)
	assert.Equal(t, "virtual-template-1-2025-02-15", virtuals[0].ID)
}

func TestGenerateVirtualTransactions_SkipsExistingRealTransaction(t *testing.T) {
	transactions := []domain.Transaction{
		template("template-1", "Rent", "housing", 100000, "2025-01-15", monthlySchedule("2025-01-15", 15)),
		concrete("existing-1", "Rent", "housing", 100000, "2025-02-15"),
	}

	virtuals := GenerateVirtualTransactions(transactions, "2025-01-20")

	assert.Len(t, virtuals, 1)
	assert.Equal(t, "2025-03-15", virtuals[0].Date)
}

func TestGenerateVirtualTransactions_DisabledSchedule(t *testing.T) {
	disabled := monthlySchedule("2025-01-15", 15)
	disabled.Enabled = false
	transactions := []domain.Transaction{
		template("template-1", "Rent", "housing", 100000, "2025-01-15", disabled),
	}

	assert.Empty(t, GenerateVirtualTransactions(transactions, "2025-01-20"))
}

func TestGenerateVirtualTransactions_EndedSchedule(t *testing.T) {
	ended := monthlySchedule("2025-01-15", 15)
	ended.EndDate = "2025-01-31"
	transactions := []domain.Transaction{
		template("template-1", "Rent", "housing", 100000, "2025-01-15", ended),
	}

	assert.Empty(t, GenerateVirtualTransactions(transactions, "2025-02-01"))
}

func TestGenerateVirtualTransactions_OnlyNextOccurrence(t *testing.T) {
	transactions := []domain.Transaction{
		template("template-1", "Rent", "housing", 100000, "2025-01-15", monthlySchedule("2025-01-15", 15)),
	}

	// One virtual per template, not the whole future series.
	virtuals := GenerateVirtualTransactions(transactions, "2025-01-20")
	assert.Len(t, virtuals, 1)
	assert.Equal(t, "2025-02-15", virtuals[0].Date)
}

func TestMaterializeTransaction(t *testing.T) {
	virtual := domain.Transaction{
		ID:         "virtual-template-1-2025-02-15",
		Type:       "expense",
		Name:       "Rent",
		Category:   "housing",
		Amount:     decimal.NewFromInt(100000),
		Date:       "2025-02-15",
		Status:     domain.StatusPlanned,
		IsVirtual:  true,
		TemplateID: "template-1",
	}

	real := MaterializeTransaction(virtual)

	assert.False(t, real.IsVirtual)
	assert.Empty(t, real.TemplateID)
	assert.Equal(t, domain.StatusPending, real.Status)
	assert.Equal(t, "Rent", real.Name)
	assert.True(t, real.Amount.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, "2025-02-15", real.Date)
	assert.NotEqual(t, virtual.ID, real.ID)
	assert.NotContains(t, real.ID, "virtual")
	assert.Equal(t, "template-1", real.SourceTemplateID)
}

func TestIsVirtualTransaction(t *testing.T) {
	virtual := domain.Transaction{ID: "virtual-1", IsVirtual: true}
	real := domain.Transaction{ID: "tx-1"}

	assert.True(t, IsVirtualTransaction(virtual))
	assert.False(t, IsVirtualTransaction(real))
}

// Full lifecycle: template -> virtual -> materialize -> next virtual, the
// loop the client UI runs every time the user confirms an upcoming item.
func TestScheduledTransactionFlow_Monthly(t *testing.T) {
	rent := template("template-rent", "Rent", "housing", 1000000, "2025-01-15", monthlySchedule("2025-01-15", 15))
	transactions := []domain.Transaction{rent}
	today := "2025-01-20"

	virtuals := GenerateVirtualTransactions(transactions, today)
	assert.Len(t, virtuals, 1)
	assert.Equal(t, "2025-02-15", virtuals[0].Date)

	realFeb := MaterializeTransaction(virtuals[0])
	assert.Equal(t, domain.StatusPending, realFeb.Status)
	transactions = append(transactions, realFeb)

	virtuals = GenerateVirtualTransactions(transactions, today)
	assert.Len(t, virtuals, 1)
	assert.Equal(t, "2025-03-15", virtuals[0].Date)

	transactions = append(transactions, MaterializeTransaction(virtuals[0]))

	virtuals = GenerateVirtualTransactions(transactions, today)
	assert.Len(t, virtuals, 1)
	assert.Equal(t, "2025-04-15", virtuals[0].Date)

	assert.Len(t, transactions, 3)
}

func TestScheduledTransactionFlow_Weekly(t *testing.T) {
	gym := template("template-gym", "Gym", "fitness", 50000, "2025-01-06", &domain.Schedule{
		Enabled:   true,
		Frequency: domain.FrequencyWeekly,
		Interval:  1,
		StartDate: "2025-01-06", // Monday
	})
	transactions := []domain.Transaction{gym}
	today := "2025-01-07"

	virtuals := GenerateVirtualTransactions(transactions, today)
	assert.Len(t, virtuals, 1)
	assert.Equal(t, "2025-01-13", virtuals[0].Date)

	transactions = append(transactions, MaterializeTransaction(virtuals[0]))

	virtuals = GenerateVirtualTransactions(transactions, today)
	assert.Len(t, virtuals, 1)
	assert.Equal(t, "2025-01-20", virtuals[0].Date)

	transactions = append(transactions, MaterializeTransaction(virtuals[0]))

	virtuals = GenerateVirtualTransactions(transactions, today)
	assert.Len(t, virtuals, 1)
	assert.Equal(t, "2025-01-27", virtuals[0].Date)
}

func TestGenerateVirtualTransactions_MultipleTemplates(t *testing.T) {
	transactions := []domain.Transaction{
		template("template-rent", "Rent", "housing", 1000000, "2025-01-15", monthlySchedule("2025-01-15", 15)),
		template("template-netflix", "Netflix", "subscriptions", 60000, "2025-01-17", monthlySchedule("2025-01-17", 17)),
		func() domain.Transaction {
			salary := template("template-salary", "Salary", "income", 12000000, "2025-01-01", monthlySchedule("2025-01-01", 1))
			salary.Type = "income"
			return salary
		}(),
	}

	virtuals := GenerateVirtualTransactions(transactions, "2025-01-20")

	assert.Len(t, virtuals, 3)
	// Sorted ascending by date across templates.
	assert.Equal(t, "2025-02-01", virtuals[0].Date)
	assert.Equal(t, "Salary", virtuals[0].Name)
	assert.Equal(t, "2025-02-15", virtuals[1].Date)
	assert.Equal(t, "2025-02-17", virtuals[2].Date)
}

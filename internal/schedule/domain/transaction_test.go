package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{Type: "expense", Name: "Rent", Category: "housing", Amount: decimal.NewFromInt(100000), Date: "2025-01-15"}
	assert.NoError(t, valid.Validate())

	noType := valid
	noType.Type = "transfer"
	assert.Error(t, noType.Validate())

	noName := valid
	noName.Name = ""
	assert.Error(t, noName.Validate())
}

func TestScheduleValidate(t *testing.T) {
	valid := Schedule{Enabled: true, Frequency: FrequencyMonthly, Interval: 1, StartDate: "2025-01-15", DayOfMonth: intPtr(15)}
	assert.NoError(t, valid.Validate())

	badFrequency := valid
	badFrequency.Frequency = "hourly"
	assert.Error(t, badFrequency.Validate())

	badInterval := valid
	badInterval.Interval = 0
	assert.Error(t, badInterval.Validate())

	badStart := valid
	badStart.StartDate = "15/01/2025"
	assert.Error(t, badStart.Validate())

	endBeforeStart := valid
	endBeforeStart.EndDate = "2024-12-31"
	assert.Error(t, endBeforeStart.Validate())

	badDayOfWeek := valid
	badDayOfWeek.Frequency = FrequencyWeekly
	badDayOfWeek.DayOfMonth = nil
	badDayOfWeek.DayOfWeek = intPtr(7)
	assert.Error(t, badDayOfWeek.Validate())

	badDayOfMonth := valid
	badDayOfMonth.DayOfMonth = intPtr(32)
	assert.Error(t, badDayOfMonth.Validate())
}

func TestScheduleResumeFrom(t *testing.T) {
	schedule := Schedule{StartDate: "2025-01-15"}
	assert.Equal(t, "2025-01-15", schedule.ResumeFrom())

	schedule.LastGenerated = "2025-03-15"
	assert.Equal(t, "2025-03-15", schedule.ResumeFrom())
}

func TestScheduleExpired(t *testing.T) {
	open := Schedule{StartDate: "2025-01-15"}
	assert.False(t, open.Expired("2030-01-01"))

	bounded := Schedule{StartDate: "2025-01-15", EndDate: "2025-06-30"}
	assert.False(t, bounded.Expired("2025-06-30")) // end date is inclusive
	assert.True(t, bounded.Expired("2025-07-01"))
}

func TestScheduleClone(t *testing.T) {
	schedule := Schedule{Enabled: true, Frequency: FrequencyMonthly, Interval: 1, StartDate: "2025-01-15", DayOfMonth: intPtr(15)}
	clone := schedule.Clone()
	*clone.DayOfMonth = 20
	clone.LastGenerated = "2025-02-15"

	assert.Equal(t, 15, *schedule.DayOfMonth)
	assert.Equal(t, "", schedule.LastGenerated)
}

func TestIsTemplate(t *testing.T) {
	plain := Transaction{Type: "expense", Name: "Coffee"}
	assert.False(t, plain.IsTemplate())

	disabled := plain
	disabled.Schedule = &Schedule{Enabled: false, Frequency: FrequencyMonthly, Interval: 1, StartDate: "2025-01-15"}
	assert.False(t, disabled.IsTemplate())

	enabled := plain
	enabled.Schedule = &Schedule{Enabled: true, Frequency: FrequencyMonthly, Interval: 1, StartDate: "2025-01-15"}
	assert.True(t, enabled.IsTemplate())
}

func TestSameOccurrence(t *testing.T) {
	tmpl := Transaction{Name: "Rent", Category: "housing", Type: "expense", Amount: decimal.NewFromInt(100000)}

	match := Transaction{Name: "Rent", Category: "housing", Type: "expense", Amount: decimal.NewFromInt(100000), Date: "2025-02-15"}
	assert.True(t, SameOccurrence(match, tmpl, "2025-02-15"))
	assert.False(t, SameOccurrence(match, tmpl, "2025-03-15"))

	differentAmount := match
	differentAmount.Amount = decimal.NewFromInt(90000)
	assert.False(t, SameOccurrence(differentAmount, tmpl, "2025-02-15"))
}

func TestSameRecurringSeries(t *testing.T) {
	january := Transaction{Name: "Rent", Category: "housing", Type: "expense", Amount: decimal.NewFromInt(100000), Date: "2025-01-15"}
	february := Transaction{Name: "Rent", Category: "housing", Type: "expense", Amount: decimal.NewFromInt(110000), Date: "2025-02-15"}

	// Amount fluctuation does not break series membership.
	assert.True(t, SameRecurringSeries(january, february))

	other := february
	other.Category = "utilities"
	assert.False(t, SameRecurringSeries(january, other))
}

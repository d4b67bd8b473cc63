package notification

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smartspend/SmartSpend/internal/schedule/domain"
	"github.com/smartspend/SmartSpend/internal/schedule/infrastructure"
	"github.com/stretchr/testify/assert"
)

type sentNotification struct {
	UserID string
	Title  string
	Body   string
	Data   map[string]string
}

type recordingSender struct {
	Sent []sentNotification
}

func (r *recordingSender) Send(userID, title, body string, data map[string]string) error {
	r.Sent = append(r.Sent, sentNotification{UserID: userID, Title: title, Body: body, Data: data})
	return nil
}

func intPtr(v int) *int { return &v }

func monthlyTemplate(id, userID, name string, amount int64, dayOfMonth int) domain.Transaction {
	date := "2025-01-15"
	return domain.Transaction{
		ID:       id,
		UserID:   userID,
		Type:     "expense",
		Name:     name,
		Category: "housing",
		Amount:   decimal.NewFromInt(amount),
		Date:     date,
		Schedule: &domain.Schedule{
			Enabled:    true,
			Frequency:  domain.FrequencyMonthly,
			Interval:   1,
			StartDate:  date,
			DayOfMonth: intPtr(dayOfMonth),
		},
	}
}

func TestSendUpcomingDigest_SingleTemplate(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{
		Transactions: []domain.Transaction{
			monthlyTemplate("template-rent", "user-1", "Rent", 1200, 15),
		},
	}
	sender := &recordingSender{}
	service := NewService(repo, sender)

	sent, err := service.SendUpcomingDigest("2025-02-14")
	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Len(t, sender.Sent, 1)
	assert.Equal(t, "user-1", sender.Sent[0].UserID)
	assert.Equal(t, "Scheduled transaction for tomorrow", sender.Sent[0].Title)
	assert.Equal(t, "Rent: $1200", sender.Sent[0].Body)
	assert.Equal(t, "upcoming_transaction_scheduled", sender.Sent[0].Data["type"])
	assert.Equal(t, "open_scheduled", sender.Sent[0].Data["action"])
}

func TestSendUpcomingDigest_SinglePendingTransaction(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{
		Transactions: []domain.Transaction{
			{
				ID: "tx-1", UserID: "user-1", Type: "expense", Name: "Internet",
				Category: "utilities", Amount: decimal.NewFromInt(60),
				Date: "2025-02-15", Status: domain.StatusPending,
			},
		},
	}
	sender := &recordingSender{}
	service := NewService(repo, sender)

	sent, err := service.SendUpcomingDigest("2025-02-14")
	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, "Pending transaction for tomorrow", sender.Sent[0].Title)
	assert.Equal(t, "upcoming_transaction_pending", sender.Sent[0].Data["type"])
}

func TestSendUpcomingDigest_MultipleSumsAmounts(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{
		Transactions: []domain.Transaction{
			monthlyTemplate("template-rent", "user-1", "Rent", 1200, 15),
			{
				ID: "tx-1", UserID: "user-1", Type: "expense", Name: "Internet",
				Category: "utilities", Amount: decimal.NewFromInt(60),
				Date: "2025-02-15", Status: domain.StatusPending,
			},
		},
	}
	sender := &recordingSender{}
	service := NewService(repo, sender)

	sent, err := service.SendUpcomingDigest("2025-02-14")
	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, "2 pending transactions for tomorrow", sender.Sent[0].Title)
	assert.Equal(t, "Total: $1260. Tap to see details.", sender.Sent[0].Body)
	assert.Equal(t, "upcoming_transactions_multiple", sender.Sent[0].Data["type"])
}

func TestSendUpcomingDigest_SkipsSatisfiedOccurrence(t *testing.T) {
	template := monthlyTemplate("template-rent", "user-1", "Rent", 1200, 15)
	repo := &infrastructure.MockTransactionRepository{
		Transactions: []domain.Transaction{
			template,
			{
				ID: "tx-1", UserID: "user-1", Type: "expense", Name: "Rent",
				Category: "housing", Amount: decimal.NewFromInt(1200),
				Date: "2025-02-15", Status: domain.StatusPending,
				SourceTemplateID: "template-rent",
			},
		},
	}
	sender := &recordingSender{}
	service := NewService(repo, sender)

	sent, err := service.SendUpcomingDigest("2025-02-14")
	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	// The stored pending entry is announced once, not doubled by the template.
	assert.Equal(t, "Pending transaction for tomorrow", sender.Sent[0].Title)
}

func TestSendUpcomingDigest_NothingDue(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{
		Transactions: []domain.Transaction{
			monthlyTemplate("template-rent", "user-1", "Rent", 1200, 15),
		},
	}
	sender := &recordingSender{}
	service := NewService(repo, sender)

	sent, err := service.SendUpcomingDigest("2025-02-01")
	assert.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Empty(t, sender.Sent)
}

func TestSendUpcomingDigest_PerUser(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{
		Transactions: []domain.Transaction{
			monthlyTemplate("template-rent", "user-1", "Rent", 1200, 15),
			monthlyTemplate("template-gym", "user-2", "Gym", 40, 15),
		},
	}
	sender := &recordingSender{}
	service := NewService(repo, sender)

	sent, err := service.SendUpcomingDigest("2025-02-14")
	assert.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Len(t, sender.Sent, 2)
	assert.NotEqual(t, sender.Sent[0].UserID, sender.Sent[1].UserID)
}

func TestSendUpcomingDigest_InvalidDate(t *testing.T) {
	service := NewService(&infrastructure.MockTransactionRepository{}, &recordingSender{})

	_, err := service.SendUpcomingDigest("15-02-2025")
	assert.Error(t, err)
}

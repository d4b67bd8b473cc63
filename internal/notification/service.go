// Package notification builds the daily due-tomorrow digest and hands it to a
// push sender.
package notification

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartspend/SmartSpend/internal/schedule/domain"
	"github.com/smartspend/SmartSpend/internal/schedule/recurrence"
)

// Sender delivers a single push notification. Implementations wrap whatever
// transport the deployment uses (FCM, APNs, a log for development).
type Sender interface {
	Send(userID, title, body string, data map[string]string) error
}

// LogSender writes notifications to the process log. Used in development and
// as the default when no push transport is configured.
type LogSender struct{}

func (LogSender) Send(userID, title, body string, data map[string]string) error {
	log.Printf("notification to %s: %s | %s (%v)", userID, title, body, data)
	return nil
}

type Service struct {
	repo   domain.TransactionRepository
	sender Sender
}

func NewService(repo domain.TransactionRepository, sender Sender) *Service {
	return &Service{repo: repo, sender: sender}
}

// SendUpcomingDigest notifies every user about transactions falling due
// tomorrow. Both stored pending entries and the next occurrence of each
// template count; a template occurrence already satisfied by a stored
// transaction is not announced twice. Returns how many digests were sent.
func (s *Service) SendUpcomingDigest(today string) (int, error) {
	todayDate, err := time.Parse(domain.DateLayout, today)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", today, err)
	}
	tomorrow := todayDate.AddDate(0, 0, 1).Format(domain.DateLayout)

	userIDs, err := s.repo.ListUserIDs()
	if err != nil {
		return 0, fmt.Errorf("listing users: %w", err)
	}

	sent := 0
	for _, userID := range userIDs {
		transactions, err := s.repo.FindByUser(userID)
		if err != nil {
			log.Printf("Error loading transactions for user %s: %v", userID, err)
			continue
		}

		due := dueTomorrow(transactions, today, tomorrow)
		if len(due) == 0 {
			continue
		}

		title, body, notificationType := composeDigest(due)
		err = s.sender.Send(userID, title, body, map[string]string{
			"type":   notificationType,
			"action": "open_scheduled",
		})
		if err != nil {
			log.Printf("Error sending digest to user %s: %v", userID, err)
			continue
		}
		sent++
	}
	return sent, nil
}

// dueTomorrow collects the user's transactions falling due on the given date:
// stored pending or planned entries dated tomorrow, plus each active
// template's next occurrence when it lands on tomorrow and no stored
// transaction already covers it.
func dueTomorrow(transactions []domain.Transaction, today, tomorrow string) []domain.Transaction {
	var due []domain.Transaction
	for _, transaction := range transactions {
		if transaction.IsTemplate() {
			continue
		}
		if transaction.Date != tomorrow {
			continue
		}
		if transaction.Status != domain.StatusPending && transaction.Status != domain.StatusPlanned {
			continue
		}
		due = append(due, transaction)
	}

	for _, template := range transactions {
		if !template.IsTemplate() {
			continue
		}
		next := recurrence.FindNextOccurrence(*template.Schedule, today, transactions, template)
		if next != tomorrow {
			continue
		}
		candidate := template
		candidate.Date = next
		if alreadyListed(due, candidate) {
			continue
		}
		candidate.Status = domain.StatusPlanned
		due = append(due, candidate)
	}
	return due
}

func alreadyListed(due []domain.Transaction, candidate domain.Transaction) bool {
	for _, transaction := range due {
		if domain.SameOccurrence(transaction, candidate, candidate.Date) {
			return true
		}
	}
	return false
}

func composeDigest(due []domain.Transaction) (title, body, notificationType string) {
	if len(due) == 1 {
		transaction := due[0]
		statusText := "Pending"
		notificationType = "upcoming_transaction_pending"
		if transaction.Status == domain.StatusPlanned {
			statusText = "Scheduled"
			notificationType = "upcoming_transaction_scheduled"
		}
		title = fmt.Sprintf("%s transaction for tomorrow", statusText)
		body = fmt.Sprintf("%s: $%s", transaction.Name, transaction.Amount.String())
		return title, body, notificationType
	}

	total := decimal.Zero
	for _, transaction := range due {
		total = total.Add(transaction.Amount)
	}
	title = fmt.Sprintf("%d pending transactions for tomorrow", len(due))
	body = fmt.Sprintf("Total: $%s. Tap to see details.", total.String())
	return title, body, "upcoming_transactions_multiple"
}

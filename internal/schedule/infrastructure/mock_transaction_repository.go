package infrastructure

import (
	"github.com/smartspend/SmartSpend/internal/schedule/domain"
)

// MockTransactionRepository is an in-memory stand-in used by service and
// notification tests.
type MockTransactionRepository struct {
	Transactions []domain.Transaction
}

func (m *MockTransactionRepository) Save(transaction domain.Transaction) error {
	m.Transactions = append(m.Transactions, transaction)
	return nil
}

func (m *MockTransactionRepository) SaveAll(transactions []domain.Transaction) error {
	m.Transactions = append(m.Transactions, transactions...)
	return nil
}

func (m *MockTransactionRepository) FindByUser(userID string) ([]domain.Transaction, error) {
	var found []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID {
			found = append(found, transaction)
		}
	}
	return found, nil
}

func (m *MockTransactionRepository) FindByID(transactionID string) (*domain.Transaction, error) {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID {
			transaction := m.Transactions[i]
			return &transaction, nil
		}
	}
	return nil, nil
}

func (m *MockTransactionRepository) Update(transaction domain.Transaction) error {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transaction.ID {
			m.Transactions[i] = transaction
			return nil
		}
	}
	return nil
}

func (m *MockTransactionRepository) UpdateSchedule(transactionID string, schedule *domain.Schedule) error {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID {
			m.Transactions[i].Schedule = schedule
			return nil
		}
	}
	return nil
}

func (m *MockTransactionRepository) ListUserIDs() ([]string, error) {
	seen := map[string]bool{}
	var userIDs []string
	for _, transaction := range m.Transactions {
		if transaction.UserID == "" || seen[transaction.UserID] {
			continue
		}
		seen[transaction.UserID] = true
		userIDs = append(userIDs, transaction.UserID)
	}
	return userIDs, nil
}

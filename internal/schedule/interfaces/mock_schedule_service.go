package interfaces

import (
	"github.com/smartspend/SmartSpend/internal/schedule/application"
	"github.com/smartspend/SmartSpend/internal/schedule/domain"
	scheduleErrors "github.com/smartspend/SmartSpend/internal/schedule/errors"
)

// MockScheduleService returns canned results so handler tests exercise only
// the HTTP layer.
type MockScheduleService struct {
	Templates    []application.TemplateOverview
	Upcoming     []domain.Transaction
	Generated    []domain.Transaction
	PastDue      []domain.Transaction
	Materialized *domain.Transaction
	Migrated     int
	RRule        string
	Err          error

	LastUserID string
	LastMonths int
}

func (m *MockScheduleService) ListTemplates(userID, today string) ([]application.TemplateOverview, error) {
	m.LastUserID = userID
	return m.Templates, m.Err
}

func (m *MockScheduleService) ListUpcoming(userID, today string) ([]domain.Transaction, error) {
	m.LastUserID = userID
	return m.Upcoming, m.Err
}

func (m *MockScheduleService) GenerateUpcoming(userID, today string, monthsAhead int) ([]domain.Transaction, error) {
	m.LastUserID = userID
	m.LastMonths = monthsAhead
	return m.Generated, m.Err
}

func (m *MockScheduleService) CollectPastDue(userID, today string) ([]domain.Transaction, error) {
	m.LastUserID = userID
	return m.PastDue, m.Err
}

func (m *MockScheduleService) Materialize(userID string, virtual domain.Transaction) (*domain.Transaction, error) {
	m.LastUserID = userID
	if m.Err != nil {
		return nil, m.Err
	}
	if !virtual.IsVirtual {
		return nil, scheduleErrors.ErrNotVirtual
	}
	return m.Materialized, nil
}

func (m *MockScheduleService) MigrateLegacy(userID string) (int, error) {
	m.LastUserID = userID
	return m.Migrated, m.Err
}

func (m *MockScheduleService) ExportRRule(userID, templateID string) (string, error) {
	m.LastUserID = userID
	if m.Err != nil {
		return "", m.Err
	}
	if m.RRule == "" {
		return "", scheduleErrors.ErrTemplateNotFound
	}
	return m.RRule, nil
}

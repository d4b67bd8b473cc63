package infrastructure

import (
	"github.com/smartspend/SmartSpend/internal/schedule/domain"
)

// MockCategoryRepository serves categories from memory. Tests usually load
// it with the default set.
type MockCategoryRepository struct {
	Categories []domain.PredefinedCategory
}

func NewSeededMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: domain.DefaultPredefinedCategories()}
}

func (m *MockCategoryRepository) FindPredefinedCategories(categoryType string) ([]domain.PredefinedCategory, error) {
	if categoryType == "" {
		return m.Categories, nil
	}
	var filtered []domain.PredefinedCategory
	for _, category := range m.Categories {
		if category.Type == categoryType {
			filtered = append(filtered, category)
		}
	}
	return filtered, nil
}

func (m *MockCategoryRepository) DoesCategoryExistByName(name string) (bool, error) {
	for _, category := range m.Categories {
		if category.Name == name {
			return true, nil
		}
	}
	return false, nil
}

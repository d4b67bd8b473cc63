package interfaces

import (
	"github.com/smartspend/SmartSpend/internal/schedule/domain"
)

type MockCategoryService struct {
	Categories []domain.PredefinedCategory
	Err        error
}

func (m *MockCategoryService) GetAllPredefinedCategories(categoryType string) ([]domain.PredefinedCategory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
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

package application

import "github.com/smartspend/SmartSpend/internal/schedule/domain"

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) GetAllPredefinedCategories(categoryType string) ([]domain.PredefinedCategory, error) {
	return s.repo.FindPredefinedCategories(categoryType)
}

func (s *CategoryService) DoesCategoryExist(name string) (bool, error) {
	return s.repo.DoesCategoryExistByName(name)
}

package infrastructure

import (
	"database/sql"

	"github.com/smartspend/SmartSpend/internal/schedule/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindPredefinedCategories(categoryType string) ([]domain.PredefinedCategory, error) {
	query := "SELECT id, name, type FROM predefined_categories"
	var args []interface{}

	if categoryType != "" {
		query += " WHERE type = $1"
		args = append(args, categoryType)
	}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.PredefinedCategory
	for rows.Next() {
		var category domain.PredefinedCategory
		if err := rows.Scan(&category.ID, &category.Name, &category.Type); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) DoesCategoryExistByName(name string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM predefined_categories WHERE name = $1)"
	err := r.db.QueryRow(query, name).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

package domain

type PredefinedCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // "income" or "expense"
}

type CategoryRepository interface {
	FindPredefinedCategories(categoryType string) ([]PredefinedCategory, error)
	DoesCategoryExistByName(name string) (bool, error)
}

// DefaultPredefinedCategories is the starter set every fresh installation
// gets. Users extend it with their own categories later; these names are
// what the mobile client ships as defaults.
func DefaultPredefinedCategories() []PredefinedCategory {
	return []PredefinedCategory{
		{Name: "Mercado", Type: "expense"},
		{Name: "Restaurantes", Type: "expense"},
		{Name: "Servicios", Type: "expense"},
		{Name: "Arriendo", Type: "expense"},
		{Name: "Suscripciones", Type: "expense"},
		{Name: "Ropa", Type: "expense"},
		{Name: "Educación", Type: "expense"},
		{Name: "Entretenimiento", Type: "expense"},
		{Name: "Hijos", Type: "expense"},
		{Name: "Salud", Type: "expense"},
		{Name: "Transporte", Type: "expense"},
		{Name: "Gasolina", Type: "expense"},
		{Name: "Otros Gastos", Type: "expense"},
		{Name: "Salario", Type: "income"},
		{Name: "Bonos", Type: "income"},
		{Name: "Freelance", Type: "income"},
		{Name: "Beneficios", Type: "income"},
		{Name: "Inversiones", Type: "income"},
		{Name: "Arriendo Recibido", Type: "income"},
		{Name: "Propinas", Type: "income"},
		{Name: "Otros Ingresos", Type: "income"},
	}
}

package model

// Category описывает категорию расходов из фиксированного справочника
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const (
	CategoryFood          = "food"
	CategoryAccommodation = "accommodation"
	CategoryServices      = "services"
	CategoryTransport     = "transport"
	CategoryOthers        = "others"
)

var categories = []Category{
	{ID: CategoryFood, Name: "Еда"},
	{ID: CategoryAccommodation, Name: "Проживание"},
	{ID: CategoryServices, Name: "Услуги"},
	{ID: CategoryTransport, Name: "Транспорт"},
	{ID: CategoryOthers, Name: "Другое"},
}

// Categories возвращает справочник категорий в порядке отображения
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// LookupCategory ищет категорию по ID
func LookupCategory(id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

package core

// Category describes the purpose of a piggy bank. The string values are
// part of the persisted blob format.
type Category string

const (
	CategoryVacation       Category = "vacation"
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
	CategoryEntertainment  Category = "entertainment"
	CategoryEducation      Category = "education"
	CategoryShopping       Category = "shopping"

	// CategoryNone is the most-used result for an empty collection.
	CategoryNone Category = "none"
)

// Categories lists the selectable categories in display order.
func Categories() []Category {
	return []Category{
		CategoryVacation,
		CategoryFood,
		CategoryTransportation,
		CategoryEntertainment,
		CategoryEducation,
		CategoryShopping,
	}
}

// CategoryInfo carries the display metadata for a category.
type CategoryInfo struct {
	Icon string
	Name string
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryVacation:       {Icon: "✈️", Name: "Vacation/Travel"},
	CategoryFood:           {Icon: "🍽️", Name: "Food & Dining"},
	CategoryTransportation: {Icon: "🚗", Name: "Transportation"},
	CategoryEntertainment:  {Icon: "🎬", Name: "Entertainment"},
	CategoryEducation:      {Icon: "🎓", Name: "Education"},
	CategoryShopping:       {Icon: "🛒", Name: "Shopping"},
}

func (c Category) IsValid() bool {
	_, ok := categoryInfo[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}

// Info returns the display metadata; unknown categories fall back to a
// neutral placeholder.
func (c Category) Info() CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	return CategoryInfo{Icon: "📁", Name: "None"}
}

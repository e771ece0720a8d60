package domain

// Category is a horizontal lane group on the timeline. Position orders
// categories top to bottom and is never rewritten once assigned.
type Category struct {
	ID        string
	ProjectID string
	Name      string
	Position  int
}

// DefaultCategoryName is used for categories added from the board.
const DefaultCategoryName = "New Stage"

// DefaultCategoryNames seeds the rows of a freshly created project.
var DefaultCategoryNames = []string{"Strategy", "Design", "Development", "Content"}

// IndexOfCategory returns the row index of the category with the given ID,
// or -1 when no such category exists.
func IndexOfCategory(categories []Category, id string) int {
	for i, c := range categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

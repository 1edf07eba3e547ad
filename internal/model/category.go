package model

// MaxCategoryNameLength is the longest allowed category name.
const MaxCategoryNameLength = 20

// Category represents a user-defined label used to classify expenses.
// Icon and Color are opaque display hints owned by the presentation layer.
type Category struct {
	ID    string
	Name  string
	Icon  string
	Color string
}

// DefaultCategories returns the fixed seed set used to populate an
// empty registry on first run. The slug ids are stable so expenses
// created against the defaults survive re-seeding after a reset.
func DefaultCategories() []Category {
	return []Category{
		{ID: "food", Name: "Food", Icon: "fa-utensils", Color: "#f59e0b"},
		{ID: "rent", Name: "Rent", Icon: "fa-home", Color: "#6366f1"},
		{ID: "grocery", Name: "Grocery", Icon: "fa-shopping-cart", Color: "#10b981"},
		{ID: "transport", Name: "Transport", Icon: "fa-car", Color: "#3b82f6"},
		{ID: "utilities", Name: "Utilities", Icon: "fa-bolt", Color: "#8b5cf6"},
		{ID: "entertainment", Name: "Entertainment", Icon: "fa-film", Color: "#ec4899"},
		{ID: "health", Name: "Health", Icon: "fa-heartbeat", Color: "#ef4444"},
		{ID: "other", Name: "Other", Icon: "fa-ellipsis-h", Color: "#64748b"},
	}
}

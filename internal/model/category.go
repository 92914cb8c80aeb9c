package model

import "strings"

// Built-in categories.
const (
	CategoryFood           = "Food"
	CategoryEntertainment  = "Entertainment"
	CategoryGroceries      = "Groceries"
	CategoryTransportation = "Transportation"
	CategoryBillsAndFees   = "Bills and Fees"
	CategoryExtras         = "Extras"
	CategoryShopping       = "Shopping"
)

// DefaultCategoryIcon is shown for categories outside the built-in set.
const DefaultCategoryIcon = "📝"

var categoryIcons = map[string]string{
	"food":           "🍔",
	"entertainment":  "🎬",
	"groceries":      "🛒",
	"transportation": "🚗",
	"bills and fees": "📄",
	"extras":         "✨",
	"shopping":       "🛍️",
}

// Categories returns the built-in categories in display order.
func Categories() []string {
	return []string{
		CategoryFood,
		CategoryEntertainment,
		CategoryGroceries,
		CategoryTransportation,
		CategoryBillsAndFees,
		CategoryExtras,
		CategoryShopping,
	}
}

// CategoryIcon looks up the glyph for a category, ignoring case.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[strings.ToLower(strings.TrimSpace(category))]; ok {
		return icon
	}
	return DefaultCategoryIcon
}

// IsKnownCategory reports whether category is one of the built-in set, ignoring case.
func IsKnownCategory(category string) bool {
	_, ok := categoryIcons[strings.ToLower(strings.TrimSpace(category))]
	return ok
}

// CanonicalCategory returns the built-in spelling of category when it matches one,
// otherwise the trimmed input.
func CanonicalCategory(category string) string {
	category = strings.TrimSpace(category)
	for _, c := range Categories() {
		if strings.EqualFold(c, category) {
			return c
		}
	}
	return category
}

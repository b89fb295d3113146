package core

// DefaultCategory is the read-site fallback for absent or unrecognized
// category keys.
const DefaultCategory = "other"

// CategoryInfo carries the display attributes of one expense category.
type CategoryInfo struct {
	Key   string
	Name  string
	Icon  string
	Color string
}

// OthersCategory is the synthetic bucket the breakdown emits when more
// than eight categories carry expenses.
var OthersCategory = CategoryInfo{Key: "others", Name: "Others", Icon: "📦", Color: "#6b7280"}

var categoryTable = map[string]CategoryInfo{
	"house":         {Key: "house", Name: "House", Icon: "🏠", Color: "#8B4513"},
	"grocery":       {Key: "grocery", Name: "Grocery", Icon: "🥛", Color: "#8b5cf6"},
	"shopping":      {Key: "shopping", Name: "Shopping", Icon: "🛍️", Color: "#10b981"},
	"education":     {Key: "education", Name: "Education", Icon: "📖", Color: "#06b6d4"},
	"entertainment": {Key: "entertainment", Name: "Entertainment", Icon: "🍷", Color: "#ef4444"},
	"other":         {Key: "other", Name: "Other", Icon: "💳", Color: "#ec4899"},
}

// LookupCategory resolves a category key, falling back to "other" for
// anything not in the table.
func LookupCategory(key string) CategoryInfo {
	if c, ok := categoryTable[key]; ok {
		return c
	}
	return categoryTable[DefaultCategory]
}

// ValidCategory reports whether key is in the category table.
func ValidCategory(key string) bool {
	_, ok := categoryTable[key]
	return ok
}

// CategoryKeys returns the table keys in a fixed presentation order.
func CategoryKeys() []string {
	return []string{"house", "grocery", "shopping", "education", "entertainment", "other"}
}

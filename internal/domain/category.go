package domain

// CategoryMismatch is a product whose stored category differs from the mapping.
type CategoryMismatch struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Current  string `json:"current"`
	Expected string `json:"expected"`
}

// CategoryCount is the number of products in a category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryReport summarizes how the catalog agrees with the category mapping.
type CategoryReport struct {
	Total         int                `json:"total"`
	Correct       int                `json:"correct"`
	Mismatched    []CategoryMismatch `json:"mismatched"`
	Uncategorized int                `json:"uncategorized"`
	Stats         []CategoryCount    `json:"category_stats"`
}

// CategoryFixResult reports the outcome of rewriting mismatched categories.
type CategoryFixResult struct {
	Fixed    int `json:"fixed"`
	NotFound int `json:"not_found"`
}

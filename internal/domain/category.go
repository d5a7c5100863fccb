package domain

import "time"

// Category is a global label that can be attached to many tasks.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// MaxCategoryNameLength bounds Category.Name in runes.
const MaxCategoryNameLength = 100

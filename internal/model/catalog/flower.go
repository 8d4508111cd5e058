package catalog

import "time"

// Flower is one catalog item offered for sale.
type Flower struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int       `json:"price"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	Category    string    `json:"category,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CategoryCount pairs a category with the number of available flowers in it.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

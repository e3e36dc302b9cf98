package domain

import "time"

// Category groups products in the catalogue.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Product is a catalogue item.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Brand       string    `json:"brand"`
	ImageURLs   []string  `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

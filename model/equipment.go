// model/equipment.go
package model

import "time"

type Equipment struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	PricePerDay float64   `json:"price_per_day"`
	Quantity    int64     `json:"quantity"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}

// Rentable is the single availability rule: the item must be switched
// on by staff and have at least one unit in stock.
func (e *Equipment) Rentable() bool {
	return e.Available && e.Quantity > 0
}

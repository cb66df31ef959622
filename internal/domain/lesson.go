package domain

import "time"

// Lesson is a bookable after-school class offered at a location.
// Attributes carries any extra fields a client has attached beyond the
// core columns, preserved as-is across updates.
type Lesson struct {
	ID         string         `json:"id"`
	Subject    string         `json:"subject"`
	Location   string         `json:"location"`
	Price      float64        `json:"price"`
	Spaces     int            `json:"spaces"`
	Attributes map[string]any `json:"attributes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

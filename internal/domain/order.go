package domain

import "time"

// OrderLine is one (lesson, quantity) pair in a submitted order.
// Lines keep the position the customer's cart gave them.
type OrderLine struct {
	LessonID string `json:"lesson_id"`
	Quantity int    `json:"quantity"`
}

// Order is a customer's confirmed booking of one or more lessons.
type Order struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	Lines         []OrderLine `json:"lines"`
	TotalUnits    int         `json:"total_units"`
	CreatedAt     time.Time   `json:"created_at"`
}

// SumUnits returns the total quantity across all lines.
func SumUnits(lines []OrderLine) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

package order

import "time"

// Order statuses. An order starts pending and unpaid; confirmation marks it
// paid on both axes.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"

	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// Order is a checked-out cart with delivery details.
type Order struct {
	ID            string    `json:"id"`
	UserID        int64     `json:"userId"`
	ItemsJSON     string    `json:"itemsJson"`
	Total         int       `json:"total"`
	Address       string    `json:"address,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

package account

import "time"

// User is a known customer, recorded on first contact.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

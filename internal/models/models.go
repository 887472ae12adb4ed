package models

import "time"

// BudgetAllocation is a single budget line item: a planned amount and the
// amount spent against it so far.
type BudgetAllocation struct {
	ID        int64   `json:"id"`
	Category  string  `json:"category"`
	Allocated float64 `json:"allocated"`
	Spent     float64 `json:"spent"`
	Status    string  `json:"status"`
}

// Remaining returns the unspent balance of the allocation.
func (b BudgetAllocation) Remaining() float64 {
	return b.Allocated - b.Spent
}

// Post is a published announcement.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// Admin is a barangay official account allowed to edit budget figures and
// publish announcements.
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Concern is a citizen remark captured by the chatbot. Concerns live in
// process memory only and are never written to the store.
type Concern struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

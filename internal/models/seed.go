package models

import "time"

// SeedAllocations returns the default budget rows. They are inserted the
// first time the store is migrated and double as the fallback dataset shown
// when the budget API is unreachable, so the dashboard is never empty.
func SeedAllocations() []BudgetAllocation {
	return []BudgetAllocation{
		{ID: 1, Category: "Personnel Services (Salaries)", Allocated: 3200000, Spent: 2800000, Status: "Ongoing"},
		{ID: 2, Category: "Maintenance and Operating Expenses (MOOE)", Allocated: 4500000, Spent: 2100000, Status: "Ongoing"},
		{ID: 3, Category: "20% Development Fund (Infrastructure)", Allocated: 2000000, Spent: 1500000, Status: "Completed"},
		{ID: 4, Category: "Calamity Fund (5%)", Allocated: 600000, Spent: 0, Status: "Initial"},
		{ID: 5, Category: "SK Fund (Youth Programs)", Allocated: 800000, Spent: 300000, Status: "Pending"},
		{ID: 6, Category: "Gender and Development (GAD)", Allocated: 900000, Spent: 450000, Status: "Ongoing"},
	}
}

// SeedPosts returns the fallback announcements shown when the posts API is
// unreachable.
func SeedPosts() []Post {
	now := time.Now()
	return []Post{
		{
			ID:        1,
			Title:     "Road Rehabilitation Update",
			Body:      "Nightly works continue along the main thoroughfare to minimize traffic during peak hours. Expect partial lane closures.",
			CreatedAt: now,
		},
		{
			ID:        2,
			Title:     "Health Center Expansion",
			Body:      "The barangay health center is adding two consultation rooms and a dedicated vaccination bay. Construction kicks off next week.",
			CreatedAt: now,
		},
	}
}

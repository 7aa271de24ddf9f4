package domain

import "time"

type Expense struct {
	ID       int64     `db:"id" json:"id"`
	UserID   int64     `db:"user_id" json:"-"`
	SpentAt  time.Time `db:"spent_at" json:"-"`
	Category string    `db:"category" json:"category"`
	Amount   float64   `db:"amount" json:"amount"`
	Note     string    `db:"note" json:"note,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ExpenseFilters narrows a per-user expense listing. Zero values mean
// "no constraint".
type ExpenseFilters struct {
	Category  string
	StartDate time.Time
	EndDate   time.Time
}

type CategorySum struct {
	Category string  `db:"category" json:"category"`
	Total    float64 `db:"total" json:"total"`
}

type AnalyticsSummary struct {
	TotalSpend      float64       `json:"total_spend"`
	CategorySummary []CategorySum `json:"category_summary"`
}

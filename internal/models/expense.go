package models

// Expense represents a shared cost split among participants.
// Each participant has one ExpenseShare row; the sum of Owed over all shares
// equals Total within rounding tolerance (enforced on write).
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group this expense belongs to, or empty for an
	// expense shared outside any group (e.g. between two friends).
	GroupID string `json:"group_id,omitempty"`

	// Description is a short human-readable label (e.g., "Dinner").
	Description string `json:"description"`

	// Total is the full expense amount.
	Total float64 `json:"total"`

	// Shares are the per-participant paid/owed rows.
	Shares []ExpenseShare `json:"shares"`

	// CreatedBy is the user ID that recorded the expense.
	CreatedBy string `json:"created_by"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`

	// DeletedAt is the Unix timestamp of soft deletion, or 0 if live.
	// Soft-deleted expenses are excluded from every ledger read.
	DeletedAt int64 `json:"deleted_at,omitempty"`
}

// ExpenseShare is one participant's row on one expense.
// The participant's contribution is Paid - Owed: positive means they fronted
// more than their share and are owed money back; negative means they consumed
// more than they paid.
type ExpenseShare struct {
	// ExpenseID is the expense this share belongs to.
	ExpenseID string `json:"expense_id"`

	// UserID is the participant.
	UserID string `json:"user_id"`

	// Paid is the amount this participant put in.
	Paid float64 `json:"paid"`

	// Owed is this participant's share of the total.
	Owed float64 `json:"owed"`
}

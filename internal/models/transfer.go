package models

// Transfer represents a recorded payment between two users, typically made to
// settle outstanding debt. Amount is always non-negative.
type Transfer struct {
	// ID is the unique identifier for the transfer (UUID format).
	ID string `json:"id"`

	// GroupID is the group this transfer is scoped to, or empty for a
	// direct payment between two friends.
	GroupID string `json:"group_id,omitempty"`

	// FromUserID is the user who paid (debtor settling up).
	FromUserID string `json:"from_user_id"`

	// ToUserID is the user who received payment (creditor being paid).
	ToUserID string `json:"to_user_id"`

	// Amount is the payment amount.
	Amount float64 `json:"amount"`

	// Note is an optional description for the transfer.
	Note string `json:"note,omitempty"`

	// CreatedBy is the user ID who recorded this transfer.
	CreatedBy string `json:"created_by"`

	// CreatedAt is the Unix timestamp when the transfer was recorded.
	CreatedAt int64 `json:"created_at"`
}

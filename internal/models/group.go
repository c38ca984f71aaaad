package models

// Group represents a set of users who share expenses.
// Group balances are always computed over the *current* member list;
// expense shares left behind by removed members are skipped during
// aggregation.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Goa Trip").
	Name string `json:"name"`

	// Members is the list of member user IDs.
	Members []string `json:"members"`

	// CreatedBy is the user ID that created the group.
	CreatedBy string `json:"created_by"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}

// HasMember reports whether userID is a current member of the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

package models

// NetBalance is one participant's signed balance within a scope.
// Positive = owed money by the scope, negative = owes money to it.
// Derived per request; never persisted.
type NetBalance struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
}

// SimplifiedTransaction is a suggested settling payment produced by the debt
// simplifier. From and To always reference two different users and Amount is
// always above the epsilon threshold. Derived per request; never persisted.
type SimplifiedTransaction struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

package types

// Activity is a catalog entry for a task type, e.g. "valutare",
// "trasportare", "pulire".
type Activity struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"nome" db:"nome"`
	Description string `json:"descrizione" db:"descrizione"`
}

// ActivityPatch is a partial update for an Activity. Nil fields are left untouched.
type ActivityPatch struct {
	Name        *string `json:"nome"`
	Description *string `json:"descrizione"`
}

package types

import "time"

// Location is a physical site (a basement, a garage, a warehouse)
// where items are found.
type Location struct {
	// ID is the unique identifier of the location.
	ID int `json:"id" db:"id"`

	// Name is the human-readable name of the location.
	Name string `json:"nome" db:"nome"`

	// Address is the optional street address.
	Address string `json:"indirizzo" db:"indirizzo"`

	// Notes is an optional free-text annotation.
	Notes string `json:"note" db:"note"`

	// CreatedAt is assigned by the server at insert time.
	CreatedAt time.Time `json:"data_creazione" db:"data_creazione"`
}

// LocationPatch is a partial update for a Location. Nil fields are left untouched.
type LocationPatch struct {
	Name    *string `json:"nome"`
	Address *string `json:"indirizzo"`
	Notes   *string `json:"note"`
}

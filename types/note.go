package types

import "time"

// Note is a free-text annotation, optionally tied to an item, an
// activity, a location, an author, or any combination of those.
type Note struct {
	ID         int       `json:"id" db:"id"`
	Text       string    `json:"testo" db:"testo"`
	ItemID     *int      `json:"oggetto_id" db:"oggetto_id"`
	ActivityID *int      `json:"attivita_id" db:"attivita_id"`
	LocationID *int      `json:"location_id" db:"location_id"`
	AuthorID   *int      `json:"autore_id" db:"autore_id"`
	Date       time.Time `json:"data" db:"data"`
}

// NotePatch is a partial update for a Note. Nil fields are left
// untouched; a supplied zero reference clears it to NULL.
type NotePatch struct {
	Text       *string `json:"testo"`
	ItemID     *int    `json:"oggetto_id"`
	ActivityID *int    `json:"attivita_id"`
	LocationID *int    `json:"location_id"`
	AuthorID   *int    `json:"autore_id"`
}

// NoteFilter restricts note listings; zero values mean "no filter".
type NoteFilter struct {
	ItemID     int
	ActivityID int
	LocationID int
}

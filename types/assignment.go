package types

import "time"

// Assignment links an Activity to an Item: "this task, on this item,
// assigned to this person, due this date".
type Assignment struct {
	// ID is the unique identifier of the assignment.
	ID int `json:"id" db:"id"`

	// ItemID references the target Item. Required.
	ItemID int `json:"oggetto_id" db:"oggetto_id"`

	// ActivityID references the Activity to perform. Required.
	ActivityID int `json:"attivita_id" db:"attivita_id"`

	// Completed marks the assignment as done.
	Completed bool `json:"completata" db:"completata"`

	// PlannedDate is the optional due date.
	PlannedDate *time.Time `json:"data_prevista" db:"data_prevista"`

	// CompletedDate is set when the assignment is completed.
	CompletedDate *time.Time `json:"data_completamento" db:"data_completamento"`

	// AssigneeID optionally references the User responsible.
	AssigneeID *int `json:"assegnato_a" db:"assegnato_a"`
}

// AssignmentPatch is a partial update for an Assignment. Nil fields are
// left untouched. A supplied zero AssigneeID clears the assignee; a
// supplied zero PlannedDate or CompletedDate clears the date.
type AssignmentPatch struct {
	Completed     *bool      `json:"completata"`
	PlannedDate   *time.Time `json:"data_prevista"`
	CompletedDate *time.Time `json:"data_completamento"`
	AssigneeID    *int       `json:"assegnato_a"`
}

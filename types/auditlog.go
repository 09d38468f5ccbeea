package types

import "time"

// Audit actions.
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// AuditLogEntry is an immutable record of a mutation: who changed what,
// when, with a human-readable detail string. Entries are only ever
// appended, never updated or deleted by the application.
type AuditLogEntry struct {
	ID int `json:"id" db:"id"`

	// UserID references the acting user. Nil once the actor has been
	// deleted; the entry itself survives.
	UserID *int `json:"utente_id" db:"utente_id"`

	// Action is one of the AuditAction constants.
	Action string `json:"azione" db:"azione"`

	// Entity names the affected entity type, e.g. "utente", "oggetto".
	Entity string `json:"entita" db:"entita"`

	// EntityID is the affected row id, when one exists.
	EntityID *int `json:"entita_id" db:"entita_id"`

	// Details is a free-text description of the change.
	Details string `json:"dettagli" db:"dettagli"`

	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

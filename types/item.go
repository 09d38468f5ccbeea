package types

import "time"

// Item statuses, tracking an item through the cleanup workflow.
const (
	ItemStatusToRemove = "da_rimuovere"
	ItemStatusDisposed = "smaltito"
	ItemStatusSold     = "venduto"
	ItemStatusPending  = "in_attesa"
	ItemStatusDone     = "completato"
)

// Item kinds. Containers may hold other items via Item.ContainerID.
const (
	ItemKindPlain     = "oggetto"
	ItemKindContainer = "contenitore"
)

// ValidItemStatus reports whether status is one of the closed status set.
func ValidItemStatus(status string) bool {
	switch status {
	case ItemStatusToRemove, ItemStatusDisposed, ItemStatusSold, ItemStatusPending, ItemStatusDone:
		return true
	}
	return false
}

// ValidItemKind reports whether kind is one of the closed kind set.
func ValidItemKind(kind string) bool {
	return kind == ItemKindPlain || kind == ItemKindContainer
}

// Item represents a physical object or container recorded at a location.
type Item struct {
	// ID is the unique identifier of the item.
	ID int `json:"id" db:"id"`

	// Name is the human-readable name of the item.
	Name string `json:"nome" db:"nome"`

	// Description is an optional free-text description.
	Description string `json:"descrizione" db:"descrizione"`

	// Status is the item's workflow status. Defaults to ItemStatusToRemove.
	Status string `json:"stato" db:"stato"`

	// Kind distinguishes plain items from containers. Defaults to ItemKindPlain.
	Kind string `json:"tipo" db:"tipo"`

	// LocationID optionally references the Location where the item sits.
	LocationID *int `json:"location_id" db:"location_id"`

	// ContainerID optionally references another Item of kind
	// ItemKindContainer holding this one. Container chains are acyclic;
	// the service layer rejects writes that would violate that.
	ContainerID *int `json:"contenitore_id" db:"contenitore_id"`

	// DetectedAt is when the item was first recorded. Defaults to insert time.
	DetectedAt time.Time `json:"data_rilevamento" db:"data_rilevamento"`

	// PhotoKey and PhotoMime locate the item's photo in object storage,
	// when one has been uploaded. Served via the photo endpoint, never
	// exposed directly.
	PhotoKey  string `json:"-" db:"foto_key"`
	PhotoMime string `json:"-" db:"foto_mime"`
}

// ItemPatch is a partial update for an Item. Nil fields are left
// untouched. For LocationID and ContainerID, a supplied zero clears the
// reference to NULL.
type ItemPatch struct {
	Name        *string `json:"nome"`
	Description *string `json:"descrizione"`
	Status      *string `json:"stato"`
	Kind        *string `json:"tipo"`
	LocationID  *int    `json:"location_id"`
	ContainerID *int    `json:"contenitore_id"`
}

// ItemFilter restricts item listings; zero values mean "no filter".
type ItemFilter struct {
	LocationID  int
	ContainerID int
	Status      string
	Kind        string
}

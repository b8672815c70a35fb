package models

import "gorm.io/datatypes"

// ResponseRecord is one logged survey answer. Rows are immutable after
// creation; an undo removes the row instead of flagging it so that every
// aggregate can treat presence as truth.
type ResponseRecord struct {
	BaseModel

	VenueID   uint   `json:"venue_id"`
	Venue     *Venue `json:"venue,omitempty"`
	SourceKey string `json:"source_key"`

	Metadata datatypes.JSONMap `json:"metadata"`
}

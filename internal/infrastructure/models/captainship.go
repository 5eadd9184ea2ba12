package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Captainship is the persisted row. The url/name/avatar columns are legacy
// nullable fields kept for schema compatibility; the displayed profile is
// resolved from the directory at render time and never written here.
type Captainship struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	URL       null.String `gorm:"type:text"`
	Name      null.String `gorm:"type:text"`
	Avatar    null.String `gorm:"type:text"`
	Email     string      `gorm:"type:text;not null"`
	StartedAt time.Time   `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyEntry is one user's record for one calendar date. The composite
// unique index on (user_id, date) is what guarantees at most one entry
// per user per day, including under concurrent creates.
type DailyEntry struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string    `gorm:"size:255;not null;uniqueIndex:idx_daily_entries_user_date,priority:1" json:"userId"`
	Date             string    `gorm:"size:10;not null;uniqueIndex:idx_daily_entries_user_date,priority:2" json:"date"` // YYYY-MM-DD
	Weight           *float64  `json:"weight"`                                                                          // kg, nullable
	Steps            int       `gorm:"default:0" json:"steps"`
	WalkingMinutes   int       `gorm:"default:0" json:"walkingMinutes"`
	StrengthTraining bool      `gorm:"default:false" json:"strengthTraining"`
	StrengthNotes    string    `json:"strengthNotes"`
	CreatedAt        time.Time `json:"createdAt"`

	Meals []Meal `gorm:"foreignKey:DailyEntryID;constraint:OnDelete:CASCADE" json:"meals,omitempty"`
}

func (e *DailyEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

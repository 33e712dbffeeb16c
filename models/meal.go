package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fixed meal-type buckets. Unknown values are rejected at the write
// boundary so grouping never has to discard rows.
const (
	MealTypeBreakfast    = "breakfast"
	MealTypeMorningSnack = "morning_snack"
	MealTypeLunch        = "lunch"
	MealTypeEveningSnack = "evening_snack"
	MealTypeDinner       = "dinner"
)

// MealTypes lists the valid buckets in display order.
var MealTypes = []string{
	MealTypeBreakfast,
	MealTypeMorningSnack,
	MealTypeLunch,
	MealTypeEveningSnack,
	MealTypeDinner,
}

// Meal is one logged food item, exclusively owned by its DailyEntry.
// Deleting the entry deletes its meals.
type Meal struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	DailyEntryID string `gorm:"type:uuid;index;not null" json:"dailyEntryId"`
	MealType     string `gorm:"size:32;not null" json:"mealType"`
	Description  string `gorm:"not null" json:"description"`
	Quantity     string `json:"quantity"` // free text, e.g. "1 bowl"
	Calories     int    `gorm:"default:0" json:"calories"`
	Protein      int    `gorm:"default:0" json:"protein"`
	Carbs        int    `gorm:"default:0" json:"carbs"`
	Fat          int    `gorm:"default:0" json:"fat"`
	Fiber        int    `gorm:"default:0" json:"fiber"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ValidMealType reports whether t is one of the fixed buckets.
func ValidMealType(t string) bool {
	for _, mt := range MealTypes {
		if t == mt {
			return true
		}
	}
	return false
}

package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"daylog/models"
	"daylog/utils"
)

// DayService owns the daily-entry lifecycle: one entry per (user, date),
// implicit creation on first meal, cascading deletes.
type DayService struct {
	db *gorm.DB
}

func NewDayService(db *gorm.DB) *DayService {
	return &DayService{db: db}
}

// CreateEntryInput carries the fields a new entry may start with. Only
// the date is required; everything else defaults.
type CreateEntryInput struct {
	Date             string   `json:"date" binding:"required"`
	Weight           *float64 `json:"weight"`
	Steps            int      `json:"steps"`
	WalkingMinutes   int      `json:"walkingMinutes"`
	StrengthTraining bool     `json:"strengthTraining"`
	StrengthNotes    string   `json:"strengthNotes"`
}

// UpdateEntryInput is a partial patch; nil fields are left unchanged.
type UpdateEntryInput struct {
	Weight           *float64 `json:"weight"`
	Steps            *int     `json:"steps"`
	WalkingMinutes   *int     `json:"walkingMinutes"`
	StrengthTraining *bool    `json:"strengthTraining"`
	StrengthNotes    *string  `json:"strengthNotes"`
}

// MealInput carries one meal to insert under a day.
type MealInput struct {
	MealType    string `json:"mealType" binding:"required"`
	Description string `json:"description" binding:"required"`
	Quantity    string `json:"quantity"`
	Calories    int    `json:"calories" binding:"gte=0"`
	Protein     int    `json:"protein" binding:"gte=0"`
	Carbs       int    `json:"carbs" binding:"gte=0"`
	Fat         int    `json:"fat" binding:"gte=0"`
	Fiber       int    `json:"fiber" binding:"gte=0"`
}

// ValidateDate checks the ISO YYYY-MM-DD form used as the entry key.
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil || len(date) != 10 {
		return utils.NewValidationError("date", "must be a valid YYYY-MM-DD date")
	}
	return nil
}

// ListEntries returns the user's entries, newest date first, without
// meals. Used for the calendar/history view.
func (s *DayService) ListEntries(ctx context.Context, userID string) ([]models.DailyEntry, error) {
	var entries []models.DailyEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&entries).Error
	return entries, err
}

// GetEntry fetches the entry plus its meals. Absence is a valid
// outcome: (nil, nil), not an error.
func (s *DayService) GetEntry(ctx context.Context, userID, date string) (*models.DailyEntry, error) {
	var entry models.DailyEntry
	err := s.db.WithContext(ctx).
		Preload("Meals").
		Where("user_id = ? AND date = ?", userID, date).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreateEntry is an idempotent get-or-create. When an entry already
// exists for (user, date) it is returned unchanged; a concurrent create
// losing the insert race gets the winner's row via ON CONFLICT DO
// NOTHING plus re-fetch, never a duplicate or an error.
func (s *DayService) CreateEntry(ctx context.Context, userID string, in CreateEntryInput) (*models.DailyEntry, error) {
	if err := ValidateDate(in.Date); err != nil {
		return nil, err
	}

	if existing, err := s.GetEntry(ctx, userID, in.Date); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	entry := models.DailyEntry{
		UserID:           userID,
		Date:             in.Date,
		Weight:           in.Weight,
		Steps:            in.Steps,
		WalkingMinutes:   in.WalkingMinutes,
		StrengthTraining: in.StrengthTraining,
		StrengthNotes:    in.StrengthNotes,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(&entry).Error
	if err != nil {
		return nil, err
	}

	// Re-fetch so the conflict loser returns the stored row, not the
	// struct it failed to insert.
	stored, err := s.GetEntry(ctx, userID, in.Date)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, errors.New("entry vanished after create")
	}
	return stored, nil
}

// UpdateEntry applies a partial patch and returns the updated entry
// with its meals. Patching a missing day is ErrNotFound.
func (s *DayService) UpdateEntry(ctx context.Context, userID, date string, in UpdateEntryInput) (*models.DailyEntry, error) {
	var entry models.DailyEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Weight != nil {
		updates["weight"] = *in.Weight
	}
	if in.Steps != nil {
		updates["steps"] = *in.Steps
	}
	if in.WalkingMinutes != nil {
		updates["walking_minutes"] = *in.WalkingMinutes
	}
	if in.StrengthTraining != nil {
		updates["strength_training"] = *in.StrengthTraining
	}
	if in.StrengthNotes != nil {
		updates["strength_notes"] = *in.StrengthNotes
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&entry).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetEntry(ctx, userID, date)
}

// DeleteEntry removes the entry and every meal it owns. Deleting a day
// that does not exist is a no-op.
func (s *DayService) DeleteEntry(ctx context.Context, userID, date string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.DailyEntry
		err := tx.Where("user_id = ? AND date = ?", userID, date).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Where("daily_entry_id = ?", entry.ID).Delete(&models.Meal{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entry).Error
	})
}

// AddMeal inserts a meal under the (user, date) entry, creating the
// entry first if the user has none for that date. This implicit create
// is the only auto-creation path outside CreateEntry. Returns the day
// with its meals (the new one included) plus the created meal itself.
func (s *DayService) AddMeal(ctx context.Context, userID, date string, in MealInput) (*models.DailyEntry, *models.Meal, error) {
	if err := ValidateDate(date); err != nil {
		return nil, nil, err
	}
	if !models.ValidMealType(in.MealType) {
		return nil, nil, utils.NewValidationError("mealType", "must be one of breakfast, morning_snack, lunch, evening_snack, dinner")
	}

	entry, err := s.GetEntry(ctx, userID, date)
	if err != nil {
		return nil, nil, err
	}
	if entry == nil {
		entry, err = s.CreateEntry(ctx, userID, CreateEntryInput{Date: date})
		if err != nil {
			return nil, nil, err
		}
	}

	meal := models.Meal{
		DailyEntryID: entry.ID,
		MealType:     in.MealType,
		Description:  in.Description,
		Quantity:     in.Quantity,
		Calories:     in.Calories,
		Protein:      in.Protein,
		Carbs:        in.Carbs,
		Fat:          in.Fat,
		Fiber:        in.Fiber,
	}
	if err := s.db.WithContext(ctx).Create(&meal).Error; err != nil {
		return nil, nil, err
	}

	day, err := s.GetEntry(ctx, userID, date)
	if err != nil {
		return nil, nil, err
	}
	return day, &meal, nil
}

// DeleteMeal removes a meal by id, but only when its owning entry
// belongs to userID. Unknown ids, and meals owned by someone else, are
// a no-op rather than an error.
func (s *DayService) DeleteMeal(ctx context.Context, userID, mealID string) error {
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Model(&models.Meal{}).
		Select("meals.*").
		Joins("JOIN daily_entries ON daily_entries.id = meals.daily_entry_id").
		Where("meals.id = ? AND daily_entries.user_id = ?", mealID, userID).
		First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.Meal{}, "id = ?", meal.ID).Error
}

package services

import (
	"context"
	"time"
)

const demoUserID = "demo"

// SeedDemo populates a demo user with one fully logged day so a fresh
// install has something to render. Skipped when the demo user already
// has entries.
func SeedDemo(ctx context.Context, days *DayService) error {
	existing, err := days.ListEntries(ctx, demoUserID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	today := time.Now().Format("2006-01-02")
	weight := 85.5
	if _, err := days.CreateEntry(ctx, demoUserID, CreateEntryInput{
		Date:             today,
		Weight:           &weight,
		Steps:            5400,
		WalkingMinutes:   45,
		StrengthTraining: true,
		StrengthNotes:    "Upper body workout",
	}); err != nil {
		return err
	}

	if _, _, err := days.AddMeal(ctx, demoUserID, today, MealInput{
		MealType:    "breakfast",
		Description: "Oatmeal with berries",
		Quantity:    "1 bowl",
		Calories:    350,
		Protein:     12,
		Carbs:       60,
		Fat:         6,
		Fiber:       8,
	}); err != nil {
		return err
	}

	_, _, err = days.AddMeal(ctx, demoUserID, today, MealInput{
		MealType:    "lunch",
		Description: "Chicken salad",
		Quantity:    "1 plate",
		Calories:    450,
		Protein:     40,
		Carbs:       10,
		Fat:         20,
		Fiber:       5,
	})
	return err
}

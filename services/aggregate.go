package services

import (
	"sort"

	"daylog/models"
)

// DayTotals sums meal macros for one day. Fiber is tracked per meal but
// excluded from the summary. An empty list yields all zeros.
func DayTotals(meals []models.Meal) models.NutritionTotals {
	var t models.NutritionTotals
	for _, m := range meals {
		t.Calories += m.Calories
		t.Protein += m.Protein
		t.Carbs += m.Carbs
		t.Fat += m.Fat
	}
	return t
}

// TrendPoints derives one chart point per entry, in ascending date
// order regardless of how the entries were fetched or inserted. ISO
// dates sort lexicographically, so a string sort is chronological.
func TrendPoints(entries []models.DailyEntry) []models.TrendDataPoint {
	sorted := make([]models.DailyEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	points := make([]models.TrendDataPoint, 0, len(sorted))
	for _, e := range sorted {
		totals := DayTotals(e.Meals)
		points = append(points, models.TrendDataPoint{
			Date:     e.Date,
			Weight:   e.Weight,
			Calories: totals.Calories,
			Protein:  totals.Protein,
		})
	}
	return points
}

// GroupMealsByType partitions a day's meals into the five fixed
// buckets. Every bucket is present in the result, empty or not. Meal
// types are validated at the write boundary, so nothing is dropped
// here.
func GroupMealsByType(meals []models.Meal) map[string][]models.Meal {
	groups := make(map[string][]models.Meal, len(models.MealTypes))
	for _, mt := range models.MealTypes {
		groups[mt] = []models.Meal{}
	}
	for _, m := range meals {
		groups[m.MealType] = append(groups[m.MealType], m)
	}
	return groups
}

package models

// NutritionTotals is a per-day rollup of meal macros. Fiber is tracked
// per meal but intentionally left out of the day summary.
type NutritionTotals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// TrendDataPoint is one date's derived summary used for charting.
// Derived on every read, never persisted.
type TrendDataPoint struct {
	Date     string   `json:"date"`
	Weight   *float64 `json:"weight"` // null when the entry has no weight
	Calories int      `json:"calories"`
	Protein  int      `json:"protein"`
}

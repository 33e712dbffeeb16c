package services

import (
	"context"

	"gorm.io/gorm"

	"daylog/models"
)

// TrendService derives charting series from stored entries. Totals are
// recomputed from meal rows on every read; nothing derived is cached.
type TrendService struct {
	db *gorm.DB
}

func NewTrendService(db *gorm.DB) *TrendService {
	return &TrendService{db: db}
}

// GetTrends returns one point per entry the user owns, ascending by
// date, with calories/protein summed over that day's meals.
func (s *TrendService) GetTrends(ctx context.Context, userID string) ([]models.TrendDataPoint, error) {
	var entries []models.DailyEntry
	err := s.db.WithContext(ctx).
		Preload("Meals").
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return TrendPoints(entries), nil
}

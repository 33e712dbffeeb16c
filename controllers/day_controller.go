package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daylog/middlewares"
	"daylog/models"
	"daylog/services"
)

type DayController struct {
	Days   *services.DayService
	Hub    *services.RealtimeHub
	Logger *zap.SugaredLogger
}

func NewDayController(days *services.DayService, hub *services.RealtimeHub, logger *zap.SugaredLogger) *DayController {
	return &DayController{Days: days, Hub: hub, Logger: logger}
}

// dayResponse is an entry plus everything derived from its meals.
type dayResponse struct {
	models.DailyEntry
	Meals       []models.Meal            `json:"meals"`
	Totals      models.NutritionTotals   `json:"totals"`
	MealsByType map[string][]models.Meal `json:"mealsByType,omitempty"`
}

func newDayResponse(entry *models.DailyEntry, grouped bool) dayResponse {
	meals := entry.Meals
	if meals == nil {
		meals = []models.Meal{}
	}
	resp := dayResponse{
		DailyEntry: *entry,
		Meals:      meals,
		Totals:     services.DayTotals(meals),
	}
	if grouped {
		resp.MealsByType = services.GroupMealsByType(meals)
	}
	return resp
}

// List returns the caller's entries, newest first, without meals.
func (dc *DayController) List(c *gin.Context) {
	entries, err := dc.Days.ListEntries(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		respondError(c, dc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Get returns one day with meals and computed totals. 404 when the
// caller has no entry for that date.
func (dc *DayController) Get(c *gin.Context) {
	entry, err := dc.Days.GetEntry(c.Request.Context(), middlewares.UserID(c), c.Param("date"))
	if err != nil {
		respondError(c, dc.Logger, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "daily entry not found"})
		return
	}
	c.JSON(http.StatusOK, newDayResponse(entry, c.Query("grouped") == "true"))
}

// Create is the idempotent day create: posting an existing date returns
// that entry unchanged.
func (dc *DayController) Create(c *gin.Context) {
	var in services.CreateEntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	userID := middlewares.UserID(c)
	entry, err := dc.Days.CreateEntry(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, dc.Logger, err)
		return
	}

	dc.Hub.Broadcast(userID, services.EventDayUpdated, entry)
	c.JSON(http.StatusCreated, newDayResponse(entry, false))
}

// Update applies a partial patch to an existing day.
func (dc *DayController) Update(c *gin.Context) {
	var in services.UpdateEntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	userID := middlewares.UserID(c)
	entry, err := dc.Days.UpdateEntry(c.Request.Context(), userID, c.Param("date"), in)
	if err != nil {
		respondError(c, dc.Logger, err)
		return
	}

	dc.Hub.Broadcast(userID, services.EventDayUpdated, entry)
	c.JSON(http.StatusOK, newDayResponse(entry, false))
}

// Delete removes a day and all its meals. Deleting an absent day still
// returns 204.
func (dc *DayController) Delete(c *gin.Context) {
	userID := middlewares.UserID(c)
	date := c.Param("date")
	if err := dc.Days.DeleteEntry(c.Request.Context(), userID, date); err != nil {
		respondError(c, dc.Logger, err)
		return
	}

	dc.Hub.Broadcast(userID, services.EventDayDeleted, gin.H{"date": date})
	c.Status(http.StatusNoContent)
}

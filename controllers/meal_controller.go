package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daylog/middlewares"
	"daylog/services"
)

type MealController struct {
	Days      *services.DayService
	Estimator *services.EstimatorService
	Hub       *services.RealtimeHub
	Logger    *zap.SugaredLogger
}

func NewMealController(days *services.DayService, est *services.EstimatorService, hub *services.RealtimeHub, logger *zap.SugaredLogger) *MealController {
	return &MealController{Days: days, Estimator: est, Hub: hub, Logger: logger}
}

// Add logs a meal under the date in the path, creating the day first if
// the caller has none. With ?estimate=true and no macros supplied, the
// estimation service fills them in; estimation failures fall back to
// zeros rather than rejecting the meal.
func (mc *MealController) Add(c *gin.Context) {
	var in services.MealInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	if c.Query("estimate") == "true" && mc.Estimator.Enabled() && macrosEmpty(in) {
		if est, err := mc.Estimator.Estimate(in.Description, in.Quantity); err != nil {
			mc.Logger.Warnw("nutrition estimate failed", "description", in.Description, "error", err)
		} else {
			in.Calories = est.Calories
			in.Protein = est.Protein
			in.Carbs = est.Carbs
			in.Fat = est.Fat
			in.Fiber = est.Fiber
		}
	}

	userID := middlewares.UserID(c)
	day, meal, err := mc.Days.AddMeal(c.Request.Context(), userID, c.Param("date"), in)
	if err != nil {
		respondError(c, mc.Logger, err)
		return
	}

	mc.Hub.Broadcast(userID, services.EventDayUpdated, day)
	c.JSON(http.StatusCreated, meal)
}

// Delete removes a meal by id. Ids that do not exist, or belong to a
// different user's day, are a no-op 204.
func (mc *MealController) Delete(c *gin.Context) {
	userID := middlewares.UserID(c)
	if err := mc.Days.DeleteMeal(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, mc.Logger, err)
		return
	}

	mc.Hub.Broadcast(userID, services.EventDayUpdated, gin.H{"mealId": c.Param("id")})
	c.Status(http.StatusNoContent)
}

func macrosEmpty(in services.MealInput) bool {
	return in.Calories == 0 && in.Protein == 0 && in.Carbs == 0 && in.Fat == 0 && in.Fiber == 0
}

package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"daylog/config"
	"daylog/models"
	"daylog/services"
	"daylog/utils"
)

func setupRouter(t *testing.T, estimator *services.EstimatorService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	return SetupRouter(db, estimator, services.NewRealtimeHub(), zap.NewNop().Sugar())
}

func doJSON(t *testing.T, r *gin.Engine, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		token, err := utils.GenerateToken(userID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthIsPublic(t *testing.T) {
	r := setupRouter(t, nil)
	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	r := setupRouter(t, nil)

	for _, path := range []string{"/api/days", "/api/days/2024-06-01", "/api/trends"} {
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/days", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateDayLifecycle(t *testing.T) {
	r := setupRouter(t, nil)

	w := doJSON(t, r, http.MethodPost, "/api/days", "alice", gin.H{"date": "2024-06-01"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		models.DailyEntry
		Totals models.NutritionTotals `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "2024-06-01", created.Date)
	assert.NotEmpty(t, created.ID)

	// posting the same date again returns the same entry
	w = doJSON(t, r, http.MethodPost, "/api/days", "alice", gin.H{"date": "2024-06-01"})
	require.Equal(t, http.StatusCreated, w.Code)
	var again struct{ ID string `json:"id"` }
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
	assert.Equal(t, created.ID, again.ID)

	w = doJSON(t, r, http.MethodGet, "/api/days/2024-06-01", "alice", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"meals":[]`)

	w = doJSON(t, r, http.MethodDelete, "/api/days/2024-06-01", "alice", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/days/2024-06-01", "alice", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// deleting again is still 204
	w = doJSON(t, r, http.MethodDelete, "/api/days/2024-06-01", "alice", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCreateDayValidation(t *testing.T) {
	r := setupRouter(t, nil)

	w := doJSON(t, r, http.MethodPost, "/api/days", "alice", gin.H{"date": "June 1st"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"date"`)

	w = doJSON(t, r, http.MethodPost, "/api/days", "alice", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"date"`)
}

func TestPatchDay(t *testing.T) {
	r := setupRouter(t, nil)

	w := doJSON(t, r, http.MethodPatch, "/api/days/2024-06-01", "alice", gin.H{"steps": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	doJSON(t, r, http.MethodPost, "/api/days", "alice", gin.H{"date": "2024-06-01"})
	w = doJSON(t, r, http.MethodPatch, "/api/days/2024-06-01", "alice", gin.H{"weight": 70.0, "steps": 8000})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.DailyEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.NotNil(t, updated.Weight)
	assert.Equal(t, 70.0, *updated.Weight)
	assert.Equal(t, 8000, updated.Steps)
}

func TestMealEndpoints(t *testing.T) {
	r := setupRouter(t, nil)

	// implicit day creation
	w := doJSON(t, r, http.MethodPost, "/api/days/2024-05-01/meals", "alice", gin.H{
		"mealType":    "breakfast",
		"description": "Oatmeal",
		"calories":    350,
		"protein":     12,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var meal models.Meal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meal))
	assert.NotEmpty(t, meal.ID)
	assert.Equal(t, 350, meal.Calories)

	w = doJSON(t, r, http.MethodGet, "/api/days/2024-05-01", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Oatmeal"`)

	// unknown meal type rejected at the write boundary
	w = doJSON(t, r, http.MethodPost, "/api/days/2024-05-01/meals", "alice", gin.H{
		"mealType":    "brunch",
		"description": "Pancakes",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"mealType"`)

	// missing description caught by binding
	w = doJSON(t, r, http.MethodPost, "/api/days/2024-05-01/meals", "alice", gin.H{
		"mealType": "lunch",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"description"`)

	w = doJSON(t, r, http.MethodDelete, "/api/meals/"+meal.ID, "alice", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/api/meals/"+meal.ID, "alice", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGroupedDayView(t *testing.T) {
	r := setupRouter(t, nil)

	doJSON(t, r, http.MethodPost, "/api/days/2024-05-01/meals", "alice", gin.H{
		"mealType":    "dinner",
		"description": "Pasta",
	})

	w := doJSON(t, r, http.MethodGet, "/api/days/2024-05-01?grouped=true", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		MealsByType map[string][]models.Meal `json:"mealsByType"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.MealsByType, len(models.MealTypes))
	assert.Len(t, resp.MealsByType["dinner"], 1)
}

func TestTrendsEndpoint(t *testing.T) {
	r := setupRouter(t, nil)

	doJSON(t, r, http.MethodPost, "/api/days", "alice", gin.H{"date": "2024-06-02"})
	doJSON(t, r, http.MethodPost, "/api/days", "alice", gin.H{"date": "2024-06-01"})
	doJSON(t, r, http.MethodPatch, "/api/days/2024-06-01", "alice", gin.H{"weight": 70.0})
	doJSON(t, r, http.MethodPost, "/api/days/2024-06-01/meals", "alice", gin.H{
		"mealType": "breakfast", "description": "Eggs", "calories": 300, "protein": 10,
	})
	doJSON(t, r, http.MethodPost, "/api/days/2024-06-01/meals", "alice", gin.H{
		"mealType": "lunch", "description": "Chicken salad", "calories": 500, "protein": 30,
	})

	w := doJSON(t, r, http.MethodGet, "/api/trends", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var points []models.TrendDataPoint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &points))
	require.Len(t, points, 2)
	assert.Equal(t, "2024-06-01", points[0].Date)
	assert.Equal(t, 800, points[0].Calories)
	assert.Equal(t, 40, points[0].Protein)
	assert.Equal(t, 70.0, *points[0].Weight)
	assert.Equal(t, "2024-06-02", points[1].Date)
	assert.Nil(t, points[1].Weight)

	// trends are scoped to the caller
	w = doJSON(t, r, http.MethodGet, "/api/trends", "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestMealEstimationEnrichment(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"calories": 420, "protein": 18, "carbs": 55, "fat": 9, "fiber": 4}`))
	}))
	defer upstream.Close()

	r := setupRouter(t, services.NewEstimatorService(upstream.URL))

	w := doJSON(t, r, http.MethodPost, "/api/days/2024-05-01/meals?estimate=true", "alice", gin.H{
		"mealType":    "lunch",
		"description": "Bean burrito",
		"quantity":    "1 large",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var meal models.Meal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meal))
	assert.Equal(t, 420, meal.Calories)
	assert.Equal(t, 18, meal.Protein)
	assert.Equal(t, 4, meal.Fiber)
}

func TestRealtimeDayEvents(t *testing.T) {
	r := setupRouter(t, nil)
	srv := httptest.NewServer(r)
	defer srv.Close()

	token, err := utils.GenerateToken("alice")
	require.NoError(t, err)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Authorization": {"Bearer " + token}})
	require.NoError(t, err)
	defer conn.Close()

	// give the handler a moment to register the client with the hub
	time.Sleep(50 * time.Millisecond)

	w := doJSON(t, r, http.MethodPost, "/api/days", "alice", gin.H{"date": "2024-06-01"})
	require.Equal(t, http.StatusCreated, w.Code)

	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(msg, &event))
	assert.Equal(t, services.EventDayUpdated, event.Kind)
}

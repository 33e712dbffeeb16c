package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NutritionEstimate is what the external estimation service returns for
// one described meal. Fields it cannot work out come back as zero.
type NutritionEstimate struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	Fiber    int `json:"fiber"`
}

// EstimatorService calls the meal-nutrition estimation collaborator.
// It is optional enrichment: the tracker works without it.
type EstimatorService struct {
	baseURL string
	client  *http.Client
}

func NewEstimatorService(baseURL string) *EstimatorService {
	return &EstimatorService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether an estimator endpoint is configured.
func (s *EstimatorService) Enabled() bool {
	return s != nil && s.baseURL != ""
}

// Estimate asks the collaborator for macro figures for a described
// meal. Negative values in the response are clamped to zero to uphold
// the non-negative contract.
func (s *EstimatorService) Estimate(description, quantity string) (*NutritionEstimate, error) {
	payload := map[string]string{"description": description}
	if quantity != "" {
		payload["quantity"] = quantity
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal estimate payload: %w", err)
	}

	resp, err := s.client.Post(s.baseURL+"/estimate", "application/json", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("call estimator: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read estimator response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("estimator error %d: %s", resp.StatusCode, string(body))
	}

	var est NutritionEstimate
	if err := json.Unmarshal(body, &est); err != nil {
		return nil, fmt.Errorf("parse estimator JSON: %w", err)
	}
	clamp(&est.Calories)
	clamp(&est.Protein)
	clamp(&est.Carbs)
	clamp(&est.Fat)
	clamp(&est.Fiber)
	return &est, nil
}

func clamp(v *int) {
	if *v < 0 {
		*v = 0
	}
}

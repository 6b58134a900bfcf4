package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// HealthReport is what developer settings shows for the API.
type HealthReport struct {
	Status  string        `json:"status"`
	Version string        `json:"version,omitempty"`
	Latency time.Duration `json:"-"`
}

// Health calls /api/health. Both {status} and {data: {status}} bodies are accepted.
func (c *Client) Health() (*HealthReport, error) {
	start := time.Now()
	data, err := c.get("/api/health")
	if err != nil {
		return nil, err
	}

	var payload struct {
		HealthReport
		Data *HealthReport `json:"data"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	report := payload.HealthReport
	if payload.Data != nil {
		report = *payload.Data
	}
	report.Latency = time.Since(start)
	return &report, nil
}

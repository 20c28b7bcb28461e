package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
)

// MaintenancePlanner asks Gemini for a maintenance schedule suggestion
// based on a vehicle's make, model, year and odometer reading.
type MaintenancePlanner struct {
	client *genai.Client
	model  string
}

// SuggestedTask is one item of a generated maintenance plan.
type SuggestedTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueInDays   int32  `json:"due_in_days"`
	DueAtKm     int32  `json:"due_at_km"`
}

func NewMaintenancePlanner(ctx context.Context, apiKey, model string) (*MaintenancePlanner, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &MaintenancePlanner{client: client, model: model}, nil
}

var taskSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
			"due_in_days": {Type: genai.TypeInteger},
			"due_at_km":   {Type: genai.TypeInteger},
		},
		Required: []string{"title", "due_in_days", "due_at_km"},
	},
}

// SuggestSchedule returns a list of upcoming maintenance tasks for a vehicle.
// The response is constrained to JSON matching taskSchema, so a failed parse
// means the model misbehaved and the caller should fall back to manual entry.
func (p *MaintenancePlanner) SuggestSchedule(ctx context.Context, v *domain.Vehicle) ([]SuggestedTask, error) {
	prompt := fmt.Sprintf(
		"You are a fleet maintenance advisor for a car rental company. "+
			"Suggest the next maintenance tasks for a %d %s %s with %d km on the odometer, "+
			"used as a rental vehicle. Return between 3 and 8 tasks, ordered by urgency. "+
			"due_in_days is days from today, due_at_km is the absolute odometer reading when the task is due.",
		v.Year, v.Make, v.Model, v.OdometerKm,
	)

	logger.ExternalServiceCall("gemini", "suggest_schedule", "vehicle_id", v.ID)
	resp, err := p.client.Models.GenerateContent(ctx, p.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   taskSchema,
		},
	)
	if err != nil {
		logger.ExternalServiceResult("gemini", "suggest_schedule", err)
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	var tasks []SuggestedTask
	if err := json.Unmarshal([]byte(resp.Text()), &tasks); err != nil {
		logger.ExternalServiceResult("gemini", "suggest_schedule", err)
		return nil, fmt.Errorf("failed to parse schedule suggestion: %w", err)
	}

	logger.ExternalServiceResult("gemini", "suggest_schedule", nil, "tasks", len(tasks))
	return tasks, nil
}

package dto

import (
	"encoding/json"
	"time"

	"github.com/chaitali929/coremodeling/internal/models"
)

type ApplyRequest struct {
	Title   string          `json:"title" validate:"required,min=2,max=200"`
	Details json.RawMessage `json:"details"`
}

type ApplicationResponse struct {
	ID        string               `json:"id"`
	AccountID string               `json:"accountId"`
	Status    models.AccountStatus `json:"status"`
	Title     string               `json:"title"`
	Details   json.RawMessage      `json:"details,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}

func NewApplicationResponse(a *models.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:        a.ID,
		AccountID: a.AccountID,
		Status:    a.Status,
		Title:     a.Title,
		Details:   json.RawMessage(a.Details),
		CreatedAt: a.CreatedAt,
	}
}

func NewApplicationResponses(apps []models.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, NewApplicationResponse(&apps[i]))
	}
	return out
}

package http

import (
	"time"

	"github.com/abdimannabov/CoinFlip/internal/domain"
)

// FlipResponse is the JSON shape returned by /v1/flip.
type FlipResponse struct {
	CycleID   string       `json:"cycle_id,omitempty"`
	Phase     domain.Phase `json:"phase"`
	Outcome   *OutcomeResp `json:"outcome,omitempty"`
	Image     *ImageResp   `json:"image,omitempty"`
	Error     string       `json:"error,omitempty"`
	Rotation  float64      `json:"rotation"`
	UpdatedAt time.Time    `json:"updated_at"`
	Meta      MetaResp     `json:"meta"`
}

type OutcomeResp struct {
	Face     domain.Outcome `json:"face"`
	Label    string         `json:"label"`
	Greeting string         `json:"greeting"`
}

type ImageResp struct {
	URL      string          `json:"url"`
	Category domain.Category `json:"category"`
}

type MetaResp struct {
	RequestID string `json:"request_id"`
	CanFlip   bool   `json:"can_flip"`
}

type ErrorResponse struct {
	Error string        `json:"error"`
	State *FlipResponse `json:"state,omitempty"`
}

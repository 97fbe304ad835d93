package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abdimannabov/CoinFlip/internal/app"
	"github.com/abdimannabov/CoinFlip/internal/domain"
)

type Handler struct {
	seq *app.FlipSequencer
}

func NewHandler(seq *app.FlipSequencer) *Handler {
	return &Handler{seq: seq}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/v1/flip", h.GetFlip)
	e.POST("/v1/flip", h.StartFlip)
	e.POST("/v1/flip/:cycle/image-error", h.ReportImageError)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) GetFlip(c echo.Context) error {
	return c.JSON(http.StatusOK, toResponse(h.seq.Snapshot(), requestID(c)))
}

// StartFlip answers 202 with the flipping state, or 409 while a cycle runs.
func (h *Handler) StartFlip(c echo.Context) error {
	if !h.seq.StartFlip() {
		return mapError(c, domain.ErrFlipInProgress, h.seq.Snapshot())
	}
	return c.JSON(http.StatusAccepted, toResponse(h.seq.Snapshot(), requestID(c)))
}

// ReportImageError lets a viewer report that the settled image would not load.
func (h *Handler) ReportImageError(c echo.Context) error {
	cycle := c.Param("cycle")
	if !h.seq.ReportImageError(cycle) {
		return mapError(c, domain.ErrStaleCycle, h.seq.Snapshot())
	}
	return c.NoContent(http.StatusNoContent)
}

func requestID(c echo.Context) string {
	id, _ := c.Get("request_id").(string)
	return id
}

func toResponse(s domain.Snapshot, requestID string) FlipResponse {
	resp := FlipResponse{
		CycleID:   s.CycleID,
		Phase:     s.Phase,
		Error:     s.Error,
		Rotation:  s.Rotation,
		UpdatedAt: s.UpdatedAt,
		Meta: MetaResp{
			RequestID: requestID,
			CanFlip:   !s.Phase.Busy(),
		},
	}
	if s.Outcome != nil {
		resp.Outcome = &OutcomeResp{
			Face:     *s.Outcome,
			Label:    s.Outcome.Label(),
			Greeting: s.Outcome.Greeting(),
		}
	}
	if s.Image != nil {
		resp.Image = &ImageResp{
			URL:      s.Image.URL,
			Category: s.Image.Outcome.Category(),
		}
	}
	return resp
}

func mapError(c echo.Context, err error, s domain.Snapshot) error {
	id := requestID(c)
	state := toResponse(s, id)

	switch {
	case errors.Is(err, domain.ErrFlipInProgress), errors.Is(err, domain.ErrStaleCycle):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), State: &state})
	default:
		slog.Error("internal error", "request_id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/DecafCoding/TargetBrowse-sub004/internal/middleware"
	"github.com/DecafCoding/TargetBrowse-sub004/internal/model"
	"github.com/DecafCoding/TargetBrowse-sub004/internal/service"
)

type SuggestHandler struct {
	svc *service.SuggestService
}

func NewSuggestHandler(svc *service.SuggestService) *SuggestHandler {
	return &SuggestHandler{svc: svc}
}

// refreshResponse is the API response for a completed refresh run.
type refreshResponse struct {
	RunID          string           `json:"runId"`
	Status         model.RunStatus  `json:"status"`
	Count          int              `json:"count"`
	QuotaExhausted bool             `json:"quotaExhausted"`
	SourcesFetched int              `json:"sourcesFetched"`
	SourcesFailed  int              `json:"sourcesFailed"`
}

// Refresh handles POST /api/users/:userId/suggestions/refresh
func (h *SuggestHandler) Refresh(c fiber.Ctx) error {
	userID, ok := h.userID(c)
	if !ok {
		return nil // response already written
	}

	start := time.Now()
	result, err := h.svc.Refresh(c.Context(), userID)
	if err != nil {
		return h.mapError(c, err)
	}

	Metrics.RunDuration.Observe(time.Since(start).Seconds())
	Metrics.SuggestionsProduced.Observe(float64(len(result.Suggestions)))
	Metrics.FetchesTotal.WithLabelValues("ok").Add(float64(result.Stats.Succeeded))
	Metrics.FetchesTotal.WithLabelValues("failed").Add(float64(result.Stats.Failed))
	Metrics.FetchesTotal.WithLabelValues("skipped").Add(float64(result.Stats.Skipped))
	if result.QuotaExhausted {
		Metrics.QuotaExhaustions.Inc()
	}

	return c.JSON(refreshResponse{
		RunID:          result.RunID,
		Status:         result.Status,
		Count:          len(result.Suggestions),
		QuotaExhausted: result.QuotaExhausted,
		SourcesFetched: result.Stats.Succeeded,
		SourcesFailed:  result.Stats.Failed + result.Stats.Skipped,
	})
}

// List handles GET /api/users/:userId/suggestions
func (h *SuggestHandler) List(c fiber.Ctx) error {
	userID, ok := h.userID(c)
	if !ok {
		return nil
	}

	suggestions, fromCache, err := h.svc.List(c.Context(), userID)
	if err != nil {
		return h.mapError(c, err)
	}
	if fromCache {
		Metrics.CacheHits.Inc()
	} else {
		Metrics.CacheMisses.Inc()
	}

	if suggestions == nil {
		suggestions = []model.Suggestion{}
	}
	return c.JSON(fiber.Map{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}

// userID validates the path parameter and enforces that a caller-supplied
// X-User-ID header, when present, matches it. Writes the error response
// itself and returns ok=false on failure.
func (h *SuggestHandler) userID(c fiber.Ctx) (string, bool) {
	userID, msg := middleware.ValidateUserID(c.Params("userId"))
	if msg != "" {
		_ = middleware.ErrorResponse(c, fiber.StatusBadRequest, string(service.CodeValidation), msg)
		return "", false
	}
	if hdr := c.Get("X-User-ID"); hdr != "" && hdr != userID {
		_ = middleware.ErrorResponse(c, fiber.StatusForbidden, string(service.CodeAccess), "userId does not match authenticated user")
		return "", false
	}
	return userID, true
}

// mapError translates the engine's error taxonomy to HTTP responses.
func (h *SuggestHandler) mapError(c fiber.Ctx, err error) error {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Code {
		case service.CodeValidation:
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, string(svcErr.Code), svcErr.Message)
		case service.CodeAccess:
			return middleware.ErrorResponse(c, fiber.StatusForbidden, string(svcErr.Code), svcErr.Message)
		case service.CodeQuotaExceeded:
			c.Set("Retry-After", strconv.Itoa(svcErr.RetryAfterSeconds))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": fiber.Map{
					"code":       string(svcErr.Code),
					"message":    svcErr.Message,
					"retryAfter": svcErr.RetryAfterSeconds,
				},
			})
		}
	}
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process suggestions")
}

package controllers

import (
	"log/slog"
	"net/http"

	"classregistration/internal/delivery/http/helpers"
	"classregistration/internal/domain"
)

// EventSourceHeader tells the caller whether events came from the database or the fallback catalog.
const EventSourceHeader = "X-Event-Source"

const maxEventsLimit = 50

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetEventSuccessResponse is the success response envelope for GET /events/{id} (200).
type GetEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventLookupService
}

func NewEventController(logger *slog.Logger, svc domain.EventLookupService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListUpcoming godoc
// @Summary List upcoming events
// @Description Returns events on or after today, soonest first. When the events table cannot be read or is empty the fixed fallback events are returned and X-Event-Source is "fallback".
// @Tags events
// @Produce json
// @Param limit query int false "Maximum number of events (default 5, max 50)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /events [get]
func (c *EventController) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	limit, _, err := helpers.QueryPositiveInt(r, "limit")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "limit "+err.Error())
		return
	}
	lookup := c.Service.ResolveUpcoming(r.Context(), min(limit, maxEventsLimit))
	w.Header().Set(EventSourceHeader, string(lookup.Source))
	helpers.WriteJSONSuccess(w, http.StatusOK, lookup.Events)
}

// GetByID godoc
// @Summary Get an event
// @Description Returns the event with the given id. Unknown ids resolve to a fallback event, so this endpoint does not return 404.
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controllers.GetEventSuccessResponse
// @Router /events/{id} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	lookup := c.Service.ResolveByID(r.Context(), r.PathValue("id"))
	w.Header().Set(EventSourceHeader, string(lookup.Source))
	helpers.WriteJSONSuccess(w, http.StatusOK, lookup.First())
}

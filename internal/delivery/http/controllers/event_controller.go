package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"roombooking/internal/delivery/http/helpers"
	"roombooking/internal/domain"
)

const (
	maxEventNameLen        = 50
	maxEventDescriptionLen = 200
	maxEventResponsibleLen = 50

	// dateTimeDisplayLayout is the day-first layout shown to operators.
	dateTimeDisplayLayout = "02/01/2006 15:04"
)

// EventRequest is the request body for POST /events and PUT /events/{id}.
// date_time is RFC 3339 or a zone-less local time such as 2030-01-01T10:15.
type EventRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DateTime    string  `json:"date_time"`
	Responsible string  `json:"responsible"`
	Rooms       []int64 `json:"rooms"`
}

// Validate implements helpers.Validator.
func (req EventRequest) Validate() []string {
	var errs []string
	errs = requireText(errs, "name", req.Name, maxEventNameLen)
	errs = requireText(errs, "description", req.Description, maxEventDescriptionLen)
	errs = requireText(errs, "responsible", req.Responsible, maxEventResponsibleLen)
	if strings.TrimSpace(req.DateTime) == "" {
		errs = append(errs, "date_time is required")
	}
	if len(req.Rooms) == 0 {
		errs = append(errs, "rooms must contain at least one room id")
	}
	for _, id := range req.Rooms {
		if id <= 0 {
			errs = append(errs, "rooms must contain positive ids, got "+strconv.FormatInt(id, 10))
		}
	}
	return errs
}

// EventResponse is the API shape of an event with its rooms.
type EventResponse struct {
	ID                int64              `json:"id"`
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	DateTime          time.Time          `json:"date_time"`
	DateTimeFormatted string             `json:"date_time_formatted"`
	Responsible       string             `json:"responsible"`
	Rooms             []domain.EventRoom `json:"rooms"`
}

// CreateEventResponse is the data of POST /events.
type CreateEventResponse struct {
	ID int64 `json:"id"`
}

// EventSuccessResponse is the success response envelope for single-event endpoints.
type EventSuccessResponse struct {
	Data  EventResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsSuccessResponse is the success response envelope for event listings (200).
type ListEventsSuccessResponse struct {
	Data  []EventResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  CreateEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// EventController handles the event endpoints. Location is used to read
// zone-less date_time values and to render responses.
type EventController struct {
	Logger   *slog.Logger
	Service  domain.EventService
	Location *time.Location
}

// NewEventController creates an EventController.
func NewEventController(logger *slog.Logger, svc domain.EventService, loc *time.Location) *EventController {
	return &EventController{
		Logger:   logger,
		Service:  svc,
		Location: loc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns every event with its rooms, ordered by date_time.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains the events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.toResponses(events))
}

// ListEventsByDay godoc
// @Summary List events of one day
// @Description Returns the events of the given calendar day, or of today when day is omitted.
// @Tags events
// @Produce json
// @Param day query string false "Day as YYYY-MM-DD"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains the events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events_day [get]
func (c *EventController) ListEventsByDay(w http.ResponseWriter, r *http.Request) {
	day, err := helpers.ParseDay(r.URL.Query().Get("day"), c.Location)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	events, err := c.Service.ListEventsByDay(r.Context(), day)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.toResponses(events))
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event and its rooms"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.toResponse(event))
}

// CreateEvent godoc
// @Summary Book an event
// @Description Books the hour containing date_time in every listed room. Fails with 409 when any room is already booked for that hour, and with past_slot when the hour is not in the future.
// @Tags events
// @Accept json
// @Produce json
// @Param body body EventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the new event id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or past_slot"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	in, ok := c.decodeInput(w, r)
	if !ok {
		return
	}
	id, err := c.Service.CreateEvent(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{ID: id})
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Replaces the event's fields and rooms. The event may keep its own hour and rooms.
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param body body EventRequest true "Event data"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or past_slot"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	in, ok := c.decodeInput(w, r)
	if !ok {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.toResponse(event))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event and frees its rooms for that hour.
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} controllers.StatusSuccessResponse "data.status is deleted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), id); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.StatusResponse{Status: "deleted"})
}

func (c *EventController) decodeInput(w http.ResponseWriter, r *http.Request) (domain.EventInput, bool) {
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return domain.EventInput{}, false
	}
	dateTime, err := helpers.ParseDateTime(req.DateTime, c.Location)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return domain.EventInput{}, false
	}
	return domain.EventInput{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Responsible: strings.TrimSpace(req.Responsible),
		DateTime:    dateTime,
		RoomIDs:     req.Rooms,
	}, true
}

func (c *EventController) toResponse(e *domain.EventWithRooms) EventResponse {
	local := e.DateTime.In(c.Location)
	rooms := e.Rooms
	if rooms == nil {
		rooms = []domain.EventRoom{}
	}
	return EventResponse{
		ID:                e.ID,
		Name:              e.Name,
		Description:       e.Description,
		DateTime:          local,
		DateTimeFormatted: local.Format(dateTimeDisplayLayout),
		Responsible:       e.Responsible,
		Rooms:             rooms,
	}
}

func (c *EventController) toResponses(events []*domain.EventWithRooms) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, c.toResponse(e))
	}
	return out
}

package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"roombooking/internal/delivery/http/helpers"
	"roombooking/internal/domain"
)

const maxRoomFieldLen = 50

// RoomRequest is the request body for POST /rooms and PUT /rooms/{id}.
type RoomRequest struct {
	Name     string `json:"name"`
	Building string `json:"building"`
}

// Validate implements helpers.Validator.
func (req RoomRequest) Validate() []string {
	var errs []string
	errs = requireText(errs, "name", req.Name, maxRoomFieldLen)
	errs = requireText(errs, "building", req.Building, maxRoomFieldLen)
	return errs
}

// RoomSuccessResponse is the success response envelope for single-room endpoints.
type RoomSuccessResponse struct {
	Data  *domain.Room      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListRoomsSuccessResponse is the success response envelope for GET /rooms (200).
type ListRoomsSuccessResponse struct {
	Data  []*domain.Room    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// StatusSuccessResponse is the success response envelope for deletes (200).
type StatusSuccessResponse struct {
	Data  helpers.StatusResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// RoomController handles the room endpoints.
type RoomController struct {
	Logger  *slog.Logger
	Service domain.RoomService
}

// NewRoomController creates a RoomController with the given logger and service.
func NewRoomController(logger *slog.Logger, svc domain.RoomService) *RoomController {
	return &RoomController{
		Logger:  logger,
		Service: svc,
	}
}

// ListRooms godoc
// @Summary List rooms
// @Description Returns every room ordered by building, then name.
// @Tags rooms
// @Produce json
// @Success 200 {object} controllers.ListRoomsSuccessResponse "data contains the rooms"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms [get]
func (c *RoomController) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := c.Service.ListRooms(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rooms)
}

// GetRoom godoc
// @Summary Get a room
// @Tags rooms
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} controllers.RoomSuccessResponse "data contains the room"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms/{id} [get]
func (c *RoomController) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	room, err := c.Service.GetRoom(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, room)
}

// CreateRoom godoc
// @Summary Create a room
// @Description Creates a room. The (name, building) pair must be unique.
// @Tags rooms
// @Accept json
// @Produce json
// @Param body body RoomRequest true "Room data"
// @Success 201 {object} controllers.RoomSuccessResponse "data contains the created room"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms [post]
func (c *RoomController) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req RoomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	room, err := c.Service.CreateRoom(r.Context(), strings.TrimSpace(req.Name), strings.TrimSpace(req.Building))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, room)
}

// UpdateRoom godoc
// @Summary Update a room
// @Description Replaces the room's name and building. Events holding the room keep it.
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param body body RoomRequest true "Room data"
// @Success 200 {object} controllers.RoomSuccessResponse "data contains the updated room"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms/{id} [put]
func (c *RoomController) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	var req RoomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	room, err := c.Service.UpdateRoom(r.Context(), id, strings.TrimSpace(req.Name), strings.TrimSpace(req.Building))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, room)
}

// DeleteRoom godoc
// @Summary Delete a room
// @Description Deletes the room and releases every slot it held.
// @Tags rooms
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} controllers.StatusSuccessResponse "data.status is deleted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms/{id} [delete]
func (c *RoomController) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.DeleteRoom(r.Context(), id); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.StatusResponse{Status: "deleted"})
}

// requireText appends an error when value is blank or longer than limit runes.
func requireText(errs []string, field, value string, limit int) []string {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return append(errs, field+" is required")
	case utf8.RuneCountInString(value) > limit:
		return append(errs, field+" must be at most "+strconv.Itoa(limit)+" characters")
	}
	return errs
}

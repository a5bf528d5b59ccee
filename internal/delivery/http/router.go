package http

import (
	"net/http"

	_ "roombooking/docs"
	"roombooking/internal/delivery/http/controllers"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(rooms *controllers.RoomController, events *controllers.EventController, health *controllers.HealthController) *http.ServeMux {
	mux := http.NewServeMux()

	// Rooms
	mux.HandleFunc("GET /rooms", rooms.ListRooms)
	mux.HandleFunc("GET /rooms/{id}", rooms.GetRoom)
	mux.HandleFunc("POST /rooms", rooms.CreateRoom)
	mux.HandleFunc("PUT /rooms/{id}", rooms.UpdateRoom)
	mux.HandleFunc("DELETE /rooms/{id}", rooms.DeleteRoom)

	// Events
	mux.HandleFunc("GET /events", events.ListEvents)
	mux.HandleFunc("GET /events_day", events.ListEventsByDay)
	mux.HandleFunc("GET /events/{id}", events.GetEvent)
	mux.HandleFunc("POST /events", events.CreateEvent)
	mux.HandleFunc("PUT /events/{id}", events.UpdateEvent)
	mux.HandleFunc("DELETE /events/{id}", events.DeleteEvent)

	mux.HandleFunc("GET /healthz", health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

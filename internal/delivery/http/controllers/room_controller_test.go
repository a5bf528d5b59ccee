package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roombooking/internal/delivery/http/helpers"
	"roombooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRoomService implements domain.RoomService for handler tests.
type fakeRoomService struct {
	rooms     []*domain.Room
	room      *domain.Room
	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	lastID       int64
	lastName     string
	lastBuilding string
}

func (f *fakeRoomService) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	return f.rooms, f.listErr
}

func (f *fakeRoomService) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	f.lastID = id
	return f.room, f.getErr
}

func (f *fakeRoomService) CreateRoom(ctx context.Context, name, building string) (*domain.Room, error) {
	f.lastName, f.lastBuilding = name, building
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Room{ID: 3, Name: name, Building: building}, nil
}

func (f *fakeRoomService) UpdateRoom(ctx context.Context, id int64, name, building string) (*domain.Room, error) {
	f.lastID, f.lastName, f.lastBuilding = id, name, building
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &domain.Room{ID: id, Name: name, Building: building}, nil
}

func (f *fakeRoomService) DeleteRoom(ctx context.Context, id int64) error {
	f.lastID = id
	return f.deleteErr
}

func TestRoomController_ListRooms(t *testing.T) {
	fake := &fakeRoomService{rooms: []*domain.Room{
		{ID: 1, Name: "Sala 12", Building: "Bloco A"},
		{ID: 2, Name: "Sala 55", Building: "Bloco B"},
	}}
	ctrl := NewRoomController(testLogger, fake)

	rr := httptest.NewRecorder()
	ctrl.ListRooms(rr, httptest.NewRequest(http.MethodGet, "http://test/rooms", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var rooms []domain.Room
	envelope := decodeEnvelope(t, rr, &rooms)
	require.Nil(t, envelope.Error)
	require.Len(t, rooms, 2)
	assert.Equal(t, "Sala 55", rooms[1].Name)
}

func TestRoomController_GetRoom(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{name: "success", id: "1", wantStatus: http.StatusOK},
		{name: "not found", id: "9", fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantBodyCode: helpers.ErrCodeNotFound},
		{name: "invalid id", id: "-1", wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRoomService{room: &domain.Room{ID: 1, Name: "Sala 12", Building: "Bloco A"}, getErr: tt.fakeErr}
			ctrl := NewRoomController(testLogger, fake)

			req := httptest.NewRequest(http.MethodGet, "http://test/rooms/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			rr := httptest.NewRecorder()

			ctrl.GetRoom(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var room domain.Room
			envelope := decodeEnvelope(t, rr, &room)
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
				return
			}
			assert.Equal(t, "Sala 12", room.Name)
		})
	}
}

func TestRoomController_CreateRoom(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{name: "created", body: `{"name":" Sala 12 ","building":"Bloco A"}`, wantStatus: http.StatusCreated},
		{name: "missing building", body: `{"name":"Sala 12"}`, wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{name: "blank name", body: `{"name":"   ","building":"Bloco A"}`, wantStatus: http.StatusBadRequest, wantBodyCode: helpers.ErrCodeBadRequest},
		{
			name:         "building too long",
			body:         `{"name":"Sala 12","building":"` + strings.Repeat("b", 51) + `"}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{name: "duplicate", body: `{"name":"Sala 12","building":"Bloco A"}`, fakeErr: domain.ErrRoomExists, wantStatus: http.StatusConflict, wantBodyCode: helpers.ErrCodeConflict},
		{name: "service error", body: `{"name":"Sala 12","building":"Bloco A"}`, fakeErr: assert.AnError, wantStatus: http.StatusInternalServerError, wantBodyCode: helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRoomService{createErr: tt.fakeErr}
			ctrl := NewRoomController(testLogger, fake)

			req := httptest.NewRequest(http.MethodPost, "http://test/rooms", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			ctrl.CreateRoom(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var room domain.Room
			envelope := decodeEnvelope(t, rr, &room)
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
				return
			}
			assert.Equal(t, domain.Room{ID: 3, Name: "Sala 12", Building: "Bloco A"}, room)
		})
	}
}

func TestRoomController_UpdateRoom(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{name: "updated", id: "2", wantStatus: http.StatusOK},
		{name: "not found", id: "9999", fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantBodyCode: helpers.ErrCodeNotFound},
		{name: "collision", id: "2", fakeErr: domain.ErrRoomExists, wantStatus: http.StatusConflict, wantBodyCode: helpers.ErrCodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRoomService{updateErr: tt.fakeErr}
			ctrl := NewRoomController(testLogger, fake)

			req := httptest.NewRequest(http.MethodPut, "http://test/rooms/"+tt.id, strings.NewReader(`{"name":"Sala 7","building":"Bloco C"}`))
			req.SetPathValue("id", tt.id)
			rr := httptest.NewRecorder()

			ctrl.UpdateRoom(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr, nil)
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
				return
			}
			assert.Equal(t, int64(2), fake.lastID)
			assert.Equal(t, "Sala 7", fake.lastName)
			assert.Equal(t, "Bloco C", fake.lastBuilding)
		})
	}
}

func TestRoomController_DeleteRoom(t *testing.T) {
	fake := &fakeRoomService{}
	ctrl := NewRoomController(testLogger, fake)

	req := httptest.NewRequest(http.MethodDelete, "http://test/rooms/4", nil)
	req.SetPathValue("id", "4")
	rr := httptest.NewRecorder()

	ctrl.DeleteRoom(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"status":"deleted"},"error":null}`, rr.Body.String())
	assert.Equal(t, int64(4), fake.lastID)

	fake.deleteErr = domain.ErrNotFound
	rr = httptest.NewRecorder()
	ctrl.DeleteRoom(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"letsdraw/internal/game"
)

type stubRooms struct {
	views map[string]game.RoomView
}

func (s stubRooms) Rooms() []game.RoomView {
	out := make([]game.RoomView, 0, len(s.views))
	for _, code := range []string{"ABCD", "WXYZ"} {
		if v, ok := s.views[code]; ok {
			out = append(out, v)
		}
	}
	return out
}

func (s stubRooms) Room(code string) (game.RoomView, error) {
	v, ok := s.views[code]
	if !ok {
		return game.RoomView{}, game.ErrRoomNotFound
	}
	return v, nil
}

func newTestRouter(t *testing.T, staticDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewRouter(Deps{
		Rooms: stubRooms{views: map[string]game.RoomView{
			"ABCD": {Code: "ABCD", Phase: game.PhaseDrawing, Round: 2, Players: []game.PlayerView{{ID: "a", Name: "Alice", Score: 10}}},
			"WXYZ": {Code: "WXYZ", Phase: game.PhaseChoosing, Round: 1},
		}},
		Connections: func() int { return 3 },
		Health: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"healthy"}`))
		},
		WebSocket: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		},
		StaticDir: staticDir,
	})
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter_ListRooms(t *testing.T) {
	rec := get(newTestRouter(t, ""), "/rooms")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Rooms       []game.RoomView `json:"rooms"`
		Count       int             `json:"count"`
		Connections *int            `json:"connections"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "ABCD", body.Rooms[0].Code)
	assert.Equal(t, "WXYZ", body.Rooms[1].Code)
	require.NotNil(t, body.Connections)
	assert.Equal(t, 3, *body.Connections)
}

func TestRouter_ListRoomsWithoutConnectionCounter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(Deps{
		Rooms:     stubRooms{},
		Health:    func(w http.ResponseWriter, r *http.Request) {},
		WebSocket: func(w http.ResponseWriter, r *http.Request) {},
	})

	rec := get(router, "/rooms")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(0), body["count"])
	assert.NotContains(t, body, "connections")
}

func TestRouter_GetRoom(t *testing.T) {
	router := newTestRouter(t, "")

	rec := get(router, "/rooms/ABCD")
	require.Equal(t, http.StatusOK, rec.Code)
	var view game.RoomView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, game.PhaseDrawing, view.Phase)
	assert.Equal(t, "Alice", view.Players[0].Name)

	rec = get(router, "/rooms/NOPE")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_HealthAndWebSocketAreMounted(t *testing.T) {
	router := newTestRouter(t, "")

	assert.Equal(t, http.StatusOK, get(router, "/health").Code)
	assert.Equal(t, http.StatusTeapot, get(router, "/ws").Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/index.html").Code)
}

func TestRouter_CORS(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	req.Header.Set("Origin", "http://client.test")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_StaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>letsdraw</h1>"), 0o644))

	rec := get(newTestRouter(t, dir), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "letsdraw")
}

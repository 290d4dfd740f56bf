package endpoints

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castell-digital/marquee/internal/db"
	"github.com/castell-digital/marquee/internal/http/api"
	"github.com/castell-digital/marquee/internal/model"
)

// fakeStore embeds db.Store so only the methods a test exercises need real
// implementations; anything else panics loudly.
type fakeStore struct {
	db.Store

	screens   map[int]model.Screen
	nextID    int
	playlists map[int]model.Playlist
	assigned  map[int][]int
	events    map[int][]model.ScreenEvent
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		screens:   make(map[int]model.Screen),
		nextID:    1,
		playlists: make(map[int]model.Playlist),
		assigned:  make(map[int][]int),
		events:    make(map[int][]model.ScreenEvent),
	}
}

func (f *fakeStore) addScreen(sc model.Screen) model.Screen {
	sc.ID = f.nextID
	f.nextID++
	f.screens[sc.ID] = sc
	return sc
}

func (f *fakeStore) CreateScreen(name string, location *string, token string) (model.Screen, error) {
	return f.addScreen(model.Screen{
		Name:     name,
		Location: location,
		APIToken: token,
		Status:   model.ScreenStatusInactive,
	}), nil
}

func (f *fakeStore) GetScreenByID(id int) (model.Screen, error) {
	sc, ok := f.screens[id]
	if !ok {
		return model.Screen{}, db.ErrNotFound
	}
	return sc, nil
}

func (f *fakeStore) ListScreens() ([]model.Screen, error) {
	out := make([]model.Screen, 0, len(f.screens))
	for id := 1; id < f.nextID; id++ {
		if sc, ok := f.screens[id]; ok {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (f *fakeStore) GetPlaylistByID(id int) (model.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok {
		return model.Playlist{}, db.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) UpdatePlaylistSchedule(id int, startDate, endDate *time.Time, startTime, endTime, weekdays *string, priority *int) error {
	p, ok := f.playlists[id]
	if !ok {
		return db.ErrNotFound
	}
	p.StartDate = startDate
	p.EndDate = endDate
	p.StartTime = startTime
	p.EndTime = endTime
	if weekdays != nil {
		p.Weekdays = *weekdays
	}
	if priority != nil {
		p.Priority = *priority
	}
	f.playlists[id] = p
	return nil
}

func (f *fakeStore) ListScreensWithPlaylist(playlistID int) ([]model.Screen, error) {
	return nil, nil
}

func (f *fakeStore) AssignPlaylistToScreen(screenID, playlistID int) error {
	f.assigned[screenID] = append(f.assigned[screenID], playlistID)
	return nil
}

func (f *fakeStore) AppendEvent(screenID int, action string, contentID *int, details model.JSONMap) (model.ScreenEvent, error) {
	if _, ok := f.screens[screenID]; !ok {
		return model.ScreenEvent{}, db.ErrNotFound
	}
	ev := model.ScreenEvent{
		ID:        len(f.events[screenID]) + 1,
		ScreenID:  screenID,
		ContentID: contentID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	}
	f.events[screenID] = append(f.events[screenID], ev)
	return ev, nil
}

// ListEvents returns newest first, like the real store.
func (f *fakeStore) ListEvents(screenID, limit int) ([]model.ScreenEvent, error) {
	all := f.events[screenID]
	out := make([]model.ScreenEvent, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, all[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// asAdmin injects an authenticated admin without going through JWT issuance.
func asAdmin(user *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("currentUser", user)
		c.Next()
	}
}

func newAdminRouter(store *fakeStore, modules ...api.Module) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	admin := &model.User{ID: 1, Email: "ops@example.com"}
	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/admin",
		Store:      store,
		Middleware: []gin.HandlerFunc{asAdmin(admin)},
	}, modules...)
	return r
}

func adminJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListScreensComputesOnlineBadge(t *testing.T) {
	store := newFakeStore()
	fresh := time.Now().Add(-time.Minute)
	stale := time.Now().Add(-time.Hour)
	store.addScreen(model.Screen{Name: "Lobby", Status: model.ScreenStatusActive, LastHeartbeat: &fresh})
	store.addScreen(model.Screen{Name: "Cafe", Status: model.ScreenStatusActive, LastHeartbeat: &stale})
	store.addScreen(model.Screen{Name: "New", Status: model.ScreenStatusInactive})

	r := newAdminRouter(store, ScreenModule(store))
	w := adminJSON(r, http.MethodGet, "/api/admin/screens", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []struct {
		Name   string `json:"name"`
		Online bool   `json:"online"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 3)
	assert.True(t, resp[0].Online)
	assert.False(t, resp[1].Online, "stale heartbeat means offline regardless of status")
	assert.False(t, resp[2].Online)
}

func TestCreateScreenReturnsTokenOnce(t *testing.T) {
	store := newFakeStore()
	r := newAdminRouter(store, ScreenModule(store))

	w := adminJSON(r, http.MethodPost, "/api/admin/screens", `{"name":"Lobby"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created["api_token"])

	// the token never appears on plain reads
	w = adminJSON(r, http.MethodGet, "/api/admin/screens/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.NotContains(t, fetched, "api_token")
}

func TestAssignPlaylistUnknownPlaylist(t *testing.T) {
	store := newFakeStore()
	store.addScreen(model.Screen{Name: "Lobby"})
	r := newAdminRouter(store, ScreenModule(store))

	w := adminJSON(r, http.MethodPost, "/api/admin/screens/1/playlists", `{"playlist_id":99}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, store.assigned[1])
}

func TestListEventsUnknownScreen(t *testing.T) {
	store := newFakeStore()
	r := newAdminRouter(store, ScreenModule(store))

	w := adminJSON(r, http.MethodGet, "/api/admin/screens/7/events", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListEventsNewestFirstWithLimit(t *testing.T) {
	store := newFakeStore()
	store.addScreen(model.Screen{Name: "Lobby"})
	for _, action := range []string{"boot", "content_shown", "error"} {
		_, err := store.AppendEvent(1, action, nil, model.JSONMap{})
		require.NoError(t, err)
	}

	r := newAdminRouter(store, ScreenModule(store))
	w := adminJSON(r, http.MethodGet, "/api/admin/screens/1/events?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []struct {
		Action string `json:"action"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "error", resp[0].Action)
	assert.Equal(t, "content_shown", resp[1].Action)
}

func TestExportEventsCSV(t *testing.T) {
	store := newFakeStore()
	store.addScreen(model.Screen{Name: "Lobby"})
	cid := 42
	_, err := store.AppendEvent(1, "content_shown", &cid, model.JSONMap{"duration_ms": float64(9800)})
	require.NoError(t, err)

	r := newAdminRouter(store, ScreenModule(store))
	w := adminJSON(r, http.MethodGet, "/api/admin/screens/1/events/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "logs_Lobby_")

	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"timestamp", "action", "details"}, records[0])
	assert.Equal(t, "content_shown", records[1][1])
	assert.JSONEq(t, `{"duration_ms":9800}`, records[1][2])
}

func TestUpdateScheduleRejectsBadWeekdays(t *testing.T) {
	store := newFakeStore()
	store.playlists[3] = model.Playlist{ID: 3, Name: "Menu", Active: true}
	r := newAdminRouter(store, PlaylistModule(store))

	w := adminJSON(r, http.MethodPut, "/api/admin/playlists/3/schedule", `{"weekdays":"0,7"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "", store.playlists[3].Weekdays)
}

func TestUpdateScheduleStoresWindow(t *testing.T) {
	store := newFakeStore()
	store.playlists[3] = model.Playlist{ID: 3, Name: "Menu", Active: true}
	r := newAdminRouter(store, PlaylistModule(store))

	w := adminJSON(r, http.MethodPut, "/api/admin/playlists/3/schedule",
		`{"start_date":"2026-09-01","end_date":"2026-09-30","start_time":"09:00","end_time":"17:00","weekdays":"0,1,2,3,4","priority":5}`)
	require.Equal(t, http.StatusOK, w.Code)

	p := store.playlists[3]
	require.NotNil(t, p.StartDate)
	assert.Equal(t, 2026, p.StartDate.Year())
	require.NotNil(t, p.StartTime)
	assert.Equal(t, "09:00", *p.StartTime)
	assert.Equal(t, "0,1,2,3,4", p.Weekdays)
	assert.Equal(t, 5, p.Priority)
}

package endpoints

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/castell-digital/marquee/internal/db"
	"github.com/castell-digital/marquee/internal/http/api"
	"github.com/castell-digital/marquee/internal/http/api/admin/packets"
	"github.com/castell-digital/marquee/internal/liveness"
	"github.com/castell-digital/marquee/internal/model"
	"github.com/castell-digital/marquee/internal/push"
)

type ScreenController struct {
	store db.Store
}

func newScreenController(store db.Store) *ScreenController {
	return &ScreenController{store: store}
}

// ScreenModule mounts all authenticated /screens endpoints.
func ScreenModule(store db.Store) api.Module {
	ctl := newScreenController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/screens", api.ResolveEndpointWithAuth(ctl.listScreens))
		c.POST("/screens", api.ResolveEndpointWithAuth(ctl.createScreen))
		c.GET("/screens/:id", api.ResolveEndpointWithAuth(ctl.getScreen))
		c.PUT("/screens/:id", api.ResolveEndpointWithAuth(ctl.updateScreen))
		c.DELETE("/screens/:id", api.ResolveEndpointWithAuth(ctl.deleteScreen))

		c.GET("/screens/:id/status", api.ResolveEndpointWithAuth(ctl.screenStatus))
		c.POST("/screens/:id/restart", api.ResolveEndpointWithAuth(ctl.restartScreen))

		c.POST("/screens/:id/playlists", api.ResolveEndpointWithAuth(ctl.assignPlaylist))
		c.DELETE("/screens/:id/playlists/:playlist_id", api.ResolveEndpointWithAuth(ctl.unassignPlaylist))

		c.GET("/screens/:id/events", api.ResolveEndpointWithAuth(ctl.listEvents))
		// streams CSV directly, so it bypasses the JSON wrapper
		c.GET("/screens/:id/events/export", ctl.exportEvents)
	})
}

func mapScreen(s model.Screen, now time.Time) packets.ScreenResponse {
	return packets.ScreenResponse{
		ID:            s.ID,
		Name:          s.Name,
		Location:      s.Location,
		Status:        s.Status,
		Online:        liveness.IsOnline(s, now),
		LastHeartbeat: s.LastHeartbeat,
		AppVersion:    s.AppVersion,
		DeviceInfo:    s.DeviceInfo,
		Tags:          s.Tags,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.Format(time.RFC3339),
	}
}

func mapEvent(ev model.ScreenEvent) packets.ScreenEventResponse {
	return packets.ScreenEventResponse{
		ID:        ev.ID,
		Action:    ev.Action,
		ContentID: ev.ContentID,
		Details:   ev.Details,
		Timestamp: ev.Timestamp,
	}
}

func screenIDParam(ctx *gin.Context) (int, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	return id, nil
}

func (s *ScreenController) listScreens(_ *gin.Context, _ *model.User) (any, *api.APIError) {
	all, err := s.store.ListScreens()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list screens"}
	}

	now := time.Now()
	out := make([]packets.ScreenResponse, 0, len(all))
	for _, sc := range all {
		out = append(out, mapScreen(sc, now))
	}
	return out, nil
}

func (s *ScreenController) createScreen(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	var req packets.CreateScreenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	token := uuid.NewString()
	screen, err := s.store.CreateScreen(req.Name, req.Location, token)
	if err != nil {
		log.Error().Err(err).Msg("[screens] create failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create screen"}
	}

	ctx.Status(http.StatusCreated)
	return packets.CreatedScreenResponse{
		ScreenResponse: mapScreen(screen, time.Now()),
		APIToken:       screen.APIToken,
	}, nil
}

func (s *ScreenController) getScreen(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := screenIDParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	sc, err := s.store.GetScreenByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	return mapScreen(sc, time.Now()), nil
}

func (s *ScreenController) updateScreen(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := screenIDParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var req packets.UpdateScreenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := s.store.UpdateScreen(id, req.Name, req.Location, req.Status, req.Tags); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update screen"}
	}

	updated, err := s.store.GetScreenByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load screen"}
	}
	return mapScreen(updated, time.Now()), nil
}

func (s *ScreenController) deleteScreen(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := screenIDParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := s.store.DeleteScreen(id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete screen"}
	}
	return gin.H{"deleted": id}, nil
}

// screenStatus aggregates what the dashboard's detail page needs: the screen
// with its computed online badge, its active playlists and recent events.
func (s *ScreenController) screenStatus(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := screenIDParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	sc, err := s.store.GetScreenByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}

	playlists, err := s.store.GetActivePlaylistsForScreen(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load playlists"}
	}
	events, err := s.store.ListEvents(id, 10)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load events"}
	}

	resp := packets.ScreenStatusResponse{
		Screen:       mapScreen(sc, time.Now()),
		Playlists:    make([]packets.PlaylistResponse, 0, len(playlists)),
		RecentEvents: make([]packets.ScreenEventResponse, 0, len(events)),
	}
	for _, p := range playlists {
		resp.Playlists = append(resp.Playlists, mapPlaylist(p))
	}
	for _, ev := range events {
		resp.RecentEvents = append(resp.RecentEvents, mapEvent(ev))
	}
	return resp, nil
}

func (s *ScreenController) restartScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, apiErr := screenIDParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if _, err := s.store.GetScreenByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}

	push.NotifyScreen(id, push.CommandRestart)

	if _, err := s.store.AppendEvent(id, "restart_requested", nil, model.JSONMap{"requested_by": user.Email}); err != nil {
		log.Warn().Err(err).Int("screen_id", id).Msg("[screens] failed to log restart request")
	}
	return gin.H{"status": "restart sent"}, nil
}

func (s *ScreenController) assignPlaylist(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := screenIDParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if _, err := s.store.GetScreenByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}

	var req packets.AssignPlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if _, err := s.store.GetPlaylistByID(req.PlaylistID); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "playlist not found"}
	}

	if err := s.store.AssignPlaylistToScreen(id, req.PlaylistID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not assign playlist"}
	}

	push.NotifyScreen(id, push.CommandRefresh)
	return gin.H{"assigned": req.PlaylistID}, nil
}

func (s *ScreenController) unassignPlaylist(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := screenIDParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	playlistID, err := strconv.Atoi(ctx.Param("playlist_id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid playlist id"}
	}

	if err := s.store.UnassignPlaylistFromScreen(id, playlistID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not unassign playlist"}
	}

	push.NotifyScreen(id, push.CommandRefresh)
	return gin.H{"unassigned": playlistID}, nil
}

func (s *ScreenController) listEvents(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := screenIDParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if _, err := s.store.GetScreenByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}

	limit := 50
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid limit"}
		}
		limit = n
	}

	events, err := s.store.ListEvents(id, limit)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list events"}
	}

	out := make([]packets.ScreenEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, mapEvent(ev))
	}
	return out, nil
}

// exportEvents streams the screen's full event log as CSV, newest first,
// with columns timestamp, action, details.
func (s *ScreenController) exportEvents(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	sc, err := s.store.GetScreenByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "screen not found"})
		return
	}

	events, err := s.store.ListEvents(id, 0)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not list events"})
		return
	}

	filename := fmt.Sprintf("logs_%s_%s.csv", sc.Name, time.Now().Format("20060102_150405"))
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Status(http.StatusOK)

	w := csv.NewWriter(ctx.Writer)
	_ = w.Write([]string{"timestamp", "action", "details"})
	for _, ev := range events {
		details, _ := json.Marshal(ev.Details)
		_ = w.Write([]string{
			ev.Timestamp.Format("2006-01-02 15:04:05"),
			ev.Action,
			string(details),
		})
	}
	w.Flush()
}

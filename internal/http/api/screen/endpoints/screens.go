package endpoints

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/castell-digital/marquee/internal/db"
	"github.com/castell-digital/marquee/internal/http/api"
	"github.com/castell-digital/marquee/internal/http/api/screen/packets"
	"github.com/castell-digital/marquee/internal/liveness"
	"github.com/castell-digital/marquee/internal/model"
	"github.com/castell-digital/marquee/internal/schedule"
)

type DeviceController struct {
	store   db.Store
	tracker *liveness.Tracker
}

func newDeviceController(store db.Store, tracker *liveness.Tracker) *DeviceController {
	return &DeviceController{store: store, tracker: tracker}
}

// RegistrationModule mounts the single public device endpoint: first-boot
// registration, which issues the screen's bearer token.
func RegistrationModule(store db.Store, tracker *liveness.Tracker) api.Module {
	ctl := newDeviceController(store, tracker)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/register", api.ResolveEndpoint(ctl.register))
	})
}

// DeviceModule mounts every endpoint authenticated by the screen token.
func DeviceModule(store db.Store, tracker *liveness.Tracker) api.Module {
	ctl := newDeviceController(store, tracker)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/heartbeat", api.ResolveEndpointWithScreen(ctl.heartbeat))
		c.GET("/playlist", api.ResolveEndpointWithScreen(ctl.currentPlaylist))
		c.POST("/events", api.ResolveEndpointWithScreen(ctl.logEvent))
	})
}

// register creates a screen with a generated name and a fresh token, then
// records the registration call as its first heartbeat. Both request fields
// are optional, so a bodyless POST is fine.
func (d *DeviceController) register(ctx *gin.Context) (any, *api.APIError) {
	var req packets.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	existing, err := d.store.ListScreens()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not register screen"}
	}
	name := fmt.Sprintf("Screen %d", len(existing)+1)

	screen, err := d.store.CreateScreen(name, nil, uuid.NewString())
	if err != nil {
		log.Error().Err(err).Msg("[device] register: create failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not register screen"}
	}

	if err := d.tracker.RecordHeartbeat(ctx, screen.ID, req.AppVersion, req.DeviceInfo); err != nil {
		log.Error().Err(err).Int("screen_id", screen.ID).Msg("[device] register: heartbeat failed")
	}

	ctx.Status(http.StatusCreated)
	return packets.RegisterResponse{
		ScreenID: screen.ID,
		APIToken: screen.APIToken,
		Name:     screen.Name,
		Location: screen.Location,
	}, nil
}

// heartbeat refreshes the screen's liveness timestamp. A bare POST with no
// body is a valid heartbeat.
func (d *DeviceController) heartbeat(ctx *gin.Context, screen *model.Screen) (any, *api.APIError) {
	var req packets.HeartbeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := d.tracker.RecordHeartbeat(ctx, screen.ID, req.AppVersion, req.DeviceInfo); err != nil {
		log.Error().Err(err).Int("screen_id", screen.ID).Msg("[device] heartbeat failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not record heartbeat"}
	}

	return packets.HeartbeatResponse{Status: "ok", ScreenID: screen.ID, Name: screen.Name}, nil
}

// currentPlaylist answers "what should I show now". The resolver picks the
// winning playlist by schedule match and priority, falling back to the
// highest-priority active playlist so a screen with any active assignment
// never goes dark. No assignment at all is a normal empty decision.
func (d *DeviceController) currentPlaylist(_ *gin.Context, screen *model.Screen) (any, *api.APIError) {
	assigned, err := d.store.GetActivePlaylistsForScreen(screen.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load playlists"}
	}

	decision := schedule.Resolve(assigned, time.Now())
	if decision.Playlist == nil {
		return packets.NothingToShowResponse{
			Message:     "no active playlist assigned",
			Diagnostics: decision.Diagnostics,
		}, nil
	}

	items, err := d.store.ListPlaylistItems(decision.Playlist.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load playlist items"}
	}

	resp := packets.CurrentPlaylistResponse{
		PlaylistID:   decision.Playlist.ID,
		Name:         decision.Playlist.Name,
		Priority:     decision.Playlist.Priority,
		Items:        make([]packets.PlaylistItemResponse, 0, len(items)),
		FallbackUsed: decision.FallbackUsed,
		Diagnostics:  decision.Diagnostics,
	}
	for _, it := range items {
		if it.Content == nil {
			continue
		}
		resp.Items = append(resp.Items, packets.PlaylistItemResponse{
			ContentID: it.ContentID,
			Title:     it.Content.Title,
			Type:      it.Content.Type,
			Source:    it.Content.Source(),
			Duration:  it.Content.Duration,
		})
	}
	return resp, nil
}

func (d *DeviceController) logEvent(ctx *gin.Context, screen *model.Screen) (any, *api.APIError) {
	var req packets.LogEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	ev, err := d.store.AppendEvent(screen.ID, req.Action, req.ContentID, req.Details)
	if err != nil {
		log.Error().Err(err).Int("screen_id", screen.ID).Msg("[device] logEvent failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not log event"}
	}

	return packets.LogEventResponse{Status: "logged", EventID: ev.ID}, nil
}

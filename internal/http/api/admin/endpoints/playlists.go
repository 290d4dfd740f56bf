package endpoints

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/castell-digital/marquee/internal/db"
	"github.com/castell-digital/marquee/internal/http/api"
	"github.com/castell-digital/marquee/internal/http/api/admin/packets"
	"github.com/castell-digital/marquee/internal/model"
	"github.com/castell-digital/marquee/internal/push"
	"github.com/castell-digital/marquee/internal/schedule"
)

type PlaylistController struct {
	store db.Store
}

func newPlaylistController(store db.Store) *PlaylistController {
	return &PlaylistController{store: store}
}

// PlaylistModule mounts all authenticated /playlists endpoints.
func PlaylistModule(store db.Store) api.Module {
	ctl := newPlaylistController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/playlists", api.ResolveEndpointWithAuth(ctl.listPlaylists))
		c.POST("/playlists", api.ResolveEndpointWithAuth(ctl.createPlaylist))
		c.GET("/playlists/:id", api.ResolveEndpointWithAuth(ctl.getPlaylist))
		c.PUT("/playlists/:id", api.ResolveEndpointWithAuth(ctl.updatePlaylist))
		c.PUT("/playlists/:id/schedule", api.ResolveEndpointWithAuth(ctl.updateSchedule))
		c.DELETE("/playlists/:id", api.ResolveEndpointWithAuth(ctl.deletePlaylist))

		c.POST("/playlists/:id/items", api.ResolveEndpointWithAuth(ctl.addItem))
		c.PUT("/playlists/:id/items", api.ResolveEndpointWithAuth(ctl.reorderItems))
		c.PUT("/playlists/:id/items/:item_id", api.ResolveEndpointWithAuth(ctl.updateItem))
		c.DELETE("/playlists/:id/items/:item_id", api.ResolveEndpointWithAuth(ctl.removeItem))
	})
}

// notifyScreensPlaylistUpdated pushes a refresh to every screen the playlist
// is assigned to so players re-poll without waiting for the next cycle.
func (p *PlaylistController) notifyScreensPlaylistUpdated(playlistID int) {
	screens, err := p.store.ListScreensWithPlaylist(playlistID)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).
			Msg("failed to get screens for playlist notification")
		return
	}
	if len(screens) == 0 {
		log.Debug().Int("playlist_id", playlistID).Msg("no screens assigned to playlist")
		return
	}
	push.NotifyScreens(screens, push.CommandRefresh)
	log.Info().Int("playlist_id", playlistID).Int("affected_screens", len(screens)).
		Msg("playlist updated, refresh pushed to assigned screens")
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func mapPlaylist(pl model.Playlist) packets.PlaylistResponse {
	items := make([]packets.PlaylistItemResponse, len(pl.Items))
	for i, it := range pl.Items {
		items[i] = mapPlaylistItem(it)
	}

	var desc string
	if pl.Description != nil {
		desc = *pl.Description
	}

	return packets.PlaylistResponse{
		ID:          pl.ID,
		Name:        pl.Name,
		Description: desc,
		Active:      pl.Active,
		StartDate:   formatDate(pl.StartDate),
		EndDate:     formatDate(pl.EndDate),
		StartTime:   pl.StartTime,
		EndTime:     pl.EndTime,
		Weekdays:    pl.Weekdays,
		Priority:    pl.Priority,
		Items:       items,
		CreatedAt:   pl.CreatedAt,
		UpdatedAt:   pl.UpdatedAt,
	}
}

func mapPlaylistItem(it model.PlaylistItem) packets.PlaylistItemResponse {
	resp := packets.PlaylistItemResponse{
		ID:        it.ID,
		ContentID: it.ContentID,
		Position:  it.Position,
	}
	if it.Content != nil {
		c := mapContent(*it.Content)
		resp.Content = &c
	}
	return resp
}

func (p *PlaylistController) listPlaylists(_ *gin.Context, _ *model.User) (any, *api.APIError) {
	all, err := p.store.ListPlaylists()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list playlists"}
	}
	out := make([]packets.PlaylistResponse, 0, len(all))
	for _, pl := range all {
		out = append(out, mapPlaylist(pl))
	}
	return out, nil
}

func (p *PlaylistController) createPlaylist(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	var req packets.CreatePlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	pl, err := p.store.CreatePlaylist(req.Name, req.Description)
	if err != nil {
		log.Error().Err(err).Msg("[playlists] create failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create playlist"}
	}

	ctx.Status(http.StatusCreated)
	return mapPlaylist(pl), nil
}

func (p *PlaylistController) getPlaylist(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	pl, err := p.store.GetPlaylistByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "playlist not found"}
	}
	return mapPlaylist(pl), nil
}

func (p *PlaylistController) updatePlaylist(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var req packets.UpdatePlaylistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := p.store.UpdatePlaylist(id, req.Name, req.Description, req.Active); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "playlist not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update playlist"}
	}

	p.notifyScreensPlaylistUpdated(id)

	pl, err := p.store.GetPlaylistByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load playlist"}
	}
	return mapPlaylist(pl), nil
}

// updateSchedule parses and writes the scheduling constraints the resolver
// evaluates. Sending null for a date/time field clears that bound.
func (p *PlaylistController) updateSchedule(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var req packets.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	startDate, apiErr := parseDateField(req.StartDate, "start_date")
	if apiErr != nil {
		return nil, apiErr
	}
	endDate, apiErr := parseDateField(req.EndDate, "end_date")
	if apiErr != nil {
		return nil, apiErr
	}
	if apiErr := checkTimeField(req.StartTime, "start_time"); apiErr != nil {
		return nil, apiErr
	}
	if apiErr := checkTimeField(req.EndTime, "end_time"); apiErr != nil {
		return nil, apiErr
	}
	if req.Weekdays != nil && !schedule.ValidWeekdays(*req.Weekdays) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid weekdays"}
	}

	if err := p.store.UpdatePlaylistSchedule(id, startDate, endDate, req.StartTime, req.EndTime, req.Weekdays, req.Priority); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "playlist not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update schedule"}
	}

	p.notifyScreensPlaylistUpdated(id)

	pl, err := p.store.GetPlaylistByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load playlist"}
	}
	return mapPlaylist(pl), nil
}

func parseDateField(raw *string, field string) (*time.Time, *api.APIError) {
	if raw == nil {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid " + field}
	}
	return &t, nil
}

func checkTimeField(raw *string, field string) *api.APIError {
	if raw == nil {
		return nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if _, err := time.Parse(layout, *raw); err == nil {
			return nil
		}
	}
	return &api.APIError{Code: http.StatusBadRequest, Message: "invalid " + field}
}

func (p *PlaylistController) deletePlaylist(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	p.notifyScreensPlaylistUpdated(id)

	if err := p.store.DeletePlaylist(id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "playlist not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete playlist"}
	}
	return gin.H{"deleted": id}, nil
}

func (p *PlaylistController) addItem(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var req packets.AddPlaylistItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := p.store.GetPlaylistByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "playlist not found"}
	}
	if _, err := p.store.GetContentByID(req.ContentID); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "content not found"}
	}

	it, err := p.store.AddItemToPlaylist(id, req.ContentID, req.Position)
	if err != nil {
		if errors.Is(err, db.ErrConflict) {
			return nil, &api.APIError{Code: http.StatusConflict, Message: "content already in playlist"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not add item"}
	}

	p.notifyScreensPlaylistUpdated(id)

	ctx.Status(http.StatusCreated)
	return mapPlaylistItem(it), nil
}

func (p *PlaylistController) updateItem(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	itemID, err := strconv.Atoi(ctx.Param("item_id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid item id"}
	}

	var req packets.UpdatePlaylistItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := p.store.UpdatePlaylistItem(itemID, req.Position); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "item not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update item"}
	}

	p.notifyScreensPlaylistUpdated(id)
	return gin.H{"updated": itemID}, nil
}

func (p *PlaylistController) removeItem(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	itemID, err := strconv.Atoi(ctx.Param("item_id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid item id"}
	}

	if err := p.store.RemovePlaylistItem(itemID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "item not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not remove item"}
	}

	p.notifyScreensPlaylistUpdated(id)
	return gin.H{"removed": itemID}, nil
}

func (p *PlaylistController) reorderItems(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var req packets.ReorderPlaylistItemsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := p.store.ReorderPlaylistItems(id, req.ItemIDs); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not reorder items"}
	}

	p.notifyScreensPlaylistUpdated(id)

	items, err := p.store.ListPlaylistItems(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load items"}
	}
	out := make([]packets.PlaylistItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, mapPlaylistItem(it))
	}
	return out, nil
}

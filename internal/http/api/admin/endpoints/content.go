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
	"github.com/castell-digital/marquee/internal/storage"
)

type ContentController struct {
	store   db.Store
	storage storage.Storage
}

func newContentController(store db.Store, storage storage.Storage) *ContentController {
	return &ContentController{store: store, storage: storage}
}

// ContentModule mounts all authenticated /content endpoints.
func ContentModule(store db.Store, storage storage.Storage) api.Module {
	ctl := newContentController(store, storage)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/content", api.ResolveEndpointWithAuth(ctl.listContent))
		c.GET("/content/:id", api.ResolveEndpointWithAuth(ctl.getContent))
		c.POST("/content", api.ResolveEndpointWithAuth(ctl.createContent))
		c.PUT("/content/:id", api.ResolveEndpointWithAuth(ctl.updateContent))
		c.PUT("/content/:id/file", api.ResolveEndpointWithAuth(ctl.replaceFile))
		c.DELETE("/content/:id", api.ResolveEndpointWithAuth(ctl.deleteContent))
	})
}

func mapContent(x model.Content) packets.ContentResponse {
	return packets.ContentResponse{
		ID:        x.ID,
		Title:     x.Title,
		Type:      x.Type,
		FilePath:  x.FilePath,
		URL:       x.URL,
		Duration:  x.Duration,
		FileSize:  x.FileSize,
		Checksum:  x.Checksum,
		Active:    x.Active,
		CreatedAt: x.CreatedAt.Format(time.RFC3339),
		UpdatedAt: x.UpdatedAt.Format(time.RFC3339),
	}
}

func validContentType(typ string) bool {
	switch typ {
	case model.ContentTypeImage, model.ContentTypeVideo, model.ContentTypePDF, model.ContentTypeWeb:
		return true
	}
	return false
}

func (c *ContentController) listContent(_ *gin.Context, _ *model.User) (any, *api.APIError) {
	all, err := c.store.ListContent()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list content"}
	}
	out := make([]packets.ContentResponse, 0, len(all))
	for _, x := range all {
		out = append(out, mapContent(x))
	}
	return out, nil
}

func (c *ContentController) getContent(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	x, err := c.store.GetContentByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "content not found"}
	}
	return mapContent(x), nil
}

// createContent accepts a multipart form. image/video/pdf require a "source"
// file whose size and md5 checksum are derived while storing; web requires a
// "url" instead. The two payload kinds are mutually exclusive.
func (c *ContentController) createContent(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	title := ctx.PostForm("title")
	typeVal := ctx.PostForm("type")
	if title == "" || !validContentType(typeVal) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "missing or invalid form fields"}
	}

	duration := 10
	if raw := ctx.PostForm("duration"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid duration"}
		}
		duration = n
	}

	var (
		filePath *string
		url      *string
		fileSize int64
		checksum *string
	)
	if typeVal == model.ContentTypeWeb {
		u := ctx.PostForm("url")
		if u == "" {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "url is required for web content"}
		}
		url = &u
	} else {
		fileHeader, err := ctx.FormFile("source")
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "file is required"}
		}
		saved, err := c.storage.SaveFile(fileHeader, fileHeader.Filename)
		if err != nil {
			log.Error().Err(err).Msg("[content] createContent: save failed")
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save file"}
		}
		filePath = &saved.Location
		fileSize = saved.Size
		checksum = &saved.Checksum
	}

	content, err := c.store.CreateContent(title, typeVal, filePath, url, duration, fileSize, checksum)
	if err != nil {
		log.Error().Err(err).Msg("[content] createContent: insert failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create content"}
	}

	ctx.Status(http.StatusCreated)
	return mapContent(content), nil
}

func (c *ContentController) updateContent(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var req packets.UpdateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if req.Duration != nil && *req.Duration <= 0 {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid duration"}
	}

	if err := c.store.UpdateContent(id, req.Title, req.URL, req.Duration, req.Active); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "content not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update content"}
	}

	updated, err := c.store.GetContentByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load content"}
	}
	return mapContent(updated), nil
}

// replaceFile rewrites the stored payload for file-backed content and
// recomputes the derived size/checksum columns.
func (c *ContentController) replaceFile(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	existing, err := c.store.GetContentByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "content not found"}
	}
	if existing.Type == model.ContentTypeWeb {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "web content has no file payload"}
	}

	fileHeader, err := ctx.FormFile("source")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "file is required"}
	}
	saved, err := c.storage.SaveFile(fileHeader, fileHeader.Filename)
	if err != nil {
		log.Error().Err(err).Msg("[content] replaceFile: save failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save file"}
	}

	if err := c.store.ReplaceContentFile(id, saved.Location, saved.Size, saved.Checksum); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update content"}
	}

	updated, err := c.store.GetContentByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load content"}
	}
	return mapContent(updated), nil
}

func (c *ContentController) deleteContent(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if err := c.store.DeleteContent(id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "content not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete content"}
	}
	return gin.H{"deleted": id}, nil
}

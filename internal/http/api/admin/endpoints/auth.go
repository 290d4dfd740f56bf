package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/castell-digital/marquee/internal/db"
	"github.com/castell-digital/marquee/internal/http/api"
	"github.com/castell-digital/marquee/internal/http/api/admin/packets"
	"github.com/castell-digital/marquee/internal/http/middleware"
	"github.com/castell-digital/marquee/internal/model"
)

type AuthController struct {
	secret string
	store  db.Store
}

func newAuthController(secret string, store db.Store) *AuthController {
	return &AuthController{secret: secret, store: store}
}

// AuthPublicModule mounts the unauthenticated signup/login endpoints.
func AuthPublicModule(secret string, store db.Store) api.Module {
	ctl := newAuthController(secret, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/auth/signup", api.ResolveEndpoint(ctl.signup))
		c.POST("/auth/login", api.ResolveEndpoint(ctl.login))
	})
}

// AuthSessionModule mounts profile endpoints that require a session.
func AuthSessionModule(store db.Store) api.Module {
	ctl := newAuthController("", store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/current_profile", api.ResolveEndpointWithAuth(ctl.currentProfile))
		c.PUT("/auth/current_profile", api.ResolveEndpointWithAuth(ctl.updateProfile))
	})
}

func (a *AuthController) signup(ctx *gin.Context) (any, *api.APIError) {
	var req packets.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := a.store.GetUserByEmail(req.Email); err == nil {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "email already registered"}
	} else if !errors.Is(err, db.ErrNotFound) {
		log.Error().Err(err).Msg("[auth] signup: lookup failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create user"}
	}

	hashed, err := middleware.HashPassword(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("[auth] signup: hash failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create user"}
	}

	userID, err := a.store.CreateUser(req.Email, hashed, req.Name)
	if err != nil {
		log.Error().Err(err).Msg("[auth] signup: insert failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create user"}
	}

	token, err := middleware.GenerateJWT(userID, a.secret)
	if err != nil {
		log.Error().Err(err).Msg("[auth] signup: token issue failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not issue token"}
	}

	ctx.Status(http.StatusCreated)
	return packets.TokenResponse{Token: token}, nil
}

func (a *AuthController) login(ctx *gin.Context) (any, *api.APIError) {
	var req packets.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	user, err := a.store.GetUserByEmail(req.Email)
	if err != nil || !middleware.CheckPassword(user.HashedPassword, req.Password) {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: middleware.ErrInvalidCredentials.Error()}
	}

	token, err := middleware.GenerateJWT(user.ID, a.secret)
	if err != nil {
		log.Error().Err(err).Msg("[auth] login: token issue failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not issue token"}
	}

	return packets.TokenResponse{Token: token}, nil
}

func (a *AuthController) currentProfile(_ *gin.Context, user *model.User) (any, *api.APIError) {
	return packets.ProfileResponse{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

func (a *AuthController) updateProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var req packets.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := a.store.UpdateUserProfile(user.ID, req.Email, req.Name); err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("[auth] updateProfile failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update profile"}
	}
	return packets.ProfileResponse{ID: user.ID, Email: req.Email, Name: req.Name}, nil
}

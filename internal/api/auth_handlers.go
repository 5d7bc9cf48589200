package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	errorvalues "github.com/limbo/macrolog/internal/error_values"
	"github.com/limbo/macrolog/internal/service"
	"github.com/limbo/macrolog/pkg/httputil"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

// Register godoc
//
//	@Summary	Register a new user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		registerRequest	true	"credentials"
//	@Success	201		{object}	map[string]string
//	@Failure	400,409	{object}	httputil.ErrorResponse
//	@Router		/auth/register [post]
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req registerRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Error("decoding register request", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*5)
	defer cancel()
	user, err := s.userService.Register(ctx, &service.RegisterRequest{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Info("register validation failed", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "validation failed", err)
		case errors.Is(err, errorvalues.ErrUserExists):
			logger.Info("register: user already exists")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such email already exists", nil)
		default:
			logger.Error("register error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error", nil)
		}
		return
	}
	logger.Info("user registered", slog.String("uid", user.ID.String()))
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{"uid": user.ID})
}

// Login godoc
//
//	@Summary	Exchange credentials for a bearer token
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request		body		loginRequest	true	"credentials"
//	@Success	200			{object}	map[string]string
//	@Failure	400,403,404	{object}	httputil.ErrorResponse
//	@Router		/auth/login [post]
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req loginRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Error("decoding login request", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.Email == "" || req.Password == "" {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "email and password are required", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*5)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Info("login: user not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Info("login: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "wrong credentials", nil)
		default:
			logger.Error("login error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error", nil)
		}
		return
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("generating token", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error generating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":   user.ID,
		"token": token,
	})
}

// DeleteAccount removes the caller together with their meals and targets.
//
//	@Summary	Delete own account
//	@Tags		auth
//	@Security	BearerAuth
//	@Param		request	body	deleteAccountRequest	true	"password confirmation"
//	@Success	204
//	@Failure	400,403	{object}	httputil.ErrorResponse
//	@Router		/account [delete]
func (s *Server) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req deleteAccountRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil || req.Password == "" {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "password confirmation is required", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*5)
	defer cancel()
	err = s.userService.DeleteAccount(ctx, uid, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			httputil.WriteErrorResponse(w, http.StatusForbidden, "wrong credentials", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user not found", nil)
		default:
			logger.Error("deleting account", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error", nil)
		}
		return
	}
	logger.Info("account deleted")
	httputil.WriteJSONResponse(w, http.StatusNoContent, nil)
}

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

type saveTargetsRequest struct {
	TargetCalories float64 `json:"target_calories"`
	TargetProtein  float64 `json:"target_protein"`
	TargetFats     float64 `json:"target_fats"`
	TargetCarbs    float64 `json:"target_carbs"`
}

func (s *Server) GetTargets(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*5)
	defer cancel()
	targets, err := s.targetsService.GetTargets(ctx, uid)
	if err != nil {
		logger.Error("getting targets", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error", nil)
		return
	}
	if targets == nil {
		httputil.WriteErrorResponse(w, http.StatusNotFound, "targets are not set", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, targets)
}

func (s *Server) SaveTargets(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req saveTargetsRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*5)
	defer cancel()
	targets, err := s.targetsService.SaveTargets(ctx, uid, &service.SaveTargetsRequest{
		TargetCalories: req.TargetCalories,
		TargetProtein:  req.TargetProtein,
		TargetFats:     req.TargetFats,
		TargetCarbs:    req.TargetCarbs,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "validation failed", err)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "user not found", nil)
		default:
			logger.Error("saving targets", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error", nil)
		}
		return
	}
	logger.Info("targets saved")
	httputil.WriteJSONResponse(w, http.StatusOK, targets)
}

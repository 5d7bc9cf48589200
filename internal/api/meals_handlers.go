package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/macrolog/internal/error_values"
	"github.com/limbo/macrolog/internal/service"
	"github.com/limbo/macrolog/pkg/entity"
	"github.com/limbo/macrolog/pkg/httputil"
)

type createMealRequest struct {
	Date     string  `json:"date"`
	Name     string  `json:"meal_name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fats     float64 `json:"fats"`
	Carbs    float64 `json:"carbs"`
}

type describeMealRequest struct {
	Description string `json:"description"`
	Date        string `json:"date"`
}

type mealsListResponse struct {
	Meals []entity.Meal `json:"meals"`
	Count int           `json:"count"`
}

// Estimation calls go to a hosted model and need more room than database calls
const estimateTimeout = time.Second * 30

func (s *Server) CreateMeal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req createMealRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Error("decoding meal", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*5)
	defer cancel()
	meal, err := s.mealsService.LogMeal(ctx, uid, &service.LogMealRequest{
		Date:     req.Date,
		Name:     req.Name,
		Calories: req.Calories,
		Protein:  req.Protein,
		Fats:     req.Fats,
		Carbs:    req.Carbs,
	})
	if err != nil {
		s.writeMealsError(w, logger, "logging meal", err)
		return
	}
	logger.Info("meal logged", slog.String("meal_id", meal.ID.String()), slog.String("date", meal.Date))
	httputil.WriteJSONResponse(w, http.StatusCreated, meal)
}

// AnalyzeMeal returns an estimate for a free-text description without storing it.
func (s *Server) AnalyzeMeal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req describeMealRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), estimateTimeout)
	defer cancel()
	estimate, err := s.mealsService.AnalyzeMeal(ctx, req.Description)
	if err != nil {
		s.writeMealsError(w, logger, "analyzing meal", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, estimate)
}

func (s *Server) CreateEstimatedMeal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req describeMealRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), estimateTimeout)
	defer cancel()
	meal, err := s.mealsService.LogEstimatedMeal(ctx, uid, req.Description, req.Date)
	if err != nil {
		s.writeMealsError(w, logger, "logging estimated meal", err)
		return
	}
	logger.Info("estimated meal logged", slog.String("meal_id", meal.ID.String()), slog.String("date", meal.Date))
	httputil.WriteJSONResponse(w, http.StatusCreated, meal)
}

// GetMeals lists meals for ?date=, for ?from=&to=, or all of them.
func (s *Server) GetMeals(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	query := r.URL.Query()
	date, from, to := query.Get("date"), query.Get("from"), query.Get("to")

	ctx, cancel := context.WithTimeout(r.Context(), time.Second*5)
	defer cancel()
	var meals []entity.Meal
	switch {
	case date != "":
		meals, err = s.mealsService.GetMealsByDate(ctx, uid, date)
	case from != "" || to != "":
		meals, err = s.mealsService.GetMealsByRange(ctx, uid, from, to)
	default:
		meals, err = s.mealsService.GetAllMeals(ctx, uid)
	}
	if err != nil {
		s.writeMealsError(w, logger, "listing meals", err)
		return
	}
	if meals == nil {
		meals = []entity.Meal{}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, mealsListResponse{Meals: meals, Count: len(meals)})
}

func (s *Server) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	mealID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid meal id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*5)
	defer cancel()
	if err = s.mealsService.DeleteMeal(ctx, mealID, uid); err != nil {
		s.writeMealsError(w, logger, "deleting meal", err)
		return
	}
	logger.Info("meal deleted", slog.String("meal_id", mealID.String()))
	httputil.WriteJSONResponse(w, http.StatusNoContent, nil)
}

func (s *Server) writeMealsError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrValidation):
		logger.Info(op+": validation failed", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "validation failed", err)
	case errors.Is(err, errorvalues.ErrInvalidDate), errors.Is(err, errorvalues.ErrInvalidRange),
		errors.Is(err, errorvalues.ErrEmptyDescription):
		httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
	// a foreign meal is reported the same way as a missing one
	case errors.Is(err, errorvalues.ErrMealNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
		httputil.WriteErrorResponse(w, http.StatusNotFound, "meal not found", nil)
	case errors.Is(err, errorvalues.ErrUserNotFound):
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "user not found", nil)
	case errors.Is(err, errorvalues.ErrEstimationFailed):
		logger.Error(op+": estimator failed", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadGateway, "failed to analyze meal", nil)
	default:
		logger.Error(op, slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error", nil)
	}
}

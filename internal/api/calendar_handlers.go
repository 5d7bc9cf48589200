package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	errorvalues "github.com/limbo/macrolog/internal/error_values"
	"github.com/limbo/macrolog/internal/service"
	"github.com/limbo/macrolog/pkg/httputil"
	"github.com/limbo/macrolog/pkg/nutrition"
)

type DayStatus string

const (
	StatusNoData     DayStatus = "no_data"
	StatusNoTarget   DayStatus = "no_target"
	StatusClassified DayStatus = "classified"
)

type dayResponse struct {
	Status DayStatus `json:"status"`
	*service.DayReport
}

// dayStatus keeps "nothing logged" and "no targets" apart from the met/surplus/deficit states.
func dayStatus(report *service.DayReport) DayStatus {
	switch {
	case report.Aggregate == nil:
		return StatusNoData
	case report.Targets == nil:
		return StatusNoTarget
	default:
		return StatusClassified
	}
}

// GetCalendar defaults to the current month in the server zone.
func (s *Server) GetCalendar(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" && to == "" {
		from, to = nutrition.MonthBounds(time.Now().In(s.loc))
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*5)
	defer cancel()
	view, err := s.calendarService.Calendar(ctx, uid, from, to)
	if err != nil {
		s.writeCalendarError(w, logger, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, view)
}

func (s *Server) GetDay(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*5)
	defer cancel()
	report, err := s.calendarService.Day(ctx, uid, chi.URLParam(r, "date"))
	if err != nil {
		s.writeCalendarError(w, logger, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, dayResponse{Status: dayStatus(report), DayReport: report})
}

func (s *Server) writeCalendarError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrInvalidDate), errors.Is(err, errorvalues.ErrInvalidRange):
		httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
	default:
		logger.Error("building calendar", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error", nil)
	}
}

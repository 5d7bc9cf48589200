package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/limbo/macrolog/internal/service"
	"github.com/limbo/macrolog/pkg/cleanup"
	"github.com/limbo/macrolog/pkg/httputil"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	mx              *chi.Mux
	userService     service.UserServiceI
	mealsService    service.MealsServiceI
	targetsService  service.TargetsServiceI
	calendarService service.CalendarServiceI
	jwtService      JWTServiceI
	loc             *time.Location
}

type ServicesList struct {
	UserService     service.UserServiceI
	MealsService    service.MealsServiceI
	TargetsService  service.TargetsServiceI
	CalendarService service.CalendarServiceI
	JwtService      JWTServiceI
	// Zone used for default calendar bounds, time.Local when nil
	Location *time.Location
}

func New(servicesOptions *ServicesList) *Server {
	loc := servicesOptions.Location
	if loc == nil {
		loc = time.Local
	}
	s := &Server{
		mx:              chi.NewMux(),
		userService:     servicesOptions.UserService,
		mealsService:    servicesOptions.MealsService,
		targetsService:  servicesOptions.TargetsService,
		calendarService: servicesOptions.CalendarService,
		jwtService:      servicesOptions.JwtService,
		loc:             loc,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mx.Use(middleware.Recoverer)
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"status": "ok"})
		})
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Use(s.LoggerExtensionMiddleware)
			r.Delete("/account", s.DeleteAccount)

			r.Get("/meals", s.GetMeals)
			r.Post("/meals", s.CreateMeal)
			r.Post("/meals/analyze", s.AnalyzeMeal)
			r.Post("/meals/ai", s.CreateEstimatedMeal)
			r.Delete("/meals/{id}", s.DeleteMeal)

			r.Get("/targets", s.GetTargets)
			r.Put("/targets", s.SaveTargets)

			r.Get("/calendar", s.GetCalendar)
			r.Get("/calendar/{date}", s.GetDay)
		})
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mx.ServeHTTP(w, r)
}

// Run blocks until the server is shut down through cleanup.
func (s *Server) Run(address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           otelhttp.NewHandler(s.mx, "macrolog-api"),
		ReadHeaderTimeout: time.Second * 5,
		ReadTimeout:       time.Second * 15,
		WriteTimeout:      time.Second * 60,
		IdleTimeout:       time.Second * 120,
	}
	cleanup.Register(&cleanup.Job{
		Name: "shutting down http server",
		F: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
	log.Printf("listening on %s", address)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// @title Macrolog API
// @description Nutrition journal: meals, daily targets and a calendar of how each day went
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/limbo/macrolog/internal/api"
	"github.com/limbo/macrolog/internal/estimator"
	"github.com/limbo/macrolog/internal/repository"
	"github.com/limbo/macrolog/internal/service"
	"github.com/limbo/macrolog/pkg/cleanup"
	"github.com/limbo/macrolog/pkg/config"
	jwtservice "github.com/limbo/macrolog/pkg/jwt_service"
)

func init() {
	service.InitValidator()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

func main() {
	cfg := config.New()
	loc := cfg.Location()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	pool := repository.Connect(&dbCfg)
	if cfg.GetBool("MIGRATE_ON_START", false) {
		err := repository.Migrate(pool, cfg.GetStringDefault("MIGRATIONS_DIR", "./migrations"))
		if err != nil {
			cleanup.CleanUp()
			log.Fatal("applying migrations: " + err.Error())
		}
	}
	mealsRepo := repository.NewMealsRepoWithConn(pool)
	targetsRepo := repository.NewTargetsRepoWithConn(pool)

	est := estimator.New(estimator.Options{
		APIKey:  cfg.GetString("GEMINI_API_KEY"),
		Model:   cfg.GetStringDefault("GEMINI_MODEL", estimator.DefaultModel),
		BaseURL: cfg.GetStringDefault("GEMINI_BASE_URL", estimator.DefaultBaseURL),
		Timeout: cfg.GetDuration("ESTIMATOR_TIMEOUT", estimator.DefaultTimeout),
	})
	serv := api.New(&api.ServicesList{
		UserService:     service.NewUserService(repository.NewUsersRepoWithConn(pool)),
		MealsService:    service.NewMealsService(mealsRepo, est, loc),
		TargetsService:  service.NewTargetsService(targetsRepo),
		CalendarService: service.NewCalendarService(mealsRepo, targetsRepo),
		JwtService:      jwtservice.New(cfg.GetString("JWT_SECRET"), cfg.GetDuration("JWT_TTL", jwtservice.DefaultTTL)),
		Location:        loc,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	errs := make(chan error, 1)
	go func() {
		errs <- serv.Run(cfg.GetStringDefault("API_ADDRESS", ":8080"))
	}()
	select {
	case <-ctx.Done():
		log.Println("shutting down")
	case err := <-errs:
		if err != nil {
			log.Println("Server error: " + err.Error())
		}
	}
	done := make(chan struct{})
	go func() {
		cleanup.CleanUp()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second * 15):
		log.Println("cleanup timed out")
	}
}

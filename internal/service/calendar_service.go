package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/macrolog/internal/error_values"
	"github.com/limbo/macrolog/internal/repository"
	"github.com/limbo/macrolog/pkg/entity"
	"github.com/limbo/macrolog/pkg/nutrition"
	"golang.org/x/sync/errgroup"
)

// CalendarService loads a user's meals and targets and runs them through the
// aggregation and comparison core. Both loads must succeed before the core runs.
type CalendarService struct {
	meals   repository.MealsRepositoryI
	targets repository.TargetsRepositoryI
}

func NewCalendarService(mealsRepo repository.MealsRepositoryI, targetsRepo repository.TargetsRepositoryI) *CalendarService {
	if mealsRepo == nil || targetsRepo == nil {
		log.Fatal("on calendar service provided nil repos")
	}
	return &CalendarService{
		meals:   mealsRepo,
		targets: targetsRepo,
	}
}

func (cs *CalendarService) Calendar(ctx context.Context, uid uuid.UUID, from, to string) (*CalendarView, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	meals, target, err := cs.load(ctx, uid, func(ctx context.Context) ([]entity.Meal, error) {
		return cs.meals.GetByDateRange(ctx, uid, from, to)
	})
	if err != nil {
		return nil, err
	}
	aggregated := nutrition.AggregateByDate(meals)
	view := CalendarView{
		From:    from,
		To:      to,
		Targets: target,
		Days:    make([]DaySummary, 0, len(aggregated)),
	}
	for _, date := range nutrition.SortedDates(aggregated) {
		day := aggregated[date]
		view.Days = append(view.Days, DaySummary{
			Aggregate:  day,
			Comparison: nutrition.Classify(day, target),
		})
	}
	return &view, nil
}

func (cs *CalendarService) Day(ctx context.Context, uid uuid.UUID, date string) (*DayReport, error) {
	if !nutrition.ValidDateKey(date) {
		return nil, errorvalues.ErrInvalidDate
	}
	meals, target, err := cs.load(ctx, uid, func(ctx context.Context) ([]entity.Meal, error) {
		return cs.meals.GetByDate(ctx, uid, date)
	})
	if err != nil {
		return nil, err
	}
	// a missing key stays nil, an empty day is never reported as zero totals
	day := nutrition.AggregateByDate(meals)[date]
	return &DayReport{
		Date:       date,
		Aggregate:  day,
		Targets:    target,
		Comparison: nutrition.Classify(day, target),
	}, nil
}

// load fetches meals and targets concurrently. A user without targets gets a nil profile.
func (cs *CalendarService) load(ctx context.Context, uid uuid.UUID, fetch func(context.Context) ([]entity.Meal, error)) ([]entity.Meal, *entity.TargetProfile, error) {
	var (
		meals  []entity.Meal
		target *entity.TargetProfile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meals, err = fetch(gctx)
		if err != nil {
			return errors.New("meals repository error: " + err.Error())
		}
		return nil
	})
	g.Go(func() error {
		var err error
		target, err = cs.targets.Get(gctx, uid)
		if err != nil {
			if errors.Is(err, errorvalues.ErrTargetsNotFound) {
				target = nil
				return nil
			}
			return errors.New("targets repository error: " + err.Error())
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return meals, target, nil
}

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/macrolog/internal/error_values"
	"github.com/limbo/macrolog/internal/service"
	"github.com/limbo/macrolog/pkg/entity"
	"github.com/limbo/macrolog/pkg/nutrition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	userID   = uuid.New()
	estimate = entity.MacroEstimate{Name: "Chicken rice bowl", Calories: 650, Protein: 45, Fats: 15, Carbs: 80}
)

func TestLogMeal(t *testing.T) {
	ctx := context.Background()
	repo := &mealsRepoMock{}
	ms := service.NewMealsService(repo, &estimatorMock{estimate: &estimate}, time.UTC)
	t.Run("logged", func(t *testing.T) {
		meal, err := ms.LogMeal(ctx, userID, &service.LogMealRequest{
			Date:     "2024-01-01",
			Name:     " oats ",
			Calories: 350,
			Protein:  12,
			Fats:     6,
			Carbs:    60,
		})
		require.NoError(t, err)
		assert.Equal(t, "oats", meal.Name)
		assert.Equal(t, "2024-01-01", meal.Date)
		assert.Equal(t, userID, meal.UserID)
		assert.False(t, meal.IsAIEstimated)
		assert.Len(t, repo.meals, 1)
	})
	t.Run("defaults to today", func(t *testing.T) {
		meal, err := ms.LogMeal(ctx, userID, &service.LogMealRequest{Name: "snack", Calories: 100})
		require.NoError(t, err)
		assert.Equal(t, nutrition.Today(time.UTC), meal.Date)
	})
	t.Run("validation", func(t *testing.T) {
		bad := []*service.LogMealRequest{
			{Name: "", Calories: 1},
			{Name: "   ", Calories: 1},
			{Name: "x", Calories: -1},
			{Name: "x", Protein: -0.5},
			{Name: "x", Date: "01-01-2024"},
		}
		for _, r := range bad {
			_, err := ms.LogMeal(ctx, userID, r)
			assert.ErrorIs(t, err, errorvalues.ErrValidation)
		}
	})
	t.Run("unknown owner", func(t *testing.T) {
		repo.state = stateOwnerNotFound
		defer func() { repo.state = stateSuccess }()
		_, err := ms.LogMeal(ctx, userID, &service.LogMealRequest{Name: "x"})
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestAnalyzeMeal(t *testing.T) {
	ctx := context.Background()
	t.Run("estimated", func(t *testing.T) {
		est := &estimatorMock{estimate: &estimate}
		ms := service.NewMealsService(&mealsRepoMock{}, est, time.UTC)
		res, err := ms.AnalyzeMeal(ctx, "rice with chicken")
		require.NoError(t, err)
		assert.Equal(t, estimate, *res)
	})
	t.Run("empty description", func(t *testing.T) {
		est := &estimatorMock{estimate: &estimate}
		ms := service.NewMealsService(&mealsRepoMock{}, est, time.UTC)
		_, err := ms.AnalyzeMeal(ctx, "   ")
		assert.ErrorIs(t, err, errorvalues.ErrEmptyDescription)
		assert.Equal(t, 0, est.calls)
	})
	t.Run("estimator failure", func(t *testing.T) {
		ms := service.NewMealsService(&mealsRepoMock{}, &estimatorMock{err: errors.New("boom")}, time.UTC)
		_, err := ms.AnalyzeMeal(ctx, "soup")
		assert.ErrorIs(t, err, errorvalues.ErrEstimationFailed)
	})
}

func TestLogEstimatedMeal(t *testing.T) {
	ctx := context.Background()
	repo := &mealsRepoMock{}
	ms := service.NewMealsService(repo, &estimatorMock{estimate: &estimate}, time.UTC)
	t.Run("stored with ai flag", func(t *testing.T) {
		meal, err := ms.LogEstimatedMeal(ctx, userID, "rice with chicken", "2024-01-02")
		require.NoError(t, err)
		assert.True(t, meal.IsAIEstimated)
		assert.Equal(t, estimate.Name, meal.Name)
		assert.Equal(t, estimate.Calories, meal.Calories)
		assert.Equal(t, "2024-01-02", meal.Date)
	})
	t.Run("invalid date rejected before estimating", func(t *testing.T) {
		est := &estimatorMock{estimate: &estimate}
		ms := service.NewMealsService(repo, est, time.UTC)
		_, err := ms.LogEstimatedMeal(ctx, userID, "rice", "tomorrow")
		assert.ErrorIs(t, err, errorvalues.ErrInvalidDate)
		assert.Equal(t, 0, est.calls)
	})
	t.Run("nothing stored on failure", func(t *testing.T) {
		before := len(repo.meals)
		ms := service.NewMealsService(repo, &estimatorMock{err: errorvalues.ErrEstimationFailed}, time.UTC)
		_, err := ms.LogEstimatedMeal(ctx, userID, "rice", "")
		assert.ErrorIs(t, err, errorvalues.ErrEstimationFailed)
		assert.Len(t, repo.meals, before)
	})
}

func TestQueryMeals(t *testing.T) {
	ctx := context.Background()
	other := uuid.New()
	repo := &mealsRepoMock{meals: []entity.Meal{
		{ID: uuid.New(), UserID: userID, Date: "2024-01-01", Name: "a"},
		{ID: uuid.New(), UserID: userID, Date: "2024-01-02", Name: "b"},
		{ID: uuid.New(), UserID: other, Date: "2024-01-01", Name: "c"},
		{ID: uuid.New(), UserID: userID, Date: "2024-02-01", Name: "d"},
	}}
	ms := service.NewMealsService(repo, &estimatorMock{estimate: &estimate}, time.UTC)
	t.Run("by date", func(t *testing.T) {
		meals, err := ms.GetMealsByDate(ctx, userID, "2024-01-01")
		require.NoError(t, err)
		require.Len(t, meals, 1)
		assert.Equal(t, "a", meals[0].Name)
		_, err = ms.GetMealsByDate(ctx, userID, "yesterday")
		assert.ErrorIs(t, err, errorvalues.ErrInvalidDate)
	})
	t.Run("by range", func(t *testing.T) {
		meals, err := ms.GetMealsByRange(ctx, userID, "2024-01-01", "2024-01-31")
		require.NoError(t, err)
		assert.Len(t, meals, 2)
		_, err = ms.GetMealsByRange(ctx, userID, "2024-02-01", "2024-01-01")
		assert.ErrorIs(t, err, errorvalues.ErrInvalidRange)
	})
	t.Run("all", func(t *testing.T) {
		meals, err := ms.GetAllMeals(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, meals, 3)
	})
	t.Run("db error", func(t *testing.T) {
		repo.state = stateDBError
		defer func() { repo.state = stateSuccess }()
		_, err := ms.GetAllMeals(ctx, userID)
		assert.Error(t, err)
	})
}

func TestDeleteMeal(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := &mealsRepoMock{meals: []entity.Meal{{ID: id, UserID: userID, Date: "2024-01-01", Name: "a"}}}
	ms := service.NewMealsService(repo, &estimatorMock{estimate: &estimate}, time.UTC)
	t.Run("foreign meal", func(t *testing.T) {
		repo.state = stateWrongOwner
		defer func() { repo.state = stateSuccess }()
		assert.ErrorIs(t, ms.DeleteMeal(ctx, id, userID), errorvalues.ErrWrongOwner)
	})
	t.Run("deleted", func(t *testing.T) {
		assert.NoError(t, ms.DeleteMeal(ctx, id, userID))
		assert.Empty(t, repo.meals)
	})
	t.Run("not found", func(t *testing.T) {
		assert.ErrorIs(t, ms.DeleteMeal(ctx, id, userID), errorvalues.ErrMealNotFound)
	})
}

package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	errorvalues "github.com/limbo/macrolog/internal/error_values"
	"github.com/limbo/macrolog/pkg/entity"
	"github.com/limbo/macrolog/pkg/nutrition"
)

const mealColumns = `id, user_id, meal_date, meal_name, calories, protein, fats, carbs, is_ai_estimated, created_at`

type MealsRepository struct {
	conn PgConnection
}

func NewMealsRepoWithConn(conn PgConnection) *MealsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for mealsRepo: " + err.Error())
	}
	return &MealsRepository{
		conn: conn,
	}
}

func (mr *MealsRepository) Create(ctx context.Context, meal *entity.Meal) error {
	if meal == nil {
		return errors.New("meal is nil")
	}
	row := mr.conn.QueryRow(ctx,
		`INSERT INTO meals (user_id, meal_date, meal_name, calories, protein, fats, carbs, is_ai_estimated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at;`,
		meal.UserID,
		meal.Date,
		meal.Name,
		meal.Calories,
		meal.Protein,
		meal.Fats,
		meal.Carbs,
		meal.IsAIEstimated,
	)
	if err := row.Scan(&meal.ID, &meal.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrOwnerNotFound
			}
		}
		return errors.New("creating meal db error: " + err.Error())
	}
	return nil
}

func (mr *MealsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Meal, error) {
	row := mr.conn.QueryRow(ctx, `SELECT `+mealColumns+` FROM meals WHERE id = $1;`, id)
	meal, err := scanMeal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrMealNotFound
		}
		return nil, errors.New("getting meal by id error: " + err.Error())
	}
	return meal, nil
}

func (mr *MealsRepository) GetByDate(ctx context.Context, uid uuid.UUID, date string) ([]entity.Meal, error) {
	rows, err := mr.conn.Query(ctx,
		`SELECT `+mealColumns+` FROM meals WHERE user_id = $1 AND meal_date = $2 ORDER BY created_at;`,
		uid, date,
	)
	if err != nil {
		return nil, errors.New("getting meals by date error: " + err.Error())
	}
	return collectMeals(rows)
}

func (mr *MealsRepository) GetByDateRange(ctx context.Context, uid uuid.UUID, from, to string) ([]entity.Meal, error) {
	rows, err := mr.conn.Query(ctx,
		`SELECT `+mealColumns+` FROM meals WHERE user_id = $1 AND meal_date >= $2 AND meal_date <= $3
		ORDER BY meal_date, created_at LIMIT $4;`,
		uid, from, to, MaxMealsPerQuery,
	)
	if err != nil {
		return nil, errors.New("getting meals for period error: " + err.Error())
	}
	return collectMeals(rows)
}

func (mr *MealsRepository) GetAll(ctx context.Context, uid uuid.UUID) ([]entity.Meal, error) {
	rows, err := mr.conn.Query(ctx,
		`SELECT `+mealColumns+` FROM meals WHERE user_id = $1 ORDER BY meal_date, created_at LIMIT $2;`,
		uid, MaxMealsPerQuery,
	)
	if err != nil {
		return nil, errors.New("getting all meals error: " + err.Error())
	}
	return collectMeals(rows)
}

func (mr *MealsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := mr.conn.Exec(ctx, `DELETE FROM meals WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting meal: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrMealNotFound
	}
	return nil
}

func collectMeals(rows pgx.Rows) ([]entity.Meal, error) {
	defer rows.Close()
	meals := make([]entity.Meal, 0)
	for rows.Next() {
		meal, err := scanMeal(rows)
		if err != nil {
			return nil, errors.New("meal row parsing error: " + err.Error())
		}
		meals = append(meals, *meal)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unexpected meal rows error: " + err.Error())
	}
	return meals, nil
}

// Nutrient columns are nullable for rows written before they became required.
func scanMeal(row pgx.Row) (*entity.Meal, error) {
	var (
		meal                          entity.Meal
		calories, protein, fats, carb pgtype.Float8
	)
	err := row.Scan(
		&meal.ID,
		&meal.UserID,
		&meal.Date,
		&meal.Name,
		&calories,
		&protein,
		&fats,
		&carb,
		&meal.IsAIEstimated,
		&meal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	meal.Calories = nutrition.Coalesce(float8Ptr(calories))
	meal.Protein = nutrition.Coalesce(float8Ptr(protein))
	meal.Fats = nutrition.Coalesce(float8Ptr(fats))
	meal.Carbs = nutrition.Coalesce(float8Ptr(carb))
	return &meal, nil
}

func float8Ptr(v pgtype.Float8) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

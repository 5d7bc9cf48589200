package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/macrolog/internal/error_values"
	"github.com/limbo/macrolog/pkg/entity"
)

type TargetsRepository struct {
	conn PgConnection
}

func NewTargetsRepoWithConn(conn PgConnection) *TargetsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for targetsRepo: " + err.Error())
	}
	return &TargetsRepository{
		conn: conn,
	}
}

func (tr *TargetsRepository) Get(ctx context.Context, uid uuid.UUID) (*entity.TargetProfile, error) {
	target := entity.TargetProfile{UserID: uid}
	row := tr.conn.QueryRow(ctx,
		`SELECT target_calories, target_protein, target_fats, target_carbs, updated_at FROM targets WHERE user_id = $1;`,
		uid,
	)
	err := row.Scan(&target.TargetCalories, &target.TargetProtein, &target.TargetFats, &target.TargetCarbs, &target.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrTargetsNotFound
		}
		return nil, errors.New("getting targets error: " + err.Error())
	}
	return &target, nil
}

func (tr *TargetsRepository) Upsert(ctx context.Context, target *entity.TargetProfile) error {
	if target == nil {
		return errors.New("targets are nil")
	}
	row := tr.conn.QueryRow(ctx,
		`INSERT INTO targets (user_id, target_calories, target_protein, target_fats, target_carbs)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET target_calories = EXCLUDED.target_calories,
		target_protein = EXCLUDED.target_protein, target_fats = EXCLUDED.target_fats,
		target_carbs = EXCLUDED.target_carbs, updated_at = NOW() RETURNING updated_at;`,
		target.UserID,
		target.TargetCalories,
		target.TargetProtein,
		target.TargetFats,
		target.TargetCarbs,
	)
	if err := row.Scan(&target.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrOwnerNotFound
			}
		}
		return errors.New("saving targets error: " + err.Error())
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/macrolog/pkg/entity"
)

// Upper bound for list queries over a user's whole history
const MaxMealsPerQuery = 1000

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by email. Used for login
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Looks up user by uid. Used by authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Deletes user together with the meals and targets
	Delete(ctx context.Context, uid uuid.UUID) error
}

type MealsRepositoryI interface {
	// Stores a meal. ID and CreatedAt are assigned by the database and written back into meal
	Create(ctx context.Context, meal *entity.Meal) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Meal, error)
	// Meals of uid logged for a single date key
	GetByDate(ctx context.Context, uid uuid.UUID, date string) ([]entity.Meal, error)
	// Meals of uid with from <= date <= to
	GetByDateRange(ctx context.Context, uid uuid.UUID, from, to string) ([]entity.Meal, error)
	// Every meal of uid, capped at MaxMealsPerQuery
	GetAll(ctx context.Context, uid uuid.UUID) ([]entity.Meal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TargetsRepositoryI interface {
	// Returns ErrTargetsNotFound if user has no profile yet
	Get(ctx context.Context, uid uuid.UUID) (*entity.TargetProfile, error)
	// Creates or replaces the single profile of target.UserID
	Upsert(ctx context.Context, target *entity.TargetProfile) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}

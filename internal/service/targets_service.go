package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/macrolog/internal/error_values"
	"github.com/limbo/macrolog/internal/repository"
	"github.com/limbo/macrolog/pkg/entity"
)

type TargetsService struct {
	repo repository.TargetsRepositoryI
}

func NewTargetsService(targetsRepo repository.TargetsRepositoryI) *TargetsService {
	if targetsRepo == nil {
		log.Fatal("provided nil targetsRepo")
	}
	return &TargetsService{
		repo: targetsRepo,
	}
}

func (ts *TargetsService) GetTargets(ctx context.Context, uid uuid.UUID) (*entity.TargetProfile, error) {
	target, err := ts.repo.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTargetsNotFound) {
			return nil, nil
		}
		return nil, errors.New("targets repository error: " + err.Error())
	}
	return target, nil
}

// SaveTargets replaces the user's profile, creating it on first save.
func (ts *TargetsService) SaveTargets(ctx context.Context, uid uuid.UUID, req *SaveTargetsRequest) (*entity.TargetProfile, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	target := entity.TargetProfile{
		UserID:         uid,
		TargetCalories: req.TargetCalories,
		TargetProtein:  req.TargetProtein,
		TargetFats:     req.TargetFats,
		TargetCarbs:    req.TargetCarbs,
	}
	if err := ts.repo.Upsert(ctx, &target); err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("targets repository error: " + err.Error())
	}
	return &target, nil
}

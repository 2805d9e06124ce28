package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"bistro/infras/otel"
	"bistro/infras/postgres"
	"bistro/internal/domains/scheduledcart/model"
	gDto "bistro/shared/dto"
	gRepo "bistro/shared/repository"
)

type ScheduledCart interface {
	Insert(ctx context.Context, model model.ScheduledCartLine) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ScheduledCartLine, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ScheduledCartLine, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.ScheduledCartLine]
}

func New(db *postgres.Connection, otel otel.Otel) ScheduledCart {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ScheduledCartLine](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

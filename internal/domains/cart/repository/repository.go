package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"bistro/infras/otel"
	"bistro/infras/postgres"
	"bistro/internal/domains/cart/model"
	gDto "bistro/shared/dto"
	gRepo "bistro/shared/repository"
)

type Cart interface {
	Insert(ctx context.Context, model model.CartLine) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.CartLine, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.CartLine, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.CartLine]
}

func New(db *postgres.Connection, otel otel.Otel) Cart {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.CartLine](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"bistro/infras/otel"
	"bistro/infras/postgres"
	"bistro/internal/domains/order/model"
	gDto "bistro/shared/dto"
	gRepo "bistro/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Order interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Order) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Order, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Order, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type LineItem interface {
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.LineItem) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.LineItem, error)
}

type orderRepositoryImpl struct {
	gRepo.Repository[model.Order]
}

func New(db *postgres.Connection, otel otel.Otel) Order {
	return &orderRepositoryImpl{
		Repository: gRepo.NewRepository[model.Order](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type lineItemRepositoryImpl struct {
	gRepo.Repository[model.LineItem]
}

func NewLineItem(db *postgres.Connection, otel otel.Otel) LineItem {
	return &lineItemRepositoryImpl{
		Repository: gRepo.NewRepository[model.LineItem](model.LineEntityName, model.LineTableName, model.FieldID, db, otel),
	}
}

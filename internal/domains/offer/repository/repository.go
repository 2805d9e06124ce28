package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"bistro/infras/otel"
	"bistro/infras/postgres"
	"bistro/internal/domains/offer/model"
	gDto "bistro/shared/dto"
	gRepo "bistro/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Offer interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Offer) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Offer, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Offer, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type OfferItem interface {
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.OfferItem) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.OfferItem, error)
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type offerRepositoryImpl struct {
	gRepo.Repository[model.Offer]
}

func New(db *postgres.Connection, otel otel.Otel) Offer {
	return &offerRepositoryImpl{
		Repository: gRepo.NewRepository[model.Offer](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type offerItemRepositoryImpl struct {
	gRepo.Repository[model.OfferItem]
}

func NewOfferItem(db *postgres.Connection, otel otel.Otel) OfferItem {
	return &offerItemRepositoryImpl{
		Repository: gRepo.NewRepository[model.OfferItem](model.ItemEntityName, model.ItemTableName, model.FieldOfferID, db, otel),
	}
}

// FilterActiveOn matches offers whose inclusive date range contains day.
func FilterActiveOn(day time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{ArgName: "active_from", Field: model.FieldStartDate, Value: day, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
			gDto.Filter{ArgName: "active_until", Field: model.FieldEndDate, Value: day, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func FilterItemsOf(offerIDs ...string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldOfferID, Value: offerIDs, Operator: gDto.FilterOperatorIn, Table: model.ItemTableName},
		},
	}
}

package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"bistro/infras/otel"
	"bistro/infras/postgres"
	"bistro/internal/domains/reservation/model"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/logger"
	gRepo "bistro/shared/repository"

	"github.com/jmoiron/sqlx"
)

// Serializes writers on one table and day until the surrounding transaction ends.
const queryLockSlot = "SELECT pg_advisory_xact_lock(hashtext($1))"

type Reservation interface {
	LockSlotTx(ctx context.Context, sqltx *sqlx.Tx, tableNumber int, date time.Time) error
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (repo *repositoryImpl) LockSlotTx(ctx context.Context, sqltx *sqlx.Tx, tableNumber int, date time.Time) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.LockSlotTx", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryLockSlot)

	key := fmt.Sprintf("%s:%d:%s", model.TableName, tableNumber, date.Format(constant.DateOnly))

	if _, err := sqltx.ExecContext(ctx, queryLockSlot, key); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to lock reservation slot: %w", err)
	}

	return nil
}

// FilterOverlapping matches live reservations on the table whose [starts_at, ends_at) intersects the given window.
func FilterOverlapping(tableNumber int, date, start, end time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldTableNumber, Value: tableNumber, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldReservationDate, Value: date, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: "requested_end", Field: model.FieldStartsAt, Value: end, Operator: gDto.FilterOperatorLess, Table: model.TableName},
			gDto.Filter{ArgName: "requested_start", Field: model.FieldEndsAt, Value: start, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusCancelled, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

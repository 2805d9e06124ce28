package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"

	"bistro/infras/otel"
	"bistro/infras/postgres"
	"bistro/shared/constant"
	"bistro/shared/dto"
	"bistro/shared/logger"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("required filter")

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository is the table gateway embedded by every domain repository. Reads go to the read pool, writes to
// the write pool or the given transaction. Get returns the zero T when no row matches.
type Repository[T any] struct {
	db     *postgres.Connection
	otel   otel.Otel
	entity string
	schema schema
	insert string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	s := newSchema[T](tableName, primaryColumn)

	return Repository[T]{
		db:     dbConnection,
		otel:   otl,
		entity: entityName,
		schema: s,
		insert: s.insertQuery(),
	}
}

func (repo *Repository[T]) newScope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, operation))
}

func (repo *Repository[T]) fail(scope otel.Scope, err error, action string) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	if conflict := constraintError(err, repo.entity); conflict != nil {
		return conflict
	}

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) where(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

func (repo *Repository[T]) exec(ctx context.Context, exec execer, operation, query string, arg any) error {
	ctx, scope := repo.newScope(ctx, operation)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, err, operation)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.exec(ctx, repo.db.Write, "insert", repo.insert, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.exec(ctx, sqltx, "insert", repo.insert, model)
}

// InsertBulk writes all models with one multi-row statement.
func (repo *Repository[T]) InsertBulk(ctx context.Context, models []T) error {
	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, repo.db.Write, "bulk insert", repo.insert, models)
}

func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, sqltx, "bulk insert", repo.insert, models)
}

func (repo *Repository[T]) update(ctx context.Context, exec execer, mod map[string]any, filter dto.FilterGroup) error {
	where, args := repo.where(filter)
	if where == "" {
		return errRequiredFilter
	}

	if len(mod) == 0 {
		return nil
	}

	maps.Copy(args, mod)

	return repo.exec(ctx, exec, "update", fmt.Sprintf("UPDATE %s SET %s %s", repo.schema.table, assignments(mod), where), args)
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, repo.db.Write, mod, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, sqltx, mod, filter)
}

func (repo *Repository[T]) delete(ctx context.Context, exec execer, filter dto.FilterGroup) error {
	where, args := repo.where(filter)
	if where == "" {
		return errRequiredFilter
	}

	return repo.exec(ctx, exec, "delete", fmt.Sprintf("DELETE FROM %s %s", repo.schema.table, where), args)
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.delete(ctx, repo.db.Write, filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	return repo.delete(ctx, sqltx, filter)
}

// get runs a single-row query. found is false when the query matched nothing.
func (repo *Repository[T]) get(ctx context.Context, db preparer, operation, query string, dest any, args map[string]any) (found bool, err error) {
	ctx, scope := repo.newScope(ctx, operation)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return false, repo.fail(scope, err, "prepare statement")
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, dest, args)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, repo.fail(scope, err, operation)
	}

	return true, nil
}

func (repo *Repository[T]) exist(ctx context.Context, db preparer, filter dto.FilterGroup) (bool, error) {
	where, args := repo.where(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	var exist bool

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.schema.table, where)
	if _, err := repo.get(ctx, db, "check exist", query, &exist, args); err != nil {
		return false, err
	}

	return exist, nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, repo.db.Read, filter)
}

// ExistTx runs the existence check on the transaction so it observes rows locked or written by it.
func (repo *Repository[T]) ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, sqltx, filter)
}

func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	var model T

	where, args := repo.where(filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.schema.selectList(columns...), repo.schema.table, repo.schema.join, where)

	if _, err := repo.get(ctx, repo.db.Read, "get data", query, &model, args); err != nil {
		return model, err
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.newScope(ctx, "get all data")
	defer scope.End()

	where, args := repo.where(filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s %s",
		repo.schema.selectList(columns...),
		repo.schema.table,
		repo.schema.join,
		where,
		repo.schema.orderBy(params),
		pagination(params, args),
	)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var models []T

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return models, repo.fail(scope, err, "prepare statement")
	}
	defer stmt.Close()

	if err = stmt.SelectContext(ctx, &models, args); err != nil {
		return models, repo.fail(scope, err, "get all data")
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	where, args := repo.where(filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.schema.table, repo.schema.primary, repo.schema.table, repo.schema.join, where)

	var count int
	if _, err := repo.get(ctx, repo.db.Read, "count data", query, &count, args); err != nil {
		return 0, err
	}

	return count, nil
}

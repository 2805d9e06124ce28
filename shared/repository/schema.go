package repository

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"bistro/shared/constant"
	"bistro/shared/dto"
)

// Joiner is implemented by models whose select list reads columns from other tables. Those columns carry
// `table` and `column` tags and are left out of inserts.
type Joiner interface {
	GetJoinQuery() string
}

type column struct {
	name  string
	table string
	alias string
}

func (c column) qualified() string {
	if c.table == "" {
		return c.name
	}

	return c.table + "." + c.name
}

func (c column) selectExpr() string {
	if c.alias == "" {
		return c.qualified()
	}

	return c.qualified() + " AS " + c.alias
}

// key is the name a caller uses for the column in sort_by and column lists.
func (c column) key() string {
	if c.alias != "" {
		return c.alias
	}

	return c.name
}

type schema struct {
	table         string
	primary       string
	join          string
	columns       []column
	insertColumns []string
}

func newSchema[T any](table, primary string) schema {
	var zero T

	columns, insertColumns := getColumns(table, reflect.TypeOf(zero))

	s := schema{
		table:         table,
		primary:       primary,
		columns:       columns,
		insertColumns: insertColumns,
	}

	if joiner, ok := any(zero).(Joiner); ok {
		s.join = joiner.GetJoinQuery()
	}

	return s
}

func (s schema) lookup(key string) (column, bool) {
	idx := slices.IndexFunc(s.columns, func(c column) bool { return c.key() == key })
	if idx == -1 {
		return column{}, false
	}

	return s.columns[idx], true
}

// selectList renders the select expressions, restricted to only when it is not empty.
func (s schema) selectList(only ...string) string {
	exprs := make([]string, 0, len(s.columns))

	for _, col := range s.columns {
		if len(only) > 0 && !slices.Contains(only, col.key()) {
			continue
		}

		exprs = append(exprs, col.selectExpr())
	}

	return strings.Join(exprs, ", ")
}

func (s schema) insertQuery() string {
	placeholders := make([]string, len(s.insertColumns))
	for idx, col := range s.insertColumns {
		placeholders[idx] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.table, strings.Join(s.insertColumns, ", "), strings.Join(placeholders, ", "))
}

// orderBy sorts by params.SortBy when it names a selected column, otherwise by created_at when the table has
// one. The direction defaults to descending.
func (s schema) orderBy(params dto.QueryParams) string {
	col, ok := s.lookup(params.SortBy)
	if !ok {
		col, ok = s.lookup(constant.DefaultValueSortBy)
	}

	if !ok {
		return ""
	}

	dir := params.SortDir
	if dir != dto.SortDirAsc {
		dir = constant.DefaultValueSortDir
	}

	return fmt.Sprintf("ORDER BY %s %s", col.qualified(), dir)
}

// pagination binds limit and offset into args. A zero limit reads every row.
func pagination(params dto.QueryParams, args map[string]any) string {
	if params.Limit < 1 {
		return ""
	}

	args["limit"] = params.Limit

	if params.Page < 1 {
		return "LIMIT :limit"
	}

	args["offset"] = params.Offset()

	return "LIMIT :limit OFFSET :offset"
}

// assignments renders a SET list in a stable column order.
func assignments(mod map[string]any) string {
	cols := make([]string, 0, len(mod))
	for col := range mod {
		cols = append(cols, col)
	}

	slices.Sort(cols)

	for idx, col := range cols {
		cols[idx] = fmt.Sprintf("%s = :%s", col, col)
	}

	return strings.Join(cols, ", ")
}

func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for idx := range reflectType.NumField() {
		field := reflectType.Field(idx)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, embeddedInsert := getColumns(table, field.Type)
			columns = append(columns, embedded...)
			insertColumns = append(insertColumns, embeddedInsert...)

			continue
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}

		col := column{name: dbTag, table: table}

		if foreign := field.Tag.Get("table"); foreign != "" && foreign != table {
			col.table = foreign
			col.name = field.Tag.Get("column")
			col.alias = dbTag
		} else {
			insertColumns = append(insertColumns, dbTag)
		}

		columns = append(columns, col)
	}

	return columns, insertColumns
}

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bistro/shared/dto"
	"bistro/shared/model"
)

type dish struct {
	ID           string  `db:"id"`
	CategoryID   string  `db:"category_id"`
	CategoryName *string `db:"category_name" table:"categories" column:"name"`
	Internal     string
	model.Metadata
}

func (dish) GetJoinQuery() string {
	return "LEFT JOIN categories ON categories.id = dishes.category_id"
}

type slot struct {
	OrderID  string `db:"order_id"`
	Position int    `db:"position"`
}

func TestNewSchema(t *testing.T) {
	s := newSchema[dish]("dishes", "id")

	assert.Equal(t, "LEFT JOIN categories ON categories.id = dishes.category_id", s.join)
	assert.Equal(t, []string{"id", "category_id", "created_at", "modified_at", "created_by", "modified_by"}, s.insertColumns)
	assert.Equal(t,
		"dishes.id, dishes.category_id, categories.name AS category_name, dishes.created_at, dishes.modified_at, dishes.created_by, dishes.modified_by",
		s.selectList(),
	)
	assert.Equal(t, "dishes.id, categories.name AS category_name", s.selectList("id", "category_name"))
	assert.Equal(t,
		"INSERT INTO dishes (id, category_id, created_at, modified_at, created_by, modified_by) VALUES (:id, :category_id, :created_at, :modified_at, :created_by, :modified_by)",
		s.insertQuery(),
	)

	assert.Empty(t, newSchema[slot]("slots", "order_id").join)
}

func TestSchema_OrderBy(t *testing.T) {
	dishes := newSchema[dish]("dishes", "id")
	slots := newSchema[slot]("slots", "order_id")

	tests := []struct {
		name   string
		schema schema
		params dto.QueryParams
		want   string
	}{
		{name: "default to newest first", schema: dishes, want: "ORDER BY dishes.created_at DESC"},
		{name: "ascending on a known column", schema: dishes, params: dto.QueryParams{SortBy: "id", SortDir: dto.SortDirAsc}, want: "ORDER BY dishes.id ASC"},
		{name: "joined column by alias", schema: dishes, params: dto.QueryParams{SortBy: "category_name"}, want: "ORDER BY categories.name DESC"},
		{name: "unknown column falls back", schema: dishes, params: dto.QueryParams{SortBy: "1; DROP TABLE dishes"}, want: "ORDER BY dishes.created_at DESC"},
		{name: "table without timestamps", schema: slots, want: ""},
		{name: "explicit column without timestamps", schema: slots, params: dto.QueryParams{SortBy: "position", SortDir: dto.SortDirAsc}, want: "ORDER BY slots.position ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.schema.orderBy(tt.params))
		})
	}
}

func TestPagination(t *testing.T) {
	args := map[string]any{}
	assert.Equal(t, "LIMIT :limit OFFSET :offset", pagination(dto.QueryParams{Page: 3, Limit: 10}, args))
	assert.Equal(t, map[string]any{"limit": 10, "offset": 20}, args)

	args = map[string]any{}
	assert.Equal(t, "LIMIT :limit", pagination(dto.QueryParams{Limit: 5}, args))
	assert.Equal(t, map[string]any{"limit": 5}, args)

	args = map[string]any{}
	assert.Empty(t, pagination(dto.QueryParams{Page: 2}, args))
	assert.Empty(t, args)
}

func TestAssignments(t *testing.T) {
	got := assignments(map[string]any{"status": "Ready", "modified_by": "staff-1", "modified_at": "now"})

	assert.Equal(t, "modified_at = :modified_at, modified_by = :modified_by, status = :status", got)
}

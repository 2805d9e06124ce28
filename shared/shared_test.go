package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bistro/shared"
	cacheMocks "bistro/shared/cache/mocks"
	"bistro/shared/constant"
	"bistro/shared/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "numeric true", input: "1", expected: boolPtr(true)},
		{name: "numeric false", input: "0", expected: boolPtr(false)},
		{name: "upper case", input: "TRUE", expected: boolPtr(true)},
		{name: "invalid string returns nil", input: "available", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "negative limit returns 1", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 30, limit: 10, expected: 3},
		{name: "rounds up", total: 31, limit: 10, expected: 4},
		{name: "total below limit", total: 3, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		Name      string  `db:"name"`
		Quantity  int     `db:"quantity"`
		Note      *string `db:"special_note"`
		Available *bool   `db:"availability"`
		Items     []string
		Skipped   string `db:"-"`
	}

	note := ""
	available := false

	result := shared.TransformFields(updateRequest{
		Name:      "Garlic Naan",
		Note:      &note,
		Available: &available,
		Items:     []string{"a", "b"},
		Skipped:   "ignored",
	}, "admin-1")

	assert.Equal(t, "Garlic Naan", result["name"])
	assert.Equal(t, &note, result["special_note"])
	assert.Equal(t, &available, result["availability"])
	assert.NotContains(t, result, "quantity")
	assert.NotContains(t, result, "-")
	assert.Equal(t, "admin-1", result[constant.FieldModifiedBy])

	_, ok := result[constant.FieldModifiedAt].(time.Time)
	assert.True(t, ok, "expected modified_at to be a time.Time")
	assert.Len(t, result, 5)

	fromPointer := shared.TransformFields(&updateRequest{Quantity: 3}, "staff-1")
	assert.Equal(t, 3, fromPointer["quantity"])
	assert.Len(t, fromPointer, 3)
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("123", "id", "orders")

	where, args := result.GetWhereClause()

	assert.Equal(t, "(orders.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "123"}, args)
}

func TestFilterByOwner(t *testing.T) {
	result := shared.FilterByOwner("line-1", "id", "user-1", "user_id", "cart_items")

	where, args := result.GetWhereClause()

	assert.Equal(t, "(cart_items.id = :id AND cart_items.user_id = :user_id)", where)
	assert.Equal(t, "line-1", args["id"])
	assert.Equal(t, "user-1", args["user_id"])
}

func TestUserFromContext(t *testing.T) {
	assert.Equal(t, constant.ContextGuest, shared.UserFromContext(context.Background()))

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-42")
	assert.Equal(t, "user-42", shared.UserFromContext(ctx))
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "menu:item:get:abc", shared.BuildCacheKey("menu:item:get", "abc"))
	assert.Equal(t, "limiter", shared.BuildCacheKey("limiter"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 2, Limit: 20, SortBy: "price", SortDir: dto.SortDirAsc}
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "category_id", Operator: dto.FilterOperatorEq, Value: "cat-1", Table: "menu_items"},
		},
	}
	otherFilter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "category_id", Operator: dto.FilterOperatorEq, Value: "cat-2", Table: "menu_items"},
		},
	}

	key := shared.BuildCacheKeyWithQuery("menu:item:gets", params, filter)

	assert.True(t, strings.HasPrefix(key, "menu:item:gets:2:20:price:ASC:"))
	assert.Equal(t, key, shared.BuildCacheKeyWithQuery("menu:item:gets", params, filter))
	assert.NotEqual(t, key, shared.BuildCacheKeyWithQuery("menu:item:gets", params, otherFilter))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "offer:gets*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "offer:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "offer:count*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "offer:count")
}

func boolPtr(b bool) *bool {
	return &b
}

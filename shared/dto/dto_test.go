package dto_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bistro/shared/constant"
	"bistro/shared/dto"
	"bistro/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
	modifiedAt := createdAt.Add(2 * time.Hour)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "staff-1",
		ModifiedBy: "staff-2",
	})

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, modifiedAt.Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "staff-1", metadata.CreatedBy)
	assert.Equal(t, "staff-2", metadata.ModifiedBy)

	metadata.FromModel(model.Metadata{CreatedAt: createdAt, CreatedBy: "guest"})

	assert.Empty(t, metadata.ModifiedAt)
	assert.Empty(t, metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name         string
		query        url.Values
		withDefaults bool
		want         dto.QueryParams
	}{
		{
			name:  "all parameters",
			query: url.Values{"page": {"2"}, "limit": {"20"}, "sort_by": {"name"}, "sort_dir": {"asc"}},
			want:  dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:         "defaults",
			withDefaults: true,
			want:         dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name: "no defaults",
			want: dto.QueryParams{},
		},
		{
			name:         "malformed numbers fall back",
			query:        url.Values{"page": {"abc"}, "limit": {"-10"}},
			withDefaults: true,
			want:         dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:         "zero page",
			query:        url.Values{"page": {"0"}},
			withDefaults: true,
			want:         dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:  "limit is capped",
			query: url.Values{"limit": {"5000"}},
			want:  dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:  "unknown sort direction ignored",
			query: url.Values{"sort_by": {"price"}, "sort_dir": {"sideways"}},
			want:  dto.QueryParams{SortBy: "price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequestWithContext(context.Background(), http.MethodGet, "/v1/menu/items?"+tt.query.Encode(), nil)

			got := dto.QueryParams{}
			got.FromRequest(req, tt.withDefaults)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, dto.QueryParams{Page: 5, Limit: 10}.Offset())
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equality with table",
			filter:    dto.Filter{Field: "status", Value: "Pending", Operator: dto.FilterOperatorEq, Table: "orders"},
			wantWhere: "orders.status = :status",
			wantArgs:  map[string]any{"status": "Pending"},
		},
		{
			name:      "custom argument name",
			filter:    dto.Filter{ArgName: "active_from", Field: "start_date", Value: "2026-11-15", Operator: dto.FilterOperatorLessEq},
			wantWhere: "start_date <= :active_from",
			wantArgs:  map[string]any{"active_from": "2026-11-15"},
		},
		{
			name:      "like escapes wildcards",
			filter:    dto.Filter{Field: "name", Value: "50%_off", Operator: dto.FilterOperatorLike, Table: "menu_items"},
			wantWhere: "menu_items.name ILIKE :name",
			wantArgs:  map[string]any{"name": `%50\%\_off%`},
		},
		{
			name:      "in expands slices",
			filter:    dto.Filter{Field: "id", Value: []string{"a", "b"}, Operator: dto.FilterOperatorIn},
			wantWhere: "id IN (:id_0, :id_1)",
			wantArgs:  map[string]any{"id_0": "a", "id_1": "b"},
		},
		{
			name:      "in with empty slice matches nothing",
			filter:    dto.Filter{Field: "id", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "in with a single value",
			filter:    dto.Filter{Field: "id", Value: "a", Operator: dto.FilterOperatorIn},
			wantWhere: "id IN (:id)",
			wantArgs:  map[string]any{"id": "a"},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "last_login", Operator: dto.FilterIsNull, Table: "users"},
			wantWhere: "users.last_login IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "id", Value: 1, Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "user_id", Value: "user-1", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "status", Value: "Pending", Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "ready", Field: "status", Value: "Ready", Operator: dto.FilterOperatorEq},
				},
			},
			dto.Filter{Field: "id", Operator: "unsupported"},
			"ignored",
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(user_id = :user_id AND (status = :status OR status = :ready))", where)
	assert.Equal(t, map[string]any{"user_id": "user-1", "status": "Pending", "ready": "Ready"}, args)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

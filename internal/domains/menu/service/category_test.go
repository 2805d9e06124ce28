package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bistro/internal/domains/menu/model"
	"bistro/internal/domains/menu/model/dto"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
)

func TestCategoryService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f menuFixture)
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func(f menuFixture) {
				f.categoryRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.categoryRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "duplicate name",
			setupMock: func(f menuFixture) {
				f.categoryRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			setupMock: func(f menuFixture) {
				f.categoryRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMenuFixture(t)
			tt.setupMock(f)

			res, err := f.categories.Create(context.Background(), dto.CreateCategoryRequest{Name: "Starters"})

			if tt.wantCode == 0 {
				assert.NoError(t, err)
				assert.Equal(t, "Starters", res.Name)
			} else {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestCategoryService_GetAll(t *testing.T) {
	f := newMenuFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	f.categoryRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.categoryRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Category{
		{ID: "c1", Name: "Starters"},
		{ID: "c2", Name: "Mains"},
	}, nil)

	res, err := f.categories.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Len(t, res.Categories, 2)
	assert.Equal(t, 1, res.TotalPage)
}

func TestCategoryService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f menuFixture)
		wantCode  int
	}{
		{
			name: "category not found",
			setupMock: func(f menuFixture) {
				f.categoryRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "category still has items",
			setupMock: func(f menuFixture) {
				f.categoryRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.itemRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "successful deletion",
			setupMock: func(f menuFixture) {
				f.categoryRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.itemRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.categoryRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMenuFixture(t)
			tt.setupMock(f)

			err := f.categories.Delete(context.Background(), "c1")

			if tt.wantCode == 0 {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestCategoryService_Update(t *testing.T) {
	name := "Small plates"

	f := newMenuFixture(t)

	err := f.categories.Update(context.Background(), dto.UpdateCategoryRequest{}, "c1")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	f.categoryRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.categoryRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, f.categories.Update(context.Background(), dto.UpdateCategoryRequest{Name: &name}, "c1"))
}

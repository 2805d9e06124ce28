package dto

import (
	"strings"

	"bistro/internal/domains/user/model"
	"bistro/shared"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	gModel "bistro/shared/model"
	"bistro/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Name     string  `json:"name"            validate:"required,min=2,max=100"`
	Email    string  `json:"email"           validate:"required,email"`
	Password string  `json:"password"        validate:"required,min=8,max=72"`
	Role     string  `json:"role"            validate:"required,max=50"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	return model.User{
		ID:         uuid.NewString(),
		Name:       r.Name,
		Email:      strings.ToLower(strings.TrimSpace(r.Email)),
		Password:   hashedPassword,
		Role:       r.Role,
		Phone:      r.Phone,
		IsActive:   true,
		IsSignedUp: true,
		Metadata:   gModel.NewMetadata(timezone.Now(), username),
	}
}

type UpdateUserRequest struct {
	Name     *string `db:"name"      json:"name,omitempty"      validate:"omitempty,min=2,max=100"`
	Phone    *string `db:"phone"     json:"phone,omitempty"     validate:"omitempty,max=20"`
	Role     *string `db:"role"      json:"role,omitempty"      validate:"omitempty,max=50"`
	IsActive *bool   `db:"is_active" json:"is_active,omitempty"`
}

type UserResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Phone      *string `json:"phone,omitempty"`
	IsActive   bool    `json:"is_active"`
	IsSignedUp bool    `json:"is_signed_up"`
	IsSignedIn bool    `json:"is_signed_in"`
	LastLogin  *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Role = model.Role
	r.Phone = model.Phone
	r.IsActive = model.IsActive
	r.IsSignedUp = model.IsSignedUp
	r.IsSignedIn = model.IsSignedIn
	r.LastLogin = nil

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

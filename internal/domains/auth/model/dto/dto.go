package dto

import (
	"strings"
	"time"

	"bistro/infras/jwt"
	userModel "bistro/internal/domains/user/model"
	userDto "bistro/internal/domains/user/model/dto"
	"bistro/shared/constant"
	gModel "bistro/shared/model"
	"bistro/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string  `json:"name"            validate:"required,min=2,max=100"`
	Email    string  `json:"email"           validate:"required,email"`
	Password string  `json:"password"        validate:"required,min=8,max=72"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

func (r *RegisterRequest) ToUserModel(username string, hashedPassword string) userModel.User {
	return userModel.User{
		ID:         uuid.NewString(),
		Name:       r.Name,
		Email:      strings.ToLower(strings.TrimSpace(r.Email)),
		Password:   hashedPassword,
		Role:       constant.RoleCustomer,
		Phone:      r.Phone,
		IsActive:   true,
		IsSignedUp: true,
		Metadata:   gModel.NewMetadata(timezone.Now(), username),
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin  time.Time `db:"last_login"   json:"last_login"   validate:"required"`
	IsSignedIn *bool     `db:"is_signed_in" json:"is_signed_in"`
}

func NewUpdateLastLoginRequest() UpdateLastLoginRequest {
	signedIn := true

	return UpdateLastLoginRequest{LastLogin: timezone.Now(), IsSignedIn: &signedIn}
}

type UpdateSignedInRequest struct {
	IsSignedIn *bool `db:"is_signed_in" json:"is_signed_in"`
}

type LoginResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	TokenType    string               `json:"token_type"`
	ExpiresIn    int64                `json:"expires_in"`
	User         userDto.UserResponse `json:"user"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8,max=72"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Token       string `json:"token"        validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// PasswordResetEvent is published for the mailer when a reset is requested.
type PasswordResetEvent struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func NewPasswordResetEvent(user userModel.User, token string, ttlSeconds int) PasswordResetEvent {
	expiresAt := timezone.Now().Add(time.Duration(ttlSeconds) * time.Second)

	return PasswordResetEvent{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: timezone.Format(expiresAt, constant.DateFormat),
	}
}

package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bistro/infras/jwt"
	"bistro/internal/domains/auth/model/dto"
	userModel "bistro/internal/domains/user/model"
	"bistro/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{
		Name:     "Jane",
		Email:    "  Jane@Example.COM ",
		Password: "password123",
		Phone:    stringPtr("+15550100"),
	}

	user := req.ToUserModel(constant.ContextGuest, "hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, constant.RoleCustomer, user.Role)
	assert.True(t, user.IsActive)
	assert.True(t, user.IsSignedUp)
	assert.False(t, user.IsSignedIn)
	assert.Equal(t, constant.ContextGuest, user.CreatedBy)
}

func TestNewUpdateLastLoginRequest(t *testing.T) {
	req := dto.NewUpdateLastLoginRequest()

	assert.False(t, req.LastLogin.IsZero())
	assert.NotNil(t, req.IsSignedIn)
	assert.True(t, *req.IsSignedIn)
}

func TestNewPasswordResetEvent(t *testing.T) {
	user := userModel.User{ID: "user-1", Name: "Jane", Email: "jane@example.com"}

	event := dto.NewPasswordResetEvent(user, "token-1", 900)

	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, "jane@example.com", event.Email)
	assert.Equal(t, "token-1", event.Token)
	assert.NotEmpty(t, event.ExpiresAt)
}

// Helper function to create string pointer
func stringPtr(s string) *string {
	return &s
}

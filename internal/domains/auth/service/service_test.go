package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bistro/config"
	"bistro/infras/jwt"
	jwtMocks "bistro/infras/jwt/mocks"
	kafkaMocks "bistro/infras/kafka/mocks"
	"bistro/infras/otel/mocks"
	"bistro/internal/domains/auth/model/dto"
	"bistro/internal/domains/auth/service"
	userMocks "bistro/internal/domains/user/mocks"
	userModel "bistro/internal/domains/user/model"
	"bistro/shared/cache"
	cacheMocks "bistro/shared/cache/mocks"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	gModel "bistro/shared/model"
	"bistro/shared/timezone"
)

// bcrypt hash of "password"
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

type fixture struct {
	userRepo *userMocks.MockUser
	jwt      *jwtMocks.MockJWT
	cache    *cacheMocks.MockRedisCache
	kafka    *kafkaMocks.MockClient
	svc      service.Auth
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		userRepo: userMocks.NewMockUser(ctrl),
		jwt:      jwtMocks.NewMockJWT(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Auth.ResetTokenTTLSeconds = 900
	cfg.Kafka.Topics.PasswordReset = "auth.password_reset_requested"

	f.svc = service.New(f.userRepo, cfg, f.cache, f.kafka, mocks.NewOtel(), f.jwt)

	return f
}

func activeUser() userModel.User {
	return userModel.User{
		ID:         "user-id-123",
		Name:       "Test User",
		Email:      "test@example.com",
		Password:   passwordHash,
		Role:       constant.RoleCustomer,
		IsActive:   true,
		IsSignedUp: true,
		Metadata:   gModel.NewMetadata(timezone.Now(), "system"),
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful registration",
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.userRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user userModel.User) error {
					assert.Equal(t, constant.RoleCustomer, user.Role)
					assert.Equal(t, "new@example.com", user.Email)
					assert.True(t, user.IsSignedUp)
					assert.NotEqual(t, "password123", user.Password)

					return nil
				})
			},
		},
		{
			name: "email already registered",
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Register(context.Background(), dto.RegisterRequest{
				Name:     "New User",
				Email:    "New@Example.com",
				Password: "password123",
			})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, constant.RoleCustomer, res.Role)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	inactive := activeUser()
	inactive.IsActive = false

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				user := activeUser()

				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().
					GenerateTokenPair(gomock.Any(), user.ID, user.Email, user.Role).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				f.userRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Contains(t, fields, userModel.FieldLastLogin)
						signedIn, _ := fields[userModel.FieldIsSignedIn].(*bool)
						assert.True(t, *signedIn)

						return nil
					})
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password leaves account untouched",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "wrong-password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
				f.jwt.EXPECT().
					GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("signing error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "user-id-123", res.User.ID)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("guest", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Logout(context.Background())

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("clears signed in flag", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				signedIn, _ := fields[userModel.FieldIsSignedIn].(*bool)
				assert.False(t, *signedIn)

				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id-123")

		assert.NoError(t, f.svc.Logout(ctx))
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "successful refresh",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().
					RefreshTokens(gomock.Any(), "valid-refresh-token").
					Return(&jwt.TokenPair{AccessToken: "new-access-token", RefreshToken: "new-refresh-token"}, nil)
			},
		},
		{
			name: "invalid refresh token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().
					RefreshTokens(gomock.Any(), "valid-refresh-token").
					Return(nil, errors.New("token expired"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "new-access-token", res.AccessToken)
			}
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(f fixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful change",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "newpassword123"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "user not found",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id-123")
			err := f.svc.ChangePassword(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_ForgotPassword(t *testing.T) {
	notSignedUp := activeUser()
	notSignedUp.IsSignedUp = false

	tests := []struct {
		name      string
		setupMock func(f fixture, published chan struct{})
		wantErr   bool
		wantCode  int
	}{
		{
			name: "unknown email touches nothing",
			setupMock: func(f fixture, _ chan struct{}) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "account not signed up",
			setupMock: func(f fixture, _ chan struct{}) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(notSignedUp, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "stores token and publishes event",
			setupMock: func(f fixture, published chan struct{}) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
				f.cache.EXPECT().
					Save(gomock.Any(), "auth:reset:test@example.com", gomock.Any(), 900).
					Return(nil)
				f.kafka.EXPECT().
					SendMessages(gomock.Any(), "auth.password_reset_requested", gomock.Any()).
					DoAndReturn(func(context.Context, string, ...any) error {
						close(published)

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			published := make(chan struct{})
			tt.setupMock(f, published)

			err := f.svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "test@example.com"})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)

			select {
			case <-published:
			case <-time.After(time.Second):
				t.Fatal("password reset event was not published")
			}
		})
	}
}

func TestAuthService_ResetPassword(t *testing.T) {
	req := dto.ResetPasswordRequest{Email: "test@example.com", Token: "reset-token", NewPassword: "newpassword123"}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "valid token",
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
				f.cache.EXPECT().
					Get(gomock.Any(), "auth:reset:test@example.com", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*string) = "reset-token"

						return nil
					})
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.cache.EXPECT().Delete(gomock.Any(), "auth:reset:test@example.com").Return(nil)
			},
		},
		{
			name: "wrong token does not update",
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*string) = "another-token"

						return nil
					})
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "expired token",
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to get cache value: %w", cache.Nil))
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown email",
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.ResetPassword(context.Background(), req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

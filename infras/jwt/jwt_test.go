package jwt_test

import (
	"context"
	"testing"
	"time"

	"bistro/config"
	"bistro/infras/jwt"
	"bistro/infras/otel/mocks"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "bistro"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func signed(t *testing.T, secret string, claims jwt.Claims, method gojwt.SigningMethod) string {
	t.Helper()

	token, err := gojwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func TestGenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	svc := jwt.New(testConfig(), mocks.NewOtel())

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "chef@bistro.test", "staff")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "chef@bistro.test", claims.Email)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, claims.ID, claims.TokenID)
	assert.Equal(t, "bistro", claims.Issuer)

	refresh, err := svc.ValidateToken(ctx, pair.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), refresh.ExpiresAt.Time, time.Minute)
}

func TestValidateTokenRejects(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	svc := jwt.New(cfg, mocks.NewOtel())

	now := time.Now()
	valid := func(tokenType jwt.TokenType) jwt.Claims {
		return jwt.Claims{
			UserID: "user-1",
			Email:  "chef@bistro.test",
			Type:   tokenType,
			RegisteredClaims: gojwt.RegisteredClaims{
				Issuer:    "bistro",
				ExpiresAt: gojwt.NewNumericDate(now.Add(time.Minute)),
			},
		}
	}

	expired := valid(jwt.AccessToken)
	expired.ExpiresAt = gojwt.NewNumericDate(now.Add(-time.Hour))

	foreign := valid(jwt.AccessToken)
	foreign.Issuer = "someone-else"

	noExpiry := valid(jwt.AccessToken)
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name      string
		token     string
		tokenType jwt.TokenType
		wantErr   error
	}{
		{name: "garbage", token: "not-a-token", tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "expired", token: signed(t, cfg.JWT.AccessSecret, expired, gojwt.SigningMethodHS256), tokenType: jwt.AccessToken, wantErr: jwt.ErrExpiredToken},
		{name: "other issuer", token: signed(t, cfg.JWT.AccessSecret, foreign, gojwt.SigningMethodHS256), tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "no expiry", token: signed(t, cfg.JWT.AccessSecret, noExpiry, gojwt.SigningMethodHS256), tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "other algorithm", token: signed(t, cfg.JWT.AccessSecret, valid(jwt.AccessToken), gojwt.SigningMethodHS512), tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "access signed as refresh", token: signed(t, cfg.JWT.AccessSecret, valid(jwt.RefreshToken), gojwt.SigningMethodHS256), tokenType: jwt.RefreshToken, wantErr: jwt.ErrInvalidToken},
		{name: "type mismatch", token: signed(t, cfg.JWT.RefreshSecret, valid(jwt.AccessToken), gojwt.SigningMethodHS256), tokenType: jwt.RefreshToken, wantErr: jwt.ErrInvalidClaim},
		{name: "unknown type", token: signed(t, cfg.JWT.AccessSecret, valid(jwt.AccessToken), gojwt.SigningMethodHS256), tokenType: "session", wantErr: jwt.ErrInvalidClaim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(ctx, tt.token, tt.tokenType)

			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRefreshTokens(t *testing.T) {
	ctx := context.Background()
	svc := jwt.New(testConfig(), mocks.NewOtel())

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "chef@bistro.test", "staff")
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "staff", claims.Role)

	_, err = svc.RefreshTokens(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{header: "Bearer abc.def", want: "abc.def"},
		{header: "bearer  abc.def ", want: "abc.def"},
		{header: "", wantErr: jwt.ErrMissingHeader},
		{header: "Token abc", wantErr: jwt.ErrBearerScheme},
		{header: "Bearer", wantErr: jwt.ErrBearerScheme},
		{header: "   ", wantErr: jwt.ErrMissingHeader},
	}

	for _, tt := range tests {
		token, err := jwt.ExtractTokenFromHeader(tt.header)

		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, tt.header)

			continue
		}

		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.want, token)
	}
}

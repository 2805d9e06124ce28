package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bistro/config"
	"bistro/infras/jwt"
	jwtMocks "bistro/infras/jwt/mocks"
	"bistro/infras/otel/mocks"
	"bistro/permissions"
	"bistro/shared/constant"
	"bistro/transport/http/middleware"
	middlewareMocks "bistro/transport/http/middleware/mocks"
)

const (
	testAPIKey = "internal-key"
	testToken  = "access-token"
)

func newRouter(t *testing.T, jwtService jwt.JWT, checker middleware.PermissionChecker) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = testAPIKey

	authRole := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), permissions.Get(), checker, cfg)

	ok := func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)
		w.Header().Set("X-Test-Role", role)
		w.WriteHeader(http.StatusOK)
	}

	mux := chi.NewRouter()
	mux.Route("/v1", func(r chi.Router) {
		r.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)

		r.Get("/menu/items", ok)
		r.Post("/auth/logout", ok)
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", ok)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ok)
			r.Post("/", ok)
			r.Patch("/{id}/status", ok)
		})
	})

	return mux
}

func claims(role string) *jwt.Claims {
	return &jwt.Claims{UserID: "user-1", Email: "guest@bistro.test", Role: role, TokenID: "token-1", Type: jwt.AccessToken}
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		token     bool
		apiKey    string
		setupMock func(jwtService *jwtMocks.MockJWT, checker *middlewareMocks.MockPermissionChecker)
		wantCode  int
		wantRole  string
	}{
		{
			name:      "public menu without token",
			method:    http.MethodGet,
			path:      "/v1/menu/items",
			setupMock: func(_ *jwtMocks.MockJWT, _ *middlewareMocks.MockPermissionChecker) {},
			wantCode:  http.StatusOK,
		},
		{
			name:      "missing authorization header",
			method:    http.MethodGet,
			path:      "/v1/cart",
			setupMock: func(_ *jwtMocks.MockJWT, _ *middlewareMocks.MockPermissionChecker) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			method: http.MethodGet,
			path:   "/v1/cart",
			token:  true,
			setupMock: func(jwtService *jwtMocks.MockJWT, _ *middlewareMocks.MockPermissionChecker) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), testToken, jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "claims without user",
			method: http.MethodGet,
			path:   "/v1/cart",
			token:  true,
			setupMock: func(jwtService *jwtMocks.MockJWT, _ *middlewareMocks.MockPermissionChecker) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), testToken, jwt.AccessToken).Return(&jwt.Claims{Role: constant.RoleCustomer}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "customer uses cart",
			method: http.MethodGet,
			path:   "/v1/cart",
			token:  true,
			setupMock: func(jwtService *jwtMocks.MockJWT, checker *middlewareMocks.MockPermissionChecker) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), testToken, jwt.AccessToken).Return(claims(constant.RoleCustomer), nil)
				checker.EXPECT().HasPermission(gomock.Any(), constant.RoleCustomer, "cart:use").Return(true, nil)
			},
			wantCode: http.StatusOK,
			wantRole: constant.RoleCustomer,
		},
		{
			name:   "customer cannot list all orders",
			method: http.MethodGet,
			path:   "/v1/orders",
			token:  true,
			setupMock: func(jwtService *jwtMocks.MockJWT, checker *middlewareMocks.MockPermissionChecker) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), testToken, jwt.AccessToken).Return(claims(constant.RoleCustomer), nil)
				checker.EXPECT().HasPermission(gomock.Any(), constant.RoleCustomer, "order:read").Return(false, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "staff places order through second permission",
			method: http.MethodPost,
			path:   "/v1/orders",
			token:  true,
			setupMock: func(jwtService *jwtMocks.MockJWT, checker *middlewareMocks.MockPermissionChecker) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), testToken, jwt.AccessToken).Return(claims(constant.RoleStaff), nil)
				gomock.InOrder(
					checker.EXPECT().HasPermission(gomock.Any(), constant.RoleStaff, "cart:use").Return(false, nil),
					checker.EXPECT().HasPermission(gomock.Any(), constant.RoleStaff, "order:write").Return(true, nil),
				)
			},
			wantCode: http.StatusOK,
			wantRole: constant.RoleStaff,
		},
		{
			name:   "superadmin skips permission lookup",
			method: http.MethodPatch,
			path:   "/v1/orders/7c1d/status",
			token:  true,
			setupMock: func(jwtService *jwtMocks.MockJWT, _ *middlewareMocks.MockPermissionChecker) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), testToken, jwt.AccessToken).Return(claims(constant.RoleSuperAdmin), nil)
			},
			wantCode: http.StatusOK,
			wantRole: constant.RoleSuperAdmin,
		},
		{
			name:   "permission lookup fails",
			method: http.MethodPatch,
			path:   "/v1/orders/7c1d/status",
			token:  true,
			setupMock: func(jwtService *jwtMocks.MockJWT, checker *middlewareMocks.MockPermissionChecker) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), testToken, jwt.AccessToken).Return(claims(constant.RoleStaff), nil)
				checker.EXPECT().HasPermission(gomock.Any(), constant.RoleStaff, "order:write").Return(false, errors.New("redis down"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:   "signed in user on endpoint without permissions",
			method: http.MethodPost,
			path:   "/v1/auth/logout",
			token:  true,
			setupMock: func(jwtService *jwtMocks.MockJWT, _ *middlewareMocks.MockPermissionChecker) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), testToken, jwt.AccessToken).Return(claims(constant.RoleCustomer), nil)
			},
			wantCode: http.StatusOK,
			wantRole: constant.RoleCustomer,
		},
		{
			name:      "internal api key",
			method:    http.MethodGet,
			path:      "/v1/orders",
			apiKey:    testAPIKey,
			setupMock: func(_ *jwtMocks.MockJWT, _ *middlewareMocks.MockPermissionChecker) {},
			wantCode:  http.StatusOK,
		},
		{
			name:      "wrong api key",
			method:    http.MethodGet,
			path:      "/v1/orders",
			apiKey:    "guess",
			setupMock: func(_ *jwtMocks.MockJWT, _ *middlewareMocks.MockPermissionChecker) {},
			wantCode:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)
			checker := middlewareMocks.NewMockPermissionChecker(ctrl)
			tt.setupMock(jwtService, checker)

			req := httptest.NewRequestWithContext(context.Background(), tt.method, tt.path, nil)
			if tt.token {
				req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+testToken)
			}

			if tt.apiKey != "" {
				req.Header.Set(constant.RequestHeaderAPIKey, tt.apiKey)
			}

			rec := httptest.NewRecorder()
			newRouter(t, jwtService, checker).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantRole != "" {
				assert.Equal(t, tt.wantRole, rec.Header().Get("X-Test-Role"))
			}
		})
	}
}

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roomdesk/config"
	"roomdesk/infras/jwt"
	otelMocks "roomdesk/infras/otel/mocks"
	cacheMocks "roomdesk/shared/cache/mocks"
	"roomdesk/shared/constant"
	"roomdesk/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func okHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true

		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuth(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "secret"

	jwtService := jwt.New(cfg)

	valid, err := jwtService.GenerateAccessToken("7", "guest@example.com", time.Minute)
	require.NoError(t, err)

	expired, err := jwtService.GenerateAccessToken("7", "guest@example.com", -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "expired", header: constant.BearerPrefix + expired, wantStatus: http.StatusUnauthorized},
		{name: "garbage", header: constant.BearerPrefix + "abc.def.ghi", wantStatus: http.StatusUnauthorized},
		{name: "valid", header: constant.BearerPrefix + valid, wantStatus: http.StatusNoContent, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := middleware.NewAuthMiddleware(jwtService, otelMocks.NewOtel())

			var called bool

			var seenUser, seenToken any

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				seenUser = r.Context().Value(constant.ContextKeyUserID)
				seenToken = r.Context().Value(constant.ContextKeyToken)

				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/pages/1", nil)
			if tt.header != "" {
				req.Header.Set(constant.RequestHeaderAuthorization, tt.header)
			}

			rec := httptest.NewRecorder()
			auth.Auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)

			if tt.wantCalled {
				assert.Equal(t, "7", seenUser)
				assert.Equal(t, valid, seenToken)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	newConfig := func(enable bool) *config.Config {
		cfg := &config.Config{}
		cfg.App.RateLimiter.Enable = enable
		cfg.App.RateLimiter.MaxRequests = 2
		cfg.App.RateLimiter.WindowSeconds = 60

		return cfg
	}

	t.Run("disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)

		var called bool

		rec := httptest.NewRecorder()
		middleware.NewAppMiddleware(otelMocks.NewOtel(), newConfig(false), cache).
			RateLimit()(okHandler(t, &called)).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, called)
		assert.Empty(t, rec.Header().Get(constant.RequestHeaderRateLimit))
	})

	t.Run("within limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)

		cache.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.1:browser", 60).Return(int64(2), nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constant.RequestHeaderForwardedFor, "10.0.0.1, 172.16.0.1")
		req.Header.Set(constant.RequestHeaderUserAgent, "browser")

		var called bool

		rec := httptest.NewRecorder()
		middleware.NewAppMiddleware(otelMocks.NewOtel(), newConfig(true), cache).
			RateLimit()(okHandler(t, &called)).
			ServeHTTP(rec, req)

		assert.True(t, called)
		assert.Equal(t, "2", rec.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "0", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		assert.Equal(t, "60", rec.Header().Get(constant.RequestHeaderRateLimitWindow))
	})

	t.Run("exceeded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)

		cache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(3), nil)

		var called bool

		rec := httptest.NewRecorder()
		middleware.NewAppMiddleware(otelMocks.NewOtel(), newConfig(true), cache).
			RateLimit()(okHandler(t, &called)).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.False(t, called)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("cache failure lets the request through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)

		cache.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection refused"))

		var called bool

		rec := httptest.NewRecorder()
		middleware.NewAppMiddleware(otelMocks.NewOtel(), newConfig(true), cache).
			RateLimit()(okHandler(t, &called)).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, called)
	})
}

func TestTracing(t *testing.T) {
	cfg := &config.Config{}

	var called bool

	rec := httptest.NewRecorder()
	middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, nil).
		Tracing(okHandler(t, &called)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/pages", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

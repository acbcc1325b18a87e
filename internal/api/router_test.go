package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	redisdriver "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mongotech/users-api/internal/core/domain"
	"github.com/mongotech/users-api/internal/infrastructure/config"
)

type nopAudit struct{}

func (nopAudit) Record(domain.AuditEvent) {}

// newTestRouter wires the real router against lazy (never-dialled) store
// clients. Routes under test must fail or succeed before any store I/O.
func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	client, err := mongodriver.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("mongo client: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	rdb := redisdriver.NewClient(&redisdriver.Options{Addr: "localhost:6379"})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		Port: "8000",
		Auth: config.AuthConfig{SecretKey: "test-secret", TokenTTLMinutes: 60},
	}

	return NewRouter(client.Database("mongo_tech_test"), rdb, cfg, zerolog.Nop(), nopAudit{})
}

func TestRouter(t *testing.T) {
	e := newTestRouter(t)

	t.Run("malformed basic auth aborts before routing", func(t *testing.T) {
		for _, path := range []string{"/api/v1/users", "/api/v1/users/me", "/health"} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set(echo.HeaderAuthorization, "Basic !!not-base64!!")
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("%s: expected 401, got %d", path, rec.Code)
			}
		}
	})

	t.Run("liveness without credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("me requires a bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("me rejects a garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if got := rec.Header().Get(echo.HeaderWWWAuthenticate); got != "Bearer" {
			t.Fatalf("expected Bearer challenge, got %q", got)
		}
	})

	t.Run("create rejects invalid payload before any store access", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", nil)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnprocessableEntity && rec.Code != http.StatusBadRequest {
			t.Fatalf("expected a validation failure, got %d", rec.Code)
		}
	})
}

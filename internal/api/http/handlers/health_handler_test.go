package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit/shop-service/internal/observability"
	"github.com/shopkit/shop-service/internal/persistence"
)

func TestHealthHandler_ReadyWithUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	h := NewHealthHandler("shop-service", "test", &persistence.Postgres{}, &persistence.Redis{Client: client}, observability.NewMetrics())
	app := fiber.New()
	app.Get("/health/ready", h.Ready)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health/ready", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, "degraded", body.Dependencies["redis"])
	assert.Equal(t, "in-memory", body.Dependencies["postgres"])
}

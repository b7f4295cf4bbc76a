package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Soybean501/clipvox-ai/internal/common"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("LOG_OUTPUT", "stdout")
	os.Exit(m.Run())
}

func TestErrorHandler_UnknownRoute(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Get("/known", func(c fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, common.ErrCodeDatabaseQuery.Code, body["code"])
}

func TestErrorHandler_PlainError(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Get("/fail", func(c fiber.Ctx) error { return io.ErrUnexpectedEOF })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestResolvePath_Absolute(t *testing.T) {
	assert.Equal(t, "/etc/ssl/cert.pem", resolvePath("/etc/ssl/cert.pem"))
}

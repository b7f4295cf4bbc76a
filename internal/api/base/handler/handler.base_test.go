package basehdl

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Soybean501/clipvox-ai/internal/common"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Title string `json:"title" validate:"required,min=3"`
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestSafeHandler_RecoversPanic(t *testing.T) {
	h := NewBaseHandler()
	app := fiber.New()
	app.Get("/boom", func(c fiber.Ctx) error {
		return h.SafeHandler(c, func() error {
			panic("boom")
		})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, common.ErrCodeInternalServer.Code, body["code"])
}

func TestHandleResponseWithStatus_Created(t *testing.T) {
	h := NewBaseHandler()
	app := fiber.New()
	app.Post("/items", func(c fiber.Ctx) error {
		h.HandleResponseWithStatus(c, common.StatusCreated, fiber.Map{"id": "1"}, nil)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/items", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	body := decodeBody(t, resp)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, common.MsgCreated, body["message"])
}

func TestParseRequestBody_ValidationDetails(t *testing.T) {
	h := NewBaseHandler()
	app := fiber.New()
	app.Post("/items", func(c fiber.Ctx) error {
		var input sampleInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, input, nil)
		return nil
	})

	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"title":"ab"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, common.ErrCodeValidationInput.Code, body["code"])
	assert.Equal(t, map[string]interface{}{"Title": "min"}, body["details"])

	req = httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{not json`))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, common.ErrCodeValidationFormat.Code, decodeBody(t, resp)["code"])
}

func TestParamObjectID_InvalidIsNotFound(t *testing.T) {
	h := NewBaseHandler()
	app := fiber.New()
	app.Get("/items/:id", func(c fiber.Ctx) error {
		_, err := h.ParamObjectID(c, "id")
		h.HandleResponse(c, nil, err)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/not-an-id", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCurrentUserID_MissingIsUnauthorized(t *testing.T) {
	h := NewBaseHandler()
	app := fiber.New()
	app.Get("/me", func(c fiber.Ctx) error {
		_, err := h.CurrentUserID(c)
		h.HandleResponse(c, nil, err)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleHealth_WithoutDatabase(t *testing.T) {
	app := fiber.New()
	app.Get("/system/health", NewSystemHandler().HandleHealth)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/system/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "degraded", data["status"])
}

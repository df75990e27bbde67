package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

func TestWriteError_InternalNoExponeDetalle(t *testing.T) {
	var logs bytes.Buffer
	app := fiber.New()
	app.Get("/falla", RequestLogger(logger.New(logger.Config{Out: &logs})), func(c *fiber.Ctx) error {
		return writeError(c, errors.New(`ERROR: relation "products" does not exist (SQLSTATE 42P01)`), "")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/falla", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "relation")

	assert.Contains(t, logs.String(), "SQLSTATE 42P01")
	assert.Contains(t, logs.String(), `"status":500`)
}

func TestWriteError_ErroresDeDominioConservanMensaje(t *testing.T) {
	app := fiber.New()
	app.Get("/invalido", func(c *fiber.Ctx) error {
		return writeError(c, fmt.Errorf("%w: quantidade excede el máximo", domain.ErrInvalidInput), "")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/invalido", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Message, "excede el máximo")
}

package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "go-inventory-qr/pkg/errors"
	"go-inventory-qr/pkg/logger"
)

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", pkgerrors.New(pkgerrors.CodeValidation, "quantity is required"), 400, "VALIDATION_ERROR", "quantity is required"},
		{"not found", pkgerrors.New(pkgerrors.CodeNotFound, "material not found"), 404, "NOT_FOUND", "material not found"},
		{"pending", pkgerrors.New(pkgerrors.CodePendingApproval, "wait"), 403, "PENDING_APPROVAL", "wait"},
		{"dependency", pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("disk"), "qr failed"), 503, "DEPENDENCY_ERROR", "qr failed"},
		{"internal hides detail", pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("pq: boom"), "db exploded"), 500, "INTERNAL_ERROR", "internal server error"},
		{"foreign", errors.New("raw"), 500, "INTERNAL_ERROR", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return Error(c, logger.Nop(), tt.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var body map[string]string
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

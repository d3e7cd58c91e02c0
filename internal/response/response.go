// Package response writes JSON error bodies for fiber handlers.
package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	pkgerrors "go-inventory-qr/pkg/errors"
	"go-inventory-qr/pkg/logger"
)

// Error writes {"error": <message>, "code": <CODE>} with the status mapped
// from the error code. Foreign errors become INTERNAL_ERROR.
func Error(c *fiber.Ctx, logg *logger.Logger, err error) error {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if meta.DetailsAllowed && typed.Message() != "" {
		msg = typed.Message()
	}

	if logg != nil && meta.HTTPStatus >= fiber.StatusInternalServerError {
		ctx := logg.WithField(c.UserContext(), "path", c.Path())
		logg.Error(logg.WithField(ctx, "error_code", string(typed.Code())), "request failed", err)
	}

	return c.Status(meta.HTTPStatus).JSON(fiber.Map{
		"error": msg,
		"code":  string(typed.Code()),
	})
}

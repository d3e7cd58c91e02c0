package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	pkgerrors "go-inventory-qr/pkg/errors"
)

// paramID parses a positive numeric route parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 0)
	if err != nil || id == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+name)
	}
	return uint(id), nil
}

func invalidBody() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid request body")
}

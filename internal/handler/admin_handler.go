package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-inventory-qr/internal/middleware"
	"go-inventory-qr/internal/model"
	"go-inventory-qr/internal/response"
	"go-inventory-qr/internal/service"
	"go-inventory-qr/pkg/logger"
)

type AdminHandler struct {
	service service.AdminService
	logg    *logger.Logger
}

func NewAdminHandler(s service.AdminService, logg *logger.Logger) *AdminHandler {
	return &AdminHandler{service: s, logg: logg}
}

// GET /api/v1/admin/pending
func (h *AdminHandler) GetPending(c *fiber.Ctx) error {
	users, err := h.service.ListPending(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	out := make([]model.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return c.JSON(out)
}

// POST /api/v1/admin/users/:id/approve
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	user, err := h.service.Approve(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	return c.JSON(fiber.Map{"message": "User approved", "data": user.ToResponse()})
}

// POST /api/v1/admin/users/:id/reject
func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	if err := h.service.Reject(c.UserContext(), middleware.CurrentUser(c), id); err != nil {
		return response.Error(c, h.logg, err)
	}
	return c.JSON(fiber.Map{"message": "Registration rejected"})
}

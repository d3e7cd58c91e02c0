package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-inventory-qr/internal/response"
	"go-inventory-qr/internal/service"
	"go-inventory-qr/pkg/logger"
)

type CategoryHandler struct {
	service service.CategoryService
	logg    *logger.Logger
}

func NewCategoryHandler(s service.CategoryService, logg *logger.Logger) *CategoryHandler {
	return &CategoryHandler{service: s, logg: logg}
}

type CategoryRequest struct {
	Name string `json:"name" form:"name"`
}

// GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.List(c.UserContext())
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	return c.JSON(categories)
}

// POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, h.logg, invalidBody())
	}
	category, err := h.service.Create(c.UserContext(), req.Name)
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Category created", "data": category})
}

// DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return response.Error(c, h.logg, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}
